package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"slotcorr/domain/series"

	"github.com/xuri/excelize/v2"
)

// timeLayouts are tried in order when a time cell is not a plain number.
// Parsed timestamps are converted to fractional unix seconds.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// SeriesReader loads (time, value) series from Excel and CSV files.
// The first column is the sample time, the second the sample value; a
// non-numeric first row is treated as a header and skipped.
type SeriesReader struct{}

// NewSeriesReader creates a reader for CSV and XLSX series files.
func NewSeriesReader() *SeriesReader {
	return &SeriesReader{}
}

// ReadSeries reads a series from the given path, dispatching on extension.
func (r *SeriesReader) ReadSeries(ctx context.Context, source string) (*series.Series, error) {
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return nil, fmt.Errorf("series file not found: %s", source)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv":
		rows, err = r.readCSVRows(source)
	case ".xlsx":
		rows, err = r.readExcelRows(source)
	default:
		return nil, fmt.Errorf("unsupported series file type: %s", filepath.Ext(source))
	}
	if err != nil {
		return nil, err
	}

	return r.parseRows(source, rows)
}

func (r *SeriesReader) readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (r *SeriesReader) readExcelRows(path string) ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use the first sheet.
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[SeriesReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// parseRows converts raw rows into a validated series. Blank rows are
// skipped; a header row is detected by a non-parseable time cell at row 0.
func (r *SeriesReader) parseRows(source string, rows [][]string) (*series.Series, error) {
	times := make([]float64, 0, len(rows))
	values := make([]float64, 0, len(rows))

	for i, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		t, terr := parseTimeCell(row[0])
		v, verr := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if terr != nil || verr != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d of %s is not a (time, value) pair: %q", i+1, source, row)
		}
		times = append(times, t)
		values = append(values, v)
	}

	log.Printf("[SeriesReader] parsed %d samples from %s", len(times), source)
	return series.New(times, values)
}

// parseTimeCell accepts either a real number or a timestamp in one of the
// supported layouts, converted to fractional unix seconds.
func parseTimeCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if t, err := strconv.ParseFloat(cell, 64); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return float64(ts.UnixNano()) / float64(time.Second), nil
		}
	}
	return 0, fmt.Errorf("unparseable time cell: %q", cell)
}
