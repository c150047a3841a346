package excel

import (
	"fmt"
	"log"

	"slotcorr/models"

	"github.com/xuri/excelize/v2"
)

// WriteRun exports a completed run as an XLSX workbook: one sheet with the
// correlogram rows and one with the run parameters and sampling profile.
func WriteRun(path string, run *models.AnalysisRun) error {
	if run.Estimate == nil {
		return fmt.Errorf("run %s has no estimate to export", run.ID)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Correlogram"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := []interface{}{"lag", "correntropy", "cross_corr", "support"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range run.Estimate.Lags {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			run.Estimate.Lags[i],
			run.Estimate.Correntropy[i],
			run.Estimate.CrossCorr[i],
			run.Estimate.Support[i],
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	const meta = "Run"
	if _, err := f.NewSheet(meta); err != nil {
		return err
	}
	metaRows := [][]interface{}{
		{"run_id", run.ID.String()},
		{"series_key", run.SeriesKey.String()},
		{"samples", run.Samples},
		{"bandwidth", run.Estimate.Bandwidth},
		{"slot_width", run.Estimate.SlotWidth},
		{"candidate_slots", run.Estimate.CandidateSlots},
		{"retained_slots", len(run.Estimate.Lags)},
		{"pair_count", run.Estimate.PairCount},
		{"span_fraction", run.Config.SpanFraction},
		{"slot_fraction", run.Config.SlotFraction},
		{"truncation_radius", run.Config.TruncationRadius},
		{"mean_interval", run.Profile.MeanInterval},
		{"median_interval", run.Profile.MedianInterval},
		{"jitter_coefficient", run.Profile.JitterCoefficient},
	}
	for i, row := range metaRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(meta, cell, &r); err != nil {
			return fmt.Errorf("failed to write run metadata: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	log.Printf("[SeriesWriter] exported run %s (%d slots) to %s", run.ID, len(run.Estimate.Lags), path)
	return nil
}
