package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"slotcorr/adapters/excel"
	"slotcorr/adapters/stats/correntropy"
	"slotcorr/app"
	"slotcorr/domain/core"
	"slotcorr/internal/report"
)

func main() {
	in := flag.String("in", "", "series file (.csv or .xlsx) with time,value columns")
	key := flag.String("key", "", "series key recorded with the run (defaults to the file name)")
	out := flag.String("out", "", "optional XLSX path for the correlogram export")
	span := flag.Float64("span", correntropy.DefaultSpanFraction, "fraction of the time span scanned for lags")
	slot := flag.Float64("slot", correntropy.DefaultSlotFraction, "slot width as a fraction of the mean sampling resolution")
	radius := flag.Float64("radius", correntropy.DefaultTruncationRadius, "kernel window half-width in slot widths (0 = full Gaussian)")
	asJSON := flag.Bool("json", false, "print the run as JSON instead of the Markdown report")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	seriesKey := *key
	if seriesKey == "" {
		seriesKey = *in
	}

	cfg := correntropy.Config{
		SpanFraction:     *span,
		SlotFraction:     *slot,
		TruncationRadius: *radius,
	}

	service := app.NewAnalysisService(excel.NewSeriesReader(), nil)
	run, err := service.Run(context.Background(), app.AnalysisRequest{
		SeriesKey: core.SeriesKey(seriesKey),
		Source:    *in,
		Config:    &cfg,
	})
	if err != nil {
		log.Fatalf("[analyze] %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			log.Fatalf("[analyze] failed to encode run: %v", err)
		}
	} else {
		fmt.Print(report.Markdown(run))
	}

	if *out != "" {
		if err := excel.WriteRun(*out, run); err != nil {
			log.Fatalf("[analyze] export failed: %v", err)
		}
	}
}
