package report

import (
	"fmt"
	"strings"

	"slotcorr/models"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// maxTableRows caps the correlogram rows rendered into the report; the full
// series stays available through the run JSON and the XLSX export.
const maxTableRows = 25

// Markdown renders a run as a Markdown document: slotting parameters,
// sampling cadence and the head of the correlogram table.
func Markdown(run *models.AnalysisRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Correntropy run %s\n\n", run.ID)
	if run.Source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", run.Source)
	}

	fmt.Fprintf(&b, "## Input\n\n")
	fmt.Fprintf(&b, "- Series key: `%s`\n", run.SeriesKey)
	fmt.Fprintf(&b, "- Samples: %d\n", run.Samples)
	fmt.Fprintf(&b, "- Time span: %g\n", run.Profile.Span)
	fmt.Fprintf(&b, "- Mean / median interval: %g / %g\n", run.Profile.MeanInterval, run.Profile.MedianInterval)
	fmt.Fprintf(&b, "- Jitter coefficient: %.3f\n", run.Profile.JitterCoefficient)
	if run.Profile.DuplicateTimes > 0 {
		fmt.Fprintf(&b, "- Duplicate timestamps: %d\n", run.Profile.DuplicateTimes)
	}
	if run.Profile.IsRegular() {
		b.WriteString("\n> Sampling is close to a regular grid; a classical fixed-lag ACF would give comparable results.\n")
	}

	fmt.Fprintf(&b, "\n## Estimator\n\n")
	fmt.Fprintf(&b, "- Span fraction: %g\n", run.Config.SpanFraction)
	fmt.Fprintf(&b, "- Slot fraction: %g\n", run.Config.SlotFraction)
	fmt.Fprintf(&b, "- Truncation radius: %g slot widths\n", run.Config.TruncationRadius)

	if est := run.Estimate; est != nil {
		fmt.Fprintf(&b, "- Bandwidth (sigma): %g\n", est.Bandwidth)
		fmt.Fprintf(&b, "- Slot width: %g\n", est.SlotWidth)
		fmt.Fprintf(&b, "- Pairs: %d\n", est.PairCount)
		fmt.Fprintf(&b, "- Slots: %d retained of %d candidates\n", len(est.Lags), est.CandidateSlots)

		fmt.Fprintf(&b, "\n## Correlogram\n\n")
		b.WriteString("| lag | correntropy | cross_corr | support |\n")
		b.WriteString("|----:|------------:|-----------:|--------:|\n")
		rows := len(est.Lags)
		if rows > maxTableRows {
			rows = maxTableRows
		}
		for i := 0; i < rows; i++ {
			fmt.Fprintf(&b, "| %.6g | %.6g | %.6g | %d |\n",
				est.Lags[i], est.Correntropy[i], est.CrossCorr[i], est.Support[i])
		}
		if rows < len(est.Lags) {
			fmt.Fprintf(&b, "\n_%d further slots omitted._\n", len(est.Lags)-rows)
		}
	}

	fmt.Fprintf(&b, "\n---\nGenerated %s in %dms.\n", run.CreatedAt, run.RuntimeMs)
	return b.String()
}

// HTML renders the run report as an HTML fragment.
func HTML(run *models.AnalysisRun) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(run)), p, renderer)
}
