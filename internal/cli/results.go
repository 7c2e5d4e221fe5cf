package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/scorecard/internal/model"
)

// RenderTrialTable renders the trial comparison as an aligned table, marking
// the selected row.
func RenderTrialTable(results []model.TrialResult, selected model.TrialResult) string {
	var b strings.Builder

	header := fmt.Sprintf("  %-10s %-40s %10s %10s", "ALGORITHM", "PARAMS", "ACCURACY", "MISCLASS")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, r := range results {
		marker := " "
		row := fmt.Sprintf("%-10s %-40s %10.4f %10.4f",
			r.Algorithm, r.Params.String(), r.Accuracy, r.Misclassification())
		if r.Algorithm == selected.Algorithm && r.Params.String() == selected.Params.String() {
			marker = SuccessIcon
			row = SelectedRowStyle.Render(row)
		} else {
			row = SubtleStyle.Render(row)
		}
		b.WriteString(marker + " " + row + "\n")
	}

	return b.String()
}

// RenderRunSummary renders the final pipeline summary box.
func RenderRunSummary(s SummaryView) string {
	content := fmt.Sprintf("  • Selected: %s (%s)\n", s.Algorithm, s.Params) +
		fmt.Sprintf("  • CV misclassification: %.4f\n", s.Misclassification) +
		fmt.Sprintf("  • Records scored: %d\n", s.Records) +
		fmt.Sprintf("  • Output: %s\n", s.OutputPath) +
		fmt.Sprintf("  • Time taken: %s", s.Duration)

	return RenderBox("Scoring Complete", content)
}

// SummaryView is the subset of a pipeline summary the renderer needs.
type SummaryView struct {
	Algorithm         string
	Params            string
	OutputPath        string
	Duration          string
	Misclassification float64
	Records           int
}
