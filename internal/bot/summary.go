package bot

import (
	"fmt"
	"strings"

	"sentibot/internal/model"
)

// FormatSummary renders a batch in input order. No data shows as
// "0 headlines", distinct from a neutral average of "0.00".
func FormatSummary(results []model.CompanyResult) string {
	var sb strings.Builder
	sb.WriteString("Daily Stock Sentiment Summary:\n\n")

	for _, res := range results {
		if res.Report.Kind == model.ReportNoData {
			fmt.Fprintf(&sb, "%s: 0 headlines\n", res.Symbol)
			continue
		}
		fmt.Fprintf(&sb, "%s: %.2f\n", res.Symbol, res.Report.Score)
	}

	return sb.String()
}
