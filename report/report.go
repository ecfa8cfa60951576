package report

import (
	"fmt"
	"strings"

	"github.com/tribunen/billettvakt/entities"
)

// Render formats the trend report for one event: the GENERAL metadata
// verbatim, then every category in declaration order with TOTALT last after
// a separating blank line. Each line shows sold/total, the signed change in
// sold seats since the prior capture, and the percentage sold. When no prior
// snapshot exists, the delta column is omitted entirely rather than shown as
// zero: there is no trend data yet.
//
// The first line is later replaced by the image renderer with the opponent
// caption, so it must stay the event title.
func Render(current, prior *entities.Snapshot, categories []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", current.General.Title, current.General.Date)

	for _, category := range categories {
		totals, ok := current.Totals[category]
		if !ok {
			continue
		}
		sold := totals.SectionAmount - totals.AvailableSeats
		percentage := 0.0
		if totals.SectionAmount != 0 {
			percentage = float64(sold) / float64(totals.SectionAmount) * 100
		}
		ratio := fmt.Sprintf("%d/%d", sold, totals.SectionAmount)

		if category == entities.TotalCategory {
			// Visual separator before the grand total.
			b.WriteString("\n")
		}

		if prior != nil {
			priorSold := 0
			if priorTotals, ok := prior.Totals[category]; ok {
				priorSold = priorTotals.SectionAmount - priorTotals.AvailableSeats
			}
			delta := sold - priorSold
			indicator := ""
			if delta != 0 {
				indicator = fmt.Sprintf("%+d", delta)
			}
			fmt.Fprintf(&b, "%-10s %-12s%-7s %.1f%%\n", category, ratio, indicator, percentage)
		} else {
			fmt.Fprintf(&b, "%-10s %-12s %.1f%%\n", category, ratio, percentage)
		}
	}

	fmt.Fprintf(&b, "\n\nUpdated: %s\n", current.General.Time)
	return b.String()
}
