package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tribunen/billettvakt/entities"
)

func snapshotWith(sold map[string][2]int) *entities.Snapshot {
	totals := make(map[string]*entities.CategoryTotals, len(sold))
	for category, pair := range sold {
		amount, available := pair[0], pair[1]
		totals[category] = &entities.CategoryTotals{
			SectionAmount:  amount,
			SoldSeats:      amount - available,
			AvailableSeats: available,
		}
	}
	return &entities.Snapshot{
		General: entities.GeneralInfo{
			Title: "Brann - Molde, Eliteserien",
			Date:  "01.06.25 18:00 @ Brann Stadion",
			Time:  "12:00 01/06/2025",
		},
		Totals: totals,
	}
}

func TestRender_NoPriorOmitsDelta(t *testing.T) {
	current := snapshotWith(map[string][2]int{
		"SPV":                  {100, 40},
		entities.TotalCategory: {100, 40},
	})

	text := Render(current, nil, []string{"SPV", entities.TotalCategory})

	assert.Contains(t, text, "SPV        60/100       60.0%\n")
	assert.NotContains(t, text, "+", "no prior snapshot means no trend column")
	assert.True(t, strings.HasPrefix(text, "Brann - Molde, Eliteserien\n01.06.25 18:00 @ Brann Stadion\n\n"))
	assert.True(t, strings.HasSuffix(text, "\n\nUpdated: 12:00 01/06/2025\n"))
}

func TestRender_DeltaSigns(t *testing.T) {
	current := snapshotWith(map[string][2]int{
		"SPV": {100, 40},
		"BT":  {100, 70},
		"VIP": {10, 5},
	})
	prior := snapshotWith(map[string][2]int{
		"SPV": {100, 50},
		"BT":  {100, 60},
		"VIP": {10, 5},
	})

	text := Render(current, prior, []string{"SPV", "BT", "VIP"})

	assert.Contains(t, text, "SPV        60/100      +10     60.0%\n")
	assert.Contains(t, text, "BT         30/100      -10     30.0%\n")
	// Unchanged counts leave the indicator column blank.
	assert.Contains(t, text, "VIP        5/10                50.0%\n")
}

func TestRender_TotalSeparatedByBlankLine(t *testing.T) {
	current := snapshotWith(map[string][2]int{
		"SPV":                  {100, 40},
		entities.TotalCategory: {100, 40},
	})

	text := Render(current, nil, []string{"SPV", entities.TotalCategory})

	assert.Contains(t, text, "60.0%\n\nTOTALT")
}

func TestRender_ZeroCapacity(t *testing.T) {
	current := snapshotWith(map[string][2]int{"VIP": {0, 0}})

	text := Render(current, nil, []string{"VIP"})

	assert.Contains(t, text, "VIP        0/0          0.0%\n")
}

func TestRender_MissingCategorySkipped(t *testing.T) {
	current := snapshotWith(map[string][2]int{"SPV": {100, 40}})

	text := Render(current, nil, []string{"SPV", "GHOST"})

	assert.NotContains(t, text, "GHOST")
}
