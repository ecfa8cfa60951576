package aggregate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/venue"
)

func testConfig() *venue.Config {
	cfg, _ := venue.ByClub("brann")
	return cfg
}

func info() entities.GeneralInfo {
	return entities.GeneralInfo{Title: "Brann - Molde, Eliteserien", Date: "01.06.25 18:00 @ Brann Stadion", Time: "12:00 01/06/2025"}
}

func TestAggregate_EndToEnd(t *testing.T) {
	cfg := testConfig()
	sections := []entities.CountedSection{
		{SectionName: "SPV Felt 3", SectionAmount: 150, SoldSeats: 100, AvailableSeats: 50, Visible: true},
		{SectionName: "VIP", SectionAmount: 10, SoldSeats: 10, Visible: true},
	}

	snap := New(cfg).Aggregate(sections, info(), false)

	assert.Equal(t, &entities.CategoryTotals{SectionAmount: 150, SoldSeats: 100, AvailableSeats: 50}, snap.Totals["SPV"])
	assert.Equal(t, &entities.CategoryTotals{SectionAmount: 10, SoldSeats: 10}, snap.Totals["VIP"])
	assert.Equal(t, &entities.CategoryTotals{}, snap.Totals["BT"], "categories without sections stay zeroed")
	assert.Equal(t, &entities.CategoryTotals{SectionAmount: 160, SoldSeats: 110, AvailableSeats: 50}, snap.Totals[entities.TotalCategory])
	assert.Equal(t, append(append([]string{}, cfg.Categories...), entities.TotalCategory), snap.Categories)
	assert.Equal(t, info(), snap.General)
}

func TestAggregate_Commutative(t *testing.T) {
	cfg := testConfig()
	sections := []entities.CountedSection{
		{SectionName: "SPV Felt 1", SectionAmount: 100, SoldSeats: 60, AvailableSeats: 40, Visible: true},
		{SectionName: "SPV Felt 2", SectionAmount: 120, SoldSeats: 80, AvailableSeats: 30, LockedSeats: 10, Visible: true},
		{SectionName: "BT Felt 1", SectionAmount: 90, SoldSeats: 90, Visible: true},
		{SectionName: "Frydenbø Felt 1", SectionAmount: 50, SoldSeats: 25, AvailableSeats: 25, Visible: true},
		{SectionName: "VIP", SectionAmount: 20, SoldSeats: 5, AvailableSeats: 15, Visible: true},
		{SectionName: "Pressetribune", SectionAmount: 30, SoldSeats: 1, Visible: true},
	}

	reference := New(cfg).Aggregate(sections, info(), false)

	for i := 0; i < 20; i++ {
		shuffled := make([]entities.CountedSection, len(sections))
		copy(shuffled, sections)
		rand.New(rand.NewSource(int64(i))).Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		snap := New(cfg).Aggregate(shuffled, info(), false)
		assert.Equal(t, reference.Totals, snap.Totals)
	}
}

func TestAggregate_Conservation(t *testing.T) {
	cfg := testConfig()
	sections := []entities.CountedSection{
		{SectionName: "SPV Felt 1", SectionAmount: 100, SoldSeats: 60, AvailableSeats: 40, Visible: true},
		{SectionName: "BT Felt 1", SectionAmount: 90, SoldSeats: 50, AvailableSeats: 35, LockedSeats: 5, Visible: true},
		{SectionName: "Frydenbø Felt 1", SectionAmount: 40, SoldSeats: 10, AvailableSeats: 30, Visible: true},
		{SectionName: "Ukjent Felt", SectionAmount: 500, SoldSeats: 400, Visible: true},
	}

	snap := New(cfg).Aggregate(sections, info(), false)

	sum := entities.CategoryTotals{}
	for _, category := range cfg.Categories {
		sum.Add(*snap.Totals[category])
	}
	assert.Equal(t, sum, *snap.Totals[entities.TotalCategory])
}

func TestAggregate_ExcludedTouchesNothing(t *testing.T) {
	cfg := testConfig()
	sections := []entities.CountedSection{
		{SectionName: "Pressetribune", SectionAmount: 30, SoldSeats: 10, Visible: true},
		{SectionName: "Helt Ukjent", SectionAmount: 300, SoldSeats: 200, Visible: true},
	}

	snap := New(cfg).Aggregate(sections, info(), true)

	assert.Equal(t, &entities.CategoryTotals{}, snap.Totals[entities.TotalCategory])
}

func TestAggregate_SkipUnsoldInvisible(t *testing.T) {
	section := entities.CountedSection{SectionName: "SPV Felt 1", SectionAmount: 100, AvailableSeats: 100, Visible: false}

	skipping := testConfig()
	snap := New(skipping).Aggregate([]entities.CountedSection{section}, info(), true)
	assert.Equal(t, &entities.CategoryTotals{}, snap.Totals["SPV"], "unsold invisible section is not yet on sale")

	keeping := testConfig()
	keeping.SkipUnsoldInvisible = false
	snap = New(keeping).Aggregate([]entities.CountedSection{section}, info(), true)
	assert.Equal(t, &entities.CategoryTotals{SectionAmount: 100, AvailableSeats: 100}, snap.Totals["SPV"])
}

func TestExtrapolation_Example(t *testing.T) {
	cfg := testConfig()
	cfg.ExtrapolatedCategory = "FRYDENBØ"
	cfg.ExtrapolationCapacity = 1000
	sections := []entities.CountedSection{
		{SectionName: "Frydenbø Felt 1", SectionAmount: 500, SoldSeats: 250, AvailableSeats: 250, Visible: true},
	}

	snap := New(cfg).Aggregate(sections, info(), false)

	// 50% sell-through scaled to the 1000-seat nominal capacity.
	assert.Equal(t, &entities.CategoryTotals{SectionAmount: 1500, SoldSeats: 750, AvailableSeats: 750}, snap.Totals["FRYDENBØ"])
	assert.Equal(t, &entities.CategoryTotals{SectionAmount: 1500, SoldSeats: 750, AvailableSeats: 750}, snap.Totals[entities.TotalCategory])
}

func TestExtrapolation_EuropeanBypass(t *testing.T) {
	cfg := testConfig()
	sections := []entities.CountedSection{
		{SectionName: "Frydenbø Felt 1", SectionAmount: 500, SoldSeats: 250, AvailableSeats: 250, Visible: true},
	}

	snap := New(cfg).Aggregate(sections, info(), true)

	assert.Equal(t, &entities.CategoryTotals{SectionAmount: 500, SoldSeats: 250, AvailableSeats: 250}, snap.Totals["FRYDENBØ"])
}

func TestExtrapolation_NoObservedData(t *testing.T) {
	cfg := testConfig()
	snap := New(cfg).Aggregate(nil, info(), false)

	assert.Equal(t, &entities.CategoryTotals{}, snap.Totals["FRYDENBØ"], "nothing observed, nothing extrapolated")
	assert.Equal(t, &entities.CategoryTotals{}, snap.Totals[entities.TotalCategory])
}
