package aggregate

import (
	"math"

	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/venue"
)

// Aggregator folds counted sections into per-category totals for one venue.
type Aggregator struct {
	Config *venue.Config
}

func New(cfg *venue.Config) *Aggregator {
	return &Aggregator{Config: cfg}
}

// Aggregate classifies every counted section and accumulates its counters
// into its category and the grand total. The fold is commutative, so the
// completion order of the concurrent fetch stage does not affect the result.
// Excluded sections touch nothing, not even the grand total.
func (a *Aggregator) Aggregate(sections []entities.CountedSection, info entities.GeneralInfo, european bool) entities.Snapshot {
	cfg := a.Config
	totals := make(map[string]*entities.CategoryTotals, len(cfg.Categories)+1)
	for _, category := range cfg.Categories {
		totals[category] = &entities.CategoryTotals{}
	}
	totals[entities.TotalCategory] = &entities.CategoryTotals{}

	for _, section := range sections {
		if cfg.SkipUnsoldInvisible && section.SoldSeats == 0 && !section.Visible {
			// Not yet on sale, not zero demand.
			continue
		}
		category, ok := cfg.Classify(section.SectionName)
		if !ok {
			continue
		}
		totals[category].AddSection(section)
		totals[entities.TotalCategory].AddSection(section)
	}

	a.extrapolate(totals, european)

	categories := make([]string, 0, len(cfg.Categories)+1)
	categories = append(categories, cfg.Categories...)
	categories = append(categories, entities.TotalCategory)

	return entities.Snapshot{
		General:    info,
		Categories: categories,
		Totals:     totals,
	}
}

// extrapolate corrects the one category whose real inventory is not exposed
// through the scraped sections: the observed sell-through (rounded to two
// decimals, the precision used for display) is scaled to the venue's nominal
// capacity and added to the category and the grand total. Skipped for
// European fixtures and when there is nothing observed to extrapolate from.
func (a *Aggregator) extrapolate(totals map[string]*entities.CategoryTotals, european bool) {
	cfg := a.Config
	if european || cfg.ExtrapolatedCategory == "" {
		return
	}
	observed, ok := totals[cfg.ExtrapolatedCategory]
	if !ok || observed.SectionAmount == 0 {
		return
	}

	sellThrough := math.Round(float64(observed.SoldSeats)/float64(observed.SectionAmount)*100) / 100
	extrapolatedSold := int(math.Round(float64(cfg.ExtrapolationCapacity) * sellThrough))

	correction := entities.CategoryTotals{
		SectionAmount:  cfg.ExtrapolationCapacity,
		SoldSeats:      extrapolatedSold,
		AvailableSeats: cfg.ExtrapolationCapacity - extrapolatedSold,
	}
	observed.Add(correction)
	totals[entities.TotalCategory].Add(correction)
}
