package aggregate

import (
	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/venue"
)

// CountSection tallies one raw section into an immutable CountedSection.
//
// Standing-type sections carry no usable seat geometry, so all counts stay
// zero and the vendor-declared amount is left as-is; the venue's exclusion
// rules keep them out of every total downstream. For seated sections,
// phantom seats (available but with x <= 0) are removed from both the
// available count and the section total.
func CountSection(cfg *venue.Config, resp *entities.SectionResponse, work entities.SectionWork) entities.CountedSection {
	arrangement := resp.SeatingArrangements
	counted := entities.CountedSection{
		SectionName:   arrangement.SectionName,
		SectionID:     work.SectionID,
		SectionAmount: arrangement.SectionAmount,
		Visible:       work.Visible,
	}
	if cfg.IsStanding(arrangement.SectionName) {
		return counted
	}

	seats := arrangement.Seats
	counted.SoldSeats = seats.CountStatus(entities.StatusSold)
	counted.LockedSeats = seats.CountStatus(entities.StatusLocked)
	counted.PhantomSeats = seats.CountPhantom()
	counted.AvailableSeats = seats.CountStatus(entities.StatusAvailable) - counted.PhantomSeats
	counted.SectionAmount -= counted.PhantomSeats
	return counted
}
