package team

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/tribunen/billettvakt/aggregate"
	"github.com/tribunen/billettvakt/client"
	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/venue"
)

// adultItemType is the ticket class whose sections carry seat-level data;
// other item types only mirror the same physical sections.
const adultItemType = "Voksen"

type SectionTeamWorkingMaterial struct {
	RequestDelay int
	Completed    *int64
	Client       client.TicketAPI
	Config       *venue.Config
}

// SectionTeam fetches and counts every section of one event through a
// bounded worker pool. A failed section fetch drops that section from the
// result set; the aggregation downstream treats it as excluded.
type SectionTeam struct {
	WorkerCount     int
	WorkingMaterial *SectionTeamWorkingMaterial
}

func NewSectionTeam(workerCount int, wm *SectionTeamWorkingMaterial) *SectionTeam {
	return &SectionTeam{
		WorkerCount:     workerCount,
		WorkingMaterial: wm,
	}
}

// Count fetches and counts the given sections concurrently. The returned
// order is completion order; the fold downstream is commutative, so this is
// safe.
func (st *SectionTeam) Count(eventURL string, work []entities.SectionWork) []entities.CountedSection {
	workerCount := min(st.WorkerCount, len(work))
	countTeam := Team[entities.SectionWork, entities.CountedSection]{
		WorkerCount: workerCount,
		Worker: func(job entities.SectionWork) (entities.CountedSection, error) {
			resp, err := st.WorkingMaterial.Client.GetSection(eventURL, job.SectionID)
			if err != nil {
				return entities.CountedSection{}, fmt.Errorf("error fetching section %d: %w", job.SectionID, err)
			}
			counted := aggregate.CountSection(st.WorkingMaterial.Config, resp, job)
			if st.WorkingMaterial.Completed != nil {
				atomic.AddInt64(st.WorkingMaterial.Completed, 1)
			}
			time.Sleep(time.Duration(st.WorkingMaterial.RequestDelay) * time.Millisecond)
			return counted, nil
		},
	}
	return countTeam.Run(work)
}

// ListSections picks the adult item type (falling back to the first one,
// with visibility forced off since only the adult listing reflects real
// availability) and flattens its sections into work items.
func (st *SectionTeam) ListSections(eventURL string) ([]entities.SectionWork, error) {
	itemTypes, err := st.WorkingMaterial.Client.GetItemTypes(eventURL)
	if err != nil {
		return nil, err
	}
	if len(itemTypes.ItemTypes) == 0 {
		return nil, fmt.Errorf("empty item_types response")
	}

	chosen := itemTypes.ItemTypes[0]
	for _, itemType := range itemTypes.ItemTypes {
		if itemType.Title == adultItemType {
			chosen = itemType
			break
		}
	}
	isAdult := chosen.Title == adultItemType

	work := make([]entities.SectionWork, 0, len(chosen.Sections))
	for _, section := range chosen.Sections {
		visible := false
		if isAdult {
			visible = section.HasAvailableTickets
		}
		work = append(work, entities.SectionWork{SectionID: section.ID, Visible: visible})
	}
	return work, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
