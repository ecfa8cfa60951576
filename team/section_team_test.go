package team

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/venue"
)

type mockTicketAPI struct {
	itemTypes *entities.ItemTypesFile
	sections  map[int]*entities.SectionResponse
	failing   map[int]bool
}

func (m *mockTicketAPI) GetItemTypes(eventURL string) (*entities.ItemTypesFile, error) {
	if m.itemTypes == nil {
		return nil, fmt.Errorf("item types unavailable")
	}
	return m.itemTypes, nil
}

func (m *mockTicketAPI) GetSection(eventURL string, sectionID int) (*entities.SectionResponse, error) {
	if m.failing[sectionID] {
		return nil, fmt.Errorf("section %d unavailable", sectionID)
	}
	return m.sections[sectionID], nil
}

func seatedSection(name string, amount, sold int) *entities.SectionResponse {
	seats := make(entities.Seats, 0, sold)
	for i := 0; i < sold; i++ {
		seats = append(seats, entities.Seat{Status: entities.StatusSold, X: 1})
	}
	return &entities.SectionResponse{
		SeatingArrangements: entities.SeatingArrangement{
			SectionName:   name,
			SectionAmount: amount,
			Seats:         seats,
		},
	}
}

func TestListSections_PicksAdultItemType(t *testing.T) {
	mock := &mockTicketAPI{
		itemTypes: &entities.ItemTypesFile{
			ItemTypes: []entities.ItemType{
				{Title: "Barn", Sections: []entities.SectionRef{{ID: 1, HasAvailableTickets: true}}},
				{Title: "Voksen", Sections: []entities.SectionRef{
					{ID: 1, HasAvailableTickets: true},
					{ID: 2, HasAvailableTickets: false},
				}},
			},
		},
	}
	st := NewSectionTeam(2, &SectionTeamWorkingMaterial{Client: mock, Config: venue.Brann()})

	work, err := st.ListSections("https://tickets.example/event/")
	assert.NoError(t, err)
	assert.Equal(t, []entities.SectionWork{
		{SectionID: 1, Visible: true},
		{SectionID: 2, Visible: false},
	}, work)
}

func TestListSections_FallbackForcesInvisible(t *testing.T) {
	mock := &mockTicketAPI{
		itemTypes: &entities.ItemTypesFile{
			ItemTypes: []entities.ItemType{
				{Title: "Barn", Sections: []entities.SectionRef{{ID: 9, HasAvailableTickets: true}}},
			},
		},
	}
	st := NewSectionTeam(2, &SectionTeamWorkingMaterial{Client: mock, Config: venue.Brann()})

	work, err := st.ListSections("https://tickets.example/event/")
	assert.NoError(t, err)
	assert.Equal(t, []entities.SectionWork{{SectionID: 9, Visible: false}}, work)
}

func TestListSections_Empty(t *testing.T) {
	mock := &mockTicketAPI{itemTypes: &entities.ItemTypesFile{}}
	st := NewSectionTeam(2, &SectionTeamWorkingMaterial{Client: mock, Config: venue.Brann()})

	_, err := st.ListSections("https://tickets.example/event/")
	assert.Error(t, err)
}

func TestCount_DropsFailedSections(t *testing.T) {
	mock := &mockTicketAPI{
		sections: map[int]*entities.SectionResponse{
			1: seatedSection("SPV Felt 1", 100, 60),
			3: seatedSection("SPV Felt 3", 80, 20),
		},
		failing: map[int]bool{2: true},
	}
	var completed int64
	st := NewSectionTeam(3, &SectionTeamWorkingMaterial{
		Completed: &completed,
		Client:    mock,
		Config:    venue.Brann(),
	})

	counted := st.Count("https://tickets.example/event/", []entities.SectionWork{
		{SectionID: 1, Visible: true},
		{SectionID: 2, Visible: true},
		{SectionID: 3, Visible: true},
	})

	assert.Len(t, counted, 2, "a failed section drops out of the result set")
	totalSold := 0
	for _, section := range counted {
		totalSold += section.SoldSeats
	}
	assert.Equal(t, 80, totalSold)
	assert.Equal(t, int64(2), atomic.LoadInt64(&completed))
}
