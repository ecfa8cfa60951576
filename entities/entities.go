package entities

// Event is a single upcoming match as discovered on the ticketing homepage.
type Event struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Link  string `json:"link"`
}

// MatchEvent is an Event normalized for processing: the raw place-time blob
// is split into date, kickoff time and venue, and the fixture is flagged as
// European when the title names a UEFA competition.
type MatchEvent struct {
	Title  string `json:"title"`
	Time   string `json:"time"`
	Date   string `json:"date"`
	Venue  string `json:"venue"`
	Link   string `json:"link"`
	Europe bool   `json:"europe"`
}

// ItemTypesFile mirrors the vendor's item_types.json payload.
type ItemTypesFile struct {
	ItemTypes []ItemType `json:"item_types"`
}

type ItemType struct {
	Title    string       `json:"title"`
	Sections []SectionRef `json:"sections"`
}

type SectionRef struct {
	ID                  int  `json:"id"`
	HasAvailableTickets bool `json:"has_available_tickets"`
}

// SectionWork is one unit of per-section fetch work.
type SectionWork struct {
	SectionID int
	Visible   bool
}

// SectionResponse mirrors the vendor's sections/<id>.json payload.
type SectionResponse struct {
	SeatingArrangements SeatingArrangement `json:"seating_arrangements"`
}

type SeatingArrangement struct {
	SectionName   string `json:"section_name"`
	SectionAmount int    `json:"section_amount"`
	Seats         Seats  `json:"seats"`
}

// CountedSection is an immutable per-section tally after phantom correction.
type CountedSection struct {
	SectionName    string `json:"section_name"`
	SectionID      int    `json:"section_id"`
	SectionAmount  int    `json:"section_amount"`
	SoldSeats      int    `json:"sold_seats"`
	AvailableSeats int    `json:"available_seats"`
	LockedSeats    int    `json:"locked_seats"`
	PhantomSeats   int    `json:"phantom_seats"`
	Visible        bool   `json:"visible"`
}

// CategoryTotals accumulates the four tracked counters for one category.
type CategoryTotals struct {
	SectionAmount  int `json:"section_amount"`
	SoldSeats      int `json:"sold_seats"`
	AvailableSeats int `json:"available_seats"`
	LockedSeats    int `json:"locked_seats"`
}

// AddSection folds one counted section into the totals.
func (t *CategoryTotals) AddSection(s CountedSection) {
	t.SectionAmount += s.SectionAmount
	t.SoldSeats += s.SoldSeats
	t.AvailableSeats += s.AvailableSeats
	t.LockedSeats += s.LockedSeats
}

// Add folds another totals value into the totals.
func (t *CategoryTotals) Add(o CategoryTotals) {
	t.SectionAmount += o.SectionAmount
	t.SoldSeats += o.SoldSeats
	t.AvailableSeats += o.AvailableSeats
	t.LockedSeats += o.LockedSeats
}

// GeneralInfo is the metadata pseudo-category of a snapshot.
type GeneralInfo struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}
