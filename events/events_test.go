package events

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/venue"
)

const eventBlock = `
<div class="tc-events-list--details">
  <a class="tc-events-list--title" href="%s">%s</a>
  <div class="tc-events-list--place-time">%s</div>
</div>`

func eventServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		base := "http://" + r.Host
		fmt.Fprintf(w, eventBlock, base+"/events/pass", "Partoutkort Eliteserien 2025", "01.01.2025 00:00\n@\nBrann Stadion")
		fmt.Fprintf(w, eventBlock, base+"/events/molde", "Brann - Molde, Eliteserien", "01.06.2025 18:00\n@\nBrann Stadion")
		fmt.Fprintf(w, eventBlock, base+"/events/paok", "Brann - PAOK, Conference League", "15.05.2025 21:00\n@\nBrann Stadion")
	})
	mux.HandleFunc("/events/molde", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a id="placeOrderLink" href="https://tickets.example/molde/purchase">Buy</a>`)
	})
	mux.HandleFunc("/events/paok", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a id="placeOrderLink" href="https://tickets.example/paok/purchase">Buy</a>`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(homepage string) *venue.Config {
	return &venue.Config{
		Club:       "brann",
		Homepage:   homepage,
		Stadium:    "Brann Stadion",
		IgnoreList: []string{"partoutkort"},
	}
}

func TestUpcomingEvents_Next(t *testing.T) {
	server := eventServer(t)

	eventList, err := NewScraper().UpcomingEvents("next", testConfig(server.URL))
	assert.NoError(t, err)

	// The ignored season pass does not count as the next event.
	assert.Len(t, eventList, 1)
	assert.Equal(t, "Brann - Molde, Eliteserien", eventList[0].Title)
	assert.Equal(t, "https://tickets.example/molde/purchase", eventList[0].Link)
}

func TestUpcomingEvents_All(t *testing.T) {
	server := eventServer(t)

	eventList, err := NewScraper().UpcomingEvents("all", testConfig(server.URL))
	assert.NoError(t, err)

	assert.Len(t, eventList, 2)
	assert.Equal(t, "Brann - Molde, Eliteserien", eventList[0].Title)
	assert.Equal(t, "Brann - PAOK, Conference League", eventList[1].Title)
}

func TestAddCustomGames(t *testing.T) {
	discovered := []entities.Event{
		{Title: "Brann - Molde, Eliteserien", Link: "https://tickets.example/molde/purchase"},
	}
	custom := []entities.Event{
		{Title: "Brann - Molde, Eliteserien", Link: "https://tickets.example/molde/purchase"},
		{Title: "Brann - Viking, NM", Time: "20.06.2025 19:00 @ Brann Stadion", Link: "https://tickets.example/viking/purchase"},
	}

	merged := AddCustomGames(custom, discovered)

	assert.Len(t, merged, 2, "already known links are not duplicated")
	assert.Equal(t, "Brann - Viking, NM", merged[1].Title)
}

func TestNormalize(t *testing.T) {
	eventList := []entities.Event{
		{Title: "Brann - Molde, Eliteserien", Time: "01.06.2025 18:00\n@\nBrann Stadion", Link: "molde"},
		{Title: "Brann - PAOK, Conference League", Time: "15.05.2025 21:00\n@\nBrann Stadion", Link: "paok"},
	}

	matches, err := Normalize(eventList)
	assert.NoError(t, err)
	assert.Len(t, matches, 2)

	// Chronological order regardless of discovery order.
	assert.Equal(t, "Brann - PAOK, Conference League", matches[0].Title)
	assert.Equal(t, "15.05.25", matches[0].Date)
	assert.Equal(t, "21:00", matches[0].Time)
	assert.Equal(t, "Brann Stadion", matches[0].Venue)
	assert.True(t, matches[0].Europe)

	assert.Equal(t, "01.06.25", matches[1].Date)
	assert.False(t, matches[1].Europe)
}

func TestNormalize_InvalidDate(t *testing.T) {
	_, err := Normalize([]entities.Event{
		{Title: "Brann - Molde, Eliteserien", Time: "sometime soon", Link: "molde"},
	})
	assert.Error(t, err)
}
