package events

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/utils"
	"github.com/tribunen/billettvakt/venue"
)

const (
	eventListSelector  = "div.tc-events-list--details"
	eventTitleSelector = "a.tc-events-list--title"
	placeTimeSelector  = "div.tc-events-list--place-time"
	orderLinkSelector  = "a#placeOrderLink"

	placeTimeDateLayout = "02.01.2006"
	reportDateLayout    = "02.01.06"
)

// Scraper discovers upcoming events on a ticketing-platform homepage.
type Scraper struct {
	http *resty.Client
}

func NewScraper() *Scraper {
	return &Scraper{http: resty.New()}
}

// UpcomingEvents scrapes the venue homepage for upcoming events. Titles on
// the venue's ignore list (season passes, gift cards) are skipped. With
// nextOrAll == "next" only the first qualifying event is returned.
func (s *Scraper) UpcomingEvents(nextOrAll string, cfg *venue.Config) ([]entities.Event, error) {
	fmt.Printf("Connecting to %s\n", cfg.Homepage)
	doc, err := s.fetchDocument(cfg.Homepage)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch homepage: %w", err)
	}

	var events []entities.Event
	doc.Find(eventListSelector).EachWithBreak(func(index int, container *goquery.Selection) bool {
		anchor := container.Find(eventTitleSelector).First()
		if anchor.Length() == 0 {
			fmt.Printf("Couldn't find the title for the event at index %d.\n", index+1)
			return true
		}
		eventTitle := strings.TrimSpace(anchor.Text())

		if cfg.IgnoresTitle(eventTitle) {
			fmt.Printf("Ignoring event '%s' due to ignore list.\n", eventTitle)
			return true
		}

		placeTime := strings.TrimSpace(container.Find(placeTimeSelector).First().Text())

		href, _ := anchor.Attr("href")
		eventLink, err := s.purchaseLink(href, eventTitle)
		if err != nil {
			fmt.Printf("Error fetching nested URL for '%s': %v\n", eventTitle, err)
			return true
		}

		events = append(events, entities.Event{Title: eventTitle, Time: placeTime, Link: eventLink})
		return !strings.EqualFold(nextOrAll, "next")
	})

	fmt.Printf("Done! Added a total of %d events.\n", len(events))
	return events, nil
}

// purchaseLink resolves the event page's nested link to the seating
// arrangement purchase page.
func (s *Scraper) purchaseLink(eventURL, eventTitle string) (string, error) {
	doc, err := s.fetchDocument(eventURL)
	if err != nil {
		return "", err
	}
	href, ok := doc.Find(orderLinkSelector).First().Attr("href")
	if !ok {
		return "", fmt.Errorf("no purchase link on event page for %q", eventTitle)
	}
	return href, nil
}

func (s *Scraper) fetchDocument(url string) (*goquery.Document, error) {
	resp, err := s.http.R().Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %s for %s", resp.Status(), url)
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
}

// AddCustomGames merges manually pinned games into the discovered list,
// skipping links already present.
func AddCustomGames(customGames []entities.Event, eventList []entities.Event) []entities.Event {
	if len(customGames) == 0 {
		return eventList
	}
	fmt.Println("Adding custom events")
	known := make(map[string]bool, len(eventList))
	for _, event := range eventList {
		known[event.Link] = true
	}
	for _, game := range customGames {
		if known[game.Link] {
			continue
		}
		fmt.Println("Adding " + game.Link)
		eventList = append(eventList, game)
	}
	return eventList
}

// Normalize sorts events chronologically and splits each raw place-time
// blob into date, kickoff time and venue, flagging European fixtures.
func Normalize(eventList []entities.Event) ([]entities.MatchEvent, error) {
	sorted := make([]entities.Event, len(eventList))
	copy(sorted, eventList)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, erri := parseEventDate(sorted[i].Time)
		dj, errj := parseEventDate(sorted[j].Time)
		if erri != nil || errj != nil {
			return erri == nil
		}
		return di.Before(dj)
	})

	matches := make([]entities.MatchEvent, 0, len(sorted))
	for _, event := range sorted {
		placeTime := strings.ReplaceAll(event.Time, "\n@\n", " @ ")
		date, err := parseEventDate(placeTime)
		if err != nil {
			return nil, fmt.Errorf("invalid event time %q for %q: %w", event.Time, event.Title, err)
		}
		fields := strings.Fields(placeTime)
		kickoff := ""
		if len(fields) > 1 {
			kickoff = fields[1]
		}
		matches = append(matches, entities.MatchEvent{
			Title:  event.Title,
			Time:   kickoff,
			Date:   date.Format(reportDateLayout),
			Venue:  utils.VenueFromPlaceTime(placeTime),
			Link:   event.Link,
			Europe: utils.IsEuropeanFixture(event.Title),
		})
	}
	return matches, nil
}

func parseEventDate(placeTime string) (time.Time, error) {
	fields := strings.Fields(placeTime)
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("empty place-time string")
	}
	return time.Parse(placeTimeDateLayout, fields[0])
}
