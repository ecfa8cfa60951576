package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tribunen/billettvakt/constant"
	"github.com/tribunen/billettvakt/entities"
)

// TicketAPI is the narrow surface this tool needs from the ticketing vendor.
type TicketAPI interface {
	GetItemTypes(eventURL string) (*entities.ItemTypesFile, error)
	GetSection(eventURL string, sectionID int) (*entities.SectionResponse, error)
}

type TicketClient struct {
	client *http.Client
}

func New() *TicketClient {
	return &TicketClient{client: &http.Client{}}
}

// GetItemTypes fetches the event's item-type index, which lists every
// section id and its current visibility.
func (c *TicketClient) GetItemTypes(eventURL string) (*entities.ItemTypesFile, error) {
	body, err := c.doGet(eventURL + constant.ITEM_TYPES_SUFFIX)
	if err != nil {
		return nil, err
	}
	var itemTypes entities.ItemTypesFile
	if err := json.Unmarshal(body, &itemTypes); err != nil {
		return nil, err
	}
	return &itemTypes, nil
}

// GetSection fetches one section's seating arrangement.
func (c *TicketClient) GetSection(eventURL string, sectionID int) (*entities.SectionResponse, error) {
	body, err := c.doGet(fmt.Sprintf(constant.SECTION_URL, eventURL, sectionID))
	if err != nil {
		return nil, err
	}
	var section entities.SectionResponse
	if err := json.Unmarshal(body, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// doGet is an internal helper for GET requests
func (c *TicketClient) doGet(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s for %s", resp.Status, url)
	}
	return io.ReadAll(resp.Body)
}
