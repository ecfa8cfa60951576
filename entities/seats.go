package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const (
	StatusSold      = "sold"
	StatusAvailable = "available"
	StatusLocked    = "locked"
)

// Coord is a planar seat coordinate. The vendor emits it as a JSON number on
// some endpoints and a quoted string on others; anything unparseable decodes
// to zero, which downstream treats as degenerate geometry.
type Coord float64

func (c *Coord) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Coord(v)
	return nil
}

func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}

// Seat is a single seat record inside a seating arrangement.
type Seat struct {
	Status string `json:"status"`
	X      Coord  `json:"x"`
}

type Seats []Seat

// CountStatus returns the number of seats with the given status.
func (s Seats) CountStatus(status string) int {
	total := 0
	for _, seat := range s {
		if seat.Status == status {
			total++
		}
	}
	return total
}

// CountPhantom returns the number of available seats with no valid rendered
// position (x <= 0). Those are never purchasable and must be removed from
// both the available count and the section total.
func (s Seats) CountPhantom() int {
	total := 0
	for _, seat := range s {
		if seat.Status == StatusAvailable && seat.X <= 0 {
			total++
		}
	}
	return total
}
