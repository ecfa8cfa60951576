package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoord_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		raw      string
		expected Coord
	}{
		{`12.5`, 12.5},
		{`"12.5"`, 12.5},
		{`-3`, -3},
		{`null`, 0},
		{`""`, 0},
		{`"n/a"`, 0},
	}
	for _, tc := range tests {
		var c Coord
		err := json.Unmarshal([]byte(tc.raw), &c)
		assert.NoError(t, err, tc.raw)
		assert.Equal(t, tc.expected, c, tc.raw)
	}
}

func TestSeats_Counts(t *testing.T) {
	var arrangement SeatingArrangement
	raw := `{
		"section_name": "SPV Felt 3",
		"section_amount": 5,
		"seats": [
			{"status": "sold", "x": 10},
			{"status": "available", "x": "14.2"},
			{"status": "available", "x": 0},
			{"status": "locked", "x": 16},
			{"status": "sold", "x": "bogus"}
		]
	}`
	assert.NoError(t, json.Unmarshal([]byte(raw), &arrangement))

	assert.Equal(t, 2, arrangement.Seats.CountStatus(StatusSold))
	assert.Equal(t, 2, arrangement.Seats.CountStatus(StatusAvailable))
	assert.Equal(t, 1, arrangement.Seats.CountStatus(StatusLocked))
	assert.Equal(t, 1, arrangement.Seats.CountPhantom(), "sold seats with bad geometry are not phantom")
}
