package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// GeneralKey is the pseudo-category holding event metadata.
	GeneralKey = "GENERAL"
	// TotalCategory is the synthetic grand-total category.
	TotalCategory = "TOTALT"
)

// Snapshot is one timestamped capture of all category totals for one event.
// Categories carries the venue's declaration order (TOTALT last); it is set
// by the aggregator and not persisted, since the JSON representation is a
// category-keyed object.
type Snapshot struct {
	General    GeneralInfo
	Categories []string
	Totals     map[string]*CategoryTotals
}

// MarshalJSON writes the snapshot as a single object keyed by category name,
// GENERAL first and TOTALT last, matching the archive layout consumed by the
// report renderer.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeEntry := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if err := writeEntry(GeneralKey, s.General); err != nil {
		return nil, err
	}
	for _, category := range s.Categories {
		totals, ok := s.Totals[category]
		if !ok {
			return nil, fmt.Errorf("missing totals for category %q", category)
		}
		if err := writeEntry(category, totals); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a persisted snapshot. Category order is not recoverable
// from a JSON object; readers re-apply the venue's declaration order.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Totals = make(map[string]*CategoryTotals, len(raw))
	for key, value := range raw {
		if key == GeneralKey {
			if err := json.Unmarshal(value, &s.General); err != nil {
				return fmt.Errorf("invalid %s entry: %w", GeneralKey, err)
			}
			continue
		}
		totals := &CategoryTotals{}
		if err := json.Unmarshal(value, totals); err != nil {
			return fmt.Errorf("invalid totals for category %q: %w", key, err)
		}
		s.Totals[key] = totals
	}
	return nil
}
