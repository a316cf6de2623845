package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SeatLayoutInput is the boundary representation of a seat layout template.
// Several shapes exist in the wild: the canonical array-of-rows grid, a
// legacy row-keyed map ("row0", "row1", ...), seats named by "category" or
// the legacy "type" field, and legacy accessibility/price field names. The
// seat layout service normalizes all of them into SeatLayoutTemplate.
type SeatLayoutInput struct {
	LayoutID string          `json:"layoutId"`
	Name     string          `json:"name" binding:"required"`
	Rows     int             `json:"rows" binding:"required,gt=0"`
	Columns  int             `json:"columns" binding:"required,gt=0"`
	Grid     [][]string      `json:"grid"`
	Layout   json.RawMessage `json:"layout"` // legacy: [][]string or {"rowN": []string}
	Seats    []SeatInput     `json:"seats" binding:"required,min=1"`
}

// SeatInput is the boundary representation of one seat descriptor.
type SeatInput struct {
	SeatNumber string  `json:"seatNumber" binding:"required"`
	Row        *int    `json:"row,omitempty"`
	Column     *int    `json:"column,omitempty"`
	Category   string  `json:"category,omitempty"`
	Type       string  `json:"type,omitempty"` // legacy alias for category
	BasePrice  float64 `json:"basePrice,omitempty"`
	Price      float64 `json:"price,omitempty"` // legacy alias for basePrice
	Currency   string  `json:"currency,omitempty"`

	IsAccessible  bool `json:"isAccessible,omitempty"`
	IsHandicapped bool `json:"isHandicapped,omitempty"` // legacy alias
}

// GridRows decodes the input grid, accepting both the canonical `grid`
// array form and the legacy `layout` field in either array or row-keyed
// map form. Row-keyed maps are ordered by their numeric suffix.
func (in *SeatLayoutInput) GridRows() ([][]string, error) {
	if in.Grid != nil {
		return in.Grid, nil
	}
	if len(in.Layout) == 0 {
		return nil, fmt.Errorf("seat layout has no grid")
	}

	var rows [][]string
	if err := json.Unmarshal(in.Layout, &rows); err == nil {
		return rows, nil
	}

	var keyed map[string][]string
	if err := json.Unmarshal(in.Layout, &keyed); err != nil {
		return nil, fmt.Errorf("unrecognized seat layout grid format: %w", err)
	}

	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return rowKeyIndex(keys[i]) < rowKeyIndex(keys[j])
	})

	rows = make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, keyed[k])
	}
	return rows, nil
}

// rowKeyIndex extracts the numeric suffix of a "rowN" key. Malformed keys
// sort last so they surface as shape errors during validation.
func rowKeyIndex(key string) int {
	var n int
	if _, err := fmt.Sscanf(key, "row%d", &n); err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
