package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Direction is the sign of a price trend.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// TrendSummary is the derived short-term price signal of a model.
// Change is the absolute percent change, 0 when stable.
// On disk change is a one-decimal string ("6.0"), which the price page prints verbatim.
type TrendSummary struct {
	Direction Direction `json:"direction"`
	Change    float64   `json:"change"`
}

type trendJSON struct {
	Direction Direction       `json:"direction"`
	Change    json.RawMessage `json:"change"`
}

// StableTrend is the trend reported when there is no significant change or too little data.
func StableTrend() TrendSummary {
	return TrendSummary{Direction: DirectionStable, Change: 0}
}

// IsStable reports whether the trend carries no significant change.
func (t TrendSummary) IsStable() bool {
	return t.Direction == DirectionStable
}

// MarshalJSON writes change with exactly one decimal as a string.
func (t TrendSummary) MarshalJSON() ([]byte, error) {
	change, err := json.Marshal(strconv.FormatFloat(t.Change, 'f', 1, 64))
	if err != nil {
		return nil, err
	}
	return json.Marshal(trendJSON{Direction: t.Direction, Change: change})
}

// UnmarshalJSON accepts change as a string or a number.
func (t *TrendSummary) UnmarshalJSON(data []byte) error {
	var raw trendJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Direction = raw.Direction
	t.Change = 0

	change := bytes.TrimSpace(raw.Change)
	if len(change) == 0 || string(change) == "null" {
		return nil
	}
	if change[0] != '"' {
		return json.Unmarshal(change, &t.Change)
	}
	var s string
	if err := json.Unmarshal(change, &s); err != nil {
		return err
	}
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("decode trend change %q: %w", s, err)
	}
	t.Change = v
	return nil
}
