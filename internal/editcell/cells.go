package editcell

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NewTextCell creates a cell for free text. Input is trimmed; an empty or
// all-whitespace draft cancels the edit instead of committing a blank value.
func NewTextCell(initial string, save SaveFunc[string]) *Cell[string] {
	return NewCell(initial, func(raw string) (string, bool) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return "", false
		}
		return trimmed, true
	}, save)
}

// NewNumericCell creates a cell for non-negative decimal amounts. Unparseable
// or negative input cancels the edit silently.
func NewNumericCell(initial decimal.Decimal, save SaveFunc[decimal.Decimal]) *Cell[decimal.Decimal] {
	return NewCell(initial, func(raw string) (decimal.Decimal, bool) {
		value, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || value.IsNegative() {
			return decimal.Decimal{}, false
		}
		return value, true
	}, save)
}

// NewDateCell creates a cell for dates entered in the given layout
// (e.g. "2006-01-02"). Input that does not parse cancels the edit.
func NewDateCell(initial time.Time, layout string, save SaveFunc[time.Time]) *Cell[time.Time] {
	return NewCell(initial, func(raw string) (time.Time, bool) {
		t, err := time.Parse(layout, strings.TrimSpace(raw))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}, save)
}

// NewOptionCell creates a cell constrained to a fixed set of options. Input
// outside the set cancels the edit.
func NewOptionCell(initial string, options []string, save SaveFunc[string]) *Cell[string] {
	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[o] = struct{}{}
	}
	return NewCell(initial, func(raw string) (string, bool) {
		trimmed := strings.TrimSpace(raw)
		if _, ok := allowed[trimmed]; !ok {
			return "", false
		}
		return trimmed, true
	}, save)
}
