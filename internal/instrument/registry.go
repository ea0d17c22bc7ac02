package instrument

import (
	"fmt"

	"main/internal/errors"
)

// Registry stores validated instrument specs keyed by ticker. Iteration
// order is insertion order so error output stays reproducible; lookups
// are by ticker, never by position.
type Registry struct {
	specs      []Spec
	byTicker   map[string]int
	tickerByID map[int64]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byTicker:   make(map[string]int),
		tickerByID: make(map[int64]string),
	}
}

// Add registers a new instrument spec.
func (r *Registry) Add(spec Spec) error {
	if spec.Ticker == "" {
		return fmt.Errorf("instrument ticker is empty")
	}
	if _, ok := r.byTicker[spec.Ticker]; ok {
		return fmt.Errorf("instrument already exists: %s", spec.Ticker)
	}
	if spec.InstrumentID <= 0 {
		return fmt.Errorf("instrument id must be positive for %s: %d", spec.Ticker, spec.InstrumentID)
	}
	if other, ok := r.tickerByID[spec.InstrumentID]; ok {
		return fmt.Errorf("duplicate instrument id %d: %s and %s", spec.InstrumentID, other, spec.Ticker)
	}
	if err := spec.TradingSessions.Validate(); err != nil {
		return fmt.Errorf("trading sessions for %s: %v", spec.Ticker, err)
	}
	if len(spec.ExprMonths) == 0 {
		return fmt.Errorf("expiry months for %s are empty", spec.Ticker)
	}
	for _, code := range spec.ExprMonths {
		if !ValidMonthCode(string(code)) {
			return fmt.Errorf("invalid expiry month code for %s: %q", spec.Ticker, code)
		}
	}
	r.byTicker[spec.Ticker] = len(r.specs)
	r.tickerByID[spec.InstrumentID] = spec.Ticker
	r.specs = append(r.specs, spec)
	return nil
}

// ByTicker returns the spec for a ticker.
func (r *Registry) ByTicker(ticker string) (Spec, bool) {
	idx, ok := r.byTicker[ticker]
	if !ok {
		return Spec{}, false
	}
	return r.specs[idx], true
}

// At returns the spec by zero-based insertion index.
func (r *Registry) At(index int) (Spec, bool) {
	if index < 0 || index >= len(r.specs) {
		return Spec{}, false
	}
	return r.specs[index], true
}

// Count returns the number of registered instruments.
func (r *Registry) Count() int {
	return len(r.specs)
}

// Tickers returns all tickers in insertion order.
func (r *Registry) Tickers() []string {
	out := make([]string, 0, len(r.specs))
	for _, spec := range r.specs {
		out = append(out, spec.Ticker)
	}
	return out
}

// Build constructs a registry from specs in order, collecting every
// violation instead of stopping at the first.
func Build(specs []Spec) (*Registry, error) {
	reg := NewRegistry()
	var list errors.List
	for _, spec := range specs {
		if err := reg.Add(spec); err != nil {
			list.Append(err)
		}
	}
	if err := list.Err(); err != nil {
		return nil, err
	}
	return reg, nil
}
