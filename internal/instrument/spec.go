package instrument

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SecurityType is the contract class of an instrument.
type SecurityType string

const (
	SecurityTypeFuture SecurityType = "FUTURE"
)

// ValidSecurityType reports whether the value is a known security type.
func ValidSecurityType(v string) bool {
	return SecurityType(v) == SecurityTypeFuture
}

// MonthCode is a single-letter futures expiry month code (F-Z cycle).
type MonthCode string

var monthCodes = map[MonthCode]struct{}{
	"F": {}, "G": {}, "H": {}, "J": {}, "K": {}, "M": {},
	"N": {}, "Q": {}, "U": {}, "V": {}, "X": {}, "Z": {},
}

// ValidMonthCode reports whether the code is part of the expiry cycle.
func ValidMonthCode(v string) bool {
	_, ok := monthCodes[MonthCode(v)]
	return ok
}

// TimeOfDay is minutes since midnight on a 24h clock.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time of day: %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day out of range: %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Window is a single intraday trading window. Open must precede Close.
type Window struct {
	Open  TimeOfDay
	Close TimeOfDay
}

func (w Window) overlaps(other Window) bool {
	return w.Open < other.Close && other.Open < w.Close
}

// Sessions holds the daily trading windows for an instrument. The day
// window is mandatory; the night window is optional.
type Sessions struct {
	Day   Window
	Night *Window
}

// Validate checks window ordering and overlap.
func (s Sessions) Validate() error {
	if s.Day.Open >= s.Day.Close {
		return fmt.Errorf("day session open %s must precede close %s", s.Day.Open, s.Day.Close)
	}
	if s.Night != nil {
		if s.Night.Open >= s.Night.Close {
			return fmt.Errorf("night session open %s must precede close %s", s.Night.Open, s.Night.Close)
		}
		if s.Day.overlaps(*s.Night) {
			return fmt.Errorf("day session %s-%s overlaps night session %s-%s",
				s.Day.Open, s.Day.Close, s.Night.Open, s.Night.Close)
		}
	}
	return nil
}

// Spec is the full contract metadata for one ticker. All decimal fields
// keep the exact source representation.
type Spec struct {
	Ticker       string
	InstrumentID int64
	BrokerTicker string
	DataTicker   string
	MidasTicker  string
	SecurityType SecurityType
	Currency     string
	Exchange     string

	Fees               decimal.Decimal
	InitialMargin      decimal.Decimal
	QuantityMultiplier decimal.Decimal
	PriceMultiplier    decimal.Decimal

	ProductCode   string
	ProductName   string
	Industry      string
	ContractSize  decimal.Decimal
	ContractUnits string

	TickSize            decimal.Decimal
	MinPriceFluctuation decimal.Decimal
	Continuous          bool

	// LastTradeDateOrContractMonth is a YYYYMM string.
	LastTradeDateOrContractMonth string

	SlippageFactor  decimal.Decimal
	TradingSessions Sessions
	ExprMonths      []MonthCode

	// TermDayRule and MarketCalendar are opaque identifiers resolved by
	// an external roll-calendar collaborator.
	TermDayRule    string
	MarketCalendar string
}
