package config

// The recognized configuration surface is declared as data and consumed
// by a generic walker in validate.go. Adding a field means adding a row
// here, not another branch in the walker.

type kind int

const (
	kindString kind = iota
	kindInt
	kindDecimal
	kindBool
	kindDate
	kindTime
	kindStringList
)

// rangeRule constrains numeric fields.
type rangeRule int

const (
	rangeAny rangeRule = iota
	rangePositive
	rangeNonNegative
	rangeUnit // [0, 1]
)

type fieldSpec struct {
	name     string
	kind     kind
	required bool
	enum     []string
	rng      rangeRule
	nonEmpty bool // strings and lists must not be blank/empty when present
	yyyymm   bool // string must be a YYYYMM contract month
	currency bool // string must look like an ISO 4217 code
}

var generalFields = []fieldSpec{
	{name: "mode", kind: kindString, required: true, enum: []string{"LIVE", "BACKTEST"}},
	{name: "session_id", kind: kindInt, required: true, rng: rangePositive},
	{name: "log_level", kind: kindString, required: true, enum: []string{"DEBUG", "INFO", "WARN", "ERROR"}},
	{name: "log_output", kind: kindString, required: true, enum: []string{"file", "stdout"}},
	{name: "output_path", kind: kindString, required: true, nonEmpty: true},
}

var databaseFields = []fieldSpec{
	{name: "url", kind: kindString, required: true, nonEmpty: true},
	{name: "key", kind: kindString, required: true, nonEmpty: true},
}

// data_source and broker share one shape. port and client_id arrive as
// TOML strings and are coerced to integers by the walker.
var connectionFields = []fieldSpec{
	{name: "host", kind: kindString, required: true, nonEmpty: true},
	{name: "port", kind: kindInt, required: true, rng: rangePositive},
	{name: "account_id", kind: kindString, required: true, nonEmpty: true},
	{name: "client_id", kind: kindInt, required: true, rng: rangeNonNegative},
}

var logicFields = []fieldSpec{
	{name: "module", kind: kindString, required: true, nonEmpty: true},
	{name: "class", kind: kindString, required: true, nonEmpty: true},
}

var parameterFields = []fieldSpec{
	{name: "capital", kind: kindDecimal, required: true, rng: rangePositive},
	{name: "data_type", kind: kindString, required: true, enum: []string{"BAR", "TICK"}},
	{name: "tick_interval", kind: kindInt, rng: rangePositive},
	{name: "schema", kind: kindString},
	{name: "train_start", kind: kindDate},
	{name: "train_end", kind: kindDate},
	{name: "test_start", kind: kindDate},
	{name: "test_end", kind: kindDate},
	{name: "missing_values_strategy", kind: kindString, enum: []string{"drop", "fill", "error"}},
	{name: "risk_free_rate", kind: kindDecimal, rng: rangeUnit},
}

var symbolFields = []fieldSpec{
	{name: "instrument_id", kind: kindInt, required: true, rng: rangePositive},
	{name: "broker_ticker", kind: kindString, required: true, nonEmpty: true},
	{name: "data_ticker", kind: kindString, required: true, nonEmpty: true},
	{name: "midas_ticker", kind: kindString, required: true, nonEmpty: true},
	{name: "security_type", kind: kindString, required: true, enum: []string{"FUTURE"}},
	{name: "currency", kind: kindString, required: true, currency: true},
	{name: "exchange", kind: kindString, required: true, nonEmpty: true},
	{name: "fees", kind: kindDecimal, required: true, rng: rangeNonNegative},
	{name: "initial_margin", kind: kindDecimal, required: true, rng: rangeNonNegative},
	{name: "quantity_multiplier", kind: kindDecimal, required: true, rng: rangePositive},
	{name: "price_multiplier", kind: kindDecimal, required: true, rng: rangePositive},
	{name: "product_code", kind: kindString, required: true, nonEmpty: true},
	{name: "product_name", kind: kindString, required: true, nonEmpty: true},
	{name: "industry", kind: kindString, required: true, nonEmpty: true},
	{name: "contract_size", kind: kindDecimal, required: true, rng: rangePositive},
	{name: "contract_units", kind: kindString, required: true, nonEmpty: true},
	{name: "tick_size", kind: kindDecimal, required: true, rng: rangePositive},
	{name: "min_price_fluctuation", kind: kindDecimal, required: true, rng: rangeNonNegative},
	{name: "continuous", kind: kindBool, required: true},
	{name: "last_trade_date_or_contract_month", kind: kindString, required: true, yyyymm: true},
	{name: "slippage_factor", kind: kindDecimal, required: true, rng: rangeNonNegative},
	{name: "expr_months", kind: kindStringList, required: true, nonEmpty: true},
	{name: "term_day_rule", kind: kindString, required: true, nonEmpty: true},
	{name: "market_calendar", kind: kindString, required: true, nonEmpty: true},
}

// trading_sessions is an inline table and handled by a dedicated walker
// step; its time fields still go through the generic coercion.
var sessionFields = []fieldSpec{
	{name: "day_open", kind: kindTime, required: true},
	{name: "day_close", kind: kindTime, required: true},
	{name: "night_open", kind: kindTime},
	{name: "night_close", kind: kindTime},
}

var riskFields = []fieldSpec{
	{name: "module", kind: kindString},
	{name: "class", kind: kindString},
}

// topLevelSections are the recognized section names; anything else at
// the top of the file is reported as a warning, not an error.
var topLevelSections = map[string]struct{}{
	"general":     {},
	"database":    {},
	"data_source": {},
	"broker":      {},
	"strategy":    {},
	"risk":        {},
}

func fieldNames(specs []fieldSpec) map[string]struct{} {
	out := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		out[spec.name] = struct{}{}
	}
	return out
}
