package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"main/internal/errors"
	"main/internal/instrument"
)

const isoDateLayout = "2006-01-02"

// Validate walks the raw tree against the declared schema, coercing
// every scalar and collecting every violation before failing. Unknown
// keys become warnings so forward-compatible fields do not break the
// load.
func Validate(tree RawTree) (*ValidatedTree, error) {
	var errs errors.List
	vt := &ValidatedTree{}

	for _, key := range sortedKeys(tree) {
		if _, ok := topLevelSections[key]; !ok {
			vt.Warnings = append(vt.Warnings, "unknown key: "+key)
		}
	}

	if vals, ok := walkSection(tree, "general", generalFields, &errs, vt); ok {
		vt.General = GeneralSettings{
			Mode:       Mode(str(vals, "mode")),
			SessionID:  i64(vals, "session_id"),
			LogLevel:   LogLevel(str(vals, "log_level")),
			LogOutput:  LogOutput(str(vals, "log_output")),
			OutputPath: str(vals, "output_path"),
		}
	}

	if vals, ok := walkSection(tree, "database", databaseFields, &errs, vt); ok {
		vt.Database = DatabaseSettings{
			URL: str(vals, "url"),
			Key: str(vals, "key"),
		}
	}

	if vals, ok := walkSection(tree, "data_source", connectionFields, &errs, vt); ok {
		vt.DataSource = connection(vals)
	}

	if vals, ok := walkSection(tree, "broker", connectionFields, &errs, vt); ok {
		vt.Broker = connection(vals)
	}

	validateStrategy(tree, vt, &errs)

	if raw, present := tree["risk"]; present {
		if data, ok := asTable(raw); ok {
			vals := walkFields("risk", data, riskFields, nil, &errs, vt)
			vt.Risk = RiskSettings{
				Module: str(vals, "module"),
				Class:  str(vals, "class"),
			}
		} else {
			errs.Append(errors.Field("risk", "expected a table"))
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return vt, nil
}

func connection(vals map[string]any) ConnectionSettings {
	return ConnectionSettings{
		Host:      str(vals, "host"),
		Port:      i64(vals, "port"),
		AccountID: str(vals, "account_id"),
		ClientID:  i64(vals, "client_id"),
	}
}

func validateStrategy(tree RawTree, vt *ValidatedTree, errs *errors.List) {
	raw, present := tree["strategy"]
	if !present {
		errs.Append(errors.Field("strategy", "missing required section"))
		return
	}
	data, ok := asTable(raw)
	if !ok {
		errs.Append(errors.Field("strategy", "expected a table"))
		return
	}

	known := map[string]struct{}{"logic": {}, "parameters": {}, "symbols": {}}
	for _, key := range sortedKeys(data) {
		if _, ok := known[key]; !ok {
			vt.Warnings = append(vt.Warnings, "unknown key: strategy."+key)
		}
	}

	if vals, ok := walkSubSection(data, "strategy", "logic", logicFields, errs, vt); ok {
		vt.Strategy.Logic = StrategyLogic{
			Module: str(vals, "module"),
			Class:  str(vals, "class"),
		}
	}

	if vals, ok := walkSubSection(data, "strategy", "parameters", parameterFields, errs, vt); ok {
		params := Parameters{
			Capital:               dec(vals, "capital"),
			DataType:              DataType(str(vals, "data_type")),
			TickInterval:          i64(vals, "tick_interval"),
			Schema:                str(vals, "schema"),
			TrainStart:            str(vals, "train_start"),
			TrainEnd:              str(vals, "train_end"),
			TestStart:             str(vals, "test_start"),
			TestEnd:               str(vals, "test_end"),
			MissingValuesStrategy: str(vals, "missing_values_strategy"),
			RiskFreeRate:          dec(vals, "risk_free_rate"),
		}
		if params.MissingValuesStrategy == "" {
			params.MissingValuesStrategy = "fill"
		}
		if params.DataType == DataTypeTick && params.TickInterval <= 0 {
			errs.Append(errors.Field("strategy.parameters.tick_interval", "required when data_type is TICK"))
		}
		vt.Strategy.Parameters = params
	}

	validateSymbols(data, vt, errs)
}

func validateSymbols(strategy map[string]any, vt *ValidatedTree, errs *errors.List) {
	raw, present := strategy["symbols"]
	if !present {
		errs.Append(errors.Field("strategy.symbols", "missing required section"))
		return
	}
	data, ok := asTable(raw)
	if !ok {
		errs.Append(errors.Field("strategy.symbols", "expected a table"))
		return
	}
	if len(data) == 0 {
		errs.Append(errors.Field("strategy.symbols", "no instruments configured"))
		return
	}

	for _, ticker := range sortedKeys(data) {
		path := "strategy.symbols." + ticker
		sub, ok := asTable(data[ticker])
		if !ok {
			errs.Append(errors.Field(path, "expected a table"))
			continue
		}
		spec, specErrs := validateSymbol(path, ticker, sub, vt)
		if specErrs.Len() > 0 {
			errs.Append(specErrs.Err())
			continue
		}
		vt.Strategy.Symbols = append(vt.Strategy.Symbols, spec)
	}
}

func validateSymbol(path, ticker string, data map[string]any, vt *ValidatedTree) (instrument.Spec, *errors.List) {
	var errs errors.List
	extra := map[string]struct{}{"trading_sessions": {}}
	vals := walkFields(path, data, symbolFields, extra, &errs, vt)

	months := make([]instrument.MonthCode, 0)
	for _, code := range strs(vals, "expr_months") {
		if !instrument.ValidMonthCode(code) {
			errs.Append(errors.Field(path+".expr_months", fmt.Sprintf("invalid month code %q", code)))
			continue
		}
		months = append(months, instrument.MonthCode(code))
	}

	sessions := validateSessions(path, data, &errs, vt)

	spec := instrument.Spec{
		Ticker:       ticker,
		InstrumentID: i64(vals, "instrument_id"),
		BrokerTicker: str(vals, "broker_ticker"),
		DataTicker:   str(vals, "data_ticker"),
		MidasTicker:  str(vals, "midas_ticker"),
		SecurityType: instrument.SecurityType(str(vals, "security_type")),
		Currency:     str(vals, "currency"),
		Exchange:     str(vals, "exchange"),

		Fees:               dec(vals, "fees"),
		InitialMargin:      dec(vals, "initial_margin"),
		QuantityMultiplier: dec(vals, "quantity_multiplier"),
		PriceMultiplier:    dec(vals, "price_multiplier"),

		ProductCode:   str(vals, "product_code"),
		ProductName:   str(vals, "product_name"),
		Industry:      str(vals, "industry"),
		ContractSize:  dec(vals, "contract_size"),
		ContractUnits: str(vals, "contract_units"),

		TickSize:            dec(vals, "tick_size"),
		MinPriceFluctuation: dec(vals, "min_price_fluctuation"),
		Continuous:          boolean(vals, "continuous"),

		LastTradeDateOrContractMonth: str(vals, "last_trade_date_or_contract_month"),

		SlippageFactor:  dec(vals, "slippage_factor"),
		TradingSessions: sessions,
		ExprMonths:      months,

		TermDayRule:    str(vals, "term_day_rule"),
		MarketCalendar: str(vals, "market_calendar"),
	}
	return spec, &errs
}

func validateSessions(path string, data map[string]any, errs *errors.List, vt *ValidatedTree) instrument.Sessions {
	sessionsPath := path + ".trading_sessions"
	raw, present := data["trading_sessions"]
	if !present {
		errs.Append(errors.Field(sessionsPath, "missing required field"))
		return instrument.Sessions{}
	}
	windows, ok := asTable(raw)
	if !ok {
		errs.Append(errors.Field(sessionsPath, "expected an inline table"))
		return instrument.Sessions{}
	}

	vals := walkFields(sessionsPath, windows, sessionFields, nil, errs, vt)
	sessions := instrument.Sessions{
		Day: instrument.Window{
			Open:  tod(vals, "day_open"),
			Close: tod(vals, "day_close"),
		},
	}

	_, hasOpen := vals["night_open"]
	_, hasClose := vals["night_close"]
	switch {
	case hasOpen != hasClose:
		errs.Append(errors.Field(sessionsPath, "night_open and night_close must both be set or both be absent"))
	case hasOpen:
		sessions.Night = &instrument.Window{
			Open:  tod(vals, "night_open"),
			Close: tod(vals, "night_close"),
		}
	}
	return sessions
}

// walkSection resolves a required top-level table and walks its fields.
func walkSection(tree RawTree, name string, specs []fieldSpec, errs *errors.List, vt *ValidatedTree) (map[string]any, bool) {
	raw, present := tree[name]
	if !present {
		errs.Append(errors.Field(name, "missing required section"))
		return nil, false
	}
	data, ok := asTable(raw)
	if !ok {
		errs.Append(errors.Field(name, "expected a table"))
		return nil, false
	}
	return walkFields(name, data, specs, nil, errs, vt), true
}

func walkSubSection(parent map[string]any, parentPath, name string, specs []fieldSpec, errs *errors.List, vt *ValidatedTree) (map[string]any, bool) {
	path := parentPath + "." + name
	raw, present := parent[name]
	if !present {
		errs.Append(errors.Field(path, "missing required section"))
		return nil, false
	}
	data, ok := asTable(raw)
	if !ok {
		errs.Append(errors.Field(path, "expected a table"))
		return nil, false
	}
	return walkFields(path, data, specs, nil, errs, vt), true
}

// walkFields coerces and checks every declared field of one table,
// returning the coerced values that passed. Keys outside the schema (and
// outside extra) are reported as warnings.
func walkFields(path string, data map[string]any, specs []fieldSpec, extra map[string]struct{}, errs *errors.List, vt *ValidatedTree) map[string]any {
	known := fieldNames(specs)
	for _, key := range sortedKeys(data) {
		if _, ok := known[key]; ok {
			continue
		}
		if _, ok := extra[key]; ok {
			continue
		}
		vt.Warnings = append(vt.Warnings, "unknown key: "+path+"."+key)
	}

	vals := make(map[string]any, len(specs))
	for _, spec := range specs {
		fieldPath := path + "." + spec.name
		raw, present := data[spec.name]
		if !present {
			if spec.required {
				errs.Append(errors.Field(fieldPath, "missing required field"))
			}
			continue
		}
		value, err := coerce(spec, raw)
		if err != nil {
			errs.Append(errors.Field(fieldPath, err.Error()))
			continue
		}
		vals[spec.name] = value
	}
	return vals
}

// coerce converts one raw TOML value per the field kind and checks the
// declared constraints.
func coerce(spec fieldSpec, raw any) (any, error) {
	switch spec.kind {
	case kindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		if spec.nonEmpty && strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("must not be empty")
		}
		if len(spec.enum) > 0 && !contains(spec.enum, s) {
			return nil, fmt.Errorf("must be one of %s, got %q", strings.Join(spec.enum, "|"), s)
		}
		if spec.yyyymm {
			if err := checkContractMonth(s); err != nil {
				return nil, err
			}
		}
		if spec.currency {
			if err := checkCurrency(s); err != nil {
				return nil, err
			}
		}
		return s, nil

	case kindInt:
		n, err := coerceInt(raw)
		if err != nil {
			return nil, err
		}
		if err := checkIntRange(spec.rng, n); err != nil {
			return nil, err
		}
		return n, nil

	case kindDecimal:
		d, err := coerceDecimal(raw)
		if err != nil {
			return nil, err
		}
		if err := checkDecimalRange(spec.rng, d); err != nil {
			return nil, err
		}
		return d, nil

	case kindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean, got %T", raw)
		}
		return b, nil

	case kindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected ISO date string, got %T", raw)
		}
		if s == "" {
			return s, nil
		}
		if _, err := time.Parse(isoDateLayout, s); err != nil {
			return nil, fmt.Errorf("invalid ISO date %q", s)
		}
		return s, nil

	case kindTime:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected HH:MM string, got %T", raw)
		}
		t, err := instrument.ParseTimeOfDay(s)
		if err != nil {
			return nil, err
		}
		return t, nil

	case kindStringList:
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("expected a list, got %T", raw)
		}
		if spec.nonEmpty && len(items) == 0 {
			return nil, fmt.Errorf("must not be empty")
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string elements, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported field kind %d", spec.kind)
}

// coerceInt accepts TOML integers and numeric strings; ports and client
// ids are stored as text in the source file.
func coerceInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case string:
		n, err := cast.ToInt64E(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

func coerceDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("expected decimal, got %q", v)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("expected decimal, got %T", raw)
	}
}

func checkIntRange(r rangeRule, n int64) error {
	switch r {
	case rangePositive:
		if n <= 0 {
			return fmt.Errorf("must be positive, got %d", n)
		}
	case rangeNonNegative:
		if n < 0 {
			return fmt.Errorf("must be non-negative, got %d", n)
		}
	case rangeUnit:
		if n < 0 || n > 1 {
			return fmt.Errorf("must be within [0, 1], got %d", n)
		}
	}
	return nil
}

func checkDecimalRange(r rangeRule, d decimal.Decimal) error {
	switch r {
	case rangePositive:
		if !d.IsPositive() {
			return fmt.Errorf("must be positive, got %s", d)
		}
	case rangeNonNegative:
		if d.IsNegative() {
			return fmt.Errorf("must be non-negative, got %s", d)
		}
	case rangeUnit:
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("must be within [0, 1], got %s", d)
		}
	}
	return nil
}

// checkContractMonth validates a YYYYMM contract month string.
func checkContractMonth(s string) error {
	if len(s) != 6 {
		return fmt.Errorf("expected YYYYMM, got %q", s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return fmt.Errorf("expected YYYYMM, got %q", s)
		}
	}
	month := (int(s[4]-'0') * 10) + int(s[5]-'0')
	if month < 1 || month > 12 {
		return fmt.Errorf("contract month out of range: %q", s)
	}
	return nil
}

// checkCurrency validates the shape of an ISO 4217 currency code.
func checkCurrency(s string) error {
	if len(s) != 3 {
		return fmt.Errorf("expected ISO currency code, got %q", s)
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("expected ISO currency code, got %q", s)
		}
	}
	return nil
}

func asTable(raw any) (map[string]any, bool) {
	data, ok := raw.(map[string]any)
	return data, ok
}

func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func str(vals map[string]any, name string) string {
	v, _ := vals[name].(string)
	return v
}

func i64(vals map[string]any, name string) int64 {
	v, _ := vals[name].(int64)
	return v
}

func dec(vals map[string]any, name string) decimal.Decimal {
	v, _ := vals[name].(decimal.Decimal)
	return v
}

func boolean(vals map[string]any, name string) bool {
	v, _ := vals[name].(bool)
	return v
}

func tod(vals map[string]any, name string) instrument.TimeOfDay {
	v, _ := vals[name].(instrument.TimeOfDay)
	return v
}

func strs(vals map[string]any, name string) []string {
	v, _ := vals[name].([]string)
	return v
}
