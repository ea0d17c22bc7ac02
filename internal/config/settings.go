package config

import (
	"github.com/shopspring/decimal"

	"main/internal/instrument"
)

// Mode selects the execution mode of the engine.
type Mode string

const (
	ModeLive     Mode = "LIVE"
	ModeBacktest Mode = "BACKTEST"
)

// LogLevel is the engine log verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// LogOutput selects where engine logs are written.
type LogOutput string

const (
	LogOutputFile   LogOutput = "file"
	LogOutputStdout LogOutput = "stdout"
)

// DataType selects the market-data granularity a strategy consumes.
type DataType string

const (
	DataTypeBar  DataType = "BAR"
	DataTypeTick DataType = "TICK"
)

// GeneralSettings holds run-wide settings.
type GeneralSettings struct {
	Mode       Mode
	SessionID  int64
	LogLevel   LogLevel
	LogOutput  LogOutput
	OutputPath string
}

// DatabaseSettings holds the database endpoint and its API key.
type DatabaseSettings struct {
	URL string
	Key string
}

// ConnectionSettings is the shared shape for data_source and broker
// endpoints. Port and ClientID are stored as text in the source file and
// coerced during validation.
type ConnectionSettings struct {
	Host      string
	Port      int64
	AccountID string
	ClientID  int64
}

// StrategyLogic references the strategy implementation. Module and Class
// are opaque to this layer; a plugin loader resolves them.
type StrategyLogic struct {
	Module string
	Class  string
}

// Parameters is the strategy parameter bag. Date fields keep their ISO
// source strings; empty means unset.
type Parameters struct {
	Capital               decimal.Decimal
	DataType              DataType
	TickInterval          int64
	Schema                string
	TrainStart            string
	TrainEnd              string
	TestStart             string
	TestEnd               string
	MissingValuesStrategy string
	RiskFreeRate          decimal.Decimal
}

// StrategySettings groups the logic reference, the parameter bag and the
// per-ticker instrument specs in deterministic (lexicographic) order.
type StrategySettings struct {
	Logic      StrategyLogic
	Parameters Parameters
	Symbols    []instrument.Spec
}

// RiskSettings references an optional risk module. Both fields empty
// disables risk evaluation; exactly one set is rejected at assembly.
type RiskSettings struct {
	Module string
	Class  string
}

// ValidatedTree is the typed output of Validate. Every scalar has been
// coerced and checked in isolation; cross-field and cross-record
// invariants are enforced by Assemble.
type ValidatedTree struct {
	General    GeneralSettings
	Database   DatabaseSettings
	DataSource ConnectionSettings
	Broker     ConnectionSettings
	Strategy   StrategySettings
	Risk       RiskSettings

	// Warnings lists unrecognized keys; they never fail the load.
	Warnings []string
}
