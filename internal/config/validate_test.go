package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/errors"
)

func loadTestTree(t *testing.T) RawTree {
	t.Helper()
	tree, err := Load(filepath.Join("testdata", "config.toml"))
	require.NoError(t, err)
	return tree
}

func table(t *testing.T, tree RawTree, keys ...string) map[string]any {
	t.Helper()
	node := map[string]any(tree)
	for _, key := range keys {
		next, ok := node[key].(map[string]any)
		require.True(t, ok, "missing table %s", key)
		node = next
	}
	return node
}

func errorPaths(t *testing.T, err error) []string {
	t.Helper()
	var list *errors.List
	require.True(t, errors.As(err, &list))
	out := make([]string, 0, list.Len())
	for _, e := range list.All() {
		out = append(out, errors.Path(e))
	}
	return out
}

func TestValidateFullTree(t *testing.T) {
	vt, err := Validate(loadTestTree(t))
	require.NoError(t, err)

	assert.Equal(t, ModeLive, vt.General.Mode)
	assert.Equal(t, int64(1001), vt.General.SessionID)
	assert.Equal(t, LogLevelInfo, vt.General.LogLevel)
	assert.Equal(t, LogOutputStdout, vt.General.LogOutput)

	assert.Equal(t, "http://127.0.0.1:8000", vt.Database.URL)

	// text ports and client ids are coerced to integers
	assert.Equal(t, int64(8765), vt.DataSource.Port)
	assert.Equal(t, int64(7497), vt.Broker.Port)
	assert.Equal(t, int64(1), vt.Broker.ClientID)
	assert.Equal(t, "DU1234567", vt.Broker.AccountID)

	assert.Equal(t, "strategies.momentum", vt.Strategy.Logic.Module)
	assert.Equal(t, DataTypeBar, vt.Strategy.Parameters.DataType)
	assert.Equal(t, "1000000", vt.Strategy.Parameters.Capital.String())
	assert.Equal(t, "0.04", vt.Strategy.Parameters.RiskFreeRate.String())
	assert.Equal(t, "drop", vt.Strategy.Parameters.MissingValuesStrategy)

	require.Len(t, vt.Strategy.Symbols, 2)
	he := vt.Strategy.Symbols[0]
	assert.Equal(t, "HE", he.Ticker)
	assert.Equal(t, int64(43), he.InstrumentID)
	assert.Equal(t, "0.00025", he.TickSize.String())
	assert.Equal(t, "4564.17", he.InitialMargin.String())
	assert.Equal(t, "09:30", he.TradingSessions.Day.Open.String())
	assert.Equal(t, "14:05", he.TradingSessions.Day.Close.String())
	assert.Nil(t, he.TradingSessions.Night)
	assert.Len(t, he.ExprMonths, 8)

	zc := vt.Strategy.Symbols[1]
	assert.Equal(t, "ZC", zc.Ticker)
	require.NotNil(t, zc.TradingSessions.Night)
	assert.Equal(t, "19:00", zc.TradingSessions.Night.Open.String())

	assert.Empty(t, vt.Warnings)
}

func TestValidateMissingRequiredField(t *testing.T) {
	tree := loadTestTree(t)
	delete(table(t, tree, "general"), "mode")

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "general.mode")
}

func TestValidateMissingSection(t *testing.T) {
	tree := loadTestTree(t)
	delete(tree, "database")

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "database")
}

func TestValidateCollectsAllViolations(t *testing.T) {
	tree := loadTestTree(t)
	general := table(t, tree, "general")
	delete(general, "mode")
	general["log_level"] = "LOUD"
	table(t, tree, "broker")["port"] = "not-a-port"

	_, err := Validate(tree)
	require.Error(t, err)

	paths := errorPaths(t, err)
	assert.Contains(t, paths, "general.mode")
	assert.Contains(t, paths, "general.log_level")
	assert.Contains(t, paths, "broker.port")
	assert.Len(t, paths, 3)
}

func TestValidateEmptyExprMonths(t *testing.T) {
	tree := loadTestTree(t)
	table(t, tree, "strategy", "symbols", "HE")["expr_months"] = []any{}

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "strategy.symbols.HE.expr_months")
}

func TestValidateInvalidMonthCode(t *testing.T) {
	tree := loadTestTree(t)
	table(t, tree, "strategy", "symbols", "HE")["expr_months"] = []any{"G", "B"}

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "strategy.symbols.HE.expr_months")
}

func TestValidateUnknownKeysAreWarnings(t *testing.T) {
	tree := loadTestTree(t)
	tree["telemetry"] = map[string]any{"enabled": true}
	table(t, tree, "general")["color"] = "green"

	vt, err := Validate(tree)
	require.NoError(t, err)
	assert.Contains(t, vt.Warnings, "unknown key: telemetry")
	assert.Contains(t, vt.Warnings, "unknown key: general.color")
}

func TestValidateTickIntervalRequiredForTick(t *testing.T) {
	tree := loadTestTree(t)
	table(t, tree, "strategy", "parameters")["data_type"] = "TICK"

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "strategy.parameters.tick_interval")

	table(t, tree, "strategy", "parameters")["tick_interval"] = int64(5)
	vt, err := Validate(tree)
	require.NoError(t, err)
	assert.Equal(t, int64(5), vt.Strategy.Parameters.TickInterval)
}

func TestValidateBadDate(t *testing.T) {
	tree := loadTestTree(t)
	table(t, tree, "strategy", "parameters")["train_start"] = "18-05-2020"

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "strategy.parameters.train_start")
}

func TestValidateNightSessionPair(t *testing.T) {
	tree := loadTestTree(t)
	sessions := table(t, tree, "strategy", "symbols", "ZC", "trading_sessions")
	delete(sessions, "night_close")

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "strategy.symbols.ZC.trading_sessions")
}

func TestValidateBadCurrency(t *testing.T) {
	tree := loadTestTree(t)
	table(t, tree, "strategy", "symbols", "HE")["currency"] = "usd"

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "strategy.symbols.HE.currency")
}

func TestValidateBadContractMonth(t *testing.T) {
	tree := loadTestTree(t)
	table(t, tree, "strategy", "symbols", "HE")["last_trade_date_or_contract_month"] = "202413"

	_, err := Validate(tree)
	require.Error(t, err)
	assert.Contains(t, errorPaths(t, err), "strategy.symbols.HE.last_trade_date_or_contract_month")
}
