package config

import (
	"fmt"
	"time"

	"main/internal/errors"
	"main/internal/instrument"
)

// Resolved is the final configuration surface handed to the engine. It
// is built once per load and must be treated as read-only; changing
// configuration requires a fresh Load/Validate/Assemble cycle.
type Resolved struct {
	General    GeneralSettings
	Database   DatabaseSettings
	DataSource ConnectionSettings
	Broker     ConnectionSettings
	Logic      StrategyLogic
	Parameters Parameters
	Risk       RiskSettings

	// Instruments is the validated contract registry keyed by ticker.
	Instruments *instrument.Registry

	// Warnings carried over from validation for the caller to report.
	Warnings []string
}

// RiskEnabled reports whether a risk module is configured.
func (r *Resolved) RiskEnabled() bool {
	return r.Risk.Module != "" && r.Risk.Class != ""
}

// Assemble enforces the cross-section invariants deferred from
// validation and produces the immutable Resolved value. Like the earlier
// stages it collects every violation before failing.
func Assemble(vt *ValidatedTree) (*Resolved, error) {
	var errs errors.List

	if (vt.Risk.Module == "") != (vt.Risk.Class == "") {
		errs.Append(errors.Field("risk", "module and class must both be set or both be empty"))
	}

	checkDateRange(&errs, "strategy.parameters.train_start", vt.Strategy.Parameters.TrainStart, "strategy.parameters.train_end", vt.Strategy.Parameters.TrainEnd)
	checkDateRange(&errs, "strategy.parameters.test_start", vt.Strategy.Parameters.TestStart, "strategy.parameters.test_end", vt.Strategy.Parameters.TestEnd)

	registry, regErr := instrument.Build(vt.Strategy.Symbols)
	if regErr != nil {
		errs.Append(regErr)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	return &Resolved{
		General:     vt.General,
		Database:    vt.Database,
		DataSource:  vt.DataSource,
		Broker:      vt.Broker,
		Logic:       vt.Strategy.Logic,
		Parameters:  vt.Strategy.Parameters,
		Risk:        vt.Risk,
		Instruments: registry,
		Warnings:    vt.Warnings,
	}, nil
}

// checkDateRange enforces that a start/end pair is either fully absent
// or fully present with start <= end. The strings were already parsed as
// ISO dates during validation.
func checkDateRange(errs *errors.List, startPath, start, endPath, end string) {
	switch {
	case start == "" && end == "":
		return
	case start == "":
		errs.Append(errors.Field(startPath, "required when "+endPath+" is set"))
		return
	case end == "":
		errs.Append(errors.Field(endPath, "required when "+startPath+" is set"))
		return
	}

	from, err := time.Parse(isoDateLayout, start)
	if err != nil {
		return
	}
	to, err := time.Parse(isoDateLayout, end)
	if err != nil {
		return
	}
	if from.After(to) {
		errs.Append(errors.Field(startPath, fmt.Sprintf("%s is after %s", start, end)))
	}
}

// LoadFile runs the whole pipeline: Load, Validate, Assemble. Any stage
// failure aborts the load with the complete error set of that stage.
func LoadFile(path string) (*Resolved, error) {
	tree, err := Load(path)
	if err != nil {
		return nil, err
	}
	vt, err := Validate(tree)
	if err != nil {
		return nil, err
	}
	return Assemble(vt)
}
