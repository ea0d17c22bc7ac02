package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yanun0323/logs"

	"main/internal/config"
	"main/internal/errors"
	"main/pkg/conn"
)

var (
	configFile    string
	watchInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "enginecfg",
	Short:         "Validate and inspect engine configuration files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the full load/validate/assemble pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := config.LoadFile(configFile)
		if err != nil {
			return reportFailure(err)
		}
		reportWarnings(resolved.Warnings)
		fmt.Printf("configuration OK: mode=%s session=%d instruments=%d\n",
			resolved.General.Mode, resolved.General.SessionID, resolved.Instruments.Count())
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Validate and print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := config.LoadFile(configFile)
		if err != nil {
			return reportFailure(err)
		}
		reportWarnings(resolved.Warnings)
		printResolved(resolved)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalidate the configuration whenever the file changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := config.LoadFile(configFile)
		if err != nil {
			return reportFailure(err)
		}
		reportWarnings(resolved.Warnings)
		logs.Infof("watching %s, %d instruments configured", configFile, resolved.Instruments.Count())

		config.Watch(cmd.Context(), configFile, watchInterval, func(r *config.Resolved) {
			reportWarnings(r.Warnings)
			logs.Infof("configuration OK: mode=%s session=%d instruments=%d",
				r.General.Mode, r.General.SessionID, r.Instruments.Count())
		})
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Validate and check the configured database is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := config.LoadFile(configFile)
		if err != nil {
			return reportFailure(err)
		}

		client, err := conn.NewFromDSN(resolved.Database.URL)
		if err != nil {
			return errors.Wrap(err, "open database")
		}
		defer client.Close()

		if err := client.Ping(cmd.Context()); err != nil {
			return errors.Wrap(err, "ping database")
		}
		fmt.Printf("database reachable: %s\n", resolved.Database.URL)
		return nil
	},
}

// reportFailure prints every collected problem, not just the first, so
// one edit cycle can fix the whole file.
func reportFailure(err error) error {
	var list *errors.List
	if errors.As(err, &list) {
		fmt.Fprintf(os.Stderr, "configuration invalid: %d problem(s)\n", list.Len())
		for _, e := range list.All() {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		return err
	}

	fmt.Fprintf(os.Stderr, "configuration load failed: %v\n", err)
	return err
}

func reportWarnings(warnings []string) {
	for _, w := range warnings {
		logs.Warnf("%s", w)
	}
}

func printResolved(r *config.Resolved) {
	fmt.Printf("general:    mode=%s session=%d log=%s/%s output=%s\n",
		r.General.Mode, r.General.SessionID, r.General.LogLevel, r.General.LogOutput, r.General.OutputPath)
	fmt.Printf("database:   %s\n", r.Database.URL)
	fmt.Printf("data_source: %s:%d account=%s client=%d\n",
		r.DataSource.Host, r.DataSource.Port, r.DataSource.AccountID, r.DataSource.ClientID)
	fmt.Printf("broker:     %s:%d account=%s client=%d\n",
		r.Broker.Host, r.Broker.Port, r.Broker.AccountID, r.Broker.ClientID)
	fmt.Printf("strategy:   %s.%s capital=%s data=%s\n",
		r.Logic.Module, r.Logic.Class, r.Parameters.Capital, r.Parameters.DataType)
	if r.RiskEnabled() {
		fmt.Printf("risk:       %s.%s\n", r.Risk.Module, r.Risk.Class)
	} else {
		fmt.Printf("risk:       disabled\n")
	}

	fmt.Printf("instruments (%d):\n", r.Instruments.Count())
	for i := 0; i < r.Instruments.Count(); i++ {
		spec, _ := r.Instruments.At(i)
		fmt.Printf("  %-6s id=%-4d %s %s tick=%s margin=%s months=%d\n",
			spec.Ticker, spec.InstrumentID, spec.Exchange, spec.Currency,
			spec.TickSize, spec.InitialMargin, len(spec.ExprMonths))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.toml", "path to the engine configuration file")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "poll interval for config changes")
	rootCmd.AddCommand(validateCmd, showCmd, watchCmd, pingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
