package cmd

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/afcarl/vivarium/sim"
	"github.com/afcarl/vivarium/sim/config"
)

var (
	logLevel    string   // Log verbosity level
	configFiles []string // Configuration files (YAML or TOML) loaded into the base layer
	setPairs    []string // key=value overrides applied to the override layer
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "vivarium",
	Short: "Discrete-event simulation framework for population-level modeling",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// loadConfiguration fills tree from --config files (base layer) and --set
// pairs (override layer, source "cli").
func loadConfiguration(tree *config.Tree) {
	for _, path := range configFiles {
		if err := tree.LoadFile(path, sim.LayerBase, ""); err != nil {
			logrus.Fatalf("loading %s: %v", path, err)
		}
	}
	for _, pair := range setPairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			logrus.Fatalf("invalid --set %q, want key=value", pair)
		}
		if err := tree.SetWithMetadata(key, value, sim.LayerOverride, "cli"); err != nil {
			logrus.Fatalf("applying --set %s: %v", pair, err)
		}
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", nil, "Configuration file (YAML or TOML); repeatable")
	rootCmd.PersistentFlags().StringArrayVar(&setPairs, "set", nil, "Override a configuration value as key=value; repeatable")
}
