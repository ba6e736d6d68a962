package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxcredit/config"
	"github.com/rustyeddy/fxcredit/logger"
	"github.com/rustyeddy/fxcredit/venue"
)

var rootCmd = &cobra.Command{
	Use:   "fxcredit",
	Short: "Inspect FX prime brokerage credit configuration",
	Long: `Fxcredit loads the YAML documents describing an FX prime brokerage
credit setup and answers the questions a desk asks of them.

It provides tools for:
  - Validating cross-references between brokers, customers and sessions
  - Resolving which prime broker a session routes to
  - Checking customer exposure against credit limits
  - Measuring broker line utilization against the central counterparty
  - Simulating credit changes without touching the files
  - Recording validation runs in a SQLite journal

Complete documentation is available at https://github.com/rustyeddy/fxcredit`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Get().Configure(logLevel, logFormat, logFile, logMaxAge)
	},
}

var (
	dataDir   string
	logLevel  string
	logFormat string
	logFile   string
	logMaxAge int
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", defaultDir(), "directory holding the credit YAML documents")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log to this file instead of stderr")
	rootCmd.PersistentFlags().IntVar(&logMaxAge, "log-max-age", 0, "days to keep rotated log files (0 disables rotation)")
}

func defaultDir() string {
	if dir := os.Getenv("FXCREDIT_DIR"); dir != "" {
		return dir
	}
	return "./data"
}

// loadRegistry reads the four documents from the configured directory.
func loadRegistry() (*venue.Registry, error) {
	reg, err := config.LoadDir(dataDir)
	if err != nil {
		return nil, err
	}

	c := reg.Counts()
	logger.Get().WithComponent("config").WithFields(logger.Fields{
		"dir":            dataDir,
		"brokers":        c.Brokers,
		"customers":      c.Customers,
		"sessions":       c.Sessions,
		"credit_entries": c.CreditEntries,
		"credit_lines":   c.CreditLines,
	}).Debug("loaded credit configuration")

	return reg, nil
}
