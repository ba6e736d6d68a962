package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxcredit/check"
	"github.com/rustyeddy/fxcredit/config"
	"github.com/rustyeddy/fxcredit/display"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate credit documents",
	Long: `Manage the YAML documents the viewer reads.

Subcommands:
  init     - Write the four example documents
  validate - Load the documents and report what they contain

Examples:
  fxcredit config init --dir ./data
  fxcredit config validate --dir ./data`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the four example documents",
	Long: `Create prime_brokers.yaml, customers.yaml, sessions.yaml and
credit_data.yaml with the built-in example data.

Example:
  fxcredit config init --dir ./data`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the documents and report what they contain",
	Long: `Check that all four documents parse and load. Malformed documents
fail with the file and field that broke; structurally sound ones print
their record counts and how the validator tallied them.

Example:
  fxcredit config validate --dir ./data`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteExamples(dataDir); err != nil {
		return fmt.Errorf("write examples: %w", err)
	}

	fmt.Printf("✓ Created example documents in %s\n", dataDir)
	fmt.Println("\nInspect them and run:")
	fmt.Printf("  fxcredit check --dir %s\n", dataDir)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	rep := check.Evaluate(check.DefaultPolicy(), reg)
	errors, warnings, infos := rep.Counts()

	fmt.Printf("✓ Documents valid: %s\n", dataDir)
	fmt.Print(display.Table(display.CountRows(reg.Counts())))
	fmt.Printf("  Findings: %d error, %d warning, %d info (run 'fxcredit check' for detail)\n",
		errors, warnings, infos)
	return nil
}
