package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxcredit/config"
	"github.com/rustyeddy/fxcredit/display"
	"github.com/rustyeddy/fxcredit/resolve"
)

var whatifCmd = &cobra.Command{
	Use:   "whatif <customer-id>",
	Short: "Simulate a credit change without touching the files",
	Long: `Apply a limit or exposure change to one customer in memory, compare
the exposure check before and after, and print the credit document as it
would look. Nothing is written to disk.

Examples:
  fxcredit whatif Cust_2 --limit 2500000
  fxcredit whatif Cust_1 --exposure 990000`,
	Args: cobra.ExactArgs(1),
	RunE: runWhatif,
}

var (
	whatifLimit    float64
	whatifExposure float64
)

func init() {
	rootCmd.AddCommand(whatifCmd)

	whatifCmd.Flags().Float64Var(&whatifLimit, "limit", 0, "simulated credit limit")
	whatifCmd.Flags().Float64Var(&whatifExposure, "exposure", 0, "simulated exposure")
}

func runWhatif(cmd *cobra.Command, args []string) error {
	setLimit := cmd.Flags().Changed("limit")
	setExposure := cmd.Flags().Changed("exposure")
	if !setLimit && !setExposure {
		return fmt.Errorf("nothing to simulate: set --limit and/or --exposure")
	}
	if setLimit && whatifLimit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if setExposure && whatifExposure < 0 {
		return fmt.Errorf("exposure must be non-negative")
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	customerID := args[0]
	before, err := resolve.Exposure(reg, customerID)
	if err != nil {
		return err
	}

	sim := reg.Clone()
	entry := sim.Credit[customerID]
	if setLimit {
		entry.Limit = whatifLimit
	}
	if setExposure {
		entry.Exposure = whatifExposure
	}
	sim.Credit[customerID] = entry

	after, err := resolve.Exposure(sim, customerID)
	if err != nil {
		return err
	}

	fmt.Printf("=== What-if: %s ===\n\n", customerID)
	fmt.Print(display.Table(display.DiffRows(before, after)))
	fmt.Println()

	doc, err := config.MarshalCredit(sim)
	if err != nil {
		return err
	}
	fmt.Printf("--- %s (simulated, not written) ---\n", config.CreditFile)
	fmt.Print(string(doc))
	return nil
}
