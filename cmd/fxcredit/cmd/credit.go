package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxcredit/display"
	"github.com/rustyeddy/fxcredit/resolve"
)

var creditCmd = &cobra.Command{
	Use:   "credit <customer-id>",
	Short: "Show a customer's credit entry",
	Long: `Show the credit limit, current exposure and vendor timestamp recorded
for a customer.

Example:
  fxcredit credit Cust_1`,
	Args: cobra.ExactArgs(1),
	RunE: runCredit,
}

var exposureCmd = &cobra.Command{
	Use:   "exposure <customer-id>",
	Short: "Validate a customer's exposure against its limit",
	Long: `Measure a customer's current exposure against its credit limit.

Headroom is limit minus exposure. Exposure at or under the limit reports
within_limit; anything over reports breach.

Example:
  fxcredit exposure Cust_2`,
	Args: cobra.ExactArgs(1),
	RunE: runExposure,
}

func init() {
	rootCmd.AddCommand(creditCmd)
	rootCmd.AddCommand(exposureCmd)
}

func runCredit(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	e, err := resolve.CreditLimit(reg, args[0])
	if err != nil {
		return err
	}

	fmt.Print(display.Table(display.CreditRows(e)))
	return nil
}

func runExposure(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	res, err := resolve.Exposure(reg, args[0])
	if err != nil {
		return err
	}

	fmt.Print(display.Table(display.ExposureRows(res)))
	return nil
}
