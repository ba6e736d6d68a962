package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxcredit/display"
	"github.com/rustyeddy/fxcredit/resolve"
)

var brokerCmd = &cobra.Command{
	Use:   "broker <broker-id>",
	Short: "Show a broker's line utilization",
	Long: `Measure the credit a prime broker has issued to its session customers
against the line its central broker grants it.

Example:
  fxcredit broker PB_A`,
	Args: cobra.ExactArgs(1),
	RunE: runBroker,
}

func init() {
	rootCmd.AddCommand(brokerCmd)
}

func runBroker(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	res, err := resolve.BrokerExposure(reg, args[0])
	if err != nil {
		return err
	}

	fmt.Print(display.Table(display.BrokerRows(res)))
	return nil
}
