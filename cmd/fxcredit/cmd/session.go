package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxcredit/display"
	"github.com/rustyeddy/fxcredit/resolve"
)

var sessionCmd = &cobra.Command{
	Use:   "session <session-id>",
	Short: "Resolve the prime broker behind a session",
	Long: `Look up a trading session and show the customer it belongs to and the
prime broker it routes orders to.

Example:
  fxcredit session FIXS_C1_PBA_001`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	d, err := resolve.Session(reg, args[0])
	if err != nil {
		return err
	}

	fmt.Print(display.Table(display.SessionRows(d)))
	return nil
}
