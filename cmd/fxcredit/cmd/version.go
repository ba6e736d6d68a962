package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxcredit CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxcredit version %s\n", version)
		fmt.Println("FX prime brokerage credit configuration viewer")
		fmt.Println("https://github.com/rustyeddy/fxcredit")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
