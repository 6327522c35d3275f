package main

import (
	"os"

	"github.com/cottand/dupe/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "dupegen [subcommand]",
	Short:        "dupegen writes duplicable handle types for Go interfaces",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.GenCmd)
	rootCmd.AddCommand(cmd.ScanCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}
