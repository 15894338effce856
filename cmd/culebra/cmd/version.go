package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the culebra CLI version and the commit it was built from.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("culebra version %s\n", Version)
		fmt.Printf("commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
