package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"syllabus-scraper/lib/telemetry"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "syllabus-cli",
	Short: "syllabus-cli drives a university portal's syllabus search interactively and exports the hits as csv.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log element-by-element detail.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
