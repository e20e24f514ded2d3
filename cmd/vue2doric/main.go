package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vue2doric",
		Short: "vue2doric - compile Vue single-file components to Doric",
		Long: `vue2doric compiles Vue single-file components (.vue) into Doric TSX
components: a render function, a passthrough script and a style table per
component.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newTagsCommand())
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
