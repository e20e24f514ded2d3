package main

import (
	"github.com/spf13/cobra"

	"github.com/recera/vue2doric/cmd/vue2doric/internal/config"
	"github.com/recera/vue2doric/cmd/vue2doric/internal/ui"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Default().Save(path, force); err != nil {
				return err
			}
			ui.New(cmd.OutOrStdout()).Success("wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
