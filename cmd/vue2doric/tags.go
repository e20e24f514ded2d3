package main

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recera/vue2doric/cmd/vue2doric/internal/config"
	"github.com/recera/vue2doric/cmd/vue2doric/internal/ui"
	"github.com/recera/vue2doric/pkg/doric"
)

func newTagsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Print the tag mapping table",
		Long: `Print how template tags map onto Doric views, including additions from
the configuration file. Tags not listed render as <` + string(doric.NoMappedTag) + `>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			extra, err := cfg.TagMap()
			if err != nil {
				return err
			}

			var rows [][]string
			for _, m := range doric.Tags() {
				rows = append(rows, []string{m.Tag, string(m.Symbol), attrsFor(m.Tag), "built-in"})
			}
			added := make([]string, 0, len(extra))
			for tag := range extra {
				if _, builtin := doric.LookupTag(tag); !builtin {
					added = append(added, tag)
				}
			}
			sort.Strings(added)
			for _, tag := range added {
				rows = append(rows, []string{tag, string(extra[tag]), attrsFor(tag), "config"})
			}

			ui.New(cmd.OutOrStdout()).Table([]string{"TAG", "DORIC", "ATTRIBUTES", "SOURCE"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to "+config.FileName)
	return cmd
}

func attrsFor(tag string) string {
	var renames []string
	for _, a := range doric.Attributes() {
		if a.Tag == tag {
			renames = append(renames, a.Source+"→"+a.Target)
		}
	}
	return strings.Join(renames, ", ")
}
