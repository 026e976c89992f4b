package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var opts appOptions

	cmd := &cobra.Command{
		Use:   "search <name|id>",
		Short: "Show the detail of one Pokémon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(&opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return a.ctrl.Search(cmd.Context(), strings.Join(args, " "))
		},
	}

	opts.bind(cmd)
	return cmd
}
