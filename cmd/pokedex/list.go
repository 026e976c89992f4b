package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pokedex-cli/pokedex/pkg/render"
)

func newListCmd() *cobra.Command {
	var (
		opts   appOptions
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of the catalog as a grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(&opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if limit <= 0 {
				limit = a.cfg.Catalog.InitialLimit
			}
			if offset < 0 {
				return fmt.Errorf("offset must not be negative, got %d", offset)
			}

			// The first page goes through the view controller like browse does.
			if offset == 0 && limit == a.cfg.Catalog.InitialLimit {
				return a.ctrl.LoadInitial(cmd.Context())
			}

			a.term.ShowLoading()
			list, err := a.client.FetchMany(cmd.Context(), limit, offset)
			a.term.HideLoading()
			if err != nil {
				a.term.Notify(render.NoticeLoadFailed, err)
				return err
			}
			a.term.ShowGrid(render.Cards(list, a.favs.Contains))
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (defaults to catalog.initial_limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "index of the first entry")
	return cmd
}
