package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pokedex-cli/pokedex/pkg/render"
)

func newFavoritesCmd() *cobra.Command {
	var opts appOptions

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Show favorite Pokémon",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(&opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return a.ctrl.ShowFavorites(cmd.Context())
		},
	}

	opts.bind(cmd)
	cmd.AddCommand(newFavoritesToggleCmd(), newFavoritesClearCmd())
	return cmd
}

func newFavoritesToggleCmd() *cobra.Command {
	var opts appOptions

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a Pokémon from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}

			a, err := openApp(&opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			// Removal never needs the catalog, so ids that no longer resolve
			// can still be dropped.
			if a.favs.Contains(id) {
				if _, err := a.favs.Toggle(id); err != nil {
					a.term.Notify(render.NoticeSaveFailed, err)
					return err
				}
				a.term.Println(a.loc.Text(render.KeyFavoriteDropped, render.PadID(id)))
				return nil
			}

			// Only existing records become favorites.
			p, err := a.client.FetchOne(cmd.Context(), strconv.Itoa(id))
			if err != nil {
				a.term.Notify(render.NoticeSearchFailed, err)
				return err
			}
			if _, err := a.favs.Toggle(p.ID); err != nil {
				a.term.Notify(render.NoticeSaveFailed, err)
				return err
			}
			a.term.Println(a.loc.Text(render.KeyFavoriteAdded, render.PadID(p.ID), p.Name))
			return nil
		},
	}

	opts.bind(cmd)
	return cmd
}

func newFavoritesClearCmd() *cobra.Command {
	var opts appOptions

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(&opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			n := a.favs.Len()
			if err := a.favs.Clear(); err != nil {
				a.term.Notify(render.NoticeSaveFailed, err)
				return err
			}
			a.term.Println(a.loc.Text(render.KeyFavoritesClear, n))
			return nil
		},
	}

	opts.bind(cmd)
	return cmd
}
