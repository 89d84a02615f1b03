package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/BielosX/wombat/poke-search/src/search"
	"github.com/spf13/cobra"
)

// ErrSearchFailed is returned after the failure message was already printed.
var ErrSearchFailed = errors.New("search failed")

func (a *app) searchCmd() *cobra.Command {
	var spritePath string
	cmd := &cobra.Command{
		Use:   "search NAME",
		Short: "Look up one Pokemon by name or id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			session := search.NewSession(a.client, a.sugar)
			state := session.Search(cmd.Context(), term)
			renderState(cmd.OutOrStdout(), state)
			if state.Status == search.Failed {
				return ErrSearchFailed
			}
			if spritePath == "" {
				return nil
			}
			front, ok := state.Pokemon.FrontDefault()
			if !ok {
				return fmt.Errorf("%s has no front sprite", state.Pokemon.Name)
			}
			data, err := a.client.DownloadSprite(cmd.Context(), front)
			if err != nil {
				return fmt.Errorf("download sprite: %w", err)
			}
			if err := os.WriteFile(spritePath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved sprite to %s\n", spritePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&spritePath, "sprite", "", "save the front sprite image to this file")
	return cmd
}
