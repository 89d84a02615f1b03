package commands

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/BielosX/wombat/poke-search/src/search"
	"github.com/spf13/cobra"
)

func (a *app) promptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Search interactively, one name per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrompt(cmd, search.NewSession(a.client, a.sugar))
		},
	}
}

// runPrompt starts a search per input line without waiting for the previous
// one. Searches are started in input order, so the last line always wins.
func (a *app) runPrompt(cmd *cobra.Command, session *search.Session) error {
	out := cmd.OutOrStdout()
	session.OnChange(func(state search.State) {
		renderState(out, state)
	})
	renderState(out, session.State())

	var waitGroup sync.WaitGroup
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			session.Reset()
			break
		}
		pending := session.Start(cmd.Context(), line)
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			pending.Wait()
		}()
	}
	waitGroup.Wait()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
