package commands

import (
	"time"

	"github.com/BielosX/wombat/poke-search/src/config"
	"github.com/BielosX/wombat/poke-search/src/pokeapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg    config.Config
	sugar  *zap.SugaredLogger
	client *pokeapi.Client
}

func newRootCmd(cfg config.Config, sugar *zap.SugaredLogger) *cobra.Command {
	a := &app{cfg: cfg, sugar: sugar}
	var baseUrl string
	var timeout time.Duration
	root := &cobra.Command{
		Use:           "poke-search",
		Short:         "Search Pokemon on PokeAPI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.BaseUrl = baseUrl
			a.cfg.Timeout = timeout
			client, err := pokeapi.NewClient(sugar,
				pokeapi.WithBaseUrl(a.cfg.BaseUrl),
				pokeapi.WithTimeout(a.cfg.Timeout))
			if err != nil {
				return err
			}
			a.client = client
			return nil
		},
	}
	root.PersistentFlags().StringVar(&baseUrl, "base-url", cfg.BaseUrl, "PokeAPI base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", cfg.Timeout, "request timeout")

	root.AddCommand(a.searchCmd(), a.promptCmd(), a.serveCmd(), a.archiveCmd())
	return root
}

func Execute(cfg config.Config, sugar *zap.SugaredLogger) error {
	return newRootCmd(cfg, sugar).Execute()
}
