package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BielosX/wombat/poke-search/src/archive"
	"github.com/BielosX/wombat/poke-search/src/commands"
	"github.com/BielosX/wombat/poke-search/src/config"
	"github.com/BielosX/wombat/poke-search/src/pokeapi"
	"github.com/BielosX/wombat/poke-search/src/search"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

type archiveRunner interface {
	Run(ctx context.Context, request archive.Request) (*archive.Result, error)
}

var sugar *zap.SugaredLogger
var fetcher search.Fetcher
var archiver archiveRunner

type SearchRequest struct {
	Name string `json:"name"`
}

func handleSearch(ctx context.Context, request SearchRequest) (*pokeapi.Pokemon, error) {
	sugar.Infof("Starting Search Handler, name: %q", request.Name)
	pokemon, err := fetcher.Fetch(ctx, request.Name)
	if err != nil {
		sugar.Errorf("Search for %q failed: %s", request.Name, err)
		return nil, fmt.Errorf("%s: %w", search.UserMessage(err), err)
	}
	return pokemon, nil
}

func scheduleTasks(request archive.ScheduleRequest) ([]archive.Request, error) {
	sugar.Infof("Starting Schedule Tasks Handler, pageSize: %d, startOffset: %d, pageCount: %d",
		request.PageSize,
		request.StartOffset,
		request.PageCount)
	return archive.Schedule(request)
}

func handleArchive(ctx context.Context, request archive.Request) (*archive.Result, error) {
	sugar.Infof("Starting Archive Handler, names: %d, limit: %d, offset: %d",
		len(request.Names),
		request.Limit,
		request.Offset)
	result, err := archiver.Run(ctx, request)
	if err != nil {
		sugar.Errorf("Archive failed: %s", err)
		return nil, err
	}
	return result, nil
}

func syncLogger() {
	_ = sugar.Sync()
}

func main() {
	logger, _ := zap.NewDevelopment(zap.AddStacktrace(zap.FatalLevel))
	sugar = logger.Sugar()
	defer syncLogger()
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load configuration: %s", err)
	}
	if cfg.Handler == "" {
		if err := commands.Execute(cfg, sugar); err != nil {
			if !errors.Is(err, commands.ErrSearchFailed) {
				sugar.Error(err)
			}
			syncLogger()
			os.Exit(1)
		}
		return
	}
	client, err := pokeapi.NewClient(sugar,
		pokeapi.WithBaseUrl(cfg.BaseUrl),
		pokeapi.WithTimeout(cfg.Timeout))
	if err != nil {
		sugar.Fatalf("Failed to create PokeAPI client: %s", err)
	}
	fetcher = client
	switch cfg.Handler {
	case "search":
		lambda.Start(handleSearch)
	case "scheduler":
		lambda.Start(scheduleTasks)
	case "archive":
		archiver, err = archive.NewFromConfig(context.Background(), cfg, client, sugar)
		if err != nil {
			sugar.Fatalf("Failed to create archiver: %s", err)
		}
		lambda.Start(handleArchive)
	default:
		sugar.Fatalf("Unknown Handler %s", cfg.Handler)
	}
}
