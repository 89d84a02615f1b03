// Package archive fetches a batch of Pokemon and stores them in S3 as Parquet
// and CSV files.
package archive

import (
	"context"
	"fmt"
	"io"

	"github.com/BielosX/wombat/poke-search/src/csv"
	"github.com/BielosX/wombat/poke-search/src/parquet"
	"github.com/BielosX/wombat/poke-search/src/pokeapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	parquetContentType = "application/vnd.apache.parquet"
	csvContentType     = "text/csv"
)

type Source interface {
	ListPokemons(ctx context.Context, limit, offset int32) ([]string, error)
	FetchMany(ctx context.Context, names []string) ([]*pokeapi.Pokemon, error)
}

type Uploader interface {
	PutFile(ctx context.Context, reader io.Reader, bucket, key, contentType string) error
}

// Request selects what to archive: Names when given, otherwise one page of the
// pokemon list described by Limit and Offset.
type Request struct {
	Names  []string `json:"names"`
	Limit  int32    `json:"limit"`
	Offset int32    `json:"offset"`
}

type Result struct {
	ParquetFileName string `json:"parquetFileName,omitempty"`
	CsvFileName     string `json:"csvFileName,omitempty"`
	Count           int    `json:"count"`
}

type Archiver struct {
	source   Source
	uploader Uploader
	bucket   string
	prefix   string
	sugar    *zap.SugaredLogger
	newId    func() string
}

func NewArchiver(source Source, uploader Uploader, bucket, prefix string, sugar *zap.SugaredLogger) *Archiver {
	return &Archiver{
		source:   source,
		uploader: uploader,
		bucket:   bucket,
		prefix:   prefix,
		sugar:    sugar,
		newId:    uuid.NewString,
	}
}

func (a *Archiver) names(ctx context.Context, request Request) ([]string, error) {
	if len(request.Names) > 0 {
		return request.Names, nil
	}
	if request.Limit <= 0 {
		return nil, nil
	}
	a.sugar.Infof("Listing Pokemons, limit: %d offset: %d", request.Limit, request.Offset)
	return a.source.ListPokemons(ctx, request.Limit, request.Offset)
}

func (a *Archiver) Run(ctx context.Context, request Request) (*Result, error) {
	names, err := a.names(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("list pokemons: %w", err)
	}
	if len(names) == 0 {
		a.sugar.Infof("Nothing to archive")
		return &Result{}, nil
	}
	pokemons, err := a.source.FetchMany(ctx, names)
	if err != nil {
		return nil, err
	}
	a.sugar.Infof("Got %d Pokemon results", len(pokemons))

	pokemonWriter, err := parquet.NewPokemonWriter(a.sugar)
	if err != nil {
		a.sugar.Errorf("Failed to create Pokemon Parquet Writer: %s", err)
		return nil, err
	}
	csvWriter := csv.NewPokemonWriter()
	if err := csvWriter.WriteHeader(); err != nil {
		return nil, err
	}
	for _, pokemon := range pokemons {
		row := parquet.ToPokemonRow(pokemon)
		if err := pokemonWriter.Write(row); err != nil {
			a.sugar.Errorf("Error writing Pokemon %s to Parquet: %s", pokemon.Name, err)
			return nil, err
		}
		if err := csvWriter.Write(row); err != nil {
			a.sugar.Errorf("Error writing Pokemon %s to CSV: %s", pokemon.Name, err)
			return nil, err
		}
	}
	if err := pokemonWriter.Finish(); err != nil {
		return nil, err
	}
	if err := csvWriter.Finish(); err != nil {
		return nil, err
	}

	id := a.newId()
	parquetFileName := fmt.Sprintf("%s/%s.parquet", a.prefix, id)
	csvFileName := fmt.Sprintf("%s/%s.csv", a.prefix, id)
	a.sugar.Infof("Sending parquet file of size %d to S3", pokemonWriter.Size())
	if err := a.uploader.PutFile(ctx, pokemonWriter.BufferReader(), a.bucket, parquetFileName, parquetContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", parquetFileName, err)
	}
	a.sugar.Infof("Sending CSV file of size %d to S3", csvWriter.Size())
	if err := a.uploader.PutFile(ctx, csvWriter.BufferReader(), a.bucket, csvFileName, csvContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", csvFileName, err)
	}
	return &Result{
		ParquetFileName: parquetFileName,
		CsvFileName:     csvFileName,
		Count:           len(pokemons),
	}, nil
}
