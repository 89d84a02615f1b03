package parquet

import (
	"strings"

	"github.com/BielosX/wombat/poke-search/src/pokeapi"
)

const ListSeparator = ";"

type PokemonRow struct {
	Name         string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Id           int64  `parquet:"name=id, type=INT64"`
	Types        string `parquet:"name=types, type=BYTE_ARRAY, convertedtype=UTF8"`
	Abilities    string `parquet:"name=abilities, type=BYTE_ARRAY, convertedtype=UTF8"`
	FrontDefault string `parquet:"name=front_default, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func ToPokemonRow(pokemon *pokeapi.Pokemon) PokemonRow {
	row := PokemonRow{
		Name:      pokemon.Name,
		Id:        int64(pokemon.Id),
		Types:     strings.Join(pokemon.Types, ListSeparator),
		Abilities: strings.Join(pokemon.Abilities, ListSeparator),
	}
	if front, ok := pokemon.FrontDefault(); ok {
		row.FrontDefault = front.String()
	}
	return row
}
