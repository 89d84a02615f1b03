package csv

import (
	"io"
	"testing"

	"github.com/BielosX/wombat/poke-search/src/parquet"
	"github.com/stretchr/testify/require"
)

func TestPokemonWriter(t *testing.T) {
	w := NewPokemonWriter()
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(parquet.PokemonRow{
		Name:         "charmander",
		Id:           4,
		Types:        "fire",
		Abilities:    "blaze;solar-power",
		FrontDefault: "https://example.com/4.png",
	}))
	require.NoError(t, w.Finish())

	data, err := io.ReadAll(w.BufferReader())
	require.NoError(t, err)
	require.Equal(t,
		"name,id,types,abilities,front_default\n"+
			"charmander,4,fire,blaze;solar-power,https://example.com/4.png\n",
		string(data))
	require.Equal(t, len(data), w.Size())
}
