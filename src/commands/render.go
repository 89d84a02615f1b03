package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/BielosX/wombat/poke-search/src/pokeapi"
	"github.com/BielosX/wombat/poke-search/src/search"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const idleMessage = "Please Search for a Pokemon"

func renderState(w io.Writer, state search.State) {
	switch state.Status {
	case search.Idle:
		fmt.Fprintln(w, idleMessage)
	case search.Loading:
		fmt.Fprintf(w, "Fetching %s...\n", state.Term)
	case search.Failed:
		fmt.Fprintln(w, state.Message())
	case search.Success:
		renderPokemon(w, state.Pokemon)
	}
}

func renderPokemon(w io.Writer, pokemon *pokeapi.Pokemon) {
	caser := cases.Title(language.English)
	titled := func(values []string) string {
		if len(values) == 0 {
			return "-"
		}
		result := make([]string, 0, len(values))
		for _, value := range values {
			result = append(result, caser.String(value))
		}
		return strings.Join(result, ", ")
	}
	fmt.Fprintf(w, "%s #%d\n", caser.String(pokemon.Name), pokemon.Id)
	fmt.Fprintf(w, "Types: %s\n", titled(pokemon.Types))
	fmt.Fprintf(w, "Abilities: %s\n", titled(pokemon.Abilities))
	if front, ok := pokemon.FrontDefault(); ok {
		fmt.Fprintf(w, "Sprite: %s\n", front)
	}
}
