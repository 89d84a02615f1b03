package pokeapi

import (
	"encoding/json"
	"net/url"
)

type PokemonListResultEntry struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonListResult struct {
	Count   int32                    `json:"count"`
	Results []PokemonListResultEntry `json:"results"`
}

// Sprite is one image of a Pokemon, keyed by its label in the "sprites" object.
type Sprite struct {
	Label string
	Url   *url.URL
}

func (s Sprite) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label string `json:"label"`
		Url   string `json:"url"`
	}{Label: s.Label, Url: s.Url.String()})
}

// Pokemon is a fully decoded record. It is only ever built by Decode, so every
// required field is present.
type Pokemon struct {
	Name      string   `json:"name"`
	Id        int      `json:"id"`
	Types     []string `json:"types"`
	Abilities []string `json:"abilities"`
	// Sorted by label.
	Sprites []Sprite `json:"sprites"`
}

const FrontDefaultSprite = "front_default"

func (p *Pokemon) ImageUrls() []*url.URL {
	urls := make([]*url.URL, 0, len(p.Sprites))
	for _, sprite := range p.Sprites {
		urls = append(urls, sprite.Url)
	}
	return urls
}

func (p *Pokemon) Sprite(label string) (*url.URL, bool) {
	for _, sprite := range p.Sprites {
		if sprite.Label == label {
			return sprite.Url, true
		}
	}
	return nil, false
}

func (p *Pokemon) FrontDefault() (*url.URL, bool) {
	return p.Sprite(FrontDefaultSprite)
}
