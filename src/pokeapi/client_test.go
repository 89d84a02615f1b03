package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type countingDoer struct {
	calls atomic.Int32
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls.Add(1)
	return nil, errors.New("unexpected request")
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(zaptest.NewLogger(t).Sugar(),
		WithBaseUrl(server.URL+"/api/v2"),
		WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func pokemonHandler(t *testing.T, bodies map[string]string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/api/v2/pokemon/")
		body, ok := bodies[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func TestFetchEmptyTermMakesNoRequest(t *testing.T) {
	doer := &countingDoer{}
	client, err := NewClient(zaptest.NewLogger(t).Sugar(), WithDoer(doer))
	require.NoError(t, err)

	for _, term := range []string{"", "   "} {
		pokemon, err := client.Fetch(context.Background(), term)
		require.Nil(t, pokemon)
		require.ErrorIs(t, err, ErrEmptySearchTerm)
	}
	require.Equal(t, int32(0), doer.calls.Load())
}

func TestFetchSuccess(t *testing.T) {
	var path string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.Equal(t, http.MethodGet, r.Method)
		require.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(charmanderJson))
	}))

	pokemon, err := client.Fetch(context.Background(), "Charmander")
	require.NoError(t, err)
	require.Equal(t, "charmander", pokemon.Name)
	require.Equal(t, 4, pokemon.Id)
	require.Equal(t, "/api/v2/pokemon/charmander", path)
}

func TestFetchNotFound(t *testing.T) {
	client := newTestClient(t, pokemonHandler(t, map[string]string{}))

	pokemon, err := client.Fetch(context.Background(), "charmander")
	require.Nil(t, pokemon)
	var networkErr *NetworkError
	require.ErrorAs(t, err, &networkErr)
	require.Equal(t, http.StatusNotFound, networkErr.StatusCode)
	require.True(t, IsNotFound(err))
}

func TestFetchServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMultipleChoices)
	}))

	_, err := client.Fetch(context.Background(), "charmander")
	var networkErr *NetworkError
	require.ErrorAs(t, err, &networkErr)
	require.Equal(t, http.StatusMultipleChoices, networkErr.StatusCode)
	require.False(t, IsNotFound(err))
}

func TestFetchParseErrors(t *testing.T) {
	cases := map[string]string{
		"invalid json":     `{"name": "charmander",`,
		"array":            `[{"name": "charmander"}]`,
		"string":           `"charmander"`,
		"trailing data":    charmanderJson + `{}`,
		"missing required": `{"name": "charmander", "id": 4}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, pokemonHandler(t, map[string]string{"charmander": body}))
			pokemon, err := client.Fetch(context.Background(), "charmander")
			require.Nil(t, pokemon)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			var networkErr *NetworkError
			require.False(t, errors.As(err, &networkErr))
		})
	}
}

func TestFetchDecodeFailureIsDistinct(t *testing.T) {
	client := newTestClient(t, pokemonHandler(t, map[string]string{"charmander": `{"name": "charmander"}`}))
	_, err := client.Fetch(context.Background(), "charmander")
	require.ErrorIs(t, err, ErrDecodeFailed)
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseUrl := server.URL
	server.Close()
	client, err := NewClient(zaptest.NewLogger(t).Sugar(), WithBaseUrl(baseUrl))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "charmander")
	var networkErr *NetworkError
	require.ErrorAs(t, err, &networkErr)
	require.Zero(t, networkErr.StatusCode)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })
	client, err := NewClient(zaptest.NewLogger(t).Sugar(),
		WithBaseUrl(server.URL),
		WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "charmander")
	var networkErr *NetworkError
	require.ErrorAs(t, err, &networkErr)
}

func TestFetchEscapesTerm(t *testing.T) {
	var rawPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		http.NotFound(w, r)
	}))
	_, _ = client.Fetch(context.Background(), "Mr. Mime")
	require.Equal(t, "/api/v2/pokemon/mr.%20mime", rawPath)
}

func TestDoAppliesMethodHeadersAndQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v2/berry", r.URL.Path)
		require.Equal(t, "20", r.URL.Query().Get("limit"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte("ok"))
	}))

	body, err := client.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "berry",
		Query:   map[string]string{"limit": "20"},
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    []byte(`{}`),
	})
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestNewClientRejectsRelativeBaseUrl(t *testing.T) {
	_, err := NewClient(zaptest.NewLogger(t).Sugar(), WithBaseUrl("api/v2"))
	require.Error(t, err)
}

func TestListPokemons(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/pokemon", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("limit"))
		require.Equal(t, "3", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(`{"count": 1302, "results": [
			{"name": "charmander", "url": "https://pokeapi.co/api/v2/pokemon/4/"},
			{"name": "charmeleon", "url": "https://pokeapi.co/api/v2/pokemon/5/"}
		]}`))
	}))

	names, err := client.ListPokemons(context.Background(), 2, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"charmander", "charmeleon"}, names)
}

func pokemonBody(name string, id int) string {
	return fmt.Sprintf(`{"name": %q, "id": %d, "abilities": [], "types": []}`, name, id)
}

func TestFetchManyKeepsOrder(t *testing.T) {
	var mu sync.Mutex
	var requested []string
	bodies := map[string]string{
		"bulbasaur":  pokemonBody("bulbasaur", 1),
		"ivysaur":    pokemonBody("ivysaur", 2),
		"venusaur":   pokemonBody("venusaur", 3),
		"charmander": pokemonBody("charmander", 4),
	}
	inner := pokemonHandler(t, bodies)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()
		inner.ServeHTTP(w, r)
	}))

	names := []string{"venusaur", "bulbasaur", "charmander", "ivysaur"}
	pokemons, err := client.FetchMany(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, pokemons, len(names))
	for i, name := range names {
		require.Equal(t, name, pokemons[i].Name)
	}
	sort.Strings(requested)
	require.Len(t, requested, 4)
}

func TestFetchManyJoinsErrors(t *testing.T) {
	client := newTestClient(t, pokemonHandler(t, map[string]string{
		"bulbasaur": pokemonBody("bulbasaur", 1),
	}))

	pokemons, err := client.FetchMany(context.Background(), []string{"bulbasaur", "agumon", "gabumon"})
	require.Nil(t, pokemons)
	require.ErrorContains(t, err, "fetch agumon")
	require.ErrorContains(t, err, "fetch gabumon")
	require.True(t, IsNotFound(err))
}

func TestFetchDotTermsStayInOneSegment(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.EscapedPath())
		mu.Unlock()
		http.NotFound(w, r)
	}))

	for _, term := range []string{".", ".."} {
		_, err := client.Fetch(context.Background(), term)
		require.True(t, IsNotFound(err))
	}
	require.Equal(t, []string{"/api/v2/pokemon/%2E", "/api/v2/pokemon/%2E%2E"}, paths)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDownloadSprite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sprites/4.png":
			_, _ = w.Write(pngHeader)
		case "/sprites/broken.png":
			_, _ = w.Write([]byte("<html>oops</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	client, err := NewClient(zaptest.NewLogger(t).Sugar(), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	spriteUrl, err := url.Parse(server.URL + "/sprites/4.png")
	require.NoError(t, err)
	data, err := client.DownloadSprite(context.Background(), spriteUrl)
	require.NoError(t, err)
	require.Equal(t, pngHeader, data)

	brokenUrl, err := url.Parse(server.URL + "/sprites/broken.png")
	require.NoError(t, err)
	_, err = client.DownloadSprite(context.Background(), brokenUrl)
	require.ErrorIs(t, err, ErrNotAnImage)

	missingUrl, err := url.Parse(server.URL + "/sprites/missing.png")
	require.NoError(t, err)
	_, err = client.DownloadSprite(context.Background(), missingUrl)
	require.True(t, IsNotFound(err))
}
