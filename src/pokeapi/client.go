package pokeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseUrl = "https://pokeapi.co/api/v2/"
	DefaultTimeout = 50 * time.Second
)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseUrl *url.URL
	client  Doer
	sugar   *zap.SugaredLogger
}

type options struct {
	baseUrl string
	timeout time.Duration
	client  Doer
}

type Option func(*options)

func WithBaseUrl(baseUrl string) Option {
	return func(o *options) {
		o.baseUrl = baseUrl
	}
}

// WithTimeout is ignored when a client is supplied with WithHTTPClient or WithDoer.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

func WithDoer(doer Doer) Option {
	return func(o *options) {
		o.client = doer
	}
}

func NewClient(sugar *zap.SugaredLogger, opts ...Option) (*Client, error) {
	o := options{
		baseUrl: DefaultBaseUrl,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !strings.HasSuffix(o.baseUrl, "/") {
		o.baseUrl += "/"
	}
	baseUrl, err := url.Parse(o.baseUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", o.baseUrl, err)
	}
	if !baseUrl.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", o.baseUrl)
	}
	client := o.client
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}
	return &Client{
		baseUrl: baseUrl,
		client:  client,
		sugar:   sugar,
	}, nil
}

// Request describes a call relative to the client's base url. Method defaults to GET.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers map[string]string
	Body    []byte
}

func (c *Client) buildUrl(path string, query map[string]string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	target := c.baseUrl.ResolveReference(ref)
	if len(query) > 0 {
		values := target.Query()
		for key, value := range query {
			values.Set(key, value)
		}
		target.RawQuery = values.Encode()
	}
	return target, nil
}

// Do performs the request and returns the body of a 2xx response. Every other
// outcome is a *NetworkError.
func (c *Client) Do(ctx context.Context, request Request) ([]byte, error) {
	target, err := c.buildUrl(request.Path, request.Query)
	if err != nil {
		return nil, &NetworkError{Url: request.Path, Err: err}
	}
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if request.Body != nil {
		body = bytes.NewReader(request.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, &NetworkError{Url: target.String(), Err: err}
	}
	for key, value := range request.Headers {
		req.Header.Set(key, value)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Url: target.String(), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			Url:        target.String(),
			StatusCode: resp.StatusCode,
			Err:        errors.New(resp.Status),
		}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Url: target.String(), Err: err}
	}
	return data, nil
}

func (c *Client) getAndDecode(ctx context.Context, request Request, target any) error {
	data, err := c.Do(ctx, request)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// Fetch looks up a single Pokemon by name or id. The term is trimmed and
// lower-cased; an empty term fails with ErrEmptySearchTerm before any request.
func (c *Client) Fetch(ctx context.Context, searchTerm string) (*Pokemon, error) {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return nil, ErrEmptySearchTerm
	}
	c.sugar.Infof("Fetching Pokemon %s", term)
	data, err := c.Do(ctx, Request{Path: "pokemon/" + pathSegment(term)})
	if err != nil {
		return nil, err
	}
	return c.parsePokemon(term, data)
}

// pathSegment escapes term as one path segment. PathEscape keeps "." and "..",
// which url resolution would collapse into the parent resource.
func pathSegment(term string) string {
	escaped := url.PathEscape(term)
	if strings.Trim(escaped, ".") == "" {
		return strings.ReplaceAll(escaped, ".", "%2E")
	}
	return escaped
}

func (c *Client) parsePokemon(term string, data []byte) (*Pokemon, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, &ParseError{Err: err}
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("unexpected data after top-level value")}
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &ParseError{Err: errors.New("top-level value is not an object")}
	}
	pokemon, skipped, ok := decode(obj)
	if !ok {
		return nil, &ParseError{Err: ErrDecodeFailed}
	}
	if len(skipped) > 0 {
		c.sugar.Warnf("Skipped malformed entries of Pokemon %s: %s", term, strings.Join(skipped, ", "))
	}
	return pokemon, nil
}

// DownloadSprite returns the image behind a sprite url. A 2xx body that does
// not sniff as an image is a *ParseError wrapping ErrNotAnImage.
func (c *Client) DownloadSprite(ctx context.Context, spriteUrl *url.URL) ([]byte, error) {
	data, err := c.Do(ctx, Request{Path: spriteUrl.String()})
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, &ParseError{Err: ErrNotAnImage}
	}
	return data, nil
}

// ListPokemons returns the names of one page of the pokemon resource list.
func (c *Client) ListPokemons(ctx context.Context, limit, offset int32) ([]string, error) {
	var result PokemonListResult
	err := c.getAndDecode(ctx, Request{
		Path: "pokemon",
		Query: map[string]string{
			"limit":  strconv.Itoa(int(limit)),
			"offset": strconv.Itoa(int(offset)),
		},
	}, &result)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(result.Results))
	for _, entry := range result.Results {
		names = append(names, entry.Name)
	}
	return names, nil
}

type fetchResult struct {
	index   int
	pokemon *Pokemon
}

func (c *Client) fetchPokemon(ctx context.Context,
	index int,
	name string,
	errChan chan<- error,
	resultChan chan<- fetchResult,
	waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()
	pokemon, err := c.Fetch(ctx, name)
	if err != nil {
		errChan <- fmt.Errorf("fetch %s: %w", name, err)
		return
	}
	resultChan <- fetchResult{index: index, pokemon: pokemon}
}

// FetchMany fetches all names concurrently. The result keeps the order of names;
// any failure fails the whole call with every error joined.
func (c *Client) FetchMany(ctx context.Context, names []string) ([]*Pokemon, error) {
	var waitGroup sync.WaitGroup
	errChan := make(chan error, len(names))
	resultChan := make(chan fetchResult, len(names))
	for i, name := range names {
		waitGroup.Add(1)
		go c.fetchPokemon(ctx, i, name, errChan, resultChan, &waitGroup)
	}
	waitGroup.Wait()
	close(errChan)
	close(resultChan)
	var errs []error
	for e := range errChan {
		errs = append(errs, e)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	results := make([]*Pokemon, len(names))
	for result := range resultChan {
		results[result.index] = result.pokemon
	}
	return results, nil
}
