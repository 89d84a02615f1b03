// Package search holds the display state of a Pokemon search and makes sure
// only the newest search can change it.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/BielosX/wombat/poke-search/src/pokeapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

const (
	EmptyTermMessage = "Enter Pokemon Name"
	FailureMessage   = "Error: could not fetch Pokemon, try again"
)

// UserMessage is the text shown for a failed search. Network and parse errors
// share one message.
func UserMessage(err error) string {
	if errors.Is(err, pokeapi.ErrEmptySearchTerm) {
		return EmptyTermMessage
	}
	return FailureMessage
}

// State is exactly one of idle, loading, success (Pokemon set) or error (Err set).
type State struct {
	Status  Status
	Term    string
	Id      string
	Pokemon *pokeapi.Pokemon
	Err     error
}

func (s State) Message() string {
	if s.Err == nil {
		return ""
	}
	return UserMessage(s.Err)
}

type Fetcher interface {
	Fetch(ctx context.Context, searchTerm string) (*pokeapi.Pokemon, error)
}

type Session struct {
	fetcher  Fetcher
	sugar    *zap.SugaredLogger
	onChange func(State)

	mutex      sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      State
}

func NewSession(fetcher Fetcher, sugar *zap.SugaredLogger) *Session {
	return &Session{
		fetcher: fetcher,
		sugar:   sugar,
	}
}

// OnChange registers a callback invoked with every published state. It runs
// with the session lock held, so it must not call back into the session.
func (s *Session) OnChange(callback func(State)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.onChange = callback
}

func (s *Session) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

func (s *Session) publish(state State) {
	s.state = state
	if s.onChange != nil {
		s.onChange(state)
	}
}

// begin supersedes any running search and returns the new generation.
func (s *Session) begin() uint64 {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.generation
}

// Pending is a search that has been started and holds its generation.
type Pending struct {
	session    *Session
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc
	term       string
	id         string
	final      *State
}

// Start supersedes the running search, publishes the loading state and
// reserves the newest generation before returning, so the order of Start calls
// decides which search wins no matter when Wait runs.
func (s *Session) Start(ctx context.Context, term string) *Pending {
	id := uuid.NewString()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	pending := &Pending{session: s, generation: s.begin(), term: term, id: id}
	if strings.TrimSpace(term) == "" {
		state := State{Status: Failed, Term: term, Id: id, Err: pokeapi.ErrEmptySearchTerm}
		s.publish(state)
		pending.final = &state
		return pending
	}
	pending.ctx, pending.cancel = context.WithCancel(ctx)
	s.cancel = pending.cancel
	s.publish(State{Status: Loading, Term: term, Id: id})
	s.sugar.Infof("Search %s started for %q", id, term)
	return pending
}

// Wait fetches and returns the state this search produced. The state is
// published only if no newer search or Reset happened since Start. Wait is not
// safe for concurrent use on the same Pending.
func (p *Pending) Wait() State {
	if p.final != nil {
		return *p.final
	}
	s := p.session
	pokemon, err := s.fetcher.Fetch(p.ctx, p.term)
	p.cancel()
	result := State{Status: Success, Term: p.term, Id: p.id, Pokemon: pokemon}
	if err != nil {
		result = State{Status: Failed, Term: p.term, Id: p.id, Err: err}
	}
	p.final = &result

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if p.generation != s.generation {
		s.sugar.Infof("Search %s for %q superseded, dropping result", p.id, p.term)
		return result
	}
	s.cancel = nil
	if err != nil {
		s.sugar.Errorf("Search %s for %q failed: %s", p.id, p.term, err)
	}
	s.publish(result)
	return result
}

// Search runs one search to completion. A search that was superseded by a newer
// one or by Reset returns its own outcome but does not touch the session state.
func (s *Session) Search(ctx context.Context, term string) State {
	return s.Start(ctx, term).Wait()
}

// Reset cancels the running search, if any, and returns to idle.
func (s *Session) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.begin()
	s.publish(State{Status: Idle})
}
