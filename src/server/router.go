package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/BielosX/wombat/poke-search/src/pokeapi"
	"github.com/BielosX/wombat/poke-search/src/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server exposes Pokemon lookups over HTTP.
type Server struct {
	fetcher search.Fetcher
	sugar   *zap.SugaredLogger
	router  chi.Router
}

func New(fetcher search.Fetcher, sugar *zap.SugaredLogger) *Server {
	s := &Server{
		fetcher: fetcher,
		sugar:   sugar,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/api/pokemon/{name}", s.handleGetPokemon)
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.sugar.Infow("HTTP request",
			"requestId", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	pokemon, err := s.fetcher.Fetch(r.Context(), name)
	if err != nil {
		s.sugar.Errorf("Fetching Pokemon %q failed: %s", name, err)
		respondError(w, statusFor(err), search.UserMessage(err))
		return
	}
	respondJSON(w, http.StatusOK, pokemon)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pokeapi.ErrEmptySearchTerm):
		return http.StatusBadRequest
	case pokeapi.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
