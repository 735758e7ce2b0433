// Package n8ntest provides an in-memory fake of the n8n REST API for
// testing client code without a running instance.
//
// The fake serves the /api/v1 surface used by the client: workflows,
// executions, credentials, tags and audit. It enforces the X-N8N-API-KEY
// header, paginates list endpoints with opaque cursors and rejects create
// payloads carrying read-only fields, mirroring the real server's
// strictness.
//
//	srv := n8ntest.NewServer("test-key")
//	defer srv.Close()
//
//	client, err := n8n.NewClient(srv.ClientConfig())
package n8ntest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	"github.com/tcmartin/n8nclient/pkg/config"
)

// Server is a fake n8n instance backed by an in-memory store
type Server struct {
	apiKey     string
	router     *mux.Router
	httpServer *httptest.Server
	store      *store
}

// NewServer starts a fake n8n instance that requires the given API key.
// Callers must Close it when done.
func NewServer(apiKey string) *Server {
	s := &Server{
		apiKey: apiKey,
		router: mux.NewRouter(),
		store:  newStore(),
	}

	s.setupRoutes()
	s.httpServer = httptest.NewServer(s.router)
	return s
}

// URL returns the base URL of the fake instance
func (s *Server) URL() string {
	return s.httpServer.URL
}

// ClientConfig returns a configuration pointing at the fake instance
func (s *Server) ClientConfig() *config.Config {
	return &config.Config{
		BaseURL: s.httpServer.URL,
		APIKey:  s.apiKey,
	}
}

// Close shuts the fake instance down
func (s *Server) Close() {
	s.httpServer.Close()
}

// Reset drops all stored resources
func (s *Server) Reset() {
	s.store.reset()
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.requireAPIKey)

	workflows := api.PathPrefix("/workflows").Subrouter()
	workflows.HandleFunc("", s.handleListWorkflows).Methods(http.MethodGet)
	workflows.HandleFunc("", s.handleCreateWorkflow).Methods(http.MethodPost)
	workflows.HandleFunc("/{id}", s.handleGetWorkflow).Methods(http.MethodGet)
	workflows.HandleFunc("/{id}", s.handleUpdateWorkflow).Methods(http.MethodPut)
	workflows.HandleFunc("/{id}", s.handleDeleteWorkflow).Methods(http.MethodDelete)

	executions := api.PathPrefix("/executions").Subrouter()
	executions.HandleFunc("", s.handleListExecutions).Methods(http.MethodGet)
	executions.HandleFunc("/{id}", s.handleGetExecution).Methods(http.MethodGet)
	executions.HandleFunc("/{id}", s.handleDeleteExecution).Methods(http.MethodDelete)

	credentials := api.PathPrefix("/credentials").Subrouter()
	credentials.HandleFunc("", s.handleListCredentials).Methods(http.MethodGet)
	credentials.HandleFunc("", s.handleCreateCredential).Methods(http.MethodPost)
	credentials.HandleFunc("/schema/{type}", s.handleGetCredentialSchema).Methods(http.MethodGet)
	credentials.HandleFunc("/{id}", s.handleDeleteCredential).Methods(http.MethodDelete)

	tags := api.PathPrefix("/tags").Subrouter()
	tags.HandleFunc("", s.handleListTags).Methods(http.MethodGet)
	tags.HandleFunc("", s.handleCreateTag).Methods(http.MethodPost)
	tags.HandleFunc("/{id}", s.handleGetTag).Methods(http.MethodGet)
	tags.HandleFunc("/{id}", s.handleDeleteTag).Methods(http.MethodDelete)

	api.HandleFunc("/audit", s.handleGenerateAudit).Methods(http.MethodPost)
}

// requireAPIKey is middleware that rejects requests without the right key
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-N8N-API-KEY")
		if key == "" {
			writeError(w, http.StatusUnauthorized, "'X-N8N-API-KEY' header required")
			return
		}
		if key != s.apiKey {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
