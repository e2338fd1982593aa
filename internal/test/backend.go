package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/app-sre/dbconsole/pkg/models"
)

// Backend is an in-process stand-in for the cluster HTTP API. It records
// every query it receives and replies with whatever the test configured.
type Backend struct {
	*httptest.Server

	mu        sync.Mutex
	queries   []models.QueryRequest
	databases []string

	Query          func(models.QueryRequest) (int, any)
	CreateDatabase func(models.CreateDatabaseRequest) (int, any)
	Slaves         func() (int, any)
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		Query: func(models.QueryRequest) (int, any) {
			return http.StatusOK, models.QueryResult{Status: models.StatusOK, Message: "ok"}
		},
		CreateDatabase: func(r models.CreateDatabaseRequest) (int, any) {
			return http.StatusOK, models.QueryResult{Status: models.StatusOK, Message: "Database " + r.DBName + " created successfully"}
		},
		Slaves: func() (int, any) {
			return http.StatusOK, models.SlaveRegistry{}
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/query", func(w http.ResponseWriter, r *http.Request) {
		var q models.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.queries = append(b.queries, q)
		b.mu.Unlock()
		code, body := b.Query(q)
		reply(w, code, body)
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/database/create", func(w http.ResponseWriter, r *http.Request) {
		var q models.CreateDatabaseRequest
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.databases = append(b.databases, q.DBName)
		b.mu.Unlock()
		code, body := b.CreateDatabase(q)
		reply(w, code, body)
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/slaves", func(w http.ResponseWriter, r *http.Request) {
		code, body := b.Slaves()
		reply(w, code, body)
	}).Methods(http.MethodGet)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)

	return b
}

// Queries returns the query requests received so far.
func (b *Backend) Queries() []models.QueryRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]models.QueryRequest(nil), b.queries...)
}

// Databases returns the database names received by the creation endpoint.
func (b *Backend) Databases() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.databases...)
}

func reply(w http.ResponseWriter, code int, body any) {
	if s, ok := body.(string); ok {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(s))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
