// Package server exposes the aggregation engine as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"covidtrack/internal/database"
	"covidtrack/internal/query"
)

// Server is the HTTP server for serving aggregation queries.
type Server struct {
	engine *query.Engine
	mux    *http.ServeMux
}

// New creates a new Server over the given store.
func New(db *database.DB) *Server {
	s := &Server{engine: query.New(db), mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/data", s.handleData)
	s.mux.HandleFunc("/api/data/", s.handleData)
	s.mux.HandleFunc("/api/places", s.handlePlaces)
}

// handleData answers /api/data, /api/data/{date} and
// /api/data/{start}/{end}. Place filters and breakdown selection come in
// as query parameters.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	f, ok := s.parseFilter(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("breakdown") == "true" {
		tree, err := s.engine.Breakdown(f)
		if err != nil {
			writeQueryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tree)
		return
	}

	scalar, err := s.engine.Totals(f)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scalar)
}

// parseFilter builds the query filter from the URL path and parameters.
// Path segments after /api/data select the date scope: one segment is an
// exact date, two are a start/end range.
func (s *Server) parseFilter(w http.ResponseWriter, r *http.Request) (query.Filter, bool) {
	f := query.Filter{
		Continent: r.URL.Query().Get("continent"),
		Country:   r.URL.Query().Get("country"),
		State:     r.URL.Query().Get("state"),
		County:    r.URL.Query().Get("county"),
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/data"), "/")
	if path == "" {
		return f, true
	}

	parts := strings.Split(path, "/")
	switch len(parts) {
	case 1:
		f.Date = parts[0]
	case 2:
		f.Start = parts[0]
		f.End = parts[1]
	default:
		writeError(w, http.StatusNotFound, "not found")
		return f, false
	}
	return f, true
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tree, err := s.engine.PlaceTree()
	if err != nil {
		log.Printf("places query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"place": tree})
}

// writeQueryError maps engine errors to status codes: caller input errors
// are 400, everything else is an infrastructure failure.
func writeQueryError(w http.ResponseWriter, err error) {
	if errors.Is(err, query.ErrInvalidRange) || errors.Is(err, database.ErrBadDate) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("query failed: %v", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// Serve runs the HTTP server until it fails.
func Serve(db *database.DB, port int) error {
	srv := New(db)
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
