// Package catalogtest provides an in-process fake of the catalog API for tests.
package catalogtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pokedex-cli/pokedex/pkg/models"
)

const basePath = "/api/v2/pokemon"

// Server serves read and list endpoints over a fixed set of records and
// counts the requests it receives.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	records  []models.Pokemon
	byKey    map[string]models.Pokemon
	failing  map[string]int
	reads    map[string]int
	lists    int
	garbage  map[string]bool
	listDown bool
	delay    time.Duration
}

// NewServer starts a fake holding records and closes it when t ends.
func NewServer(t testing.TB, records ...models.Pokemon) *Server {
	t.Helper()
	s := &Server{
		records: records,
		byKey:   make(map[string]models.Pokemon),
		failing: make(map[string]int),
		reads:   make(map[string]int),
		garbage: make(map[string]bool),
	}
	for _, p := range records {
		s.byKey[p.Name] = p
		s.byKey[strconv.Itoa(p.ID)] = p
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the read endpoint prefix to hand to catalog.New.
func (s *Server) BaseURL() string {
	return s.URL + basePath + "/"
}

// FailWith makes reads of key answer with status.
func (s *Server) FailWith(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[key] = status
}

// Garble makes reads of key answer with an undecodable body.
func (s *Server) Garble(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.garbage[key] = true
}

// Delay makes every read wait d before answering.
func (s *Server) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// ListDown makes the list endpoint answer 500.
func (s *Server) ListDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listDown = true
}

// Reads returns how many read requests key received.
func (s *Server) Reads(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[key]
}

// TotalRequests returns the number of read and list requests received.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.lists
	for _, c := range s.reads {
		n += c
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == basePath || r.URL.Path == basePath+"/":
		s.handleList(w, r)
	case strings.HasPrefix(r.URL.Path, basePath+"/"):
		s.handleRead(w, strings.TrimPrefix(r.URL.Path, basePath+"/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleRead(w http.ResponseWriter, key string) {
	s.mu.Lock()
	s.reads[key]++
	status, failing := s.failing[key]
	garbled := s.garbage[key]
	p, ok := s.byKey[key]
	delay := s.delay
	s.mu.Unlock()

	time.Sleep(delay)

	switch {
	case failing:
		http.Error(w, "Not Found", status)
	case garbled:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "oops"`))
	case !ok:
		http.Error(w, "Not Found", http.StatusNotFound)
	default:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.lists++
	down := s.listDown
	s.mu.Unlock()

	if down {
		http.Error(w, "upstream down", http.StatusInternalServerError)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset > len(s.records) {
		offset = len(s.records)
	}
	end := offset + limit
	if end > len(s.records) {
		end = len(s.records)
	}

	page := models.ListPage{Count: len(s.records)}
	for _, p := range s.records[offset:end] {
		page.Results = append(page.Results, models.NamedResource{
			Name: p.Name,
			URL:  fmt.Sprintf("%s%s/%d/", s.URL, basePath, p.ID),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

// Generate builds n records named mon1..monN with ids 1..N.
func Generate(n int) []models.Pokemon {
	out := make([]models.Pokemon, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Record(i, fmt.Sprintf("mon%d", i)))
	}
	return out
}

// Record builds a fully populated record.
func Record(id int, name string) models.Pokemon {
	return models.Pokemon{
		ID:      id,
		Name:    name,
		Sprites: models.Sprites{FrontDefault: fmt.Sprintf("https://img.example/%d.png", id)},
		Weight:  69,
		Height:  7,
		Types: []models.TypeSlot{
			{Slot: 1, Type: models.NamedResource{Name: "grass"}},
			{Slot: 2, Type: models.NamedResource{Name: "poison"}},
		},
		Stats: []models.StatEntry{
			{BaseStat: 45, Stat: models.NamedResource{Name: "hp"}},
			{BaseStat: 49, Stat: models.NamedResource{Name: "attack"}},
			{BaseStat: 49, Stat: models.NamedResource{Name: "defense"}},
			{BaseStat: 65, Stat: models.NamedResource{Name: "special-attack"}},
			{BaseStat: 65, Stat: models.NamedResource{Name: "special-defense"}},
			{BaseStat: 45, Stat: models.NamedResource{Name: "speed"}},
		},
	}
}
