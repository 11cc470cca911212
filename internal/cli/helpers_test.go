package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/artgrid/internal/cli"
	"github.com/rshade/artgrid/internal/config"
)

// artServer serves total synthetic artworks in the artworks listing envelope.
type artServer struct {
	*httptest.Server

	total int
	fail  map[int]int

	mu    sync.Mutex
	pages []int
}

func newArtServer(t *testing.T, total int) *artServer {
	t.Helper()
	s := &artServer{total: total, fail: map[int]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// failPage makes page respond with status.
func (s *artServer) failPage(page, status int) *artServer {
	s.fail[page] = status
	return s
}

func (s *artServer) requested() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.pages...)
}

func (s *artServer) handle(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	s.mu.Lock()
	s.pages = append(s.pages, page)
	s.mu.Unlock()

	if status, ok := s.fail[page]; ok {
		http.Error(w, "upstream unavailable", status)
		return
	}

	data := []map[string]any{}
	for id := (page-1)*limit + 1; id <= page*limit && id <= s.total; id++ {
		data = append(data, map[string]any{
			"id":              id,
			"title":           fmt.Sprintf("Artwork %d", id),
			"place_of_origin": "Chicago",
			"artist_display":  "Artist\nAmerican, 1900-1980",
			"inscriptions":    nil,
			"date_start":      1900 + id,
			"date_end":        1901 + id,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"pagination": map[string]any{"total": s.total, "limit": limit, "current_page": page},
		"data":       data,
		"info":       map[string]any{"version": "1.13"},
	})
}

// setupCLITest isolates config and logging from the developer's environment.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvPageSize, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvLogFile, "")
	t.Cleanup(func() { config.SetGlobalConfig(nil) })
	return home
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func ids(t *testing.T, records []json.RawMessage) []int {
	t.Helper()
	out := make([]int, 0, len(records))
	for _, raw := range records {
		var rec struct {
			ID int `json:"id"`
		}
		require.NoError(t, json.Unmarshal(raw, &rec))
		out = append(out, rec.ID)
	}
	return out
}
