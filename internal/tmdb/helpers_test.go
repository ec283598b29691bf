package tmdb

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testImageBase = "https://images.test/w500"

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := []Option{
		WithBaseURL(server.URL),
		WithImageBaseURL(testImageBase),
		WithHTTPClient(server.Client()),
		WithRetryDelay(0),
		WithRateLimiter(nil),
	}
	return NewClient("test-token", append(base, opts...)...), server
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

// memoryStore is an in-memory ResponseStore.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(table, key string, _ time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[table+"|"+key]
	return v, ok, nil
}

func (m *memoryStore) Set(table, key, data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[table+"|"+key] = data
	return nil
}
