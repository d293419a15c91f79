package live

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
)

type request struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// backend is an in-memory REST backend speaking the EC/EM envelope.
type backend struct {
	mu       sync.Mutex
	data     map[string][]map[string]any
	requests []request
	status   map[string]int
	nextID   int
}

func newBackend(t *testing.T) (*backend, *api.Client) {
	t.Helper()
	b := &backend{data: map[string][]map[string]any{}, status: map[string]int{}}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, api.New(srv.URL, time.Second)
}

func (b *backend) seed(path string, records ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range records {
		if _, ok := r["id"]; !ok {
			b.nextID++
			r["id"] = fmt.Sprintf("seed-%d", b.nextID)
		}
		b.data[path] = append(b.data[path], r)
	}
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, request{Method: r.Method, Path: path, Query: r.URL.RawQuery, Body: body})

	w.Header().Set("Content-Type", "application/json")
	if code, ok := b.status[path]; ok {
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{"EC": code, "EM": "rejected"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(map[string]any{"EC": 0, "EM": "ok", "data": b.data[path]})
	default:
		if body == nil {
			body = map[string]any{}
		}
		b.nextID++
		body["id"] = fmt.Sprintf("id-%d", b.nextID)
		b.data[path] = append(b.data[path], body)
		json.NewEncoder(w).Encode(map[string]any{"EC": 0, "EM": "created", "data": body})
	}
}

func (b *backend) posts(path string) []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []request
	for _, r := range b.requests {
		if r.Method == http.MethodPost && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (b *backend) postsWithPrefix(prefix string) []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []request
	for _, r := range b.requests {
		if r.Method == http.MethodPost && strings.HasPrefix(r.Path, prefix) {
			out = append(out, r)
		}
	}
	return out
}
