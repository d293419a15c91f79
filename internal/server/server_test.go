package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/cache"
	"github.com/Lumos-Labs-HQ/flashseed/internal/scheduler"
)

type fakeBackend struct {
	mu     sync.Mutex
	calls  []string
	bodies map[string]any
	fail   map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{bodies: map[string]any{}, fail: map[string]error{}}
}

func (f *fakeBackend) Post(ctx context.Context, path string, query url.Values, body any) (*api.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	f.bodies[path] = body
	if err := f.fail[path]; err != nil {
		return nil, err
	}
	return &api.Envelope{EC: "OK", EM: "done"}, nil
}

type fakePreparer struct {
	forced []bool
	err    error
}

func (p *fakePreparer) Snapshot(ctx context.Context, force bool) (*cache.Snapshot, error) {
	p.forced = append(p.forced, force)
	if p.err != nil {
		return nil, p.err
	}
	return &cache.Snapshot{
		Collections: map[string][]api.Record{"restaurants": {{"id": "r1"}, {"id": "r2"}}},
		PreparedAt:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

type fakeJobs struct{}

func (fakeJobs) Stats() []scheduler.Stats {
	return []scheduler.Stats{{Name: "orders", State: "running", Ticks: 3}}
}

type envelope struct {
	EC   any             `json:"EC"`
	EM   string          `json:"EM"`
	Data json.RawMessage `json:"data"`
}

func do(t *testing.T, s *Server, method, path string, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	s := New(0, Deps{Backend: newFakeBackend()})
	status, env := do(t, s, http.MethodGet, "/health", "")
	if status != http.StatusOK || env.EC != float64(0) {
		t.Errorf("unexpected health response %d %+v", status, env)
	}
}

func TestStatusListsJobs(t *testing.T) {
	s := New(0, Deps{Backend: newFakeBackend(), Jobs: fakeJobs{}})
	_, env := do(t, s, http.MethodGet, "/status", "")

	var stats []scheduler.Stats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 || stats[0].Name != "orders" || stats[0].Ticks != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestCollectionsAndPrepare(t *testing.T) {
	prep := &fakePreparer{}
	s := New(0, Deps{Backend: newFakeBackend(), Preparer: prep})

	_, env := do(t, s, http.MethodGet, "/collections", "")
	var data struct {
		Counts map[string]int `json:"counts"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Counts["restaurants"] != 2 {
		t.Errorf("unexpected counts %v", data.Counts)
	}

	do(t, s, http.MethodPost, "/prepare", "")
	if len(prep.forced) != 2 || prep.forced[0] || !prep.forced[1] {
		t.Errorf("expected cached then forced preparation, got %v", prep.forced)
	}
}

func TestPrepareFailure(t *testing.T) {
	s := New(0, Deps{Backend: newFakeBackend(), Preparer: &fakePreparer{err: errors.New("backend down")}})
	status, env := do(t, s, http.MethodPost, "/prepare", "")
	if status != http.StatusBadGateway || !strings.Contains(env.EM, "backend down") {
		t.Errorf("unexpected response %d %+v", status, env)
	}
}

const chartBody = `{"id":"FF_ADMIN_CHART_1","period_type":"daily","period_start":1749945600,"period_end":1750031999}`

func TestAdminChartDirectInsert(t *testing.T) {
	backend := newFakeBackend()
	backend.fail["admin-chart/delete-period"] = errors.New("not found")
	s := New(0, Deps{Backend: backend})

	status, env := do(t, s, http.MethodPost, "/direct-db-insert/admin-chart", chartBody)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d %+v", status, env)
	}
	want := []string{"admin-chart/delete-period", "admin-chart/direct-insert"}
	if strings.Join(backend.calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, backend.calls)
	}
	if !strings.Contains(string(env.Data), "FF_ADMIN_CHART_1") {
		t.Errorf("expected record id in response, got %s", env.Data)
	}
}

func TestAdminChartFallback(t *testing.T) {
	backend := newFakeBackend()
	backend.fail["admin-chart/direct-insert"] = &api.ValidationError{Path: "admin-chart/direct-insert", Status: 500, Message: "boom"}
	s := New(0, Deps{Backend: backend})

	status, _ := do(t, s, http.MethodPost, "/direct-db-insert/admin-chart", chartBody)
	if status != http.StatusOK {
		t.Fatalf("fallback should succeed, got %d", status)
	}
	body, _ := backend.bodies["admin-chart/update"].(api.Record)
	if body["periodType"] != "daily" || body["startDate"] != float64(1749945600) {
		t.Errorf("unexpected fallback body %v", body)
	}
}

func TestAdminChartBothFail(t *testing.T) {
	backend := newFakeBackend()
	backend.fail["admin-chart/direct-insert"] = &api.ValidationError{Path: "admin-chart/direct-insert", Status: 500, Message: "boom"}
	backend.fail["admin-chart/update"] = errors.New("down")
	s := New(0, Deps{Backend: backend})

	status, env := do(t, s, http.MethodPost, "/direct-db-insert/admin-chart", chartBody)
	if status != http.StatusBadGateway || !strings.Contains(env.EM, "boom") {
		t.Errorf("unexpected response %d %+v", status, env)
	}
}
