package seeder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
)

// fakeBackend is an in-memory Collections. Paths are stored without a
// leading slash.
type fakeBackend struct {
	mu      sync.Mutex
	data    map[string][]api.Record
	posts   map[string]int
	lists   map[string]int
	failOn  map[string]map[int]error // path -> 1-based post number -> error
	listErr map[string]error
	nextID  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		data:    make(map[string][]api.Record),
		posts:   make(map[string]int),
		lists:   make(map[string]int),
		failOn:  make(map[string]map[int]error),
		listErr: make(map[string]error),
	}
}

func (f *fakeBackend) seed(path string, n int, extra func(i int) api.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < n; i++ {
		f.nextID++
		rec := api.Record{"id": fmt.Sprintf("%s-%d", path, f.nextID)}
		if extra != nil {
			for k, v := range extra(i) {
				rec[k] = v
			}
		}
		f.data[path] = append(f.data[path], rec)
	}
}

func (f *fakeBackend) fail(path string, n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[path] == nil {
		f.failOn[path] = make(map[int]error)
	}
	f.failOn[path][n] = err
}

func (f *fakeBackend) List(ctx context.Context, path string) ([]api.Record, error) {
	path = strings.TrimPrefix(path, "/")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[path]++
	if err := f.listErr[path]; err != nil {
		return nil, err
	}
	return append([]api.Record(nil), f.data[path]...), nil
}

func (f *fakeBackend) Create(ctx context.Context, path string, body any) (api.Record, error) {
	path = strings.TrimPrefix(path, "/")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[path]++
	if err := f.failOn[path][f.posts[path]]; err != nil {
		return nil, err
	}
	f.nextID++
	rec := api.Record{}
	if m, ok := body.(api.Record); ok {
		for k, v := range m {
			rec[k] = v
		}
	}
	rec["id"] = fmt.Sprintf("%s-%d", path, f.nextID)
	f.data[path] = append(f.data[path], rec)
	return rec, nil
}

func (f *fakeBackend) postCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts[path]
}

func (f *fakeBackend) totalPosts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.posts {
		n += c
	}
	return n
}

func noSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}
