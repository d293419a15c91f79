package seeder

import (
	"sync"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
)

// Run carries everything materialised during one orchestrator run. It is
// created per run and passed to every step and generator.
type Run struct {
	Gen *generator.Generator

	mu          sync.Mutex
	collections map[string][]api.Record
	results     []Result
}

func NewRun(gen *generator.Generator) *Run {
	if gen == nil {
		gen = generator.New()
	}
	return &Run{
		Gen:         gen,
		collections: make(map[string][]api.Record),
	}
}

// Collection returns a copy of the named collection.
func (r *Run) Collection(name string) []api.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]api.Record(nil), r.collections[name]...)
}

func (r *Run) Set(name string, records []api.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[name] = append([]api.Record(nil), records...)
}

func (r *Run) Append(name string, rec api.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[name] = append(r.collections[name], rec)
}

// Snapshot copies every collection.
func (r *Run) Snapshot() map[string][]api.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]api.Record, len(r.collections))
	for k, v := range r.collections {
		out[k] = append([]api.Record(nil), v...)
	}
	return out
}

func (r *Run) addResult(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *Run) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}
