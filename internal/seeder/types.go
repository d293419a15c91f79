package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
)

// ErrCriticalEmpty aborts a run when a foundational collection is still
// empty after its step.
var ErrCriticalEmpty = errors.New("critical collection is empty")

// ErrAbort marks a create failure that must stop the whole run instead of
// being skipped.
var ErrAbort = errors.New("aborting run")

// ErrSkip is returned by a CreateFunc when a dependency it needs is missing.
var ErrSkip = errors.New("skipped: missing dependency")

// Collections is the part of api.Client a step needs.
type Collections interface {
	List(ctx context.Context, path string) ([]api.Record, error)
	Create(ctx context.Context, path string, body any) (api.Record, error)
}

// GenerateFunc builds the i-th record of a step. ok=false skips the record
// without a request, used when a dependency collection is empty.
type GenerateFunc func(run *Run, i int) (body api.Record, ok bool)

// CreateFunc replaces generate+POST for records that need several requests,
// such as a user followed by its profile.
type CreateFunc func(ctx context.Context, c Collections, run *Run, i int) (api.Record, error)

// Entity declares one collection: where it lives, how many records it
// needs, what it depends on and how to build a record.
type Entity struct {
	Name     string
	Path     string
	ListPath string // defaults to Path

	// Minimum is the floor. When the collection is below it, the step
	// creates Fill-count records instead if Fill is larger.
	Minimum int
	Fill    int

	Delay     time.Duration
	DependsOn []string
	Critical  bool
	Disabled  bool

	Generate GenerateFunc
	Create   CreateFunc
}

func (e Entity) listPath() string {
	if e.ListPath != "" {
		return e.ListPath
	}
	return e.Path
}

func (e Entity) target() int {
	if e.Fill > e.Minimum {
		return e.Fill
	}
	return e.Minimum
}

// Result describes one EnsureMinimum call.
type Result struct {
	Entity    string
	Before    int
	Attempted int
	Created   int
	Failed    int
	Skipped   int
	Records   []api.Record
	Failures  map[api.Kind]int
}

// Count is the size of the collection after the step.
func (r Result) Count() int {
	return len(r.Records)
}
