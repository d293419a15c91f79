package seeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
)

func simpleEntity(path string, minimum int) Entity {
	return Entity{
		Name: path, Path: path, Minimum: minimum,
		Generate: func(run *Run, i int) (api.Record, bool) {
			return api.Record{"n": i}, true
		},
	}
}

func newTestStep(backend *fakeBackend) *Step {
	return NewStep(backend, nil).WithSleep(noSleep)
}

func TestEnsureMinimumCreatesDeficit(t *testing.T) {
	for minimum := 0; minimum <= 6; minimum++ {
		for existing := 0; existing <= 6; existing++ {
			backend := newFakeBackend()
			backend.seed("things", existing, nil)

			res, err := newTestStep(backend).EnsureMinimum(context.Background(), simpleEntity("things", minimum), NewRun(generator.NewWithSeed(1)))
			if err != nil {
				t.Fatalf("M=%d C=%d: unexpected error %v", minimum, existing, err)
			}

			want := minimum - existing
			if want < 0 {
				want = 0
			}
			if got := backend.postCount("things"); got != want {
				t.Errorf("M=%d C=%d: expected %d creates, got %d", minimum, existing, want, got)
			}
			if res.Before != existing {
				t.Errorf("M=%d C=%d: Before = %d", minimum, existing, res.Before)
			}
			if res.Count() != existing+want {
				t.Errorf("M=%d C=%d: final count %d, want %d", minimum, existing, res.Count(), existing+want)
			}
		}
	}
}

func TestEnsureMinimumFailureDoesNotCount(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("users", 7, nil)
	backend.fail("users", 2, &api.ValidationError{Path: "/users", Code: "-1", Message: "email already exists"})

	res, err := newTestStep(backend).EnsureMinimum(context.Background(), simpleEntity("users", 10), NewRun(generator.NewWithSeed(1)))
	if err != nil {
		t.Fatalf("step should not fail on a single rejected create: %v", err)
	}

	if got := backend.postCount("users"); got != 3 {
		t.Errorf("expected 3 POSTs, got %d", got)
	}
	if res.Created != 2 || res.Failed != 1 || res.Attempted != 3 {
		t.Errorf("unexpected result counters %+v", res)
	}
	if res.Count() != 9 {
		t.Errorf("expected re-fetched count 9, got %d", res.Count())
	}
	if res.Failures[api.KindValidation] != 1 {
		t.Errorf("expected one validation failure, got %v", res.Failures)
	}
}

func TestEnsureMinimumTimeoutIsDistinct(t *testing.T) {
	backend := newFakeBackend()
	backend.fail("drivers", 1, &api.TransportError{Op: "POST", Path: "/drivers", Timeout: true, Err: context.DeadlineExceeded})
	backend.fail("drivers", 2, &api.ValidationError{Path: "/drivers", Message: "user_id must be a string"})

	res, err := newTestStep(backend).EnsureMinimum(context.Background(), simpleEntity("drivers", 3), NewRun(generator.NewWithSeed(1)))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Failures[api.KindTimeout] != 1 {
		t.Errorf("expected one timeout, got %v", res.Failures)
	}
	if res.Failures[api.KindValidation] != 1 {
		t.Errorf("expected one validation failure, got %v", res.Failures)
	}
	if res.Created != 1 {
		t.Errorf("expected 1 created, got %d", res.Created)
	}
}

func TestEnsureMinimumListErrorTreatedAsEmpty(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("promotions", 4, nil)
	backend.listErr["promotions"] = &api.ValidationError{Path: "/promotions", Message: "boom"}

	run := NewRun(generator.NewWithSeed(1))
	res, err := newTestStep(backend).EnsureMinimum(context.Background(), simpleEntity("promotions", 2), run)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Before != 0 {
		t.Errorf("expected failed list to count as empty, got %d", res.Before)
	}
	if backend.postCount("promotions") != 2 {
		t.Errorf("expected 2 creates, got %d", backend.postCount("promotions"))
	}
	// the refresh fails too, so the run keeps what this step created
	if res.Count() != 2 || len(run.Collection("promotions")) != 2 {
		t.Errorf("expected 2 records kept from creates, got %d", res.Count())
	}
}

func TestRestaurantsSkippedWithoutAddresses(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("restaurants", 1, nil)

	run := NewRun(generator.NewWithSeed(1))
	run.Set(Users, []api.Record{{"id": "u1", "first_name": "A", "last_name": "B"}})
	run.Set(FoodCategories, []api.Record{{"id": "c1"}})
	run.Set(AddressBooks, nil)

	var restaurants Entity
	for _, e := range DefaultEntities(Options{Minimum: 4}) {
		if e.Name == Restaurants {
			restaurants = e
		}
	}

	res, err := newTestStep(backend).EnsureMinimum(context.Background(), restaurants, run)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if backend.postCount("restaurants") != 0 {
		t.Errorf("expected no POSTs without addresses, got %d", backend.postCount("restaurants"))
	}
	if res.Skipped != 3 {
		t.Errorf("expected 3 skipped, got %d", res.Skipped)
	}
	if res.Count() != 1 {
		t.Errorf("expected existing restaurant to remain, got %d", res.Count())
	}
}

func TestCriticalEntityEmpty(t *testing.T) {
	backend := newFakeBackend()
	backend.fail("address_books", 1, &api.TransportError{Op: "POST", Path: "/address_books", Refused: true, Err: errors.New("refused")})

	e := simpleEntity("address_books", 1)
	e.Critical = true

	_, err := newTestStep(backend).EnsureMinimum(context.Background(), e, NewRun(generator.NewWithSeed(1)))
	if !errors.Is(err, ErrCriticalEmpty) {
		t.Fatalf("expected ErrCriticalEmpty, got %v", err)
	}
}

func TestEnsureMinimumStopsOnCancel(t *testing.T) {
	backend := newFakeBackend()
	ctx, cancel := context.WithCancel(context.Background())

	step := NewStep(backend, nil).WithSleep(func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	})

	_, err := step.EnsureMinimum(ctx, simpleEntity("orders", 5), NewRun(generator.NewWithSeed(1)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if backend.postCount("orders") != 1 {
		t.Errorf("expected a single POST before cancel, got %d", backend.postCount("orders"))
	}
}

func TestFillTopsUpPastMinimum(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("address_books", 1, nil)

	e := simpleEntity("address_books", 3)
	e.Fill = 5

	res, err := newTestStep(backend).EnsureMinimum(context.Background(), e, NewRun(generator.NewWithSeed(1)))
	if err != nil {
		t.Fatal(err)
	}
	if backend.postCount("address_books") != 4 || res.Count() != 5 {
		t.Errorf("expected 4 creates and 5 records, got %d and %d", backend.postCount("address_books"), res.Count())
	}
}
