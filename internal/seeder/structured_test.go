package seeder

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
)

// stubRegistrar stores registered accounts in the fake backend, the way the
// auth endpoints add them to /admin-fake and /customer-care.
type stubRegistrar struct {
	backend *fakeBackend

	mu       sync.Mutex
	roles    []string
	failures map[string]int // role -> remaining failures
}

func (r *stubRegistrar) Register(ctx context.Context, role string, i int) (api.Record, error) {
	r.mu.Lock()
	r.roles = append(r.roles, role)
	if r.failures[role] > 0 {
		r.failures[role]--
		r.mu.Unlock()
		return nil, &api.ValidationError{Path: "/auth/register", Message: "email already exists"}
	}
	r.mu.Unlock()

	path := "admin-fake"
	if role == generator.TypeCustomerCare {
		path = "customer-care"
	}
	return r.backend.Create(ctx, path, api.Record{"role": role})
}

func (r *stubRegistrar) registered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.roles...)
}

func withUsers(n int) *fakeBackend {
	backend := newFakeBackend()
	backend.seed("users", n, func(i int) api.Record {
		return api.Record{"user_type": []any{generator.TypeCustomer}, "first_name": "User"}
	})
	return backend
}

func TestStructuredOrder(t *testing.T) {
	o := NewOrchestrator(nil, nil, StructuredEntities(&stubRegistrar{}, Options{}))
	order, err := o.Order()
	if err != nil {
		t.Fatalf("Order failed: %v", err)
	}
	want := []string{
		AddressBooks, FoodCategories, Admins, CustomerCares, Users, Restaurants, Customers, FinanceRules,
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v\nwant  %v", order, want)
	}
}

func TestStructuredRunRegistersHierarchy(t *testing.T) {
	backend := withUsers(4)
	reg := &stubRegistrar{backend: backend}
	o := NewOrchestrator(newTestStep(backend), nil, StructuredEntities(reg, Options{}))
	run := NewRun(generator.NewWithSeed(7))

	if _, err := o.Run(context.Background(), run); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantRoles := []string{
		generator.RoleSuperAdmin,
		generator.RoleFinanceAdmin, generator.RoleFinanceAdmin,
		generator.RoleCompanionAdmin, generator.RoleCompanionAdmin,
		generator.TypeCustomerCare, generator.TypeCustomerCare, generator.TypeCustomerCare,
	}
	if got := reg.registered(); !reflect.DeepEqual(got, wantRoles) {
		t.Errorf("roles = %v\nwant    %v", got, wantRoles)
	}

	counts := map[string]int{
		"address_books":    5,
		"food-categories":  len(generator.SeedCategories),
		"restaurants-fake": 5,
		"customers-fake":   10,
		"finance-rules":    3,
		"users":            0,
	}
	for path, want := range counts {
		if got := backend.postCount(path); got != want {
			t.Errorf("%s: %d posts, want %d", path, got, want)
		}
	}

	// no user is a restaurant owner, so the existing users stand in
	users := map[string]bool{}
	for _, u := range run.Collection(Users) {
		users[u.ID()] = true
	}
	for _, r := range run.Collection(Restaurants) {
		if !users[r.String("owner_id")] {
			t.Errorf("restaurant %s owned by unknown user %q", r.ID(), r.String("owner_id"))
		}
	}

	super := findRole(run.Collection(Admins), generator.RoleSuperAdmin)
	if super == nil {
		t.Fatal("expected a super admin in the admins collection")
	}
	for _, rule := range run.Collection(FinanceRules) {
		if rule.String("created_by_id") != super.ID() {
			t.Errorf("finance rule %s has created_by_id %q", rule.ID(), rule.String("created_by_id"))
		}
	}
}

func TestStructuredFillTopsUpBelowMinimum(t *testing.T) {
	backend := withUsers(2)
	backend.seed("address_books", 2, nil)
	backend.seed("food-categories", 3, nil)
	reg := &stubRegistrar{backend: backend}

	o := NewOrchestrator(newTestStep(backend), nil, StructuredEntities(reg, Options{}))
	if _, err := o.Run(context.Background(), NewRun(generator.NewWithSeed(3))); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := backend.postCount("address_books"); got != 3 {
		t.Errorf("address_books: %d posts, want 3 to reach 5", got)
	}
	if got := backend.postCount("food-categories"); got != 0 {
		t.Errorf("food-categories at minimum should not be topped up, got %d posts", got)
	}
}

func TestStructuredSuperAdminFailureAborts(t *testing.T) {
	backend := withUsers(4)
	reg := &stubRegistrar{backend: backend, failures: map[string]int{generator.RoleSuperAdmin: 1}}
	o := NewOrchestrator(newTestStep(backend), nil, StructuredEntities(reg, Options{}))

	results, err := o.Run(context.Background(), NewRun(generator.NewWithSeed(1)))
	if !errors.Is(err, ErrAbort) {
		t.Fatalf("expected ErrAbort, got %v", err)
	}
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected the registration error to be kept, got %v", err)
	}
	if got := reg.registered(); !reflect.DeepEqual(got, []string{generator.RoleSuperAdmin}) {
		t.Errorf("expected a single super admin attempt, got %v", got)
	}
	if len(results) != 3 {
		t.Errorf("expected the run to stop at the admins step, got %d results", len(results))
	}
	if backend.postCount("restaurants-fake") != 0 {
		t.Error("later steps must not run after the super admin fails")
	}
}

func TestStructuredOtherAdminFailureContinues(t *testing.T) {
	backend := withUsers(4)
	reg := &stubRegistrar{backend: backend, failures: map[string]int{generator.RoleFinanceAdmin: 1}}
	o := NewOrchestrator(newTestStep(backend), nil, StructuredEntities(reg, Options{}))
	run := NewRun(generator.NewWithSeed(1))

	if _, err := o.Run(context.Background(), run); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := reg.registered()[:5]
	want := []string{
		generator.RoleSuperAdmin,
		generator.RoleFinanceAdmin, generator.RoleFinanceAdmin, generator.RoleFinanceAdmin,
		generator.RoleCompanionAdmin,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("admin roles = %v\nwant          %v", got, want)
	}
	if n := len(run.Collection(Admins)); n != 4 {
		t.Errorf("expected 4 admins after one failure, got %d", n)
	}
}

func TestStructuredRequiresExistingUsers(t *testing.T) {
	backend := newFakeBackend()
	reg := &stubRegistrar{backend: backend}
	o := NewOrchestrator(newTestStep(backend), nil, StructuredEntities(reg, Options{}))

	_, err := o.Run(context.Background(), NewRun(generator.NewWithSeed(1)))
	if !errors.Is(err, ErrCriticalEmpty) {
		t.Fatalf("expected ErrCriticalEmpty without users, got %v", err)
	}
	if backend.postCount("users") != 0 {
		t.Error("the structured run must not create users")
	}
	if backend.postCount("restaurants-fake") != 0 {
		t.Error("restaurants must not be created without users")
	}
}
