package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
)

// Registrar creates accounts that can sign in, through the auth endpoints.
type Registrar interface {
	Register(ctx context.Context, role string, i int) (api.Record, error)
}

// StructuredEntities is the strictly ordered catalog whose admins and
// customer care staff are registered as signable accounts.
func StructuredEntities(reg Registrar, opts Options) []Entity {
	opts = opts.withDefaults()

	// Every other account is created by the super admin, so failing to
	// register it ends the run.
	register := func(role func(run *Run) string) CreateFunc {
		return func(ctx context.Context, c Collections, run *Run, i int) (api.Record, error) {
			r := role(run)
			rec, err := reg.Register(ctx, r, i)
			if err != nil && r == generator.RoleSuperAdmin {
				return nil, fmt.Errorf("register %s: %w: %w", r, ErrAbort, err)
			}
			return rec, err
		}
	}

	return []Entity{
		{
			Name: AddressBooks, Path: "address_books",
			Minimum: 3, Fill: 5, Delay: 200 * time.Millisecond, Critical: true,
			Generate: func(run *Run, i int) (api.Record, bool) {
				return run.Gen.AddressBook(i), true
			},
		},
		{
			Name: FoodCategories, Path: "food-categories",
			Minimum: 3, Fill: len(generator.SeedCategories), Delay: 200 * time.Millisecond, Critical: true,
			Generate: func(run *Run, i int) (api.Record, bool) {
				return run.Gen.SeedFoodCategory(generator.SeedCategories[i%len(generator.SeedCategories)]), true
			},
		},
		{
			Name: Admins, ListPath: "admin-fake",
			Minimum: 5, Delay: time.Second, Critical: true,
			Create: register(func(run *Run) string {
				return nextAdminRole(run.Collection(Admins))
			}),
		},
		{
			Name: CustomerCares, ListPath: "customer-care",
			Minimum: 2, Fill: 3, Delay: time.Second,
			Create: register(func(*Run) string { return generator.TypeCustomerCare }),
		},
		{
			// Existing users only: restaurants and customers are built on top
			// of them and the run stops when there are none.
			Name: Users, Path: "users",
			Critical: true,
		},
		{
			Name: Restaurants, Path: "restaurants-fake",
			Minimum: 5, Delay: 500 * time.Millisecond,
			DependsOn: []string{Users, AddressBooks, FoodCategories},
			Generate: func(run *Run, i int) (api.Record, bool) {
				owners := usersOfType(run.Collection(Users), generator.TypeRestaurantOwner, 8)
				addresses := run.Collection(AddressBooks)
				if len(owners) == 0 || len(addresses) == 0 {
					return nil, false
				}
				categories := run.Collection(FoodCategories)
				if len(categories) > 2 {
					categories = categories[:2]
				}
				return run.Gen.Restaurant(owners[i%len(owners)], addresses[i%len(addresses)], categories), true
			},
		},
		{
			Name: Customers, Path: "customers-fake",
			Minimum: opts.Minimum, Delay: 300 * time.Millisecond,
			DependsOn: []string{Users, AddressBooks, Restaurants},
			Generate: func(run *Run, i int) (api.Record, bool) {
				users := usersOfType(run.Collection(Users), generator.TypeCustomer, 15)
				if len(users) == 0 {
					return nil, false
				}
				return run.Gen.Customer(users[i%len(users)], run.Collection(AddressBooks)), true
			},
		},
		{
			Name: FinanceRules, Path: "finance-rules",
			Minimum: 2, Fill: 3, Delay: 200 * time.Millisecond,
			DependsOn: []string{Admins},
			Generate: func(run *Run, i int) (api.Record, bool) {
				super := findRole(run.Collection(Admins), generator.RoleSuperAdmin)
				if super == nil {
					return nil, false
				}
				return run.Gen.FinanceRule(super.ID()), true
			},
		},
	}
}

// usersOfType returns the users carrying userType, or the first limit users
// when none do.
func usersOfType(users []api.Record, userType string, limit int) []api.Record {
	var out []api.Record
	for _, u := range users {
		if u.HasString("user_type", userType) {
			out = append(out, u)
		}
	}
	if len(out) > 0 {
		return out
	}
	if len(users) > limit {
		users = users[:limit]
	}
	return users
}
