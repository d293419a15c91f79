package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
)

// Entity names. They double as collection keys in a Run.
const (
	AddressBooks     = "address_books"
	FoodCategories   = "food-categories"
	Admins           = "admins"
	FinanceRules     = "finance-rules"
	Users            = "users"
	Restaurants      = "restaurants"
	MenuItems        = "menu-items"
	MenuItemVariants = "menu-item-variants"
	Promotions       = "promotions"
	Drivers          = "drivers"
	Customers        = "customers"
	CustomerCares    = "customer-cares"
	Orders           = "orders"
)

// Options are the catalog wide defaults.
type Options struct {
	Minimum int
	Delay   time.Duration
}

func (o Options) withDefaults() Options {
	if o.Minimum <= 0 {
		o.Minimum = 10
	}
	if o.Delay <= 0 {
		o.Delay = 100 * time.Millisecond
	}
	return o
}

// adminQuota is the hierarchy the admins step fills, in creation order.
var adminQuota = []struct {
	Role  string
	Count int
}{
	{generator.RoleSuperAdmin, 1},
	{generator.RoleFinanceAdmin, 2},
	{generator.RoleCompanionAdmin, 2},
}

// DefaultEntities is the full thirteen step catalog.
func DefaultEntities(opts Options) []Entity {
	opts = opts.withDefaults()
	slow := 2 * opts.Delay

	return []Entity{
		{
			Name: AddressBooks, Path: "address_books",
			Minimum: opts.Minimum, Delay: opts.Delay, Critical: true,
			Generate: func(run *Run, i int) (api.Record, bool) {
				return run.Gen.AddressBook(i), true
			},
		},
		{
			Name: FoodCategories, Path: "food-categories",
			Minimum: opts.Minimum, Delay: opts.Delay,
			Generate: func(run *Run, i int) (api.Record, bool) {
				return run.Gen.FoodCategory(), true
			},
		},
		{
			Name: Admins, Path: "admin-fake",
			Minimum: 5, Delay: slow, Critical: true,
			Create: createAdmin,
		},
		{
			Name: FinanceRules, Path: "finance-rules",
			Minimum: 3, Delay: opts.Delay,
			DependsOn: []string{Admins},
			Generate: func(run *Run, i int) (api.Record, bool) {
				super := findRole(run.Collection(Admins), generator.RoleSuperAdmin)
				if super == nil {
					return nil, false
				}
				return run.Gen.FinanceRule(super.ID()), true
			},
		},
		{
			Name: Users, Path: "users",
			Minimum: opts.Minimum, Delay: opts.Delay,
			Generate: func(run *Run, i int) (api.Record, bool) {
				return run.Gen.User(), true
			},
		},
		{
			Name: Restaurants, Path: "restaurants",
			Minimum: opts.Minimum, Delay: opts.Delay,
			DependsOn: []string{Users, AddressBooks, FoodCategories},
			Generate: func(run *Run, i int) (api.Record, bool) {
				users, addresses, categories := run.Collection(Users), run.Collection(AddressBooks), run.Collection(FoodCategories)
				if len(users) == 0 || len(addresses) == 0 || len(categories) == 0 {
					return nil, false
				}
				return run.Gen.Restaurant(pick(run, users), pick(run, addresses), categories), true
			},
		},
		{
			Name: MenuItems, Path: "menu-items",
			Minimum: opts.Minimum, Delay: opts.Delay,
			DependsOn: []string{Restaurants, FoodCategories},
			Generate: func(run *Run, i int) (api.Record, bool) {
				restaurants, categories := run.Collection(Restaurants), run.Collection(FoodCategories)
				if len(restaurants) == 0 || len(categories) == 0 {
					return nil, false
				}
				return run.Gen.MenuItem(pick(run, restaurants), pick(run, categories)), true
			},
		},
		{
			Name: MenuItemVariants, Path: "menu-item-variants",
			Minimum: opts.Minimum, Delay: opts.Delay,
			DependsOn: []string{MenuItems},
			Generate: func(run *Run, i int) (api.Record, bool) {
				items := run.Collection(MenuItems)
				if len(items) == 0 {
					return nil, false
				}
				return run.Gen.Variant(pick(run, items)), true
			},
		},
		{
			Name: Promotions, Path: "promotions",
			Minimum: opts.Minimum, Delay: opts.Delay,
			DependsOn: []string{FoodCategories},
			Generate: func(run *Run, i int) (api.Record, bool) {
				categories := run.Collection(FoodCategories)
				if len(categories) == 0 {
					return nil, false
				}
				return run.Gen.Promotion(categories), true
			},
		},
		{
			Name: Drivers, Path: "drivers",
			Minimum: opts.Minimum, Delay: opts.Delay,
			DependsOn: []string{Users},
			Generate: func(run *Run, i int) (api.Record, bool) {
				users := run.Collection(Users)
				if len(users) == 0 {
					return nil, false
				}
				return run.Gen.Driver(pick(run, users)), true
			},
		},
		{
			Name: Customers, Path: "customers",
			Minimum: opts.Minimum, Delay: slow,
			DependsOn: []string{Users, AddressBooks},
			Create: withUser("customers", func(run *Run) api.Record {
				return run.Gen.User(generator.TypeCustomer)
			}, func(run *Run, user api.Record) api.Record {
				return run.Gen.Customer(user, run.Collection(AddressBooks))
			}),
		},
		{
			Name: CustomerCares, Path: "customer-care",
			Minimum: opts.Minimum, Delay: slow,
			DependsOn: []string{Users},
			Create: withUser("customer-care", func(run *Run) api.Record {
				return run.Gen.CustomerCareUser()
			}, func(run *Run, user api.Record) api.Record {
				return run.Gen.CustomerCare(user)
			}),
		},
		{
			Name: Orders, Path: "orders",
			Minimum: opts.Minimum, Delay: opts.Delay,
			DependsOn: []string{Customers, Restaurants, Drivers, AddressBooks},
			Generate: func(run *Run, i int) (api.Record, bool) {
				customers, restaurants := run.Collection(Customers), run.Collection(Restaurants)
				drivers, addresses := run.Collection(Drivers), run.Collection(AddressBooks)
				if len(customers) == 0 || len(restaurants) == 0 || len(drivers) == 0 || len(addresses) == 0 {
					return nil, false
				}
				return run.Gen.Order(pick(run, customers), pick(run, restaurants), pick(run, drivers),
					pick(run, addresses), pick(run, addresses)), true
			},
		},
	}
}

// withUser creates a /users account first and then the profile at path
// that points to it.
func withUser(path string, user func(*Run) api.Record, profile func(*Run, api.Record) api.Record) CreateFunc {
	return func(ctx context.Context, c Collections, run *Run, i int) (api.Record, error) {
		created, err := c.Create(ctx, "users", user(run))
		if err != nil {
			return nil, fmt.Errorf("create user for %s: %w", path, err)
		}
		if created.ID() == "" {
			return nil, fmt.Errorf("create user for %s: response carried no id", path)
		}
		run.Append(Users, created)
		return c.Create(ctx, path, profile(run, created))
	}
}

// createAdmin fills adminQuota in order: a super admin first, then the
// finance and companion admins it creates.
func createAdmin(ctx context.Context, c Collections, run *Run, i int) (api.Record, error) {
	admins := run.Collection(Admins)
	role := nextAdminRole(admins)

	createdBy := ""
	if super := findRole(admins, generator.RoleSuperAdmin); super != nil {
		createdBy = super.ID()
	}

	return withUser("admin-fake", func(run *Run) api.Record {
		return run.Gen.AdminUser(role)
	}, func(run *Run, user api.Record) api.Record {
		return run.Gen.Admin(user, role, createdBy)
	})(ctx, c, run, i)
}

func nextAdminRole(admins []api.Record) string {
	for _, q := range adminQuota {
		n := 0
		for _, a := range admins {
			if a.String("role") == q.Role {
				n++
			}
		}
		if n < q.Count {
			return q.Role
		}
	}
	return adminQuota[len(adminQuota)-1].Role
}

func findRole(admins []api.Record, role string) api.Record {
	for _, a := range admins {
		if a.String("role") == role {
			return a
		}
	}
	return nil
}

func pick(run *Run, records []api.Record) api.Record {
	return run.Gen.Pick(records)
}
