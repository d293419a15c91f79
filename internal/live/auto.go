package live

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
)

const minAddresses = 5

// countTables are the collections printed after every auto cycle.
var countTables = []struct{ Name, Path string }{
	{"Users", "users"},
	{"Customers", "customers"},
	{"Drivers", "drivers"},
	{"Restaurants", "restaurants"},
	{"Address Books", "address_books"},
}

// Auto adds one restaurant, one driver and one customer per cycle.
type Auto struct {
	client Client
	gen    *generator.Generator
	log    *report.Logger
	delay  time.Duration

	mu          sync.Mutex
	users       []api.Record
	addresses   []api.Record
	categories  []api.Record
	restaurants []api.Record
}

func NewAuto(client Client, gen *generator.Generator, log *report.Logger) *Auto {
	if gen == nil {
		gen = generator.New()
	}
	return &Auto{client: client, gen: gen, log: log, delay: 100 * time.Millisecond}
}

// WithDelay sets the pause between consecutive creates inside one job.
func (a *Auto) WithDelay(d time.Duration) *Auto {
	a.delay = d
	return a
}

// Init loads the collections and makes sure enough addresses exist for
// restaurants to point at.
func (a *Auto) Init(ctx context.Context) error {
	a.Refresh(ctx)
	return a.ensureAddresses(ctx)
}

// Refresh reloads the cached collections. A failed list keeps the old copy.
func (a *Auto) Refresh(ctx context.Context) {
	load := func(path string, into *[]api.Record) {
		records, err := a.client.List(ctx, path)
		if err != nil {
			a.log.Failure("refresh "+path, err)
			return
		}
		a.mu.Lock()
		*into = records
		a.mu.Unlock()
	}
	load("users", &a.users)
	load("address_books", &a.addresses)
	load("food-categories", &a.categories)
	load("restaurants", &a.restaurants)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.log.Info("📊 Cache: %d users, %d addresses, %d categories, %d restaurants",
		len(a.users), len(a.addresses), len(a.categories), len(a.restaurants))
	if len(a.categories) == 0 {
		a.log.Warn("No food categories found, menu items may be rejected")
	}
}

func (a *Auto) ensureAddresses(ctx context.Context) error {
	a.mu.Lock()
	needed := minAddresses - len(a.addresses)
	a.mu.Unlock()
	if needed <= 0 {
		return nil
	}

	a.log.Info("📍 Creating %d addresses...", needed)
	for i := 0; i < needed; i++ {
		if i > 0 {
			if err := sleepCtx(ctx, a.delay); err != nil {
				return err
			}
		}
		body := a.gen.AddressBook(i)
		created, err := a.client.Create(ctx, "address_books", body)
		if err != nil {
			a.log.Failure("create address", err)
			continue
		}
		a.mu.Lock()
		a.addresses = append(a.addresses, created)
		a.mu.Unlock()
		a.log.Success("Created address: %s", body.String("street"))
	}
	return nil
}

// Cycle is the auto generator's job.
func (a *Auto) Cycle(ctx context.Context) error {
	a.log.Info("\n🔄 [%s] Starting generation cycle...", time.Now().Format(time.TimeOnly))
	a.Refresh(ctx)
	if err := a.ensureAddresses(ctx); err != nil {
		return err
	}

	jobs := []func(context.Context) error{a.Restaurant, a.Driver, a.Customer}
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = job(ctx)
		}()
	}
	wg.Wait()

	a.PrintCounts(ctx)
	return errors.Join(errs...)
}

func (a *Auto) owner(ctx context.Context) (api.Record, error) {
	a.mu.Lock()
	for _, u := range a.users {
		if u.HasString("user_type", generator.TypeRestaurantOwner) {
			a.mu.Unlock()
			return u, nil
		}
	}
	a.mu.Unlock()

	a.log.Info("👤 Creating restaurant owner user...")
	created, err := a.createUser(ctx, generator.TypeRestaurantOwner)
	if err != nil {
		return nil, fmt.Errorf("create restaurant owner: %w", err)
	}
	return created, nil
}

func (a *Auto) createUser(ctx context.Context, userType string) (api.Record, error) {
	body := a.gen.User(userType)
	body["is_verified"] = true
	created, err := a.client.Create(ctx, "users", body)
	if err != nil {
		return nil, err
	}
	if created.ID() == "" {
		return nil, fmt.Errorf("user response carried no id")
	}
	for _, k := range []string{"first_name", "last_name", "email", "phone", "user_type"} {
		if _, ok := created[k]; !ok {
			created[k] = body[k]
		}
	}
	a.mu.Lock()
	a.users = append(a.users, created)
	a.mu.Unlock()
	return created, nil
}

// Restaurant creates a restaurant and a few canonical menu items for it.
func (a *Auto) Restaurant(ctx context.Context) error {
	a.log.Info("🏪 Generating restaurant...")

	a.mu.Lock()
	address := a.gen.Pick(a.addresses)
	categories := append([]api.Record(nil), a.categories...)
	a.mu.Unlock()
	if address == nil {
		a.log.Warn("No addresses available, skipping restaurant")
		return nil
	}

	owner, err := a.owner(ctx)
	if err != nil {
		a.log.Failure("restaurant owner", err)
		return err
	}

	body := a.gen.Restaurant(owner, address, categories)
	created, err := a.client.Create(ctx, "restaurants", body)
	if err != nil {
		a.log.Failure("create restaurant", err)
		return err
	}
	a.mu.Lock()
	a.restaurants = append(a.restaurants, created)
	a.mu.Unlock()
	a.log.Success("Created restaurant: %s", body.String("restaurant_name"))

	if created.ID() == "" {
		return nil
	}
	return a.menuItems(ctx, created.ID())
}

func (a *Auto) menuItems(ctx context.Context, restaurantID string) error {
	a.log.Info("🍽️ Creating menu items...")
	path := "restaurants/" + restaurantID + "/menu-items"
	for i, item := range a.gen.PickMenuItems(3, 5) {
		if i > 0 {
			if err := sleepCtx(ctx, a.delay); err != nil {
				return err
			}
		}
		if _, err := a.client.Create(ctx, path, a.gen.HardcodedMenuItem(restaurantID, item)); err != nil {
			a.log.Failure("  add menu item "+item.Name, err)
			continue
		}
		a.log.Success("  Added menu item: %s", item.Name)
	}
	return nil
}

// Driver creates a driver user and its profile.
func (a *Auto) Driver(ctx context.Context) error {
	a.log.Info("🚗 Generating driver...")
	user, err := a.createUser(ctx, generator.TypeDriver)
	if err != nil {
		a.log.Failure("create driver user", err)
		return err
	}
	if _, err := a.client.Create(ctx, "drivers", a.gen.Driver(user)); err != nil {
		a.log.Failure("create driver profile", err)
		return err
	}
	a.log.Success("Created driver profile: %s", user.DisplayName())
	return nil
}

// Customer creates a customer user and a minimal profile.
func (a *Auto) Customer(ctx context.Context) error {
	a.log.Info("👥 Generating customer...")
	user, err := a.createUser(ctx, generator.TypeCustomer)
	if err != nil {
		a.log.Failure("create customer user", err)
		return err
	}
	if _, err := a.client.Create(ctx, "customers", a.gen.Customer(user, nil)); err != nil {
		a.log.Failure("create customer profile", err)
		return err
	}
	a.log.Success("Created customer profile: %s", user.DisplayName())
	return nil
}

// CustomerCare creates a customer care user and its profile.
func (a *Auto) CustomerCare(ctx context.Context) error {
	a.log.Info("📞 Generating customer care representative...")
	user, err := a.client.Create(ctx, "users", a.gen.CustomerCareUser())
	if err != nil {
		a.log.Failure("create customer care user", err)
		return err
	}
	if user.ID() == "" {
		return fmt.Errorf("customer care user response carried no id")
	}
	if _, err := a.client.Create(ctx, "customer-care", a.gen.CustomerCare(user)); err != nil {
		a.log.Failure("create customer care", err)
		return err
	}
	a.log.Success("Created customer care: %s", user.DisplayName())
	return nil
}

// Counts lists the tables shown after each cycle.
func (a *Auto) Counts(ctx context.Context) []report.Row {
	rows := make([]report.Row, 0, len(countTables))
	for _, t := range countTables {
		records, err := a.client.List(ctx, t.Path)
		rows = append(rows, report.Row{Name: t.Name, Count: len(records), Err: err})
	}
	return rows
}

func (a *Auto) PrintCounts(ctx context.Context) {
	a.log.Table("Current Database Counts", a.Counts(ctx))
}
