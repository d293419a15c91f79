package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
)

func TestOptionalFieldsAreOmittedNotNull(t *testing.T) {
	g := NewWithSeed(1)
	sawAvatar, sawMissing := false, false
	for i := 0; i < 200; i++ {
		rec := g.User()
		v, ok := rec["avatar"]
		if ok && v == nil {
			t.Fatal("avatar present but nil")
		}
		if ok {
			sawAvatar = true
		} else {
			sawMissing = true
		}
	}
	if !sawAvatar || !sawMissing {
		t.Errorf("expected avatar to be both present and absent across runs (present=%v missing=%v)", sawAvatar, sawMissing)
	}
}

func TestUserExplicitType(t *testing.T) {
	g := NewWithSeed(2)
	rec := g.User(TypeDriver)
	types, ok := rec["user_type"].([]string)
	if !ok || len(types) != 1 || types[0] != TypeDriver {
		t.Errorf("unexpected user_type %v", rec["user_type"])
	}
	for _, field := range []string{"first_name", "last_name", "email", "password"} {
		if rec.String(field) == "" {
			t.Errorf("expected %s to be set", field)
		}
	}
}

func TestOrderStatusWeights(t *testing.T) {
	g := NewWithSeed(3)
	counts := map[string]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		counts[g.OrderStatus()]++
	}
	if len(counts) != len(OrderStatusWeights) {
		t.Fatalf("expected %d statuses, got %v", len(OrderStatusWeights), counts)
	}
	completed := float64(counts["COMPLETED"]) / draws
	if completed < 0.65 || completed > 0.75 {
		t.Errorf("COMPLETED share %.3f outside expected range", completed)
	}
	if counts["CANCELLED"] > counts["PENDING"] {
		t.Errorf("CANCELLED drawn more often than PENDING: %v", counts)
	}
}

func TestRestaurantReferencesDependencies(t *testing.T) {
	g := NewWithSeed(4)
	owner := api.Record{"id": "owner-1", "first_name": "Linh", "last_name": "Tran", "email": "l@example.com"}
	address := api.Record{"id": "addr-9"}
	categories := []api.Record{{"id": "c1"}, {"id": "c2"}}

	rec := g.Restaurant(owner, address, categories)
	if rec["owner_id"] != "owner-1" || rec["address_id"] != "addr-9" {
		t.Errorf("unexpected references owner=%v address=%v", rec["owner_id"], rec["address_id"])
	}
	if rec["owner_name"] != "Linh Tran" {
		t.Errorf("unexpected owner_name %v", rec["owner_name"])
	}
	picked := rec["food_category_ids"].([]string)
	if len(picked) < 1 || len(picked) > 2 {
		t.Errorf("expected 1-2 category ids, got %v", picked)
	}
}

func TestCustomerAddressIDsAreStrings(t *testing.T) {
	g := NewWithSeed(5)
	user := api.Record{"id": float64(17), "first_name": "An", "last_name": "Le"}

	empty := g.Customer(user, nil)
	if ids := empty["address_ids"].([]string); len(ids) != 0 {
		t.Errorf("expected no address ids, got %v", ids)
	}
	if empty["user_id"] != "17" {
		t.Errorf("expected numeric id rendered as string, got %v", empty["user_id"])
	}
	if _, ok := empty["last_login"]; ok {
		t.Error("customer profile must not carry last_login")
	}

	addresses := []api.Record{{"id": float64(3)}}
	for i := 0; i < 50; i++ {
		ids := g.Customer(user, addresses)["address_ids"].([]string)
		if len(ids) > 1 || (len(ids) == 1 && ids[0] != "3") {
			t.Fatalf("unexpected address ids %v", ids)
		}
	}
}

func TestPickMenuItemsDistinct(t *testing.T) {
	g := NewWithSeed(6)
	for i := 0; i < 20; i++ {
		items := g.PickMenuItems(3, 5)
		if len(items) < 3 || len(items) > 5 {
			t.Fatalf("expected 3-5 items, got %d", len(items))
		}
		seen := map[string]bool{}
		for _, it := range items {
			if seen[it.Name] {
				t.Fatalf("duplicate item %s", it.Name)
			}
			seen[it.Name] = true
		}
	}
}

func TestLiveOrderWithoutDriver(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewWithSeed(7).WithClock(func() time.Time { return fixed })

	rec := g.LiveOrder(api.Record{"user_id": "cust-user"}, api.Record{"id": "r1"}, nil, 4)
	if _, ok := rec["driver_id"]; ok {
		t.Error("driver_id should be omitted without a driver")
	}
	if rec["customer_id"] != "cust-user" {
		t.Errorf("expected fallback to user_id, got %v", rec["customer_id"])
	}
	want := "ORD-" + "1740830400000" + "-4"
	if rec["order_number"] != want {
		t.Errorf("order_number = %v, want %s", rec["order_number"], want)
	}
}

func TestChartMetricsPeriod(t *testing.T) {
	g := NewWithSeed(8)
	now := time.Date(2025, 6, 15, 17, 30, 0, 0, time.UTC)
	rec := g.ChartMetrics(now)

	start := rec["period_start"].(int64)
	end := rec["period_end"].(int64)
	if start != time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).Unix() {
		t.Errorf("unexpected period_start %d", start)
	}
	if end-start != 24*3600-1 {
		t.Errorf("unexpected period length %d", end-start)
	}
	if !strings.HasPrefix(rec.String("id"), "FF_ADMIN_CHART_") {
		t.Errorf("unexpected id %s", rec.String("id"))
	}
	gross := rec["gross_income"].([]map[string]any)
	if len(gross) != 30 {
		t.Fatalf("expected 30 days, got %d", len(gross))
	}
	if gross[29]["date"] != "2025-06-15" || gross[0]["date"] != "2025-05-17" {
		t.Errorf("unexpected date range %v..%v", gross[0]["date"], gross[29]["date"])
	}
}

func TestAdminPermissionsPerRole(t *testing.T) {
	g := NewWithSeed(9)
	user := api.Record{"id": "u1", "first_name": "Super", "last_name": "Admin"}

	super := g.Admin(user, RoleSuperAdmin, "")
	if _, ok := super["created_by_id"]; ok {
		t.Error("created_by_id should be omitted for the first super admin")
	}
	if got := len(super["permissions"].([]string)); got != 10 {
		t.Errorf("expected 10 super admin permissions, got %d", got)
	}

	finance := g.Admin(user, RoleFinanceAdmin, "sa-1")
	if finance["created_by_id"] != "sa-1" {
		t.Errorf("unexpected created_by_id %v", finance["created_by_id"])
	}
}

func TestVariantPriceFollowsMenuItem(t *testing.T) {
	g := NewWithSeed(10)
	for i := 0; i < 50; i++ {
		rec := g.Variant(api.Record{"id": "m1", "price": float64(100)})
		price := rec["price"].(float64)
		if price < 80 || price > 150 {
			t.Fatalf("variant price %.2f outside 80-150", price)
		}
	}
}
