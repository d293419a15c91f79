package generator

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// OrderStatus draws a status using OrderStatusWeights.
func (g *Generator) OrderStatus() string {
	total := 0
	for _, w := range OrderStatusWeights {
		total += w.Weight
	}
	n := g.intn(total)
	for _, w := range OrderStatusWeights {
		if n < w.Weight {
			return w.Status
		}
		n -= w.Weight
	}
	return OrderStatusWeights[0].Status
}

// LiveOrder builds an order for the live orders generator. driver may be nil,
// in which case driver_id is left out.
func (g *Generator) LiveOrder(customer, restaurant, driver api.Record, seq int) api.Record {
	now := g.now()
	customerID := customer.ID()
	if customerID == "" {
		customerID = customer.String("user_id")
	}

	items := make([]map[string]any, g.between(1, 4))
	for i := range items {
		items[i] = map[string]any{
			"item_name":            g.pick(orderItemNames),
			"quantity":             g.between(1, 3),
			"unit_price":           g.amount(8.99, 24.99, 2),
			"special_instructions": g.optionalSentence(0.2),
		}
	}

	rec := api.Record{
		"order_number":  fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), seq),
		"customer_id":   customerID,
		"restaurant_id": restaurant.ID(),
		"status":        g.OrderStatus(),
		"total_amount":  g.amount(15.99, 89.99, 2),
		"delivery_fee":  g.amount(2.99, 5.99, 2),
		"service_fee":   g.amount(1.50, 3.50, 2),
		"tax_amount":    g.amount(1.20, 8.99, 2),
		"order_items":   items,
		"delivery_address": map[string]any{
			"street":      g.street(),
			"city":        g.pick(cities),
			"postal_code": fmt.Sprint(g.between(10000, 99999)),
			"coordinates": g.location(),
		},
		"estimated_delivery_time": g.between(20, 60),
		"notes":                   g.optionalSentence(0.3),
		"payment_method":          g.pick(livePayments),
		"created_at":              now.Unix(),
		"updated_at":              now.Unix(),
	}
	if driver != nil && driver.ID() != "" {
		rec["driver_id"] = driver.ID()
	}
	return rec
}

func (g *Generator) optionalSentence(p float64) string {
	if g.chance(p) {
		return faker.Sentence()
	}
	return ""
}

var (
	fakeOrderStatuses = []string{
		"PENDING", "RESTAURANT_ACCEPTED", "PREPARING", "IN_PROGRESS", "READY_FOR_PICKUP",
		"RESTAURANT_PICKUP", "DISPATCHED", "EN_ROUTE", "OUT_FOR_DELIVERY", "DELIVERED", "DELIVERY_FAILED",
	}
	fakePaymentMethods = []string{"COD", "FWallet"}
	fakeTracking       = []string{
		"ORDER_PLACED", "ORDER_RECEIVED", "PREPARING", "IN_PROGRESS", "RESTAURANT_PICKUP",
		"DISPATCHED", "EN_ROUTE", "OUT_FOR_DELIVERY", "DELIVERY_FAILED", "DELIVERED",
	}
)

// FakeOrder builds an order with random ids, used by the auxiliary service
// to exercise the orders endpoint without prepared data.
func (g *Generator) FakeOrder() api.Record {
	now := g.now()
	items := make([]map[string]any, g.between(1, 3))
	for i := range items {
		item := map[string]any{
			"item_id":                uuid.NewString(),
			"variant_id":             uuid.NewString(),
			"name":                   g.pick(dishAdjectives) + " " + g.pick(dishNouns),
			"quantity":               g.between(1, 5),
			"price_at_time_of_order": g.amount(1, 1000, 2),
		}
		if g.chance(0.5) {
			item["price_after_applied_promotion"] = g.amount(1, 50, 2)
		}
		items[i] = item
	}

	orderTime := now.Add(-time.Duration(g.intn(7*24)) * time.Hour)
	rec := api.Record{
		"customer_id":         uuid.NewString(),
		"restaurant_id":       uuid.NewString(),
		"distance":            g.amount(0.5, 10, 1),
		"status":              g.pick(fakeOrderStatuses),
		"total_amount":        g.amount(100, 1000, 2),
		"delivery_fee":        g.amount(10, 50, 2),
		"service_fee":         g.amount(5, 20, 2),
		"payment_status":      g.pick(paymentStatuses),
		"payment_method":      g.pick(fakePaymentMethods),
		"customer_location":   g.coordinates(),
		"restaurant_location": g.coordinates(),
		"order_items":         items,
		"order_time":          orderTime.UnixMilli(),
		"delivery_time":       orderTime.Add(30 * time.Minute).UnixMilli(),
		"tracking_info":       g.pick(fakeTracking),
	}
	if g.chance(0.3) {
		rec["customer_note"] = faker.Sentence()
	}
	if g.chance(0.2) {
		rec["restaurant_note"] = faker.Sentence()
	}
	if g.chance(0.5) {
		rec["promotion_applied"] = uuid.NewString()
	}
	return rec
}

func (g *Generator) coordinates() string {
	loc := g.location()
	return fmt.Sprintf("%v,%v", loc["lat"], loc["lng"])
}

// CustomerSignup builds a standalone customer signup with a random user id.
func (g *Generator) CustomerSignup() api.Record {
	now := g.unix()
	rec := api.Record{
		"user_id":                 uuid.NewString(),
		"first_name":              faker.FirstName(),
		"last_name":               faker.LastName(),
		"email":                   faker.Email(),
		"password":                faker.Password(),
		"phone":                   faker.Phonenumber(),
		"address":                 g.street(),
		"address_ids":             []string{},
		"preferred_category_ids":  []string{},
		"favorite_restaurant_ids": []string{},
		"favorite_items":          []string{},
		"support_tickets":         []string{},
		"app_preferences":         map[string]any{"theme": g.pick([]string{"LIGHT", "DARK", "SYSTEM"})},
		"restaurant_history":      []string{},
		"created_at":              now,
		"updated_at":              now,
	}
	g.maybeImage(rec, "avatar", 0.7)
	return rec
}

// DriverSignup builds a standalone driver signup with a random user id.
func (g *Generator) DriverSignup() api.Record {
	user := api.Record{
		"id":         uuid.NewString(),
		"first_name": faker.FirstName(),
		"last_name":  faker.LastName(),
		"email":      faker.Email(),
		"phone":      faker.Phonenumber(),
	}
	rec := g.Driver(user)
	rec["email"] = user["email"]
	rec["phone"] = user["phone"]
	rec["password"] = faker.Password()
	rec["available_for_work"] = g.chance(0.7)
	rec["active_points"] = g.between(0, 100)
	rec["rating"] = map[string]any{
		"average_rating": g.amount(3, 5, 1),
		"review_count":   g.between(0, 50),
	}
	return rec
}

// ChartMetrics builds one daily admin chart row for the day containing now,
// with 30 days of history in the series fields.
func (g *Generator) ChartMetrics(now time.Time) api.Record {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	const days = 30

	dates := make([]string, days)
	for i := 0; i < days; i++ {
		dates[i] = dayStart.AddDate(0, 0, i-(days-1)).Format("2006-01-02")
	}

	series := func(base, variance float64) []map[string]any {
		out := make([]map[string]any, days)
		for i, d := range dates {
			v := int(base + (g.float()-0.5)*2*base*variance)
			out[i] = map[string]any{"date": d, "total_amount": max(0, v)}
		}
		return out
	}

	orderStats := make([]map[string]any, days)
	growth := make([]map[string]any, days)
	for i, d := range dates {
		orderStats[i] = map[string]any{
			"date":      d,
			"completed": g.between(20, 69),
			"cancelled": g.between(2, 11),
		}
		growth[i] = map[string]any{
			"date":          d,
			"driver":        g.between(5, 19),
			"restaurant":    g.between(2, 9),
			"customer":      g.between(50, 149),
			"customer_care": g.between(1, 3),
		}
	}

	stamp := now.Format(time.RFC3339)
	return api.Record{
		"id":                            "FF_ADMIN_CHART_" + uuid.NewString(),
		"period_type":                   "daily",
		"period_start":                  dayStart.Unix(),
		"period_end":                    dayStart.Unix() + 24*3600 - 1,
		"total_users":                   g.between(600, 799),
		"sold_promotions":               g.between(5, 24),
		"net_income":                    series(800, 0.4),
		"gross_income":                  series(1200, 0.3),
		"order_stats":                   orderStats,
		"user_growth_rate":              growth,
		"gross_from_promotion":          g.amount(1000, 3000, 2),
		"average_customer_satisfaction": g.amount(4, 5, 1),
		"average_delivery_time":         g.between(30, 39) * 60,
		"order_cancellation_rate":       g.amount(0.05, 0.15, 3),
		"order_volume":                  g.between(180, 229),
		"churn_rate":                    g.amount(0.02, 0.07, 3),
		"created_at":                    stamp,
		"updated_at":                    stamp,
	}
}

// Signup builds a standalone signup for the auxiliary user job: a customer
// seven times out of ten, a driver otherwise. It returns the path to post to.
func (g *Generator) Signup() (string, api.Record) {
	if g.chance(0.7) {
		return "customers", g.CustomerSignup()
	}
	return "drivers", g.DriverSignup()
}
