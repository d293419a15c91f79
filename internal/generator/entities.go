package generator

import (
	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

func (g *Generator) AddressBook(i int) api.Record {
	now := g.unix()
	return api.Record{
		"street":      g.street(),
		"city":        g.pick(cities),
		"nationality": g.pick(nationalities),
		"is_default":  i == 0,
		"postal_code": g.between(10000, 99999),
		"location":    g.location(),
		"title":       g.pick(addressTitles),
		"created_at":  now,
		"updated_at":  now,
	}
}

func (g *Generator) FoodCategory() api.Record {
	rec := api.Record{
		"name":        g.pick(CategoryNames),
		"description": faker.Sentence(),
	}
	g.maybeImage(rec, "avatar", 0.7)
	return rec
}

// SeedFoodCategory builds one of the fixed structured-populator categories.
func (g *Generator) SeedFoodCategory(c SeedCategory) api.Record {
	return api.Record{
		"name":        c.Name,
		"description": c.Description,
		"avatar":      g.image(),
	}
}

// User builds a /users body. Without explicit types one is drawn with
// weights customer 60, driver 20, restaurant owner 10, customer care 10.
func (g *Generator) User(types ...string) api.Record {
	if len(types) == 0 {
		switch r := g.float(); {
		case r < 0.6:
			types = []string{TypeCustomer}
		case r < 0.8:
			types = []string{TypeDriver}
		case r < 0.9:
			types = []string{TypeRestaurantOwner}
		default:
			types = []string{TypeCustomerCare}
		}
	}
	rec := api.Record{
		"first_name":  faker.FirstName(),
		"last_name":   faker.LastName(),
		"email":       faker.Email(),
		"password":    faker.Password(),
		"phone":       faker.Phonenumber(),
		"user_type":   types,
		"address":     []string{},
		"is_verified": g.chance(0.8),
	}
	g.maybeImage(rec, "avatar", 0.7)
	return rec
}

// AdminUser builds the user account backing an admin of the given role.
func (g *Generator) AdminUser(role string) api.Record {
	rec := g.User(role)
	rec["is_verified"] = true
	return rec
}

// Admin builds an /admin-fake body for user. createdBy is omitted when empty.
func (g *Generator) Admin(user api.Record, role, createdBy string) api.Record {
	rec := api.Record{
		"user_id":                user.ID(),
		"role":                   role,
		"permissions":            append([]string(nil), RolePermissions[role]...),
		"first_name":             user.String("first_name"),
		"last_name":              user.String("last_name"),
		"status":                 "ACTIVE",
		"assigned_restaurants":   []string{},
		"assigned_drivers":       []string{},
		"assigned_customer_care": []string{},
	}
	if createdBy != "" {
		rec["created_by_id"] = createdBy
	}
	g.maybeImage(rec, "avatar", 0.7)
	return rec
}

func (g *Generator) FinanceRule(createdBy string) api.Record {
	return api.Record{
		"driver_fixed_wage": map[string]any{
			"0-1km": g.amount(5, 10, 2),
			"1-2km": g.amount(8, 15, 2),
			"2-3km": g.amount(12, 20, 2),
			"4-5km": g.amount(18, 25, 2),
			">5km":  "negotiable",
		},
		"customer_care_hourly_wage": g.amount(15, 25, 2),
		"app_service_fee":           g.amount(2, 5, 2),
		"restaurant_commission":     g.amount(8, 15, 2),
		"created_by_id":             createdBy,
		"description":               faker.Sentence(),
	}
}

func (g *Generator) openingHours() map[string]any {
	hours := make(map[string]any, len(weekdays))
	for _, day := range weekdays {
		hours[day] = map[string]any{
			"from": g.between(7, 11) * 3600,
			"to":   g.between(19, 23) * 3600,
		}
	}
	return hours
}

// Restaurant builds a /restaurants body owned by owner at address.
func (g *Generator) Restaurant(owner, address api.Record, categories []api.Record) api.Record {
	first, last := owner.String("first_name"), owner.String("last_name")
	if first == "" {
		first = faker.FirstName()
	}
	if last == "" {
		last = faker.LastName()
	}
	email := owner.String("email")
	if email == "" {
		email = faker.Email()
	}
	phone := owner.String("phone")
	if phone == "" {
		phone = faker.Phonenumber()
	}

	categoryIDs := ids(categories)
	var picked []string
	if len(categoryIDs) > 0 {
		picked = g.sample(categoryIDs, g.between(1, min(3, len(categoryIDs))))
	} else {
		picked = []string{}
	}

	gallery := make([]map[string]any, g.between(1, 3))
	for i := range gallery {
		gallery[i] = g.image()
	}

	rec := api.Record{
		"owner_id":        owner.ID(),
		"owner_name":      first + " " + last,
		"address_id":      address.ID(),
		"restaurant_name": faker.LastName() + "'s " + g.pick(restaurantKinds),
		"description":     faker.Sentence(),
		"contact_email":   contact("Primary", "email", email),
		"contact_phone":   contact("Primary", "number", phone),
		"images_gallery":  gallery,
		"status": map[string]any{
			"is_open":            g.chance(0.8),
			"is_active":          g.chance(0.9),
			"is_accepted_orders": g.chance(0.7),
		},
		"promotions": []string{},
		"ratings": map[string]any{
			"average_rating": g.amount(3, 5, 1),
			"review_count":   g.between(0, 500),
		},
		"food_category_ids": picked,
		"opening_hours":     g.openingHours(),
		"first_name":        first,
		"last_name":         last,
		"email":             email,
		"password":          faker.Password(),
		"phone":             phone,
	}
	g.maybeImage(rec, "avatar", 0.8)
	return rec
}

func (g *Generator) MenuItem(restaurant, category api.Record) api.Record {
	rec := api.Record{
		"restaurant_id": restaurant.ID(),
		"name":          g.pick(dishAdjectives) + " " + g.pick(dishNouns),
		"description":   faker.Sentence(),
		"price":         g.amount(20, 200, 2),
		"category":      []string{category.ID()},
		"availability":  g.chance(0.9),
	}
	g.maybeImage(rec, "avatar", 0.7)
	if g.chance(0.5) {
		rec["suggest_notes"] = []string{g.pick(dishNotes)}
	}
	return rec
}

// HardcodedMenuItem builds a menu item for restaurantID from a canonical dish.
func (g *Generator) HardcodedMenuItem(restaurantID string, item MenuItem) api.Record {
	return api.Record{
		"restaurant_id":  restaurantID,
		"name":           item.Name,
		"description":    faker.Sentence(),
		"price":          item.Price,
		"category":       []string{item.Category},
		"availability":   true,
		"suggest_notes":  []string{"Extra spicy", "No onions", "Extra cheese", "Well done"},
		"purchase_count": g.between(0, 100),
	}
}

// PickMenuItems returns between min and max distinct canonical dishes.
func (g *Generator) PickMenuItems(minCount, maxCount int) []MenuItem {
	n := g.between(minCount, maxCount)
	if n > len(CanonicalMenuItems) {
		n = len(CanonicalMenuItems)
	}
	order := make([]MenuItem, len(CanonicalMenuItems))
	copy(order, CanonicalMenuItems)
	g.mu.Lock()
	g.rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	g.mu.Unlock()
	return order[:n]
}

func (g *Generator) Variant(menuItem api.Record) api.Record {
	base, _ := menuItem["price"].(float64)
	if base <= 0 {
		base = 20
	}
	rec := api.Record{
		"menu_id":      menuItem.ID(),
		"variant":      g.pick(variantNames),
		"description":  faker.Sentence(),
		"availability": g.chance(0.9),
		"price":        g.amount(base*0.8, base*1.5, 2),
	}
	g.maybeImage(rec, "avatar", 0.5)
	if g.chance(0.5) {
		rec["default_restaurant_notes"] = []string{g.pick(dishNotes)}
	}
	if g.chance(0.3) {
		rec["discount_rate"] = g.amount(5, 20, 2)
	}
	return rec
}

func (g *Generator) Promotion(categories []api.Record) api.Record {
	start := g.unix()
	categoryIDs := ids(categories)
	rec := api.Record{
		"name":                 g.pick(dealAdjectives) + " Deal",
		"description":          faker.Sentence(),
		"discount_type":        g.pick(discountTypes),
		"discount_value":       g.amount(5, 50, 2),
		"promotion_cost_price": g.amount(10, 50, 2),
		"minimum_order_value":  g.amount(50, 200, 2),
		"start_date":           start,
		"end_date":             start + 30*24*3600,
		"status":               "ACTIVE",
		"food_category_ids":    g.sample(categoryIDs, g.between(1, min(3, len(categoryIDs)))),
	}
	g.maybeImage(rec, "avatar", 0.5)
	return rec
}

// Driver builds a /drivers profile for an existing user.
func (g *Generator) Driver(user api.Record) api.Record {
	email := user.String("email")
	if email == "" {
		email = faker.Email()
	}
	phone := user.String("phone")
	if phone == "" {
		phone = faker.Phonenumber()
	}
	rec := api.Record{
		"user_id":       user.ID(),
		"first_name":    user.String("first_name"),
		"last_name":     user.String("last_name"),
		"contact_email": contact("Primary", "email", email),
		"contact_phone": contact("Primary", "number", phone),
		"vehicle": map[string]any{
			"type":          g.pick(vehicleTypes),
			"license_plate": g.plate(),
			"model":         g.pick(vehicleModels),
			"color":         g.pick(vehicleColors),
		},
		"current_location":   g.location(),
		"current_orders":     []string{},
		"available_for_work": true,
		"is_on_delivery":     false,
		"active_points":      g.between(0, 1000),
		"rating": map[string]any{
			"average_rating": g.amount(4, 5, 1),
			"review_count":   g.between(10, 200),
		},
	}
	g.maybeImage(rec, "avatar", 0.7)
	return rec
}

func (g *Generator) plate() string {
	const letters = "ABCDEFGHJKLMNPRSTUVWXYZ"
	b := []byte{
		letters[g.intn(len(letters))], letters[g.intn(len(letters))],
		'-',
		byte('0' + g.intn(10)), byte('0' + g.intn(10)), byte('0' + g.intn(10)), byte('0' + g.intn(10)),
	}
	return string(b)
}

// Customer builds the minimal /customers profile for user. At most one
// address id is referenced, always as a string.
func (g *Generator) Customer(user api.Record, addresses []api.Record) api.Record {
	addressIDs := []string{}
	if addr := g.Pick(addresses); addr != nil && addr.ID() != "" && g.chance(0.5) {
		addressIDs = append(addressIDs, addr.ID())
	}
	rec := api.Record{
		"user_id":     user.ID(),
		"first_name":  user.String("first_name"),
		"last_name":   user.String("last_name"),
		"address_ids": addressIDs,
	}
	g.maybeImage(rec, "avatar", 0.7)
	return rec
}

func (g *Generator) CustomerCareUser() api.Record {
	rec := g.User(TypeCustomerCare)
	rec["is_verified"] = true
	return rec
}

func (g *Generator) CustomerCare(user api.Record) api.Record {
	return api.Record{
		"user_id":            user.ID(),
		"first_name":         user.String("first_name"),
		"last_name":          user.String("last_name"),
		"contact_email":      contact("Primary", "email", user.String("email")),
		"contact_phone":      contact("Primary", "number", user.String("phone")),
		"assigned_tickets":   []string{},
		"available_for_work": g.chance(0.7),
		"is_assigned":        false,
		"last_login":         g.unix(),
	}
}

// Order builds an /orders body linking existing customer, restaurant,
// driver and addresses.
func (g *Generator) Order(customer, restaurant, driver, customerAddr, restaurantAddr api.Record) api.Record {
	item := map[string]any{
		"menu_item_id": uuid.NewString(),
		"quantity":     g.between(1, 3),
		"price":        g.amount(10, 50, 2),
	}
	if g.chance(0.5) {
		item["special_instructions"] = faker.Sentence()
	}
	subtotal := item["price"].(float64) * float64(item["quantity"].(int))
	deliveryFee := g.amount(2, 8, 2)
	serviceFee := round(subtotal*0.1, 2)

	rec := api.Record{
		"customer_id":             customer.ID(),
		"restaurant_id":           restaurant.ID(),
		"driver_id":               driver.ID(),
		"customer_location_id":    customerAddr.ID(),
		"restaurant_location_id":  restaurantAddr.ID(),
		"order_items":             []map[string]any{item},
		"subtotal":                round(subtotal, 2),
		"delivery_fee":            deliveryFee,
		"service_fee":             serviceFee,
		"total_amount":            round(subtotal+deliveryFee+serviceFee, 2),
		"payment_method":          g.pick(paymentMethods),
		"payment_status":          g.pick(paymentStatuses),
		"tracking_info":           g.pick(trackingStates),
		"estimated_delivery_time": g.unix() + int64(g.between(1800, 3600)),
	}
	if g.chance(0.5) {
		rec["special_instructions"] = faker.Sentence()
	}
	return rec
}
