package generator

// User types accepted by /users.
const (
	TypeCustomer        = "CUSTOMER"
	TypeDriver          = "DRIVER"
	TypeRestaurantOwner = "RESTAURANT_OWNER"
	TypeCustomerCare    = "CUSTOMER_CARE_REPRESENTATIVE"
)

// Admin roles.
const (
	RoleSuperAdmin     = "SUPER_ADMIN"
	RoleFinanceAdmin   = "FINANCE_ADMIN"
	RoleCompanionAdmin = "COMPANION_ADMIN"
)

// MenuItem is a canonical dish used by the live generators so that
// repeated runs produce recognisable menus.
type MenuItem struct {
	Name     string
	Price    float64
	Category string
}

var CanonicalMenuItems = []MenuItem{
	{"Classic Burger", 12.99, "Burgers"},
	{"Margherita Pizza", 15.50, "Pizza"},
	{"Chicken Pad Thai", 13.75, "Thai"},
	{"Caesar Salad", 9.99, "Salads"},
	{"Beef Tacos", 11.25, "Mexican"},
	{"Sushi Roll Set", 18.99, "Japanese"},
	{"Fish & Chips", 14.50, "British"},
	{"Chicken Curry", 16.75, "Indian"},
	{"BBQ Ribs", 22.99, "BBQ"},
	{"Vegetable Stir Fry", 10.99, "Vegetarian"},
}

// SeedCategory is one of the fixed categories created by the structured populator.
type SeedCategory struct {
	Name        string
	Description string
}

var SeedCategories = []SeedCategory{
	{"Pizza", "Delicious pizzas with various toppings"},
	{"Asian Cuisine", "Traditional and modern Asian dishes"},
	{"Burgers", "Juicy burgers and sandwiches"},
	{"Desserts", "Sweet treats and desserts"},
	{"Beverages", "Refreshing drinks and beverages"},
}

var CategoryNames = []string{
	"Fast Food", "Italian", "Chinese", "Thai", "Indian",
	"Mexican", "Japanese", "Korean", "Vietnamese", "Mediterranean",
	"American", "Seafood", "Vegetarian", "Vegan", "Desserts",
	"Beverages", "Pizza", "Burgers", "Sushi", "BBQ",
}

// RolePermissions lists the permissions granted to each admin role.
var RolePermissions = map[string][]string{
	RoleSuperAdmin: {
		"MANAGE_USERS", "MANAGE_RESTAURANTS", "MANAGE_ORDERS", "MANAGE_PROMOTIONS",
		"MANAGE_PAYMENTS", "MANAGE_SUPPORT", "MANAGE_DRIVERS", "BAN_ACCOUNTS",
		"VIEW_ANALYTICS", "MANAGE_ADMINS",
	},
	RoleFinanceAdmin:   {"MANAGE_PAYMENTS", "MANAGE_PROMOTIONS", "VIEW_ANALYTICS"},
	RoleCompanionAdmin: {"MANAGE_RESTAURANTS", "MANAGE_DRIVERS", "MANAGE_SUPPORT", "VIEW_ANALYTICS"},
}

// Order status weights for live orders, in percent.
var OrderStatusWeights = []struct {
	Status string
	Weight int
}{
	{"COMPLETED", 70},
	{"PENDING", 15},
	{"IN_PROGRESS", 10},
	{"CANCELLED", 5},
}

var (
	addressTitles   = []string{"Home", "Work", "Restaurant", "Office", "Other"}
	streetNames     = []string{"Main Street", "Oak Avenue", "Maple Road", "Cedar Lane", "Elm Street", "Park Avenue", "Lakeview Drive", "Hill Road", "River Street", "Sunset Boulevard"}
	cities          = []string{"Ho Chi Minh City", "Hanoi", "Da Nang", "Singapore", "Bangkok", "Kuala Lumpur", "Manila", "Jakarta", "Seoul", "Tokyo"}
	nationalities   = []string{"Vietnam", "Singapore", "Thailand", "Malaysia", "Philippines", "Indonesia", "South Korea", "Japan", "Australia", "United States"}
	restaurantKinds = []string{"Restaurant", "Bistro", "Cafe", "Kitchen", "Grill"}
	dishAdjectives  = []string{"Crispy", "Spicy", "Grilled", "Smoked", "Fresh", "Golden", "Savory", "Zesty"}
	dishNouns       = []string{"Noodles", "Chicken", "Salad", "Rice Bowl", "Wrap", "Soup", "Dumplings", "Skewers"}
	dishNotes       = []string{"Spicy", "No onions", "Extra sauce", "Less salt"}
	variantNames    = []string{"Small", "Medium", "Large", "Extra Large"}
	discountTypes   = []string{"PERCENTAGE", "FIXED", "BOGO"}
	dealAdjectives  = []string{"Awesome", "Fantastic", "Incredible", "Gorgeous", "Refined", "Handcrafted"}
	vehicleTypes    = []string{"MOTORBIKE", "CAR", "BICYCLE"}
	vehicleModels   = []string{"Honda Wave", "Yamaha Sirius", "Vespa Sprint", "Toyota Vios", "Kia Morning"}
	vehicleColors   = []string{"Red", "Black", "White", "Blue", "Silver"}
	themes          = []string{"light", "dark"}
	paymentMethods  = []string{"CASH", "CARD", "DIGITAL_WALLET"}
	livePayments    = []string{"CREDIT_CARD", "CASH", "DIGITAL_WALLET"}
	paymentStatuses = []string{"PENDING", "PAID", "FAILED"}
	trackingStates  = []string{"ORDER_PLACED", "ORDER_RECEIVED", "PREPARING", "IN_PROGRESS", "DISPATCHED", "EN_ROUTE", "DELIVERED"}
	orderItemNames  = []string{"Margherita Pizza", "Chicken Burger", "Caesar Salad", "Beef Tacos", "Pad Thai", "Sushi Roll", "Fish & Chips", "Pasta Carbonara", "BBQ Wings", "Veggie Wrap"}
	weekdays        = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
)
