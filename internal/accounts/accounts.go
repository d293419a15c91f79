// Package accounts registers admin and customer care accounts through the
// backend's auth endpoints so they can actually sign in, and keeps their
// credentials for the final report.
package accounts

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
	"github.com/go-faker/faker/v4"
)

// Poster is the subset of api.Client used for auth calls.
type Poster interface {
	Post(ctx context.Context, path string, query url.Values, body any) (*api.Envelope, error)
}

type profile struct {
	slug        string
	emailPrefix string
	password    string
	firstName   string
	lastName    string
	title       string
	numbered    bool
}

var profiles = map[string]profile{
	generator.RoleSuperAdmin: {
		slug: "super-admin", emailPrefix: "superadmin", password: "Admin123!",
		firstName: "Super", lastName: "Admin", title: "👑 SUPER ADMIN",
	},
	generator.RoleFinanceAdmin: {
		slug: "finance-admin", emailPrefix: "financeadmin", password: "Finance123!",
		firstName: "Finance", lastName: "Admin", title: "💰 FINANCE ADMINS", numbered: true,
	},
	generator.RoleCompanionAdmin: {
		slug: "companion-admin", emailPrefix: "companionadmin", password: "Companion123!",
		firstName: "Companion", lastName: "Admin", title: "🤝 COMPANION ADMINS", numbered: true,
	},
	generator.TypeCustomerCare: {
		slug: "customer-care", emailPrefix: "customercare", password: "CustomerCare123!",
		firstName: "Customer Care", lastName: "Rep", title: "📞 CUSTOMER CARE REPS", numbered: true,
	},
}

// reportOrder is the order credentials are printed in.
var reportOrder = []string{
	generator.RoleSuperAdmin,
	generator.RoleFinanceAdmin,
	generator.RoleCompanionAdmin,
	generator.TypeCustomerCare,
}

// Credential is one account that was registered in this run.
type Credential struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginEndpoint is the path the account signs in through.
func (c Credential) LoginEndpoint() string {
	return "auth/login-" + profiles[c.Role].slug
}

type Registrar struct {
	client Poster
	log    *report.Logger
	now    func() time.Time

	mu    sync.Mutex
	creds []Credential
}

func NewRegistrar(client Poster, log *report.Logger) *Registrar {
	return &Registrar{client: client, log: log, now: time.Now}
}

// WithClock replaces the time source used for unique emails.
func (r *Registrar) WithClock(now func() time.Time) *Registrar {
	r.now = now
	return r
}

// Register signs up one account for role. The returned record always
// carries role and email so callers can track what exists.
func (r *Registrar) Register(ctx context.Context, role string, i int) (api.Record, error) {
	p, ok := profiles[role]
	if !ok {
		return nil, fmt.Errorf("no registration endpoint for role %s", role)
	}

	n := r.count(role) + 1
	email := fmt.Sprintf("%s_%d@flashfood.com", p.emailPrefix, r.now().UnixMilli())
	lastName := p.lastName
	if p.numbered {
		email = fmt.Sprintf("%s_%d_%d@flashfood.com", p.emailPrefix, r.now().UnixMilli(), i)
		lastName = fmt.Sprintf("%s %d", p.lastName, n)
	}

	body := api.Record{
		"email":      email,
		"password":   p.password,
		"first_name": p.firstName,
		"last_name":  lastName,
		"phone":      faker.Phonenumber(),
	}

	r.log.Info("🔄 Registering %s: %s", strings.ToLower(p.firstName+" "+lastName), email)
	env, err := r.client.Post(ctx, "auth/register-"+p.slug, nil, body)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.creds = append(r.creds, Credential{Role: role, Email: email, Password: p.password})
	r.mu.Unlock()

	r.log.Success("Registered %s %s", p.firstName, lastName)
	r.log.Plain("🔐 Email: %s | Password: %s", email, p.password)

	rec := env.Record()
	rec["role"] = role
	rec["email"] = email
	rec["first_name"] = p.firstName
	rec["last_name"] = lastName
	return rec, nil
}

func (r *Registrar) count(role string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.creds {
		if c.Role == role {
			n++
		}
	}
	return n
}

func (r *Registrar) Credentials() []Credential {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Credential(nil), r.creds...)
}

// LoginResult is the outcome of one sign-in smoke test.
type LoginResult struct {
	Credential
	Token bool
	Err   error
}

// VerifyLogins signs in with the first account of each role and reports
// whether the backend handed out an access token.
func (r *Registrar) VerifyLogins(ctx context.Context) []LoginResult {
	var results []LoginResult
	seen := make(map[string]bool)

	for _, c := range r.Credentials() {
		if seen[c.Role] {
			continue
		}
		seen[c.Role] = true

		res := LoginResult{Credential: c}
		r.log.Info("🧪 Testing %s login...", c.Role)
		env, err := r.client.Post(ctx, c.LoginEndpoint(), nil, map[string]string{
			"email":    c.Email,
			"password": c.Password,
		})
		if err != nil {
			res.Err = err
			r.log.Failure(c.Role+" sign-in", err)
		} else {
			res.Token = env.Record().String("access_token") != ""
			r.log.Success("%s can sign in (access token: %s)", c.Role, yesNo(res.Token))
		}
		results = append(results, res)
	}
	return results
}

// PrintCredentials lists every registered account grouped by role.
func (r *Registrar) PrintCredentials() {
	creds := r.Credentials()
	if len(creds) == 0 {
		return
	}

	r.log.Plain("")
	r.log.Plain("🔐 ================ SIGN-IN CREDENTIALS ================")
	for _, role := range reportOrder {
		var group []Credential
		for _, c := range creds {
			if c.Role == role {
				group = append(group, c)
			}
		}
		if len(group) == 0 {
			continue
		}
		r.log.Plain("%s:", profiles[role].title)
		for i, c := range group {
			r.log.Plain("   %d. Email: %s", i+1, c.Email)
			r.log.Plain("      Password: %s", c.Password)
			r.log.Plain("      Endpoint: POST /%s", c.LoginEndpoint())
		}
	}
	r.log.Plain("====================================================")
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
