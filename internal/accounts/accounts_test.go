package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
)

type authBackend struct {
	mu       sync.Mutex
	accounts map[string]string
	paths    []string
}

func (b *authBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)

	b.mu.Lock()
	b.paths = append(b.paths, r.URL.Path)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasPrefix(r.URL.Path, "/auth/register-"):
		b.mu.Lock()
		b.accounts[email] = password
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"EC": 0, "EM": "ok", "data": map[string]any{"id": "acc-" + email}})
	case strings.HasPrefix(r.URL.Path, "/auth/login-"):
		b.mu.Lock()
		ok := b.accounts[email] == password
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"EC": 401, "EM": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"EC": "OK", "EM": "ok", "data": map[string]any{"access_token": "tok"}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newRegistrar(t *testing.T) (*Registrar, *authBackend, *bytes.Buffer) {
	t.Helper()
	backend := &authBackend{accounts: map[string]string{}}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	reg := NewRegistrar(api.New(srv.URL, time.Second), report.New(&out)).
		WithClock(func() time.Time { return time.UnixMilli(1700000000000) })
	return reg, backend, &out
}

func TestRegisterReturnsRoleAndEmail(t *testing.T) {
	reg, backend, _ := newRegistrar(t)

	rec, err := reg.Register(context.Background(), generator.RoleSuperAdmin, 0)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if rec.String("role") != generator.RoleSuperAdmin {
		t.Errorf("expected role in record, got %v", rec)
	}
	if rec.String("email") != "superadmin_1700000000000@flashfood.com" {
		t.Errorf("unexpected email %q", rec.String("email"))
	}
	if rec.ID() == "" {
		t.Error("expected id from the backend response")
	}
	if backend.paths[0] != "/auth/register-super-admin" {
		t.Errorf("unexpected path %s", backend.paths[0])
	}
}

func TestRegisterNumbersRepeatedRoles(t *testing.T) {
	reg, _, _ := newRegistrar(t)
	ctx := context.Background()

	first, _ := reg.Register(ctx, generator.TypeCustomerCare, 0)
	second, _ := reg.Register(ctx, generator.TypeCustomerCare, 1)

	if first.String("last_name") != "Rep 1" || second.String("last_name") != "Rep 2" {
		t.Errorf("unexpected names %q %q", first.String("last_name"), second.String("last_name"))
	}
	if first.String("email") == second.String("email") {
		t.Error("expected distinct emails")
	}
	if len(reg.Credentials()) != 2 {
		t.Errorf("expected 2 credentials, got %d", len(reg.Credentials()))
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	reg, _, _ := newRegistrar(t)
	if _, err := reg.Register(context.Background(), "JANITOR", 0); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestVerifyLogins(t *testing.T) {
	reg, backend, _ := newRegistrar(t)
	ctx := context.Background()

	reg.Register(ctx, generator.RoleSuperAdmin, 0)
	reg.Register(ctx, generator.RoleFinanceAdmin, 1)
	reg.Register(ctx, generator.RoleFinanceAdmin, 2)

	backend.mu.Lock()
	for email := range backend.accounts {
		if strings.HasPrefix(email, "financeadmin") {
			backend.accounts[email] = "changed"
		}
	}
	backend.mu.Unlock()

	results := reg.VerifyLogins(ctx)
	if len(results) != 2 {
		t.Fatalf("expected one login per role, got %d", len(results))
	}
	if !results[0].Token || results[0].Err != nil {
		t.Errorf("super admin login should succeed: %+v", results[0])
	}
	if results[1].Err == nil || api.Classify(results[1].Err) != api.KindValidation {
		t.Errorf("finance admin login should fail validation: %+v", results[1])
	}
}

func TestPrintCredentials(t *testing.T) {
	reg, _, out := newRegistrar(t)
	ctx := context.Background()
	reg.Register(ctx, generator.TypeCustomerCare, 0)
	reg.Register(ctx, generator.RoleSuperAdmin, 1)
	out.Reset()

	reg.PrintCredentials()
	text := out.String()

	super := strings.Index(text, "SUPER ADMIN")
	care := strings.Index(text, "CUSTOMER CARE REPS")
	if super < 0 || care < 0 || super > care {
		t.Errorf("expected super admin before customer care:\n%s", text)
	}
	if !strings.Contains(text, "POST /auth/login-customer-care") {
		t.Errorf("missing login endpoint:\n%s", text)
	}
	if !strings.Contains(text, "CustomerCare123!") {
		t.Errorf("missing password:\n%s", text)
	}
}
