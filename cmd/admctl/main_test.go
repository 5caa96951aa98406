package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/admin-console/internal/config"
	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/service"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DataDir:       t.TempDir(),
		Backend:       config.BackendFile,
		AdminName:     "Admin User",
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
		SigningKey:    "test-key",
		SessionTTL:    time.Hour,
		LogLevel:      "error",
	}
}

func newTestApp(t *testing.T, cfg config.Config) *app {
	t.Helper()
	a, err := newApp(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(a.close)
	return a
}

// run executes one console command against the app and captures its output.
func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(a)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestConsole_FullWorkflow(t *testing.T) {
	cfg := testConfig(t)
	a := newTestApp(t, cfg)

	out, err := run(t, a, "whoami")
	if err != nil || !strings.Contains(out, "not logged in") {
		t.Fatalf("whoami: %q, %v", out, err)
	}

	// Protected resources redirect anonymous callers to the login entry point.
	if _, err := run(t, a, "products", "list"); err == nil || !strings.Contains(err.Error(), "/login") {
		t.Fatalf("anonymous products: want /login redirect, got %v", err)
	}
	if _, err := run(t, a, "users", "list"); err == nil || !strings.Contains(err.Error(), "/login") {
		t.Fatalf("anonymous users: want /login redirect, got %v", err)
	}

	out, err = run(t, a, "signup", "-n", "Jane", "-e", "jane@x.com", "-p", "pw1")
	if err != nil || !strings.Contains(out, "wait for admin approval") {
		t.Fatalf("signup: %q, %v", out, err)
	}
	if _, err := run(t, a, "login", "-e", "jane@x.com", "-p", "pw1"); err == nil ||
		!strings.Contains(err.Error(), "pending") {
		t.Fatalf("pre-approval login: want pending message, got %v", err)
	}

	if _, err := run(t, a, "login", "-e", "admin@example.com", "-p", "admin123"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	out, err = run(t, a, "users", "list", "--pending")
	if err != nil || !strings.Contains(out, "jane@x.com") {
		t.Fatalf("pending list: %q, %v", out, err)
	}

	id := a.directory.Pending()[0].ID
	if _, err := run(t, a, "users", "approve", fmt.Sprint(id)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := run(t, a, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	out, err = run(t, a, "login", "-e", "jane@x.com", "-p", "pw1")
	if err != nil || !strings.Contains(out, "(user)") {
		t.Fatalf("approved login: %q, %v", out, err)
	}

	// A user may browse products but is bounced off the admin resources.
	if _, err := run(t, a, "users", "list"); err == nil || !strings.Contains(err.Error(), "admin access") {
		t.Fatalf("user hitting users: want admin redirect, got %v", err)
	}
	if _, err := run(t, a, "report"); err == nil || !strings.Contains(err.Error(), "admin access") {
		t.Fatalf("user hitting report: want admin redirect, got %v", err)
	}

	if _, err := run(t, a, "products", "add", "-n", "Mouse", "-c", "Electronics", "--price", "19.99", "--stock", "0"); err != nil {
		t.Fatalf("products add: %v", err)
	}
	out, err = run(t, a, "products", "list")
	if err != nil || !strings.Contains(out, "Out of Stock") {
		t.Fatalf("products list: %q, %v", out, err)
	}

	// Deletion demands explicit confirmation.
	pid := a.inventory.List(service.Filter{})[0].ID
	if _, err := run(t, a, "products", "rm", fmt.Sprint(pid)); err == nil {
		t.Fatal("rm without --yes must refuse")
	}

	// Restart: a fresh app over the same data dir rehydrates everything.
	b := newTestApp(t, cfg)
	out, err = run(t, b, "whoami")
	if err != nil || !strings.Contains(out, "jane@x.com") {
		t.Fatalf("session lost across restart: %q, %v", out, err)
	}
	out, err = run(t, b, "products", "list", "-s", "mouse")
	if err != nil || !strings.Contains(out, "Mouse") {
		t.Fatalf("inventory lost across restart: %q, %v", out, err)
	}

	if _, err := run(t, b, "products", "rm", fmt.Sprint(pid), "--yes"); err != nil {
		t.Fatalf("rm with --yes: %v", err)
	}
}

func TestConsole_Report(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	if _, err := run(t, a, "login", "-e", "admin@example.com", "-p", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := run(t, a, "users", "add", "-n", "Bob", "-e", "bob@x.com", "-p", "pw"); err != nil {
		t.Fatalf("users add: %v", err)
	}
	if _, err := run(t, a, "products", "add", "-n", "Laptop", "-c", "Electronics", "--price", "1000", "--stock", "2"); err != nil {
		t.Fatalf("products add: %v", err)
	}

	out, err := run(t, a, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"approved users:   1", "products:         1", "inventory value:  2000.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func Test_friendly(t *testing.T) {
	t.Parallel()
	if got := friendly(errs.ErrInvalidCredentials); got.Error() != "invalid credentials" {
		t.Fatalf("unexpected mapping: %v", got)
	}
	if got := friendly(errs.ErrEmailExists); got.Error() != "email already exists" {
		t.Fatalf("unexpected mapping: %v", got)
	}
	passthrough := errors.New("boom")
	if got := friendly(passthrough); got != passthrough {
		t.Fatalf("unknown errors must pass through, got %v", got)
	}
}

func Test_parseID(t *testing.T) {
	t.Parallel()
	if id, err := parseID("1712000000000"); err != nil || id != 1712000000000 {
		t.Fatalf("parseID: %d, %v", id, err)
	}
	if _, err := parseID("abc"); err == nil {
		t.Fatal("want error for non-numeric id")
	}
}
