package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/devbackend"
	"github.com/shopmanagement/portal/pkg/logger"
)

func startBackend(t *testing.T) {
	t.Helper()
	svc := devbackend.NewService(devbackend.NewMemoryAccounts(), "secret", devbackend.Options{Log: zerolog.Nop()})
	if err := devbackend.SeedDemo(context.Background(), svc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	srv := httptest.NewServer(devbackend.NewRouter(svc, zerolog.Nop()))
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL+"/api")
	t.Setenv("STORAGE_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(logger.Reset)
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLI_LoginWhoAmILogout(t *testing.T) {
	startBackend(t)

	out, errOut, err := run(t, "login", "-u", "shopowner", "-p", devbackend.DemoPassword)
	if err != nil {
		t.Fatalf("login failed: %v (%s)", err, errOut)
	}
	if !strings.Contains(errOut, "Welcome back! Login successful.") {
		t.Errorf("expected success notification, got %q", errOut)
	}
	var view sessionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if view.User == nil || view.User.Username != "shopowner" || view.Landing != "/shop-owner/dashboard" || view.ShopID == 0 {
		t.Fatalf("unexpected session %+v", view)
	}

	// A second process sees the session stored in the file.
	out, _, err = run(t, "whoami")
	if err != nil || !strings.Contains(out, `"username": "shopowner"`) {
		t.Fatalf("whoami: %v %q", err, out)
	}

	if _, errOut, err := run(t, "logout"); err != nil || !strings.Contains(errOut, "→ /auth/login") {
		t.Fatalf("logout: %v %q", err, errOut)
	}
	if _, _, err := run(t, "whoami"); err == nil {
		t.Fatal("expected whoami to fail after logout")
	}
}

func TestCLI_LoginFailure(t *testing.T) {
	startBackend(t)

	_, errOut, err := run(t, "login", "-u", "admin", "-p", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "Invalid username or password") {
		t.Errorf("expected backend message, got %q", errOut)
	}
}

func TestCLI_AssignProducts(t *testing.T) {
	startBackend(t)

	if _, errOut, err := run(t, "login", "-u", "shopowner", "-p", devbackend.DemoPassword); err != nil {
		t.Fatalf("login failed: %v (%s)", err, errOut)
	}
	out, _, err := run(t, "assign-products", "1:4.50:20", "99:1")
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected partial failure, got %v", err)
	}
	if !strings.Contains(out, `"masterProductId": 1`) || !strings.Contains(out, `"masterProductId": 99`) {
		t.Errorf("unexpected output %q", out)
	}
}
