package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shopmanagement/portal/internal/app"
	"github.com/shopmanagement/portal/internal/infrastructure/backend"
	"github.com/shopmanagement/portal/internal/infrastructure/httpclient"
	"github.com/shopmanagement/portal/internal/infrastructure/notify"
	"github.com/shopmanagement/portal/internal/infrastructure/storage"
	"github.com/shopmanagement/portal/internal/pkg/config"
	"github.com/shopmanagement/portal/pkg/logger"
)

const cliScope = "cli"

func newBackendClient(cfg *config.Config) *backend.Client {
	log := logger.Component("backend")
	return backend.NewClient(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout}, log,
		httpclient.Metrics(),
		httpclient.Logging(log),
	)
}

func clientHeaders(cfg *config.Config) httpclient.ClientHeaders {
	return httpclient.ClientHeaders{ClientType: cfg.API.ClientType, Platform: cfg.API.ClientPlatform}
}

// printNavigator shows where the portal would take the user next.
type printNavigator struct {
	out io.Writer
}

func (p printNavigator) Navigate(_ context.Context, route string, _ bool) {
	_, _ = fmt.Fprintf(p.out, "→ %s\n", route)
}

// openCLI opens the session kept in STORAGE_FILE. Notifications and
// navigation are printed to the command's stderr.
func openCLI(cmd *cobra.Command, cfg *config.Config) (*app.Scope, error) {
	if dir := filepath.Dir(cfg.Session.StorageFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	file, err := storage.OpenFile(cfg.Session.StorageFile)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}

	a := app.New(app.Options{
		Base:           newBackendClient(cfg),
		Headers:        clientHeaders(cfg),
		CooldownWindow: cfg.Session.OTPCooldown,
		Log:            logger.Component("session"),
	})
	return a.Open(cmd.Context(), cliScope, app.ScopeDeps{
		Storage:   file,
		Notifier:  notify.NewConsole(cmd.ErrOrStderr()),
		Navigator: printNavigator{out: cmd.ErrOrStderr()},
	}), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
