package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/shopmanagement/portal/internal/app"
	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/pkg/config"
)

// NewLoginCommand creates the login command
func NewLoginCommand(conf func() *config.Config) *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session in the session file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err := scope.Session.Login(ctx, creds); err != nil {
				return err
			}
			// Shop owners get their shop resolved in the background.
			scope.Session.Wait()

			if scope.Session.PasswordChangeRequired(ctx) {
				cmd.PrintErrln("Your password must be changed: shopportal password change")
			}
			return printJSON(cmd, whoami(cmd, scope))
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand(conf func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			scope.Session.Logout(cmd.Context())
			return nil
		},
	}
}

// NewWhoAmICommand creates the whoami command
func NewWhoAmICommand(conf func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			if !scope.Session.IsAuthenticated(cmd.Context()) {
				return errors.New("not logged in")
			}
			return printJSON(cmd, whoami(cmd, scope))
		},
	}
}

type sessionView struct {
	User                   *domain.User       `json:"user"`
	Landing                string             `json:"landing"`
	PasswordChangeRequired bool               `json:"passwordChangeRequired,omitempty"`
	ShopID                 int64              `json:"shopId,omitempty"`
	Menu                   []domain.MenuEntry `json:"menu"`
}

func whoami(cmd *cobra.Command, scope *app.Scope) sessionView {
	ctx := cmd.Context()
	v := sessionView{
		User:                   scope.Session.CurrentUser(),
		Landing:                scope.Session.LandingRoute(),
		PasswordChangeRequired: scope.Session.PasswordChangeRequired(ctx),
		Menu:                   scope.Session.Menu(),
	}
	if id, ok := scope.Session.ShopID(ctx); ok {
		v.ShopID = id
	}
	return v
}
