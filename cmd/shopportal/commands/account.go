package commands

import (
	"github.com/spf13/cobra"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/pkg/config"
)

// NewRegisterCommand creates the register command
func NewRegisterCommand(conf func() *config.Config) *cobra.Command {
	var req domain.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; an OTP is sent for verification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			if _, err := scope.Session.Register(cmd.Context(), req); err != nil {
				return err
			}
			if !scope.Session.IsAuthenticated(cmd.Context()) {
				cmd.PrintErrln("Verify the account with: shopportal otp verify --email", req.Email, "--code <otp>")
				return nil
			}
			return printJSON(cmd, whoami(cmd, scope))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Username, "username", "u", "", "username")
	f.StringVarP(&req.Email, "email", "e", "", "email address")
	f.StringVarP(&req.Password, "password", "p", "", "password")
	f.StringVar(&req.FirstName, "first-name", "", "first name")
	f.StringVar(&req.LastName, "last-name", "", "last name")
	f.StringVar(&req.MobileNumber, "mobile", "", "mobile number")
	f.StringVar(&req.Role, "role", "", "USER or SHOP_OWNER")
	return cmd
}

// NewOTPCommand creates the registration OTP commands
func NewOTPCommand(conf func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Registration OTP commands",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(
		newOTPVerifyCommand(conf),
		newOTPResendCommand(conf),
	)

	return cmd
}

func newOTPVerifyCommand(conf func() *config.Config) *cobra.Command {
	var req domain.OTPVerification

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a registration code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			_, err = scope.Account.VerifyOTP(cmd.Context(), req)
			return err
		},
	}

	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVar(&req.MobileNumber, "mobile", "", "mobile number")
	cmd.Flags().StringVarP(&req.OTP, "code", "c", "", "6-digit code")
	return cmd
}

func newOTPResendCommand(conf func() *config.Config) *cobra.Command {
	var req domain.OTPResend

	cmd := &cobra.Command{
		Use:   "resend",
		Short: "Send a new registration code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			return scope.Account.ResendOTP(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVar(&req.MobileNumber, "mobile", "", "mobile number")
	return cmd
}

// NewPasswordCommand creates the password commands
func NewPasswordCommand(conf func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "password",
		Aliases: []string{"pw"},
		Short:   "Password commands",
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(
		newPasswordChangeCommand(conf),
		newPasswordStatusCommand(conf),
		newForgotCommand(conf),
	)

	return cmd
}

func newPasswordChangeCommand(conf func() *config.Config) *cobra.Command {
	var req domain.PasswordChange

	cmd := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			if req.ConfirmPassword == "" {
				req.ConfirmPassword = req.NewPassword
			}
			return scope.Session.ChangePassword(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&req.CurrentPassword, "current", "", "current password")
	cmd.Flags().StringVar(&req.NewPassword, "new", "", "new password")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm", "", "new password again (defaults to --new)")
	return cmd
}

func newPasswordStatusCommand(conf func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the password must be changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			status, err := scope.Session.PasswordStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, status)
		},
	}
}

func newForgotCommand(conf func() *config.Config) *cobra.Command {
	var identifier string

	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Reset a forgotten password with an emailed code",
		Args:  cobra.NoArgs,
	}
	cmd.PersistentFlags().StringVarP(&identifier, "identifier", "i", "", "email or mobile number")

	send := &cobra.Command{
		Use:   "send",
		Short: "Send a reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			return scope.Account.SendPasswordResetOTP(cmd.Context(), identifier)
		},
	}

	resend := &cobra.Command{
		Use:   "resend",
		Short: "Send a new reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			return scope.Account.ResendPasswordResetOTP(cmd.Context(), identifier)
		},
	}

	var code string
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Check a reset code without using it",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			return scope.Account.VerifyPasswordResetOTP(cmd.Context(), identifier, code)
		},
	}
	verify.Flags().StringVarP(&code, "code", "c", "", "6-digit code")

	var reset domain.PasswordReset
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with a reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			reset.Identifier = identifier
			if reset.ConfirmPassword == "" {
				reset.ConfirmPassword = reset.NewPassword
			}
			return scope.Account.ResetPassword(cmd.Context(), reset)
		},
	}
	resetCmd.Flags().StringVarP(&reset.OTP, "code", "c", "", "6-digit code")
	resetCmd.Flags().StringVar(&reset.NewPassword, "new", "", "new password")
	resetCmd.Flags().StringVar(&reset.ConfirmPassword, "confirm", "", "new password again (defaults to --new)")

	cmd.AddCommand(send, resend, verify, resetCmd)
	return cmd
}
