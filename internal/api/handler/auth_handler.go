package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagement/portal/internal/core/domain"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// sessionResponse describes the session after an auth action. Redirect is
// where the browser should go next, when anywhere.
type sessionResponse struct {
	Authenticated          bool         `json:"authenticated"`
	User                   *domain.User `json:"user,omitempty"`
	PasswordChangeRequired bool         `json:"passwordChangeRequired,omitempty"`
	ShopID                 int64        `json:"shopId,omitempty"`
	Redirect               string       `json:"redirect,omitempty"`
}

type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type identifierRequest struct {
	Identifier string `json:"identifier"`
	OTP        string `json:"otp,omitempty"`
}

func bindJSON(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}

// safeReturnURL keeps only same-site absolute paths.
func safeReturnURL(u string) string {
	if !strings.HasPrefix(u, "/") || strings.HasPrefix(u, "//") || strings.HasPrefix(u, "/\\") {
		return ""
	}
	return u
}

// Login starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body       body      domain.Credentials  true   "Login credentials"
// @Param        returnUrl  query     string              false  "Route to return to after login"
// @Success      200        {object}  sessionResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      401        {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.Credentials
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := scope.Session.Login(ctx, req); err != nil {
		return err
	}

	redirect := safeReturnURL(c.QueryParam("returnUrl"))
	if redirect == "" {
		redirect = scope.Session.LandingRoute()
	}
	if scope.Session.PasswordChangeRequired(ctx) {
		redirect = domain.RouteChangePassword
	}
	resp := describe(c, scope.Session)
	resp.Redirect = redirect
	return c.JSON(http.StatusOK, resp)
}

// Register creates an account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegisterRequest  true  "User registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := scope.Session.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	out := describe(c, scope.Session)
	if resp.AccessToken == "" {
		out.Redirect = "/auth/verify-otp"
	}
	return c.JSON(http.StatusCreated, out)
}

// VerifyOTP confirms the registration code.
//
// @Summary      Verify registration OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.OTPVerification  true  "Code and identifier"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.OTPVerification
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if _, err := scope.Account.VerifyOTP(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Email verified successfully", Redirect: scope.Nav.Route()})
}

// ResendOTP sends a new registration code.
//
// @Summary      Resend registration OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.OTPResend  true  "Email or mobile number"
// @Success      200   {object}  messageResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/resend-otp [post]
func (h *AuthHandler) ResendOTP(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.OTPResend
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := scope.Account.ResendOTP(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP sent"})
}

// Logout ends the session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	scope.Session.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out", Redirect: scope.Nav.Route()})
}

// ChangePassword replaces the password of the logged-in user.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.PasswordChange  true  "Current and new password"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.PasswordChange
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := scope.Session.ChangePassword(c.Request().Context(), req); err != nil {
		return err
	}
	resp := describe(c, scope.Session)
	resp.Redirect = scope.Session.LandingRoute()
	return c.JSON(http.StatusOK, resp)
}

// PasswordStatus reports the backend's password flags.
//
// @Summary      Password status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.PasswordStatus
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/password-status [get]
func (h *AuthHandler) PasswordStatus(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	st, err := scope.Session.PasswordStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// Me describes the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, describe(c, scope.Session))
}

// SendResetOTP starts the forgot-password flow.
//
// @Summary      Send password reset OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      identifierRequest  true  "Email or mobile number"
// @Success      200   {object}  messageResponse
// @Router       /auth/forgot-password/send-otp [post]
func (h *AuthHandler) SendResetOTP(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req identifierRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := scope.Account.SendPasswordResetOTP(c.Request().Context(), req.Identifier); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP sent"})
}

// ResendResetOTP sends another reset code, subject to the resend cooldown.
//
// @Summary      Resend password reset OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      identifierRequest  true  "Email or mobile number"
// @Success      200   {object}  messageResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/forgot-password/resend-otp [post]
func (h *AuthHandler) ResendResetOTP(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req identifierRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := scope.Account.ResendPasswordResetOTP(c.Request().Context(), req.Identifier); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP sent"})
}

// VerifyResetOTP checks a reset code without consuming it.
//
// @Summary      Verify password reset OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      identifierRequest  true  "Identifier and code"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /auth/forgot-password/verify-otp [post]
func (h *AuthHandler) VerifyResetOTP(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req identifierRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := scope.Account.VerifyPasswordResetOTP(c.Request().Context(), req.Identifier, req.OTP); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP verified"})
}

// ResetPassword sets a new password with a verified reset code.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.PasswordReset  true  "Identifier, code and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /auth/forgot-password/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.PasswordReset
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := scope.Account.ResetPassword(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password reset", Redirect: scope.Nav.Route()})
}
