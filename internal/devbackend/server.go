package devbackend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/service"
)

const principalKey = "principal"

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	StatusCode       string            `json:"statusCode"`
	Message          string            `json:"message"`
	Data             any               `json:"data,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	Path             string            `json:"path"`
}

func respond(c echo.Context, status int, msg string, data any) error {
	return c.JSON(status, apiResponse{
		StatusCode: CodeSuccess,
		Message:    msg,
		Data:       data,
		Timestamp:  time.Now().UTC(),
		Path:       c.Request().URL.Path,
	})
}

func reject(c echo.Context, status int, code, msg string, fields map[string]string) error {
	return c.JSON(status, apiResponse{
		StatusCode:       code,
		Message:          msg,
		ValidationErrors: fields,
		Timestamp:        time.Now().UTC(),
		Path:             c.Request().URL.Path,
	})
}

// NewRouter exposes svc under /api with the production route layout.
func NewRouter(svc *Service, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	h := &handlers{svc: svc, log: log}
	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/register", h.register)
	auth.POST("/verify-otp", h.verifyOTP)
	auth.POST("/resend-otp", h.resendOTP)
	auth.POST("/forgot-password/send-otp", h.sendResetOTP)
	auth.POST("/forgot-password/verify-otp", h.verifyResetOTP)
	auth.POST("/forgot-password/reset-password", h.resetPassword)
	auth.POST("/forgot-password/resend-otp", h.sendResetOTP)

	authed := requireAuth(svc)
	auth.POST("/logout", h.logout, authed)
	auth.POST("/change-password", h.changePassword, authed)
	auth.GET("/password-status", h.passwordStatus, authed)

	shops := api.Group("/shops", authed)
	shops.GET("", h.listShops)
	shops.GET("/my-shop", h.myShop)
	shops.POST("/:id/products", h.addProduct)

	return e
}

// requireAuth validates the bearer token and stores the Principal.
func requireAuth(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return reject(c, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
			}
			p, code, err := svc.Authenticate(parts[1])
			if err != nil {
				return reject(c, http.StatusUnauthorized, code, tokenMessage(code), nil)
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

func tokenMessage(code string) string {
	switch code {
	case domain.CodeTokenExpired:
		return "JWT token has expired"
	case domain.CodeTokenInvalidated:
		return "Token has been invalidated. Please login again."
	case domain.CodeTokenMalformed:
		return "Malformed JWT token"
	case domain.CodeTokenInvalidSignature:
		return "Invalid JWT signature"
	default:
		return "Invalid JWT token"
	}
}

func principal(c echo.Context) *Principal {
	p, _ := c.Get(principalKey).(*Principal)
	return p
}

type handlers struct {
	svc *Service
	log zerolog.Logger
}

// bind decodes and validates the body into v. When it reports false the
// response has already been written.
func bind(c echo.Context, v any) (bool, error) {
	if err := c.Bind(v); err != nil {
		return false, reject(c, http.StatusBadRequest, CodeValidation, "Invalid request body", nil)
	}
	return check(c, v)
}

func check(c echo.Context, v any) (bool, error) {
	if err := service.Validate(v); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return false, reject(c, http.StatusBadRequest, CodeValidation, "Validation failed", ve.Fields)
		}
		return false, err
	}
	return true, nil
}

func (h *handlers) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return reject(c, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid username or password", nil)
	case errors.Is(err, ErrNotVerified):
		return reject(c, http.StatusForbidden, CodeForbidden, "Please verify your account before logging in", nil)
	case errors.Is(err, domain.ErrUserExists):
		return reject(c, http.StatusConflict, CodeDuplicate, "Username or email already exists", nil)
	case errors.Is(err, domain.ErrUserNotFound):
		return reject(c, http.StatusNotFound, CodeUserNotFound, "User not found", nil)
	case errors.Is(err, domain.ErrInvalidOTP):
		return reject(c, http.StatusBadRequest, CodeValidation, "Invalid or expired OTP", nil)
	case errors.Is(err, ErrWrongPassword), errors.Is(err, ErrSamePassword):
		return reject(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, domain.ErrShopNotFound):
		return reject(c, http.StatusNotFound, CodeShopNotFound, "Shop not found", nil)
	case errors.Is(err, domain.ErrForbidden):
		return reject(c, http.StatusForbidden, CodeForbidden, "Access forbidden", nil)
	case errors.Is(err, ErrProductNotFound):
		return reject(c, http.StatusNotFound, CodeProductNotFound, "Product not found", nil)
	case errors.Is(err, ErrProductInShop):
		return reject(c, http.StatusConflict, CodeDuplicate, "Product already exists in shop", nil)
	}
	h.log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
	return reject(c, http.StatusInternalServerError, CodeGeneral, "General error occurred", nil)
}

func (h *handlers) login(c echo.Context) error {
	var req domain.Credentials
	if ok, err := bind(c, &req); !ok {
		return err
	}
	resp, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "Login successful", resp)
}

func (h *handlers) register(c echo.Context) error {
	var req domain.RegisterRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	account, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusCreated, "Registration successful. Please verify the OTP sent to you.", domain.AuthResponse{
		Username: account.Username,
		Email:    account.Email,
		Role:     account.Role.String(),
		UserID:   account.ID,
	})
}

func (h *handlers) verifyOTP(c echo.Context) error {
	var req domain.OTPVerification
	if ok, err := bind(c, &req); !ok {
		return err
	}
	id := req.Email
	if id == "" {
		id = req.MobileNumber
	}
	resp, err := h.svc.VerifyRegistration(c.Request().Context(), id, req.OTP)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "Account verified successfully", resp)
}

func (h *handlers) resendOTP(c echo.Context) error {
	var req domain.OTPResend
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if err := h.svc.ResendRegistrationOTP(c.Request().Context(), req.Identifier()); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "OTP sent successfully", nil)
}

// resetBody accepts "identifier" and, for older clients, "email".
type resetBody struct {
	Identifier      string `json:"identifier"`
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (b resetBody) id() string {
	if b.Identifier != "" {
		return b.Identifier
	}
	return b.Email
}

func (h *handlers) readReset(c echo.Context) (resetBody, bool, error) {
	var b resetBody
	if err := c.Bind(&b); err != nil {
		return b, false, reject(c, http.StatusBadRequest, CodeValidation, "Invalid request body", nil)
	}
	if b.id() == "" {
		return b, false, reject(c, http.StatusBadRequest, CodeValidation, "Email or mobile number is required", nil)
	}
	return b, true, nil
}

func (h *handlers) sendResetOTP(c echo.Context) error {
	b, ok, err := h.readReset(c)
	if !ok {
		return err
	}
	if err := h.svc.SendResetOTP(c.Request().Context(), b.id()); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "OTP has been sent successfully", nil)
}

func (h *handlers) verifyResetOTP(c echo.Context) error {
	b, ok, err := h.readReset(c)
	if !ok {
		return err
	}
	if err := h.svc.VerifyResetOTP(b.id(), b.OTP); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "OTP verified successfully", nil)
}

func (h *handlers) resetPassword(c echo.Context) error {
	b, ok, err := h.readReset(c)
	if !ok {
		return err
	}
	req := domain.PasswordReset{Identifier: b.id(), OTP: b.OTP, NewPassword: b.NewPassword, ConfirmPassword: b.ConfirmPassword}
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.NewPassword
	}
	if ok, err := check(c, req); !ok {
		return err
	}
	if err := h.svc.ResetPassword(c.Request().Context(), req.Identifier, req.OTP, req.NewPassword); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *handlers) logout(c echo.Context) error {
	h.svc.Logout(principal(c))
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *handlers) changePassword(c echo.Context) error {
	var req domain.PasswordChange
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if err := h.svc.ChangePassword(c.Request().Context(), principal(c).Username, req.CurrentPassword, req.NewPassword); err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *handlers) passwordStatus(c echo.Context) error {
	st, err := h.svc.PasswordStatus(c.Request().Context(), principal(c).Username)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "Success", st)
}

func (h *handlers) listShops(c echo.Context) error {
	return respond(c, http.StatusOK, "Success", map[string]any{"content": h.svc.Shops()})
}

func (h *handlers) myShop(c echo.Context) error {
	shop, err := h.svc.MyShop(principal(c).Username)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, "Success", shop)
}

func (h *handlers) addProduct(c echo.Context) error {
	shopID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return reject(c, http.StatusBadRequest, CodeValidation, "Invalid shop id", nil)
	}
	var req domain.ShopProductRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	item, err := h.svc.AddProductToShop(principal(c), shopID, req)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusCreated, "Product added to shop", item)
}
