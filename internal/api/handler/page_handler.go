package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/service"
)

// ErrorResponse is the body of every failed portal request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	// RetryAfter is the remaining resend cooldown in seconds.
	RetryAfter int `json:"retryAfter,omitempty"`
}

func describe(c echo.Context, s *service.Session) sessionResponse {
	ctx := c.Request().Context()
	resp := sessionResponse{
		Authenticated:          s.IsAuthenticated(ctx),
		User:                   s.CurrentUser(),
		PasswordChangeRequired: s.PasswordChangeRequired(ctx),
	}
	if id, ok := s.ShopID(ctx); ok {
		resp.ShopID = id
	}
	return resp
}

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type pageResponse struct {
	Path string             `json:"path"`
	User *domain.User       `json:"user"`
	Menu []domain.MenuEntry `json:"menu"`
}

type menuResponse struct {
	Landing string             `json:"landing"`
	Menu    []domain.MenuEntry `json:"menu"`
}

// Page serves a guarded portal page. The guards have already admitted the
// caller; the page carries the user and their navigation.
//
// @Summary      Portal page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Failure      302  "Redirect chosen by the route guards"
// @Router       /dashboard [get]
func (h *PageHandler) Page(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{
		Path: c.Request().URL.Path,
		User: scope.Session.CurrentUser(),
		Menu: scope.Session.Menu(),
	})
}

// Menu returns the navigation of the current role.
//
// @Summary      Role menu
// @Tags         pages
// @Produce      json
// @Success      200  {object}  menuResponse
// @Router       /menu [get]
func (h *PageHandler) Menu(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	menu := scope.Session.Menu()
	if menu == nil {
		menu = []domain.MenuEntry{}
	}
	return c.JSON(http.StatusOK, menuResponse{Landing: scope.Session.LandingRoute(), Menu: menu})
}

// Unauthorized is where unknown roles land.
//
// @Summary      Unauthorized page
// @Tags         pages
// @Produce      json
// @Success      403  {object}  ErrorResponse
// @Router       /unauthorized [get]
func (h *PageHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, ErrorResponse{Error: "You don't have permission to access this page"})
}

// Notifications drains the notifications queued for this session.
//
// @Summary      Pending notifications
// @Tags         pages
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /notifications [get]
func (h *PageHandler) Notifications(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scope.Flash.Drain(c.Request().Context()))
}
