package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagement/portal/internal/core/domain"
)

type ShopHandler struct{}

func NewShopHandler() *ShopHandler {
	return &ShopHandler{}
}

type bulkAssignRequest struct {
	Items []domain.ShopProductRequest `json:"items" validate:"required,min=1,max=500"`
}

type bulkAssignResponse struct {
	Succeeded []domain.ShopProduct       `json:"succeeded"`
	Failed    []domain.AssignmentFailure `json:"failed"`
}

// BulkAssign adds many master products to the session's shop at once. Items
// are settled independently; failures are reported per item.
//
// @Summary      Bulk-assign products to my shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        body  body      bulkAssignRequest  true  "Products to assign"
// @Success      200   {object}  bulkAssignResponse  "Every item succeeded"
// @Success      207   {object}  bulkAssignResponse  "Some items failed"
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse  "No shop selected for this session"
// @Router       /shop-owner/products/bulk-assign [post]
func (h *ShopHandler) BulkAssign(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req bulkAssignRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	res, err := scope.Session.AssignProducts(c.Request().Context(), req.Items)
	if err != nil {
		return err
	}
	out := bulkAssignResponse{Succeeded: res.Succeeded, Failed: res.Failed}
	if out.Succeeded == nil {
		out.Succeeded = []domain.ShopProduct{}
	}
	if out.Failed == nil {
		out.Failed = []domain.AssignmentFailure{}
	}
	status := http.StatusOK
	if len(out.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, out)
}
