package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// ShopAPI implements ports.ShopClient.
type ShopAPI struct {
	c *Client
}

func NewShopAPI(c *Client) *ShopAPI {
	return &ShopAPI{c: c}
}

// MyShop asks for the caller's shop and, when that fails, scans the shop
// list for one created or owned by username.
func (s *ShopAPI) MyShop(ctx context.Context, username string) (*domain.Shop, error) {
	shop, err := call[domain.Shop](ctx, s.c, http.MethodGet, "/shops/my-shop", nil)
	if err == nil && shop.ID != 0 {
		return &shop, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	s.c.log.Debug().Err(err).Str("username", username).Msg("my-shop lookup failed, scanning shop list")
	list, lerr := call[shopList](ctx, s.c, http.MethodGet, "/shops", nil)
	if lerr != nil {
		return nil, errors.Join(err, lerr)
	}
	for _, sh := range list {
		if sh.OwnedBy(username) {
			return &sh, nil
		}
	}
	return nil, domain.ErrShopNotFound
}

// AddProductToShop assigns one master product to shopID.
func (s *ShopAPI) AddProductToShop(ctx context.Context, shopID int64, req domain.ShopProductRequest) (*domain.ShopProduct, error) {
	p, err := call[domain.ShopProduct](ctx, s.c, http.MethodPost, fmt.Sprintf("/shops/%d/products", shopID), req)
	if err != nil {
		return nil, err
	}
	if p.MasterProductID == 0 {
		p.MasterProductID = req.MasterProductID
	}
	if p.ShopID == 0 {
		p.ShopID = shopID
	}
	return &p, nil
}

// shopList accepts a bare array or a page object with a content array.
type shopList []domain.Shop

func (l *shopList) UnmarshalJSON(b []byte) error {
	var arr []domain.Shop
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var page struct {
		Content []domain.Shop `json:"content"`
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return err
	}
	*l = page.Content
	return nil
}
