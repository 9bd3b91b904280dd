package devbackend

import (
	"sort"
	"sync"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// shopStore holds shops, the master catalog and shop listings in memory.
type shopStore struct {
	mu       sync.RWMutex
	shops    map[int64]domain.Shop
	catalog  map[int64]string
	listings map[int64]map[int64]domain.ShopProduct
	nextShop int64
	nextItem int64
}

func newShopStore() *shopStore {
	return &shopStore{
		shops:    make(map[int64]domain.Shop),
		catalog:  make(map[int64]string),
		listings: make(map[int64]map[int64]domain.ShopProduct),
	}
}

// AddShop registers a shop owned by ownerUsername.
func (s *Service) AddShop(name, ownerUsername string) domain.Shop {
	st := s.shops
	st.mu.Lock()
	defer st.mu.Unlock()
	st.nextShop++
	shop := domain.Shop{
		ID:        st.nextShop,
		Name:      name,
		CreatedBy: ownerUsername,
		IsActive:  true,
	}
	st.shops[shop.ID] = shop
	return shop
}

// AddMasterProduct makes a product assignable to shops.
func (s *Service) AddMasterProduct(id int64, name string) {
	st := s.shops
	st.mu.Lock()
	defer st.mu.Unlock()
	st.catalog[id] = name
}

// MyShop returns the first shop created or owned by username.
func (s *Service) MyShop(username string) (domain.Shop, error) {
	for _, shop := range s.Shops() {
		if shop.OwnedBy(username) {
			return shop, nil
		}
	}
	return domain.Shop{}, domain.ErrShopNotFound
}

// Shops lists every shop ordered by id.
func (s *Service) Shops() []domain.Shop {
	st := s.shops
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]domain.Shop, 0, len(st.shops))
	for _, shop := range st.shops {
		out = append(out, shop)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddProductToShop lists a master product in a shop. Only the shop's owner
// and administrators may do so.
func (s *Service) AddProductToShop(p *Principal, shopID int64, req domain.ShopProductRequest) (domain.ShopProduct, error) {
	st := s.shops
	st.mu.Lock()
	defer st.mu.Unlock()

	shop, ok := st.shops[shopID]
	if !ok {
		return domain.ShopProduct{}, domain.ErrShopNotFound
	}
	admin := p.Role == domain.RoleAdmin || p.Role == domain.RoleSuperAdmin
	if !admin && !shop.OwnedBy(p.Username) {
		return domain.ShopProduct{}, domain.ErrForbidden
	}
	if _, ok := st.catalog[req.MasterProductID]; !ok {
		return domain.ShopProduct{}, ErrProductNotFound
	}
	items := st.listings[shopID]
	if items == nil {
		items = make(map[int64]domain.ShopProduct)
		st.listings[shopID] = items
	}
	if _, dup := items[req.MasterProductID]; dup {
		return domain.ShopProduct{}, ErrProductInShop
	}

	status := req.Status
	if status == "" {
		status = domain.ShopProductActive
	}
	st.nextItem++
	item := domain.ShopProduct{
		ID:              st.nextItem,
		ShopID:          shopID,
		MasterProductID: req.MasterProductID,
		Price:           req.Price,
		StockQuantity:   req.StockQuantity,
		Status:          status,
	}
	items[req.MasterProductID] = item
	return item, nil
}
