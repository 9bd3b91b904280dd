package domain

// Shop is the subset of the backend shop record the portal relies on.
type Shop struct {
	ID           int64  `json:"id"`
	ShopID       string `json:"shopId,omitempty"`
	Name         string `json:"name"`
	BusinessName string `json:"businessName,omitempty"`
	OwnerEmail   string `json:"ownerEmail,omitempty"`
	CreatedBy    string `json:"createdBy,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// DisplayName prefers the shop name over the business name.
func (s Shop) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.BusinessName
}

// OwnedBy reports whether username created or owns the shop.
func (s Shop) OwnedBy(username string) bool {
	return username != "" && (s.CreatedBy == username || s.OwnerEmail == username)
}

type ShopProductStatus string

const (
	ShopProductActive   ShopProductStatus = "ACTIVE"
	ShopProductInactive ShopProductStatus = "INACTIVE"
)

// ShopProductRequest assigns a master product to a shop.
type ShopProductRequest struct {
	MasterProductID int64             `json:"masterProductId" validate:"required,gt=0"`
	Price           float64           `json:"price" validate:"gt=0"`
	StockQuantity   int               `json:"stockQuantity" validate:"gte=0"`
	IsAvailable     bool              `json:"isAvailable"`
	Status          ShopProductStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	TrackInventory  bool              `json:"trackInventory"`
	IsFeatured      bool              `json:"isFeatured"`
}

type ShopProduct struct {
	ID              int64             `json:"id"`
	ShopID          int64             `json:"shopId"`
	MasterProductID int64             `json:"masterProductId"`
	Price           float64           `json:"price"`
	StockQuantity   int               `json:"stockQuantity"`
	Status          ShopProductStatus `json:"status"`
}

// AssignmentFailure records one rejected item of a bulk assignment.
type AssignmentFailure struct {
	Index           int    `json:"index"`
	MasterProductID int64  `json:"masterProductId"`
	Message         string `json:"message"`
	Err             error  `json:"-"`
}

// AssignmentResult aggregates a bulk assignment where every item settles
// independently.
type AssignmentResult struct {
	Succeeded []ShopProduct       `json:"succeeded"`
	Failed    []AssignmentFailure `json:"failed"`
}

// Partial reports whether some, but not all, items were rejected.
func (r AssignmentResult) Partial() bool {
	return len(r.Failed) > 0 && len(r.Succeeded) > 0
}
