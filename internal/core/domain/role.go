package domain

import (
	"encoding/json"
	"strings"
)

// Role is the canonical representation of a portal role. Every place that
// reasons about roles goes through this type; raw strings are only accepted
// at the JSON boundary via ParseRole.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleSuperAdmin
	RoleAdmin
	RoleManager
	RoleShopOwner
	RoleDeliveryPartner
	RoleUser

	roleCount
)

var roleNames = [roleCount]string{
	RoleUnknown:         "",
	RoleSuperAdmin:      "SUPER_ADMIN",
	RoleAdmin:           "ADMIN",
	RoleManager:         "MANAGER",
	RoleShopOwner:       "SHOP_OWNER",
	RoleDeliveryPartner: "DELIVERY_PARTNER",
	RoleUser:            "USER",
}

// ParseRole coerces a backend role string into the enumeration. CUSTOMER is
// the storefront name of USER. Unrecognised values yield RoleUnknown.
func ParseRole(s string) Role {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	if s == "CUSTOMER" {
		return RoleUser
	}
	for r := RoleSuperAdmin; r < roleCount; r++ {
		if roleNames[r] == s {
			return r
		}
	}
	return RoleUnknown
}

// Roles returns every known role in declaration order.
func Roles() []Role {
	out := make([]Role, 0, roleCount-1)
	for r := RoleSuperAdmin; r < roleCount; r++ {
		out = append(out, r)
	}
	return out
}

func (r Role) String() string {
	if r >= roleCount {
		return ""
	}
	return roleNames[r]
}

// Known reports whether r is a member of the enumeration.
func (r Role) Known() bool {
	return r > RoleUnknown && r < roleCount
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// MenuEntry is one navigation item of a role's layout.
type MenuEntry struct {
	Label string `json:"label"`
	Route string `json:"route"`
	Icon  string `json:"icon,omitempty"`
}

// RoleProfile is everything the portal derives statically from a role.
type RoleProfile struct {
	DefaultRoute string
	Menu         []MenuEntry
}

const (
	RouteLogin          = "/auth/login"
	RouteChangePassword = "/auth/change-password"
	RouteUnauthorized   = "/unauthorized"
)

var adminMenu = []MenuEntry{
	{Label: "Dashboard", Route: "/dashboard", Icon: "dashboard"},
	{Label: "Shops", Route: "/admin/shops", Icon: "store"},
	{Label: "Master Products", Route: "/products/master", Icon: "inventory"},
	{Label: "Categories", Route: "/products/categories", Icon: "category"},
	{Label: "Orders", Route: "/admin/orders", Icon: "receipt"},
	{Label: "Delivery Partners", Route: "/delivery/admin/partners", Icon: "local_shipping"},
	{Label: "Delivery Analytics", Route: "/delivery/analytics", Icon: "analytics"},
}

// managerMenu leaves out the /admin pages, which are for admins only.
var managerMenu = []MenuEntry{
	{Label: "Dashboard", Route: "/dashboard", Icon: "dashboard"},
	{Label: "Master Products", Route: "/products/master", Icon: "inventory"},
	{Label: "Categories", Route: "/products/categories", Icon: "category"},
	{Label: "Delivery Partners", Route: "/delivery/admin/partners", Icon: "local_shipping"},
	{Label: "Delivery Analytics", Route: "/delivery/analytics", Icon: "analytics"},
}

// roleProfiles is indexed by Role; TestRoleProfilesCoverEveryRole keeps it
// exhaustive.
var roleProfiles = [roleCount]RoleProfile{
	RoleSuperAdmin: {
		DefaultRoute: "/dashboard",
		Menu: append(append([]MenuEntry{}, adminMenu...),
			MenuEntry{Label: "Users", Route: "/admin/users", Icon: "people"},
			MenuEntry{Label: "Menu Permissions", Route: "/admin/menu-permissions", Icon: "security"},
			MenuEntry{Label: "Partner Payments", Route: "/delivery/partner-payments", Icon: "payments"},
		),
	},
	RoleAdmin: {
		DefaultRoute: "/dashboard",
		Menu: append(append([]MenuEntry{}, adminMenu...),
			MenuEntry{Label: "Partner Payments", Route: "/delivery/partner-payments", Icon: "payments"},
		),
	},
	RoleManager: {
		DefaultRoute: "/dashboard",
		Menu:         managerMenu,
	},
	RoleShopOwner: {
		DefaultRoute: "/shop-owner/dashboard",
		Menu: []MenuEntry{
			{Label: "Dashboard", Route: "/shop-owner/dashboard", Icon: "dashboard"},
			{Label: "Shop Profile", Route: "/shop-owner/profile", Icon: "store"},
			{Label: "My Products", Route: "/shop-owner/my-products", Icon: "inventory"},
			{Label: "Browse Products", Route: "/shop-owner/browse-products", Icon: "search"},
			{Label: "Combos", Route: "/shop-owner/combos", Icon: "redeem"},
			{Label: "Orders", Route: "/shop-owner/orders-management", Icon: "receipt"},
			{Label: "Notifications", Route: "/shop-owner/notifications", Icon: "notifications"},
			{Label: "Promo Codes", Route: "/shop-owner/promo-codes", Icon: "local_offer"},
		},
	},
	RoleDeliveryPartner: {
		DefaultRoute: "/delivery/partner/dashboard",
		Menu: []MenuEntry{
			{Label: "Dashboard", Route: "/delivery/partner/dashboard", Icon: "dashboard"},
			{Label: "My Orders", Route: "/delivery/partner/orders", Icon: "local_shipping"},
		},
	},
	RoleUser: {
		DefaultRoute: "/customer/shops",
		Menu: []MenuEntry{
			{Label: "Shops", Route: "/customer/shops", Icon: "store"},
			{Label: "My Orders", Route: "/customer/orders", Icon: "receipt"},
			{Label: "Cart", Route: "/customer/cart", Icon: "shopping_cart"},
		},
	},
}

// Profile returns the static profile of r. Unknown roles get an empty menu
// and the unauthorized page as their landing route.
func (r Role) Profile() RoleProfile {
	if !r.Known() {
		return RoleProfile{DefaultRoute: RouteUnauthorized}
	}
	return roleProfiles[r]
}
