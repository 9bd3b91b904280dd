package devbackend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// DemoPassword is the password of every account created by SeedDemo.
const DemoPassword = "password123"

// SeedDemo creates one verified account per role, a shop for the shop owner
// and a small master catalog. The "temp" account must change its password on
// first login. Accounts that already exist are kept as they are.
func SeedDemo(ctx context.Context, s *Service) error {
	for _, role := range domain.Roles() {
		name := strings.ToLower(strings.ReplaceAll(role.String(), "_", ""))
		if err := seedOne(ctx, s, name, role, false); err != nil {
			return err
		}
	}
	if err := seedOne(ctx, s, "temp", domain.RoleUser, true); err != nil {
		return err
	}

	s.AddShop("Corner Store", "shopowner")
	for i, name := range []string{"Basmati Rice 5kg", "Sunflower Oil 1L", "Whole Wheat Flour 10kg", "Green Tea 100 bags"} {
		s.AddMasterProduct(int64(i+1), name)
	}
	return nil
}

func seedOne(ctx context.Context, s *Service, name string, role domain.Role, mustChange bool) error {
	_, err := s.Seed(ctx, name, name+"@shop.local", DemoPassword, role, mustChange)
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	return nil
}
