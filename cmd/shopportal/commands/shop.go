package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/pkg/config"
)

// NewAssignProductsCommand creates the bulk product assignment command
func NewAssignProductsCommand(conf func() *config.Config) *cobra.Command {
	var featured bool

	cmd := &cobra.Command{
		Use:   "assign-products PRODUCT_ID:PRICE[:STOCK]...",
		Short: "Add master products to the logged-in shop owner's shop",
		Example: `  shopportal assign-products 1:4.50:20 2:3.25
  shopportal assign-products --featured 4:2.00:100`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs := make([]domain.ShopProductRequest, 0, len(args))
			for _, arg := range args {
				req, err := parseAssignment(arg)
				if err != nil {
					return err
				}
				req.IsFeatured = featured
				reqs = append(reqs, req)
			}

			scope, err := openCLI(cmd, conf())
			if err != nil {
				return err
			}
			res, err := scope.Session.AssignProducts(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			if err := printJSON(cmd, res); err != nil {
				return err
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d of %d products were not assigned", len(res.Failed), len(reqs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&featured, "featured", false, "mark the products as featured")
	return cmd
}

// parseAssignment reads "id:price[:stock]".
func parseAssignment(s string) (domain.ShopProductRequest, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return domain.ShopProductRequest{}, fmt.Errorf("invalid product %q: want ID:PRICE[:STOCK]", s)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return domain.ShopProductRequest{}, fmt.Errorf("invalid product id in %q: %w", s, err)
	}
	price, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.ShopProductRequest{}, fmt.Errorf("invalid price in %q: %w", s, err)
	}
	req := domain.ShopProductRequest{
		MasterProductID: id,
		Price:           price,
		IsAvailable:     true,
		Status:          domain.ShopProductActive,
		TrackInventory:  len(parts) == 3,
	}
	if len(parts) == 3 {
		if req.StockQuantity, err = strconv.Atoi(parts[2]); err != nil {
			return domain.ShopProductRequest{}, fmt.Errorf("invalid stock in %q: %w", s, err)
		}
	}
	return req, nil
}
