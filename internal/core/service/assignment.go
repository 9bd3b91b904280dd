package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
	"github.com/shopmanagement/portal/internal/metrics"
)

const defaultAssignConcurrency = 8

// AssignProducts adds every request to the shop concurrently. Each item
// settles on its own: a failure never cancels its siblings and nothing is
// retried. Results keep the order of reqs.
func AssignProducts(ctx context.Context, shops ports.ShopClient, shopID int64, reqs []domain.ShopProductRequest, concurrency int) domain.AssignmentResult {
	if concurrency <= 0 {
		concurrency = defaultAssignConcurrency
	}

	type outcome struct {
		product *domain.ShopProduct
		err     error
	}
	outcomes := make([]outcome, len(reqs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := Validate(req); err != nil {
				outcomes[i].err = err
				return nil
			}
			p, err := shops.AddProductToShop(ctx, shopID, req)
			outcomes[i] = outcome{product: p, err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := domain.AssignmentResult{
		Succeeded: make([]domain.ShopProduct, 0, len(reqs)),
		Failed:    []domain.AssignmentFailure{},
	}
	for i, o := range outcomes {
		if o.err != nil {
			res.Failed = append(res.Failed, domain.AssignmentFailure{
				Index:           i,
				MasterProductID: reqs[i].MasterProductID,
				Message:         domain.DisplayMessage(o.err, domain.InterceptorMessages),
				Err:             o.err,
			})
			continue
		}
		if o.product != nil {
			res.Succeeded = append(res.Succeeded, *o.product)
		} else {
			res.Succeeded = append(res.Succeeded, domain.ShopProduct{ShopID: shopID, MasterProductID: reqs[i].MasterProductID})
		}
	}
	metrics.ProductAssignmentsTotal.WithLabelValues("succeeded").Add(float64(len(res.Succeeded)))
	metrics.ProductAssignmentsTotal.WithLabelValues("failed").Add(float64(len(res.Failed)))
	return res
}

// AssignProducts adds products to the shop cached for this session and
// reports the outcome to the user.
func (s *Session) AssignProducts(ctx context.Context, reqs []domain.ShopProductRequest) (domain.AssignmentResult, error) {
	if s.shops == nil {
		return domain.AssignmentResult{}, domain.ErrNoShopContext
	}
	shopID, ok := s.store.ShopID(ctx)
	if !ok {
		s.fail(ctx, domain.ErrNoShopContext, domain.MessageDefaults{Fallback: "No shop is selected for your account."})
		return domain.AssignmentResult{}, domain.ErrNoShopContext
	}

	res := AssignProducts(ctx, s.shops, shopID, reqs, 0)
	switch {
	case len(res.Failed) == 0:
		s.show(ctx, domain.LevelSuccess, fmt.Sprintf("Successfully added %d products to your shop!", len(res.Succeeded)))
	case len(res.Succeeded) == 0:
		s.show(ctx, domain.LevelError, fmt.Sprintf("Failed to add %d products.", len(res.Failed)))
	default:
		s.show(ctx, domain.LevelWarning, fmt.Sprintf("Added %d products successfully, %d failed.", len(res.Succeeded), len(res.Failed)))
	}
	return res, nil
}
