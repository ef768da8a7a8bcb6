package fulfillment

import (
	"context"

	"go.uber.org/zap"

	"github.com/storeops/fulfillment/internal/domain"
)

// OrderProcessor applies the fulfillment policy to every product of an
// order. Products are processed one at a time, in the order the
// repository returns them.
type OrderProcessor struct {
	repo     ProductRepository
	registry *Registry
}

func NewOrderProcessor(repo ProductRepository, registry *Registry) *OrderProcessor {
	return &OrderProcessor{repo: repo, registry: registry}
}

// ProcessOrder loads the order and dispatches each of its products to
// the handler governing its type. Returns ErrOrderNotFound when the
// order id does not exist; storage errors propagate unchanged.
func (s *OrderProcessor) ProcessOrder(ctx context.Context, orderID int64) (int64, error) {
	order, err := s.repo.FindOrderWithProducts(ctx, orderID)
	if err != nil {
		return 0, err
	}

	for i := range order.Products {
		if err := s.ProcessProduct(ctx, &order.Products[i]); err != nil {
			return 0, err
		}
	}

	zap.L().Debug("order processed",
		zap.Int64("order_id", order.ID),
		zap.Int("products", len(order.Products)))
	return order.ID, nil
}

// ProcessProduct applies the product's type policy directly, bypassing
// order lookup. Used when a single product's policy must be re-applied.
func (s *OrderProcessor) ProcessProduct(ctx context.Context, product *domain.Product) error {
	return s.registry.Resolve(product.Type).ProcessOrder(ctx, product)
}
