package fulfillment

import (
	"context"

	"github.com/storeops/fulfillment/internal/domain"
)

// NormalHandler fulfills NORMAL products: ship from stock when available,
// otherwise announce the configured restock lead time.
type NormalHandler struct {
	actions
}

func NewNormalHandler(repo ProductRepository, notifier NotificationSender) *NormalHandler {
	return &NormalHandler{actions{repo: repo, notifier: notifier}}
}

func (h *NormalHandler) Type() string {
	return domain.ProductTypeNormal
}

func (h *NormalHandler) ProcessOrder(ctx context.Context, p *domain.Product) error {
	if p.Available > 0 {
		return h.decrementStock(ctx, p)
	}
	if p.LeadTime > 0 {
		return h.notifyDelay(ctx, p.LeadTime, p)
	}
	// no stock and no pending restock: nothing to do
	return nil
}
