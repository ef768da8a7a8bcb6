package fulfillment

import (
	"context"
	"time"

	"github.com/storeops/fulfillment/internal/domain"
)

// ProductHandler applies the fulfillment policy for one product type.
type ProductHandler interface {
	// Type returns the product type this handler governs.
	Type() string

	// ProcessOrder decides the fulfillment outcome for one product:
	// decrement stock, mark it unavailable, or emit a notification.
	// State changes are persisted before any notification is sent.
	ProcessOrder(ctx context.Context, product *domain.Product) error
}

// actions holds the primitive state transitions shared by all handlers.
// Every transition persists before notifying.
type actions struct {
	repo     ProductRepository
	notifier NotificationSender
}

func (a actions) decrementStock(ctx context.Context, p *domain.Product) error {
	p.Available--
	return a.repo.PersistProduct(ctx, p)
}

func (a actions) markUnavailable(ctx context.Context, p *domain.Product) error {
	p.Available = 0
	return a.repo.PersistProduct(ctx, p)
}

// notifyDelay records the promised lead time on the product, persists it,
// then emits the delay notification.
func (a actions) notifyDelay(ctx context.Context, leadTime int, p *domain.Product) error {
	p.LeadTime = leadTime
	if err := a.repo.PersistProduct(ctx, p); err != nil {
		return err
	}
	a.notifier.SendDelayNotification(leadTime, p.Name)
	return nil
}

// nowFunc is injected into time-sensitive handlers so boundary behavior
// is exact under test. Production wiring leaves it as time.Now.
type nowFunc func() time.Time
