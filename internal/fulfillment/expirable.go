package fulfillment

import (
	"context"
	"time"

	"github.com/storeops/fulfillment/internal/domain"
)

// ExpirableHandler fulfills EXPIRABLE products: ship from stock while the
// product has not expired, otherwise pull it from sale. The expiry
// instant itself counts as expired. A nil expiry date never expires.
type ExpirableHandler struct {
	actions
	now nowFunc
}

func NewExpirableHandler(repo ProductRepository, notifier NotificationSender) *ExpirableHandler {
	return &ExpirableHandler{
		actions: actions{repo: repo, notifier: notifier},
		now:     time.Now,
	}
}

func (h *ExpirableHandler) Type() string {
	return domain.ProductTypeExpirable
}

func (h *ExpirableHandler) ProcessOrder(ctx context.Context, p *domain.Product) error {
	expired := hasExpired(p, h.now())

	if p.Available > 0 && !expired {
		return h.decrementStock(ctx, p)
	}

	if err := h.markUnavailable(ctx, p); err != nil {
		return err
	}
	if p.ExpiryDate != nil {
		h.notifier.SendExpirationNotification(p.Name, *p.ExpiryDate)
	}
	return nil
}

func hasExpired(p *domain.Product, now time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	return !p.ExpiryDate.After(now)
}
