package fulfillment

import (
	"context"
	"time"

	"github.com/storeops/fulfillment/internal/domain"
)

// SeasonalHandler fulfills SEASONAL products. Outside the season window,
// or when a restock cannot arrive before the season ends, the product is
// pulled from sale and customers get an out-of-stock notice. Products
// with missing season dates are treated as permanently out of season.
type SeasonalHandler struct {
	actions
	now nowFunc
}

func NewSeasonalHandler(repo ProductRepository, notifier NotificationSender) *SeasonalHandler {
	return &SeasonalHandler{
		actions: actions{repo: repo, notifier: notifier},
		now:     time.Now,
	}
}

func (h *SeasonalHandler) Type() string {
	return domain.ProductTypeSeasonal
}

func (h *SeasonalHandler) ProcessOrder(ctx context.Context, p *domain.Product) error {
	now := h.now()

	if inSeason(p, now) && p.Available > 0 {
		return h.decrementStock(ctx, p)
	}

	if beforeSeason(p, now) || seasonOver(p, now) || !canRestockBeforeSeasonEnd(p, now) {
		if err := h.markUnavailable(ctx, p); err != nil {
			return err
		}
		h.notifier.SendOutOfStockNotification(p.Name)
		return nil
	}

	// in season, out of stock, restock still fits before the season ends
	return h.notifyDelay(ctx, p.LeadTime, p)
}

// inSeason: both bounds present and start <= now <= end, inclusive.
func inSeason(p *domain.Product, now time.Time) bool {
	if p.SeasonStartDate == nil || p.SeasonEndDate == nil {
		return false
	}
	return !now.Before(*p.SeasonStartDate) && !now.After(*p.SeasonEndDate)
}

func beforeSeason(p *domain.Product, now time.Time) bool {
	return p.SeasonStartDate != nil && now.Before(*p.SeasonStartDate)
}

func seasonOver(p *domain.Product, now time.Time) bool {
	return p.SeasonEndDate != nil && now.After(*p.SeasonEndDate)
}

// canRestockBeforeSeasonEnd checks whether a restock arriving after the
// product's lead time still lands on or before the season end. A restock
// landing exactly on the season end still qualifies.
func canRestockBeforeSeasonEnd(p *domain.Product, now time.Time) bool {
	if p.SeasonEndDate == nil {
		return false
	}
	restock := now.AddDate(0, 0, p.LeadTime)
	return !restock.After(*p.SeasonEndDate)
}
