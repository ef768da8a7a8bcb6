package fulfillment

import (
	"context"
	"errors"
	"time"

	"github.com/storeops/fulfillment/internal/domain"
)

// ErrOrderNotFound is returned by ProcessOrder when the order id does not
// exist. Callers map it to a user-visible "not found" response.
var ErrOrderNotFound = errors.New("order not found")

// ProductRepository is the persistence port consumed by the fulfillment
// core. Implementations live outside the core (see internal/repository).
type ProductRepository interface {
	// FindOrderWithProducts loads an order and all products associated
	// with it. Returns ErrOrderNotFound when the order does not exist.
	FindOrderWithProducts(ctx context.Context, orderID int64) (*domain.Order, error)

	// PersistProduct writes the product's current state keyed by its id.
	// Safe to call repeatedly with the same values.
	PersistProduct(ctx context.Context, product *domain.Product) error
}

// NotificationSender is the outbound notification port. All operations
// are fire-and-forget: delivery failures never reach the core and never
// roll back a persisted stock mutation.
type NotificationSender interface {
	SendDelayNotification(leadTime int, productName string)
	SendOutOfStockNotification(productName string)
	SendExpirationNotification(productName string, expiryDate time.Time)
}
