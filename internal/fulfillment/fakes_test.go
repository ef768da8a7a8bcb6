package fulfillment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/storeops/fulfillment/internal/domain"
)

// memRepo is an in-memory product repository used by the handler and
// processor tests.
type memRepo struct {
	orders       map[int64]*domain.Order
	products     map[int64]domain.Product
	persistCalls int
	persistErr   error
}

func newMemRepo(products ...domain.Product) *memRepo {
	r := &memRepo{
		orders:   map[int64]*domain.Order{},
		products: map[int64]domain.Product{},
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memRepo) addOrder(id int64, productIDs ...int64) {
	order := &domain.Order{ID: id}
	for _, pid := range productIDs {
		order.Products = append(order.Products, r.products[pid])
	}
	r.orders[id] = order
}

func (r *memRepo) FindOrderWithProducts(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := *order
	cp.Products = append([]domain.Product(nil), order.Products...)
	return &cp, nil
}

func (r *memRepo) PersistProduct(ctx context.Context, product *domain.Product) error {
	if r.persistErr != nil {
		return r.persistErr
	}
	if _, ok := r.products[product.ID]; !ok {
		return errors.Errorf("persist product %d: no such product", product.ID)
	}
	r.products[product.ID] = *product
	r.persistCalls++
	return nil
}

type delayCall struct {
	leadTime int
	name     string
}

type expirationCall struct {
	name   string
	expiry time.Time
}

// notifierRecorder captures every notification emitted by a handler.
type notifierRecorder struct {
	delays      []delayCall
	outOfStocks []string
	expirations []expirationCall
}

func (n *notifierRecorder) SendDelayNotification(leadTime int, productName string) {
	n.delays = append(n.delays, delayCall{leadTime: leadTime, name: productName})
}

func (n *notifierRecorder) SendOutOfStockNotification(productName string) {
	n.outOfStocks = append(n.outOfStocks, productName)
}

func (n *notifierRecorder) SendExpirationNotification(productName string, expiryDate time.Time) {
	n.expirations = append(n.expirations, expirationCall{name: productName, expiry: expiryDate})
}

func timePtr(t time.Time) *time.Time {
	return &t
}
