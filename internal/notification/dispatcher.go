package notification

import (
	"time"

	"github.com/asaskevich/EventBus"

	"github.com/storeops/fulfillment/internal/fulfillment"
)

// Event bus topics, one per notification kind.
const (
	TopicDelay      = "notify:delay"
	TopicOutOfStock = "notify:out_of_stock"
	TopicExpiration = "notify:expiration"
)

// Dispatcher implements the fulfillment notification port by publishing
// each notification on an in-process event bus. Subscribers (mailer,
// logger, audit writer) are attached at composition time and run
// asynchronously; a failing subscriber never reaches the caller.
type Dispatcher struct {
	bus EventBus.Bus
}

var _ fulfillment.NotificationSender = (*Dispatcher)(nil)

func NewDispatcher() *Dispatcher {
	return &Dispatcher{bus: EventBus.New()}
}

func (d *Dispatcher) SendDelayNotification(leadTime int, productName string) {
	d.bus.Publish(TopicDelay, leadTime, productName)
}

func (d *Dispatcher) SendOutOfStockNotification(productName string) {
	d.bus.Publish(TopicOutOfStock, productName)
}

func (d *Dispatcher) SendExpirationNotification(productName string, expiryDate time.Time) {
	d.bus.Publish(TopicExpiration, productName, expiryDate)
}

// SubscribeDelay attaches fn to delay notifications. Async: publishing
// never blocks on the subscriber.
func (d *Dispatcher) SubscribeDelay(fn func(leadTime int, productName string)) error {
	return d.bus.SubscribeAsync(TopicDelay, fn, false)
}

func (d *Dispatcher) SubscribeOutOfStock(fn func(productName string)) error {
	return d.bus.SubscribeAsync(TopicOutOfStock, fn, false)
}

func (d *Dispatcher) SubscribeExpiration(fn func(productName string, expiryDate time.Time)) error {
	return d.bus.SubscribeAsync(TopicExpiration, fn, false)
}

// Wait blocks until all in-flight async subscriber callbacks finish.
// Used by tests and by graceful shutdown.
func (d *Dispatcher) Wait() {
	d.bus.WaitAsync()
}
