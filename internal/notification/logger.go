package notification

import (
	"time"

	"go.uber.org/zap"
)

// AttachLogger subscribes a zap-based sink that records every
// notification in the service log.
func AttachLogger(d *Dispatcher) error {
	if err := d.SubscribeDelay(func(leadTime int, productName string) {
		zap.L().Info("delay notification",
			zap.String("product", productName),
			zap.Int("lead_time_days", leadTime))
	}); err != nil {
		return err
	}
	if err := d.SubscribeOutOfStock(func(productName string) {
		zap.L().Info("out-of-stock notification",
			zap.String("product", productName))
	}); err != nil {
		return err
	}
	return d.SubscribeExpiration(func(productName string, expiryDate time.Time) {
		zap.L().Info("expiration notification",
			zap.String("product", productName),
			zap.Time("expiry_date", expiryDate))
	})
}
