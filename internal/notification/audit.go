package notification

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storeops/fulfillment/internal/domain"
)

// AuditWriter persists one NotificationRecord row per dispatched
// notification. Best effort only: a failed insert is logged and dropped.
type AuditWriter struct {
	db *gorm.DB
}

func NewAuditWriter(db *gorm.DB) *AuditWriter {
	return &AuditWriter{db: db}
}

func (w *AuditWriter) Attach(d *Dispatcher) error {
	if err := d.SubscribeDelay(func(leadTime int, productName string) {
		w.record(&domain.NotificationRecord{
			Kind:        domain.NotifyKindDelay,
			ProductName: productName,
			LeadTime:    leadTime,
		})
	}); err != nil {
		return err
	}
	if err := d.SubscribeOutOfStock(func(productName string) {
		w.record(&domain.NotificationRecord{
			Kind:        domain.NotifyKindOutOfStock,
			ProductName: productName,
		})
	}); err != nil {
		return err
	}
	return d.SubscribeExpiration(func(productName string, expiryDate time.Time) {
		expiry := expiryDate
		w.record(&domain.NotificationRecord{
			Kind:        domain.NotifyKindExpiration,
			ProductName: productName,
			ExpiryDate:  &expiry,
		})
	})
}

func (w *AuditWriter) record(rec *domain.NotificationRecord) {
	if err := w.db.Create(rec).Error; err != nil {
		zap.L().Warn("failed to record notification",
			zap.String("kind", rec.Kind),
			zap.String("product", rec.ProductName),
			zap.Error(err))
	}
}
