package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/storeops/fulfillment/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 1h", func() {
		a.SchedPolicySweepTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		retention := a.GetSettingsInt64Value("notification", "retention_days")
		if retention <= 0 {
			retention = 90
		}
		a.gormDB.
			Where("created_at < ?", time.Now().AddDate(0, 0, -int(retention))).
			Delete(&domain.NotificationRecord{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}
}

// SchedPolicySweepTask re-applies the fulfillment policy to products
// whose temporal state has lapsed while still showing stock: expired
// EXPIRABLE products and SEASONAL products past their season end. The
// handlers pull them from sale and emit the matching notifications.
func (a *Application) SchedPolicySweepTask() {
	if !a.GetSettingsBoolValue("fulfillment", "sweep_enabled") {
		return
	}

	batch := int(a.GetSettingsInt64Value("fulfillment", "sweep_batch_size"))
	if batch <= 0 {
		batch = 200
	}

	now := time.Now()
	var products []domain.Product
	err := a.gormDB.
		Where("type = ? AND expiry_date IS NOT NULL AND expiry_date <= ? AND available > 0",
			domain.ProductTypeExpirable, now).
		Or("type = ? AND season_end_date IS NOT NULL AND season_end_date < ? AND available > 0",
			domain.ProductTypeSeasonal, now).
		Limit(batch).
		Find(&products).Error
	if err != nil {
		zap.L().Error("policy sweep query failed", zap.Error(err))
		return
	}

	if len(products) == 0 {
		return
	}

	ctx := context.Background()
	swept := 0
	for i := range products {
		if err := a.processor.ProcessProduct(ctx, &products[i]); err != nil {
			zap.L().Error("policy sweep failed for product",
				zap.Int64("product_id", products[i].ID),
				zap.Error(err))
			continue
		}
		swept++
	}

	zap.L().Info("policy sweep finished",
		zap.Int("matched", len(products)),
		zap.Int("swept", swept))
}
