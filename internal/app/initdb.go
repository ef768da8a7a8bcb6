package app

import (
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storeops/fulfillment/config"
	"github.com/storeops/fulfillment/internal/domain"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	loglevel := logger.Silent
	if cfg.Debug {
		loglevel = logger.Info
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite":
		dialector = sqlite.Open(path.Join(workdir, cfg.Name+".db"))
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		dialector = postgres.Open(dsn)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(loglevel),
	})
	if err != nil {
		zap.S().Fatalf("failed to connect %s database: %v", cfg.Type, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		zap.S().Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gormDB
}

// settingSchema describes one seedable settings row.
type settingSchema struct {
	Category    string
	Name        string
	Default     string
	Description string
}

var settingSchemas = []settingSchema{
	{"fulfillment", "sweep_enabled", "true", "Periodically re-apply fulfillment policy to expired and out-of-season products"},
	{"fulfillment", "sweep_batch_size", "200", "Maximum products handled per policy sweep"},
	{"notification", "retention_days", "90", "Days to keep notification audit records"},
}

// checkSettings initializes missing settings rows with their defaults.
func (a *Application) checkSettings() {
	for sortid, schema := range settingSchemas {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", schema.Category, schema.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   schema.Category,
				Name:   schema.Name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized setting",
				zap.String("key", schema.Category+"."+schema.Name),
				zap.String("default", schema.Default))
		}
	}
}
