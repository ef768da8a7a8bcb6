package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/storeops/fulfillment/config"
	"github.com/storeops/fulfillment/internal/domain"
	"github.com/storeops/fulfillment/internal/fulfillment"
	"github.com/storeops/fulfillment/internal/notification"
	"github.com/storeops/fulfillment/internal/repository"
)

type Application struct {
	appConfig  *config.AppConfig
	gormDB     *gorm.DB
	sched      *cron.Cron
	settings   *SettingsManager
	dispatcher *notification.Dispatcher
	processor  *fulfillment.OrderProcessor
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ ProcessorProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.Logger.Filename)
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database, cfg.System.Workdir)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	// Ensure database schema is migrated before loading settings
	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.Bootstrap()
}

// Bootstrap seeds default settings and wires the fulfillment core and
// background jobs. Split from Init so tests can run it against an
// injected database.
func (a *Application) Bootstrap() {
	a.settings = NewSettingsManager(a.gormDB)
	a.checkSettings()
	a.wireFulfillment()
	a.initJob()
}

// wireFulfillment composes the fulfillment core: repository and
// notification ports into handlers, registry and processor.
func (a *Application) wireFulfillment() {
	repo := repository.NewGormProductRepository(a.gormDB)

	a.dispatcher = notification.NewDispatcher()
	if err := notification.AttachLogger(a.dispatcher); err != nil {
		zap.L().Error("failed to attach notification logger", zap.Error(err))
	}
	if err := notification.NewAuditWriter(a.gormDB).Attach(a.dispatcher); err != nil {
		zap.L().Error("failed to attach notification audit writer", zap.Error(err))
	}
	if a.appConfig.Smtp.Enabled {
		if err := notification.NewMailer(a.appConfig.Smtp).Attach(a.dispatcher); err != nil {
			zap.L().Error("failed to attach notification mailer", zap.Error(err))
		}
	}

	registry, err := fulfillment.NewRegistry(
		fulfillment.NewNormalHandler(repo, a.dispatcher),
		fulfillment.NewSeasonalHandler(repo, a.dispatcher),
		fulfillment.NewExpirableHandler(repo, a.dispatcher),
	)
	if err != nil {
		// no NORMAL fallback means no fulfillment policy at all
		zap.S().Fatalf("fulfillment registry: %v", err)
	}

	a.processor = fulfillment.NewOrderProcessor(repo, registry)
}

func (a *Application) MigrateDB(track bool) (err error) {
	if track {
		return a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...)
	}
	return a.gormDB.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
		zap.S().Error(err)
	}
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Processor returns the order processor
func (a *Application) Processor() *fulfillment.OrderProcessor {
	return a.processor
}

// Dispatcher returns the notification dispatcher
func (a *Application) Dispatcher() *notification.Dispatcher {
	return a.dispatcher
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.settings.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.settings.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.settings.GetBool(category, key)
}

// Start scheduler job runner
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	if a.sched != nil {
		a.sched.Start()
		zap.L().Info("background jobs started")
	}
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}

	if a.dispatcher != nil {
		a.dispatcher.Wait()
	}

	_ = zap.L().Sync()
}
