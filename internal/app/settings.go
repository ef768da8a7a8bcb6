package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storeops/fulfillment/internal/domain"
)

const settingsCacheTTL = time.Second * 30

// SettingsManager reads runtime-tunable settings from the sys_config
// table with a short-lived in-memory cache.
type SettingsManager struct {
	db       *gorm.DB
	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db, cache: map[string]string{}}
}

func (m *SettingsManager) get(category, name string) string {
	key := category + "." + name

	m.mu.RLock()
	if time.Since(m.loadedAt) < settingsCacheTTL {
		v := m.cache[key]
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if time.Since(m.loadedAt) >= settingsCacheTTL {
		var rows []domain.SysConfig
		if err := m.db.Find(&rows).Error; err != nil {
			zap.L().Warn("failed to reload settings", zap.Error(err))
			return m.cache[key]
		}
		cache := make(map[string]string, len(rows))
		for _, row := range rows {
			cache[row.Type+"."+row.Name] = row.Value
		}
		m.cache = cache
		m.loadedAt = time.Now()
	}
	return m.cache[key]
}

func (m *SettingsManager) GetString(category, name string) string {
	return m.get(category, name)
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.get(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.get(category, name))
}
