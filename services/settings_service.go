package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/evalle012006/sg-sub011/constants"
	"github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/services/logger"

	gojson "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const settingsCacheKey = "settings:catalog"

// SettingsService owns the runtime configuration: the booking status and
// eligibility catalogs and the guest flag allow-list. Loaded at startup,
// cached in redis, reloadable on demand. The state machine always goes
// through here so runtime-added statuses take effect without a deploy.
type SettingsService struct {
	db  *gorm.DB
	rdb *redis.Client
	log logger.Logger

	mu         sync.RWMutex
	catalog    *models.StateCatalog
	guestFlags []string
}

type SettingsServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

func NewSettingsService(opts SettingsServiceOptions) *SettingsService {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &SettingsService{
		db:  opts.DB,
		rdb: opts.Redis,
		log: log,
	}
}

// ParseStatusOptions decodes a settings row value into catalog entries.
func ParseStatusOptions(raw json.RawMessage) ([]models.StatusOption, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var options []models.StatusOption
	if err := gojson.Unmarshal(raw, &options); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid status catalog value", err)
	}
	return options, nil
}

// ParseStringList decodes a settings row value into a flag allow-list.
func ParseStringList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []string
	if err := gojson.Unmarshal(raw, &list); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid flag list value", err)
	}
	return list, nil
}

// Load reads the settings rows and builds the in-memory catalog. Keys
// missing from the table fall back to the seeded defaults.
func (s *SettingsService) Load(ctx context.Context) error {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).
		Where("key IN ?", []string{
			constants.SettingBookingStatuses,
			constants.SettingBookingEligibility,
			constants.SettingGuestFlags,
		}).
		Find(&settings).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeStorage, "Failed to load settings", err)
	}

	catalog := models.DefaultStateCatalog()
	var guestFlags []string

	for _, setting := range settings {
		switch setting.Key {
		case constants.SettingBookingStatuses:
			options, err := ParseStatusOptions(setting.Value)
			if err != nil {
				return err
			}
			if len(options) > 0 {
				catalog.Statuses = make(map[string]models.StatusOption, len(options))
				for _, o := range options {
					catalog.Statuses[o.Name] = o
				}
			}
		case constants.SettingBookingEligibility:
			options, err := ParseStatusOptions(setting.Value)
			if err != nil {
				return err
			}
			if len(options) > 0 {
				catalog.Eligibilities = make(map[string]models.StatusOption, len(options))
				for _, o := range options {
					catalog.Eligibilities[o.Name] = o
				}
			}
		case constants.SettingGuestFlags:
			flags, err := ParseStringList(setting.Value)
			if err != nil {
				return err
			}
			guestFlags = flags
		}
	}

	s.mu.Lock()
	s.catalog = catalog
	s.guestFlags = guestFlags
	s.mu.Unlock()

	if s.rdb != nil {
		if err := SetToRedis(ctx, s.rdb, settingsCacheKey, catalog, 0); err != nil {
			s.log.Error("Failed to cache settings catalog: %v", err)
		}
	}

	s.log.Info("Settings catalog loaded: %d statuses, %d eligibilities, %d guest flags",
		len(catalog.Statuses), len(catalog.Eligibilities), len(guestFlags))
	return nil
}

// Reload drops the redis copy and re-reads from the database.
func (s *SettingsService) Reload(ctx context.Context) error {
	if s.rdb != nil {
		if err := DeleteFromRedis(ctx, s.rdb, settingsCacheKey); err != nil {
			s.log.Error("Failed to drop cached settings catalog: %v", err)
		}
	}
	return s.Load(ctx)
}

// Catalog returns the current state catalog. Falls back to the seeded
// defaults when Load has not run.
func (s *SettingsService) Catalog() *models.StateCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return models.DefaultStateCatalog()
	}
	return s.catalog
}

// GuestFlags returns the guest flag allow-list.
func (s *SettingsService) GuestFlags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guestFlags
}

// StatusByName resolves a catalog status entry.
func (s *SettingsService) StatusByName(name string) (models.StatusOption, bool) {
	opt, ok := s.Catalog().Statuses[name]
	return opt, ok
}
