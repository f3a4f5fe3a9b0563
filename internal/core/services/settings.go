package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
	"github.com/custodia-labs/chatvault/internal/core/ports/driving"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyConversationsDir = "output.conversations_dir"
	keySummariesDir     = "output.summaries_dir"
	keyTranscriptsDir   = "output.transcripts_dir"
	keyTimezone         = "display.timezone"
	keyJournalEnabled   = "journal.enabled"
	keyJournalDir       = "journal.dir"
	keyLogFormat        = "log.format"
	keyLogFile          = "log.file"
)

// SettingsService reads application settings from the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Unset or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := s.GetDefaults()

	settings := &domain.Settings{
		Layout: domain.Layout{
			ConversationsDir: s.getString(keyConversationsDir, defaults.Layout.ConversationsDir),
			SummariesDir:     s.getString(keySummariesDir, defaults.Layout.SummariesDir),
			TranscriptsDir:   s.getString(keyTranscriptsDir, defaults.Layout.TranscriptsDir),
		},
		Location:       s.getLocation(defaults.Location),
		JournalEnabled: s.getBool(keyJournalEnabled, defaults.JournalEnabled),
		JournalDir:     s.getString(keyJournalDir, defaults.JournalDir),
		LogFormat:      s.getLogFormat(defaults.LogFormat),
		LogFile:        s.getString(keyLogFile, defaults.LogFile),
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getLocation(defaultVal *time.Location) *time.Location {
	name := s.configStore.GetString(keyTimezone)
	if name == "" {
		return defaultVal
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown timezone, using default", zap.String("timezone", name), zap.Error(err))
		return defaultVal
	}
	return loc
}

func (s *SettingsService) getLogFormat(defaultVal domain.LogFormat) domain.LogFormat {
	format := domain.LogFormat(s.configStore.GetString(keyLogFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
