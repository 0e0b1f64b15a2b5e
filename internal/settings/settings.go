// Package settings persists user preferences.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/interfaces"
	"github.com/vileo06/investliu/internal/models"
)

const settingsKey = "settings"

var validRiskLevels = map[string]bool{"low": true, "medium": true, "high": true}

// Manager persists settings in key-value storage.
type Manager struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

func NewManager(kv interfaces.KeyValueStorage, logger *common.Logger) *Manager {
	return &Manager{kv: kv, logger: logger}
}

// Get returns the stored settings, or the defaults when nothing was
// stored or the stored value is corrupt.
func (m *Manager) Get(ctx context.Context) models.Settings {
	blob, err := m.kv.Get(ctx, settingsKey)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			m.logger.Warn().Str("error", err.Error()).Msg("failed to read settings")
		}
		return models.DefaultSettings()
	}
	var s models.Settings
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return models.DefaultSettings()
	}
	if s.RiskLevel == "" {
		s.RiskLevel = models.DefaultSettings().RiskLevel
	}
	return s
}

// Update validates and persists new settings.
func (m *Manager) Update(ctx context.Context, s models.Settings) error {
	if !validRiskLevels[s.RiskLevel] {
		return fmt.Errorf("invalid risk level %q", s.RiskLevel)
	}
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := m.kv.Set(ctx, settingsKey, string(blob)); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

// Reset restores the defaults.
func (m *Manager) Reset(ctx context.Context) error {
	return m.Update(ctx, models.DefaultSettings())
}
