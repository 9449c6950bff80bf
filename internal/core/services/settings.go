package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creasty/defaults"

	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
	"github.com/custodia-labs/gshell/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// GetDefaults returns the built-in default settings.
func (s *SettingsService) GetDefaults() (domain.Settings, error) {
	var settings domain.Settings
	if err := defaults.Set(&settings); err != nil {
		return domain.Settings{}, fmt.Errorf("apply setting defaults: %w", err)
	}
	return settings, nil
}

// Get retrieves current settings. Stored values that fail validation
// fall back to their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings, err := s.GetDefaults()
	if err != nil {
		return nil, err
	}

	settings.Domain.Default = domain.NormalizeDomain(s.configStore.GetString(domain.SettingDefaultDomain))

	if f := domain.OutputFormat(s.configStore.GetString(domain.SettingOutputFormat)); f.IsValid() {
		settings.Output.Format = f
	}
	if c := domain.ColorMode(s.configStore.GetString(domain.SettingOutputColor)); c.IsValid() {
		settings.Output.Color = c
	}
	if n := s.configStore.GetInt(domain.SettingPageSize); n > 0 && n <= domain.MaxPageSize {
		settings.API.PageSize = n
	}
	if r := s.configStore.GetFloat(domain.SettingRateLimitDirectory); r > 0 {
		settings.RateLimit.Directory = r
	}
	if r := s.configStore.GetFloat(domain.SettingRateLimitReports); r > 0 {
		settings.RateLimit.Reports = r
	}
	if r := s.configStore.GetFloat(domain.SettingRateLimitReseller); r > 0 {
		settings.RateLimit.Reseller = r
	}
	if b := s.configStore.GetInt(domain.SettingRateLimitBurst); b > 0 {
		settings.RateLimit.Burst = b
	}

	return &settings, nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case domain.SettingDefaultDomain:
		d := domain.NormalizeDomain(value)
		if d == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		stored = d
	case domain.SettingOutputFormat:
		f := domain.OutputFormat(strings.ToLower(value))
		if !f.IsValid() {
			return fmt.Errorf("%w: output format must be table, json or yaml, got %q", domain.ErrInvalidInput, value)
		}
		stored = f.String()
	case domain.SettingOutputColor:
		c := domain.ColorMode(strings.ToLower(value))
		if !c.IsValid() {
			return fmt.Errorf("%w: colour mode must be auto, always or never, got %q", domain.ErrInvalidInput, value)
		}
		stored = string(c)
	case domain.SettingPageSize:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > domain.MaxPageSize {
			return fmt.Errorf("%w: %s must be between 1 and %d", domain.ErrInvalidInput, key, domain.MaxPageSize)
		}
		stored = n
	case domain.SettingRateLimitDirectory, domain.SettingRateLimitReports, domain.SettingRateLimitReseller:
		r, err := strconv.ParseFloat(value, 64)
		if err != nil || r <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of requests per second", domain.ErrInvalidInput, key)
		}
		stored = r
	case domain.SettingRateLimitBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset removes a stored setting.
func (s *SettingsService) Unset(key string) error {
	if !isSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Value returns the effective value of a setting.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case domain.SettingDefaultDomain:
		return settings.Domain.Default, nil
	case domain.SettingOutputFormat:
		return settings.Output.Format.String(), nil
	case domain.SettingOutputColor:
		return string(settings.Output.Color), nil
	case domain.SettingPageSize:
		return strconv.Itoa(settings.API.PageSize), nil
	case domain.SettingRateLimitDirectory:
		return formatRate(settings.RateLimit.Directory), nil
	case domain.SettingRateLimitReports:
		return formatRate(settings.RateLimit.Reports), nil
	case domain.SettingRateLimitReseller:
		return formatRate(settings.RateLimit.Reseller), nil
	case domain.SettingRateLimitBurst:
		return strconv.Itoa(settings.RateLimit.Burst), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func isSettingKey(key string) bool {
	for _, k := range domain.AllSettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
