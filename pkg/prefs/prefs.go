// Package prefs persists the reader's language and dark-mode preferences and
// applies them to a page.
package prefs

import (
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/legaldoc/models"
)

// Store is durable key-value storage. Get reports ok=false for absent keys.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Manager reads and writes preferences through a Store. Store failures are
// returned to the caller as is; nothing is retried and no fallback is used.
type Manager struct {
	store  Store
	logger *slog.Logger
}

func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// Load reads every preference once.
func (m *Manager) Load() (models.Preferences, error) {
	var p models.Preferences

	lang, ok, err := m.store.Get(models.KeyLanguage)
	if err != nil {
		return p, fmt.Errorf("failed to read language preference: %w", err)
	}
	p.Language, p.HasLanguage = lang, ok

	dark, _, err := m.store.Get(models.KeyDarkMode)
	if err != nil {
		return p, fmt.Errorf("failed to read dark-mode preference: %w", err)
	}
	p.DarkMode = dark == models.DarkModeEnabled

	return p, nil
}

// SaveLanguage stores lang as the preferred language, replacing any previous value.
func (m *Manager) SaveLanguage(lang string) error {
	if err := m.store.Set(models.KeyLanguage, lang); err != nil {
		return fmt.Errorf("failed to save language preference: %w", err)
	}
	m.logger.Debug("saved language preference", "language", lang)
	return nil
}

// RestoreLanguage marks the stored language as active among links.
// Nothing happens when no language has been stored.
func (m *Manager) RestoreLanguage(links *goquery.Selection) error {
	lang, ok, err := m.store.Get(models.KeyLanguage)
	if err != nil {
		return fmt.Errorf("failed to read language preference: %w", err)
	}
	if !ok {
		return nil
	}
	UpdateLanguageUI(links, lang)
	return nil
}

// RestoreDarkMode puts body in dark mode when the stored flag is enabled.
func (m *Manager) RestoreDarkMode(body *goquery.Selection) error {
	v, _, err := m.store.Get(models.KeyDarkMode)
	if err != nil {
		return fmt.Errorf("failed to read dark-mode preference: %w", err)
	}
	ApplyDarkMode(body, v == models.DarkModeEnabled)
	return nil
}

// ToggleDarkMode flips the dark-mode state of body and stores the result.
// It returns whether dark mode is now enabled.
func (m *Manager) ToggleDarkMode(body *goquery.Selection) (bool, error) {
	body.ToggleClass(models.ClassDarkMode)
	enabled := body.HasClass(models.ClassDarkMode)
	return enabled, m.SaveDarkMode(enabled)
}

// SaveDarkMode stores the dark-mode flag without touching any page.
func (m *Manager) SaveDarkMode(enabled bool) error {
	value := models.DarkModeDisabled
	if enabled {
		value = models.DarkModeEnabled
	}
	if err := m.store.Set(models.KeyDarkMode, value); err != nil {
		return fmt.Errorf("failed to save dark-mode preference: %w", err)
	}
	m.logger.Debug("saved dark-mode preference", "dark_mode", value)
	return nil
}

// ApplyDarkMode adds the dark-mode class to body when enabled. A disabled
// flag leaves the page in its default state.
func ApplyDarkMode(body *goquery.Selection, enabled bool) {
	if enabled {
		body.AddClass(models.ClassDarkMode)
	}
}

// UpdateLanguageUI clears the active marker from every language link and sets
// it on each link whose data-lang equals lang exactly.
func UpdateLanguageUI(links *goquery.Selection, lang string) {
	links.Each(func(_ int, link *goquery.Selection) {
		link.RemoveClass(models.ClassActive)
		if v, ok := link.Attr(models.AttrLanguage); ok && v == lang {
			link.AddClass(models.ClassActive)
		}
	})
}
