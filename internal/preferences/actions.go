package preferences

import (
	"fmt"

	"github.com/dtnitsch/legaldoc/internal/common"
	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/browser"
	"github.com/dtnitsch/legaldoc/pkg/langswitch"
	"github.com/dtnitsch/legaldoc/pkg/prefs"
	"github.com/urfave/cli/v2"
)

// withManager opens the profile's store and hands a preference manager to fn.
func withManager(c *cli.Context, fn func(cfg *models.Config, m *prefs.Manager) error) error {
	cfg, logger, err := common.Setup(c)
	if err != nil {
		return err
	}
	database, store, err := common.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(cfg, prefs.NewManager(store, logger))
}

// LangShowAction prints the stored language, or "(none)".
func LangShowAction(c *cli.Context) error {
	return withManager(c, func(_ *models.Config, m *prefs.Manager) error {
		p, err := m.Load()
		if err != nil {
			return err
		}
		if !p.HasLanguage {
			fmt.Fprintln(c.App.Writer, "(none)")
			return nil
		}
		fmt.Fprintln(c.App.Writer, p.Language)
		return nil
	})
}

// LangSetAction stores the language given as the first argument.
func LangSetAction(c *cli.Context) error {
	lang := c.Args().First()
	if lang == "" {
		return fmt.Errorf("language code is required")
	}
	return withManager(c, func(_ *models.Config, m *prefs.Manager) error {
		return m.SaveLanguage(lang)
	})
}

// LangSwitchAction stores the language and prints the path of the page's
// variant in that language.
func LangSwitchAction(c *cli.Context) error {
	lang := c.Args().First()
	if lang == "" {
		return fmt.Errorf("language code is required")
	}
	return withManager(c, func(cfg *models.Config, m *prefs.Manager) error {
		window := browser.NewWindow(c.String("path"))
		target, err := langswitch.New(m, window, cfg.Languages, nil).Switch(lang)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, target)
		return nil
	})
}

// DarkModeShowAction prints "enabled" or "disabled".
func DarkModeShowAction(c *cli.Context) error {
	return withManager(c, func(_ *models.Config, m *prefs.Manager) error {
		p, err := m.Load()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, darkModeValue(p.DarkMode))
		return nil
	})
}

// DarkModeToggleAction flips the stored dark-mode flag and prints the new state.
func DarkModeToggleAction(c *cli.Context) error {
	return withManager(c, func(_ *models.Config, m *prefs.Manager) error {
		p, err := m.Load()
		if err != nil {
			return err
		}
		if err := m.SaveDarkMode(!p.DarkMode); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, darkModeValue(!p.DarkMode))
		return nil
	})
}

func darkModeValue(enabled bool) string {
	if enabled {
		return models.DarkModeEnabled
	}
	return models.DarkModeDisabled
}
