package db

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/legaldoc/internal/common"
	"github.com/urfave/cli/v2"
)

// ListAction prints every preference stored for the profile.
func ListAction(c *cli.Context) error {
	cfg, _, err := common.Setup(c)
	if err != nil {
		return err
	}
	database, store, err := common.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	prefs, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list preferences: %w", err)
	}

	w := c.App.Writer
	if len(prefs) == 0 {
		fmt.Fprintf(w, "No preferences stored for profile %q\n", cfg.Profile)
		return nil
	}

	// Print table header
	fmt.Fprintf(w, "%-20s %-12s %-20s\n", "Key", "Value", "Updated")
	fmt.Fprintln(w, strings.Repeat("-", 54))

	for _, p := range prefs {
		fmt.Fprintf(w, "%-20s %-12s %-20s\n",
			p.Key,
			p.Value,
			p.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
	}

	fmt.Fprintf(w, "\nProfile: %s | Database: %s\n", cfg.Profile, database.Path())
	return nil
}

// PathAction prints the location of the preference database.
func PathAction(c *cli.Context) error {
	cfg, _, err := common.Setup(c)
	if err != nil {
		return err
	}
	database, _, err := common.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Fprintln(c.App.Writer, database.Path())
	return nil
}
