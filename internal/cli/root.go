// Package cli implements the tarot-hours CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minjilee/tarot-hours/internal/config"
	"github.com/minjilee/tarot-hours/internal/store"
	"github.com/minjilee/tarot-hours/internal/timeline"
)

var formatFlag string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "tarot-hours",
	Short: "A tarot card for every hour of your day",
	Long:  "Draws a deterministic tarot spread for each hour of the day, keeps per-hour memos, and stores finished days as journal entries. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().String("db", "", "Database path (default: $TAROT_HOURS_DB_PATH or ~/.tarot-hours/journal.db)")
	RootCmd.PersistentFlags().String("lang", "", "Display language: ko or en")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")

	viper.BindPFlag("db_path", RootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("language", RootCmd.PersistentFlags().Lookup("lang"))
}

func loadConfig() config.Config {
	return config.Load()
}

// openController opens the store and a started controller on the
// system clock. The caller closes the returned store.
func openController(ctx context.Context) (*timeline.Controller, *store.SQLiteStore, config.Config, error) {
	cfg := loadConfig()
	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, nil, cfg, err
	}
	c := timeline.New(timeline.SystemClock(), s)
	if err := c.Start(ctx); err != nil {
		s.Close()
		return nil, nil, cfg, err
	}
	return c, s, cfg, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
