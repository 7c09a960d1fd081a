// ABOUTME: tui command launching the interactive storefront
// ABOUTME: Also the default action when seefirst runs without a subcommand

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seefirst/seefirst-cli/internal/cart"
	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/config"
	"github.com/seefirst/seefirst-cli/internal/logger"
	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/storage"
	"github.com/seefirst/seefirst-cli/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive storefront",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI wires the TUI to storage and the API client. The client gets no
// unauthorized handler; the TUI routes to login itself.
func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	sessions := session.NewStore(store, cfg.Realm)
	c, err := cart.Open(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to open cart: %w", err)
	}

	apiClient := client.New(cfg.APIURL,
		client.WithSessions(sessions),
		client.WithTimeout(cfg.RequestTimeout),
	)

	return tui.Run(tui.Deps{
		Client:   apiClient,
		Sessions: sessions,
		Cart:     c,
		PageSize: cfg.PageSize,
	}, logDir(cfg), logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
}

func logDir(cfg *config.Config) string {
	if cfg.ConfigDir != "" {
		return cfg.ConfigDir
	}
	return config.DefaultConfigDir()
}
