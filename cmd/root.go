// ABOUTME: Root command for the seefirst CLI
// ABOUTME: Handles global flags and configuration; starts the TUI when no subcommand is given

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seefirst/seefirst-cli/internal/config"
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
	realmFlag  string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "seefirst",
	Short: "Terminal client for the SeeFirst marketplace",
	Long: `seefirst is a terminal client for the SeeFirst furniture marketplace.

Run it without a subcommand to open the interactive storefront, or use the
subcommands to browse products, manage the cart and run the admin and vendor
panels from scripts.

Environment Variables:
  SEEFIRST_API_URL     Backend API URL (default: http://localhost:3000)
  SEEFIRST_REALM       Account realm: user, vendor or admin (default: user)
  SEEFIRST_CONFIG_DIR  Where sessions, the cart and debug.log are kept
  SEEFIRST_STORE       Storage backend: file, redis or memory (default: file)
  SEEFIRST_REDIS_ADDR  Redis address for the redis backend`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SEEFIRST_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (overrides SEEFIRST_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVar(&realmFlag, "realm", "", "Account realm: user, vendor or admin (overrides SEEFIRST_REALM)")
}

// loadConfig resolves configuration; flags win over every other source
func loadConfig() (*config.Config, error) {
	v := config.New()
	if configDir != "" {
		v.Set(config.KeyConfigDir, configDir)
	}
	if apiURL != "" {
		v.Set(config.KeyAPIURL, apiURL)
	}
	if realmFlag != "" {
		v.Set(config.KeyRealm, realmFlag)
	}
	return config.Load(v)
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
