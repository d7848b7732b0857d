package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	serverAddr string
	apiKey     string
	jsonOut    bool
)

var rootCmd = &cobra.Command{
	Use:   "parishctl",
	Short: "CLI for the parish notification service",
	Long: `parishctl manages parish SMS notifications from the command line.

Create and dispatch notifications, resend failed ones, inspect
per-recipient delivery logs, and check the gateway balance.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

type cliConfig struct {
	Server string `yaml:"server"`
	APIKey string `yaml:"api_key"`
}

// loadCLIConfig reads ~/.parishctl.yaml for flag defaults. A missing or
// unreadable file just means no defaults.
func loadCLIConfig() cliConfig {
	var cfg cliConfig
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(home, ".parishctl.yaml"))
	if err != nil {
		return cfg
	}
	yaml.Unmarshal(data, &cfg)
	return cfg
}

func init() {
	cfg := loadCLIConfig()

	server := cfg.Server
	if addr := os.Getenv("PARISH_API_URL"); addr != "" {
		server = addr
	}
	if server == "" {
		server = "http://localhost:8080"
	}

	key := cfg.APIKey
	if envKey := os.Getenv("PARISH_API_KEY"); envKey != "" {
		key = envKey
	}

	rootCmd.PersistentFlags().StringVarP(&serverAddr, "server", "s", server, "API server base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", key, "API key")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "JSON output")
}
