package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View the resolved configuration or change values in the config file.

Environment variables override the config file; secrets (API keys, the
OAuth client secret) are only read from the environment.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config file value",
	Long: `Write a value to the config file. Keys are dot-separated paths,
for example 'server.port' or 'llm.provider'. Run 'settings set' without
arguments to list the settable keys.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settableKeys are the config file keys 'settings set' accepts. Secrets
// are deliberately absent: they live in the environment, not on disk.
var settableKeys = map[string]string{
	"data_dir":            "string",
	"server.port":         "int",
	"embedding.provider":  "string",
	"embedding.model":     "string",
	"embedding.base_url":  "string",
	"llm.provider":        "string",
	"llm.model":           "string",
	"llm.base_url":        "string",
	"google.client_id":    "string",
	"google.redirect_url": "string",
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n", configStore.Path())
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Port: %d\n", appSettings.Port)
	if appSettings.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", appSettings.DataDir)
	}
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, string(appSettings.Embedding.Provider), appSettings.Embedding.Model,
		appSettings.Embedding.BaseURL, appSettings.Embedding.APIKey, appSettings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	printProvider(cmd, string(appSettings.LLM.Provider), appSettings.LLM.Model,
		appSettings.LLM.BaseURL, appSettings.LLM.APIKey, appSettings.LLM.IsConfigured())
	cmd.Println()

	cmd.Println("[Google]")
	if appSettings.Google.ClientID != "" {
		cmd.Printf("  Client ID: %s\n", appSettings.Google.ClientID)
	} else {
		cmd.Println("  Client ID: (not set)")
	}
	cmd.Printf("  Redirect URL: %s\n", appSettings.Google.RedirectURL)
	status := "configured"
	if !appSettings.Google.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if len(args) == 0 {
		cmd.Println("Settable keys:")
		keys := make([]string, 0, len(settableKeys))
		for key := range settableKeys {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			cmd.Printf("  %s (%s)\n", key, settableKeys[key])
		}
		return nil
	}
	if len(args) != 2 {
		return errors.New("expected a key and a value")
	}

	key, raw := args[0], args[1]
	kind, ok := settableKeys[key]
	if !ok {
		if strings.Contains(key, "secret") || strings.Contains(key, "api_key") {
			return fmt.Errorf("%s is a secret; set it through the environment instead", key)
		}
		return fmt.Errorf("unknown setting %q, run 'settings set' to list keys", key)
	}

	var value any = raw
	if kind == "int" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s requires a positive integer, got %q", key, raw)
		}
		value = n
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, raw)
	cmd.Println("Restart the server for the change to take effect.")
	return nil
}

// printProvider writes one AI provider block.
func printProvider(cmd *cobra.Command, provider, model, baseURL, apiKey string, configured bool) {
	if provider == "" {
		cmd.Println("  Provider: (not set)")
	} else {
		cmd.Printf("  Provider: %s\n", provider)
	}
	if model != "" {
		cmd.Printf("  Model: %s\n", model)
	}
	if baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if apiKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
