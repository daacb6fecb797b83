package services

import (
	"os"
	"strconv"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// DefaultPort is the HTTP listen port when nothing else is configured.
const DefaultPort = 8000

// DefaultGoogleScopes cover document creation only: the app never reads
// existing files.
var DefaultGoogleScopes = []string{
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/drive.file",
}

// LoadSettings resolves the application configuration from the config
// store with environment variables taking precedence. Secrets are usually
// supplied through the environment (.env in development), everything else
// through the TOML file.
func LoadSettings(config driven.ConfigStore) domain.Settings {
	settings := domain.Settings{
		DataDir: firstOf(os.Getenv("SPECFORGE_DATA_DIR"), config.GetString("data_dir")),
		Port:    resolvePort(config),
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProvider(firstOf(os.Getenv("EMBEDDING_PROVIDER"), config.GetString("embedding.provider"))),
			Model:    firstOf(os.Getenv("EMBEDDING_MODEL"), config.GetString("embedding.model")),
			BaseURL:  firstOf(os.Getenv("EMBEDDING_BASE_URL"), config.GetString("embedding.base_url")),
			APIKey:   firstOf(os.Getenv("OPENAI_API_KEY"), config.GetString("embedding.api_key")),
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProvider(firstOf(os.Getenv("LLM_PROVIDER"), config.GetString("llm.provider"))),
			Model:    firstOf(os.Getenv("LLM_MODEL"), config.GetString("llm.model")),
			BaseURL:  firstOf(os.Getenv("LLM_BASE_URL"), config.GetString("llm.base_url")),
			APIKey:   firstOf(os.Getenv("OPENAI_API_KEY"), config.GetString("llm.api_key")),
		},
		Google: domain.GoogleSettings{
			ClientID:     firstOf(os.Getenv("GOOGLE_CLIENT_ID"), config.GetString("google.client_id")),
			ClientSecret: firstOf(os.Getenv("GOOGLE_CLIENT_SECRET"), config.GetString("google.client_secret")),
			RedirectURL:  firstOf(os.Getenv("GOOGLE_REDIRECT_URL"), config.GetString("google.redirect_url")),
			Scopes:       config.GetStringSlice("google.scopes"),
		},
	}

	if len(settings.Google.Scopes) == 0 {
		settings.Google.Scopes = DefaultGoogleScopes
	}

	// Both AI providers default to OpenAI when an API key is present,
	// matching the most common deployment.
	if settings.Embedding.Provider == "" && settings.Embedding.APIKey != "" {
		settings.Embedding.Provider = domain.AIProviderOpenAI
	}
	if settings.LLM.Provider == "" && settings.LLM.APIKey != "" {
		settings.LLM.Provider = domain.AIProviderOpenAI
	}

	return settings
}

// resolvePort reads PORT from the environment, then the config file,
// then falls back to the default.
func resolvePort(config driven.ConfigStore) int {
	if env := os.Getenv("PORT"); env != "" {
		if port, err := strconv.Atoi(env); err == nil && port > 0 {
			return port
		}
	}
	if port := config.GetInt("server.port"); port > 0 {
		return port
	}
	return DefaultPort
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
