package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/specforge/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/specforge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/specforge/internal/adapters/driven/google"
	tokenfile "github.com/custodia-labs/specforge/internal/adapters/driven/token/file"
	"github.com/custodia-labs/specforge/internal/adapters/driven/vectorstore/sqlite"
	"github.com/custodia-labs/specforge/internal/adapters/driving/cli"
	"github.com/custodia-labs/specforge/internal/adapters/driving/web"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/core/services"
	"github.com/custodia-labs/specforge/internal/ingest"
	"github.com/custodia-labs/specforge/internal/logger"
	"github.com/custodia-labs/specforge/internal/normalisers/docx"
	"github.com/custodia-labs/specforge/internal/normalisers/pdf"
	"github.com/custodia-labs/specforge/internal/normalisers/plaintext"
	"github.com/custodia-labs/specforge/internal/normalisers/xlsx"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Secrets come from the environment; .env is a development convenience.
	_ = godotenv.Load()

	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings := services.LoadSettings(config)

	dataDir := settings.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".specforge")
	}

	prompts, err := configfile.NewPromptStore(filepath.Join(dataDir, "prompts"))
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	tokens, err := tokenfile.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening token store: %w", err)
	}

	// AI services are optional: the app degrades to rule-based parsing
	// without an LLM and disables learning without an embedder.
	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		logger.Warn("embedding provider unavailable, learning disabled: %v", err)
	}
	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM provider unavailable, using rule-based parsing: %v", err)
	}

	auth := services.NewAuthService(settings.Google, tokens)
	publisher := google.NewPublisher(auth)
	parser := services.NewParserService(llm, prompts)

	var (
		learner   driving.LearnerService
		generator driving.GeneratorService
	)
	if embedder != nil {
		store, err := sqlite.NewStore(dataDir, embedder)
		if err != nil {
			return fmt.Errorf("opening vector store: %w", err)
		}
		defer store.Close()

		pipeline := ingest.NewPipeline(ingest.NewChunker(),
			plaintext.New(), pdf.New(), docx.New(), xlsx.New())
		learner = services.NewLearnerService(pipeline, store)

		if llm != nil {
			generator = services.NewGeneratorService(llm, store, prompts)
		}
	}

	creator := services.NewCreatorService(parser, generator, learner, publisher)
	server := web.NewServer(auth, creator, learner)

	cli.SetConfig(cli.Config{
		Learner:     learner,
		Server:      server,
		Port:        settings.Port,
		ConfigStore: config,
		Settings:    settings,
	})

	return cli.Execute()
}
