package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/mashruteh/internal/adapters/driven/ai"
	"github.com/custodia-labs/mashruteh/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mashruteh/internal/adapters/driven/content/yamlfile"
	"github.com/custodia-labs/mashruteh/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/mashruteh/internal/adapters/driven/storage/kvcache"
	"github.com/custodia-labs/mashruteh/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mashruteh/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/cli"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/core/services"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// envAPIKey supplies the Gemini key when none is saved.
const envAPIKey = "GEMINI_API_KEY"

// bootstrap wires adapters into services for one command invocation.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	dataDir, err := resolveDataDir(opts)
	if err != nil {
		return nil, nil, err
	}

	configStore, err := newConfigStore(opts, dataDir)
	if err != nil {
		return nil, nil, err
	}
	settingsSvc := services.NewSettingsService(configStore, ai.NewProber(0))

	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}
	applyEnvAPIKey(&settings.LLM, os.Getenv(envAPIKey))

	content, err := yamlfile.New(opts.ContentPath).Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}

	kv, err := openKeyValueStore(opts, dataDir, settings.Storage.Backend)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, kv.Close)
	cache := kvcache.New(kv)

	aiResult := ai.Init(ctx, *settings, ai.DefaultGuardConfig())
	for _, w := range aiResult.Warnings {
		logger.Debug("%s", w)
	}
	closers = append(closers, func() error {
		aiResult.Close()
		return nil
	})

	assistant := services.NewAssistantService(aiResult.LLMService, content)
	analysis := services.NewAnalysisService(aiResult.LLMService, cache)

	if !opts.Ephemeral {
		prompts, err := file.NewPromptStore(filepath.Join(dataDir, "prompts"))
		if err != nil {
			logger.Warn("prompt store unavailable, using built-in prompts: %v", err)
		} else {
			assistant.SetPromptStore(prompts)
			analysis.SetPromptStore(prompts)
		}
	}

	chat := services.NewChatService(assistant, cache, services.ChatConfigFrom(*settings))
	if aiResult.Speech != nil {
		chat.SetSpeech(aiResult.Speech)
	}

	svcs := &cli.Services{
		Search:   services.NewSearchService(content),
		Chat:     chat,
		Analysis: analysis,
		Speech:   services.NewSpeechService(aiResult.Speech, settings.Audio),
		Settings: settingsSvc,
	}
	return svcs, cleanup, nil
}

// resolveDataDir returns the data directory, defaulting to ~/.mashruteh.
func resolveDataDir(opts cli.Options) (string, error) {
	if opts.DataDir != "" || opts.Ephemeral {
		return opts.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".mashruteh"), nil
}

func newConfigStore(opts cli.Options, dataDir string) (driven.ConfigStore, error) {
	if opts.Ephemeral {
		return memory.NewConfigStore(), nil
	}
	store, err := file.NewConfigStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return store, nil
}

// openKeyValueStore opens the durable medium selected in settings.
func openKeyValueStore(opts cli.Options, dataDir string, backend domain.StorageBackend) (driven.KeyValueStore, error) {
	if opts.Ephemeral {
		return memory.NewKVStore(), nil
	}

	dir := filepath.Join(dataDir, "data")
	switch backend {
	case domain.StorageBadger:
		store, err := badger.NewStore(badger.Options{DataDir: dir})
		if err != nil {
			return nil, fmt.Errorf("opening badger store: %w", err)
		}
		logger.Debug("storage: badger at %s", store.Path())
		return store, nil
	default:
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("storage: sqlite at %s", store.Path())
		return store, nil
	}
}

// applyEnvAPIKey fills a missing Gemini key from the environment. With no
// provider chosen yet it selects Gemini and its default model. Nothing is
// saved.
func applyEnvAPIKey(llm *domain.LLMSettings, key string) {
	if key == "" || llm.APIKey != "" {
		return
	}
	switch llm.Provider {
	case "":
		llm.Provider = domain.AIProviderGemini
		if llm.Model == "" {
			llm.Model = domain.DefaultLLMModels()[domain.AIProviderGemini]
		}
	case domain.AIProviderGemini:
	default:
		return
	}
	llm.APIKey = key
}
