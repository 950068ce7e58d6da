package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/studydeck/internal/adapters/driven/ai"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/command"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/config/env"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/media/ffmpeg"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/pptx"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/render/libreoffice"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/studydeck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/studydeck/internal/adapters/driving/cli"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/core/services"
	"github.com/custodia-labs/studydeck/internal/extractors"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// bootstrap wires the services for one command. Settings are always
// available; the model-backed services are only built when the command
// needs them, after the credential has been checked.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	configStore, err := openConfigStore(dir)
	if err != nil {
		return nil, err
	}
	settingsService := services.NewSettingsService(configStore, env.New(), ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings.LogFile != "" {
		if err := logger.SetLogFile(settings.LogFile); err != nil {
			logger.Warn("log file disabled: %v", err)
		}
	}

	out := &cli.Services{
		Settings: settingsService,
		Close:    func() { _ = logger.Close() },
	}
	if !opts.NeedsLLM {
		return out, nil
	}

	if err := settingsService.RequireCredential(); err != nil {
		return nil, err
	}

	aiResult, err := ai.Init(ctx, settings)
	if err != nil {
		return nil, err
	}
	for _, w := range aiResult.Warnings {
		logger.Debug("%s", w)
	}

	promptStore, err := file.NewPromptStore(filepath.Join(dir, "prompts"), services.DefaultPrompts())
	if err != nil {
		aiResult.Close()
		return nil, fmt.Errorf("open prompts: %w", err)
	}
	if err := promptStore.Watch(ctx); err != nil {
		logger.Debug("prompt edits need a restart: %v", err)
	}
	prompts := services.NewPrompts(promptStore)
	gen := services.NewGenerator(aiResult.LLMService, settings.LLM.MaxOutputTokens)

	var transcriber driven.Transcriber
	if aiResult.TranscriptionService != nil {
		transcriber = services.NewTranscriptionService(
			services.NewGenerator(aiResult.TranscriptionService, settings.LLM.MaxOutputTokens), prompts)
	}

	runner := command.NewRunner()
	registry := extractors.NewDefaultRegistry(transcriber, ffmpeg.New(runner, ""))

	cache, err := memory.NewExtractionCache(0)
	if err != nil {
		_ = promptStore.Close()
		aiResult.Close()
		return nil, err
	}
	closeStore := func() { _ = promptStore.Close() }
	if store, err := sqlite.NewStore(filepath.Join(dir, "data")); err != nil {
		logger.Warn("extraction cache limited to this run: %v", err)
	} else {
		cache.WithBacking(store.ExtractionCache(0))
		closeStore = func() {
			_ = promptStore.Close()
			_ = store.Close()
		}
	}

	sessions, err := memory.NewSessionStore(0)
	if err != nil {
		closeStore()
		aiResult.Close()
		return nil, err
	}

	out.Ingest = services.NewIngestService(registry, cache)
	out.Study = services.NewStudyService(gen, prompts, settings.Limits)
	out.Chat = services.NewChatService(gen, prompts, settings.Limits, settings.ChatWindow)
	out.Deck = services.NewDeckService(gen, prompts, pptx.New(),
		libreoffice.New(runner, ""), settings.Limits, settings.Deck)
	out.Export = services.NewExportService()
	out.Sessions = services.NewSessionService(sessions)
	out.Close = func() {
		closeStore()
		aiResult.Close()
		_ = logger.Close()
	}
	return out, nil
}

// openConfigStore opens the TOML settings file. When the directory cannot be
// created, the file is read as-is into a memory store so read-only commands
// still work; edits then fail with memory.ErrNotPersisted.
func openConfigStore(dir string) (driven.ConfigStore, error) {
	store, err := file.NewConfigStore(dir)
	if err == nil {
		return store, nil
	}
	values, readErr := file.ReadConfig(dir)
	if readErr != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	logger.Warn("config directory %s unavailable, settings will not be saved: %v", dir, err)
	return memory.NewConfigStoreFrom(file.ConfigPath(dir), values), nil
}
