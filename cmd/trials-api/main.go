// trials-api serves the UnityTrials clinical trial search and chat API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/unitytrials/trialmatch/internal/chatbot"
	"github.com/unitytrials/trialmatch/internal/config"
	"github.com/unitytrials/trialmatch/internal/eventlog"
	"github.com/unitytrials/trialmatch/internal/httpapi"
	"github.com/unitytrials/trialmatch/internal/logger"
	"github.com/unitytrials/trialmatch/internal/registry"
	"github.com/unitytrials/trialmatch/internal/textgen"
	"github.com/unitytrials/trialmatch/internal/trials"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("trials-api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed")
	}

	var events *eventlog.Log
	if cfg.EventLogPath != "" {
		events, err = eventlog.Open(cfg.EventLogPath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.EventLogPath).Msg("event log open failed")
		}
		defer events.Close()
	}

	client := registry.NewClient(registry.Config{
		BaseURL:          cfg.RegistryBaseURL,
		RateLimitPerHour: cfg.RateLimitPerHour,
		CacheTTL:         cfg.CacheTTL,
		Timeout:          cfg.RegistryTimeout,
		Logger:           log,
	})
	svc := trials.NewService(client, log)

	var providers []textgen.Generator
	if cfg.OllamaURL != "" {
		providers = append(providers, textgen.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel))
	}
	if cfg.AnthropicAPIKey != "" {
		anthropicProvider, err := textgen.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			log.Warn().Err(err).Msg("anthropic provider disabled")
		} else {
			providers = append(providers, anthropicProvider)
		}
	}
	if cfg.HFAPIURL != "" && cfg.HFAPIKey != "" {
		providers = append(providers, textgen.NewHuggingFaceProvider(cfg.HFAPIURL, cfg.HFAPIKey))
	}
	gen := textgen.NewChain(log, providers...)

	chat := chatbot.NewRouter(svc, gen, log)
	api := httpapi.NewServer(svc, chat, events, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}
}
