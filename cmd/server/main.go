// Package main provides the entry point for the translation service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dbagentlabs/sqlbridge/pkg/config"
	"github.com/dbagentlabs/sqlbridge/pkg/correction"
	"github.com/dbagentlabs/sqlbridge/pkg/dialect"
	"github.com/dbagentlabs/sqlbridge/pkg/llm"
	"github.com/dbagentlabs/sqlbridge/pkg/translate"
	"github.com/dbagentlabs/sqlbridge/pkg/validate"
	"github.com/dbagentlabs/sqlbridge/server/handlers"
)

func main() {
	settings := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			slog.Error("failed to load settings", "path", path, "error", err)
			os.Exit(1)
		}
		settings = loaded
	}
	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &settings.Port)
	}

	logger := newLogger(settings.LogLevel)

	translator, err := buildTranslator(settings, logger)
	if err != nil {
		logger.Error("failed to build translator", "error", err)
		os.Exit(1)
	}

	handler := handlers.NewTranslateHandler(translator, logger)
	if settings.ExecCheck {
		checker, err := validate.NewExecChecker()
		if err != nil {
			logger.Error("failed to open dry-run checker", "error", err)
			os.Exit(1)
		}
		defer checker.Close()
		handler = handler.WithExecChecker(checker)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Post("/v1/translate", handler.Translate)
	r.Post("/v1/validate", handler.Validate)
	r.Post("/v1/schema/normalize", handler.NormalizeSchema)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", settings.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * settings.BatchTimeout,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("starting translation service", "port", settings.Port,
		"source", settings.SourceDialect, "target", settings.TargetDialect)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// buildTranslator wires the generator and correction loop from settings. The
// correction loop is disabled when no API credentials are configured; the
// service then still parses, validates, and transpiles.
func buildTranslator(settings config.Settings, logger *slog.Logger) (*translate.Translator, error) {
	var loop *correction.Loop
	if os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != "" || os.Getenv("GOOGLE_GENAI_USE_VERTEXAI") != "" {
		gen, err := llm.NewGeminiGenerator(context.Background(), settings.Model)
		if err != nil {
			return nil, err
		}
		loop = &correction.Loop{
			Generator:  gen,
			Candidates: settings.NumberOfCandidates,
			Revalidate: settings.RevalidateCandidates,
			Batch: llm.BatchOptions{
				Timeout:              settings.BatchTimeout,
				MaxRetriesPerRequest: settings.MaxRetriesPerRequest,
				Temperature:          settings.Temperature,
			},
		}
	} else {
		logger.Warn("no generator credentials configured, correction loop disabled")
	}

	translator := translate.New(loop)
	translator.Source = dialect.Dialect(settings.SourceDialect)
	translator.Target = dialect.Dialect(settings.TargetDialect)
	translator.ProcessInputErrors = settings.ProcessInputErrors
	translator.ProcessOutputErrors = settings.ProcessOutputErrors
	return translator, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
