// Package main provides the sqlbridge command line interface.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dbagentlabs/sqlbridge/pkg/config"
	"github.com/dbagentlabs/sqlbridge/pkg/correction"
	"github.com/dbagentlabs/sqlbridge/pkg/dialect"
	"github.com/dbagentlabs/sqlbridge/pkg/llm"
	"github.com/dbagentlabs/sqlbridge/pkg/schema"
	"github.com/dbagentlabs/sqlbridge/pkg/translate"
	"github.com/dbagentlabs/sqlbridge/pkg/validate"
	"github.com/dbagentlabs/sqlbridge/server/handlers"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sqlbridge",
		Short:         "Translate queries between SQL dialects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newTranslateCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func newTranslateCmd() *cobra.Command {
	var (
		configPath   string
		ddlPath      string
		warehouseDSN string
		catalog      string
		database     string
		repair       bool
	)

	cmd := &cobra.Command{
		Use:   "translate [query]",
		Short: "Translate a query into the target dialect",
		Long: `Translate a query into the target dialect, validating it against
an optional schema first. The query is read from the argument, or from
stdin when no argument is given.`,
		Example: `  # Translate a query passed as an argument
  sqlbridge translate "SELECT RANDOM() FROM t"

  # Translate stdin against a schema
  cat query.sql | sqlbridge translate --schema schema.sql

  # Translate against a schema introspected from a live warehouse
  sqlbridge translate --warehouse-dsn user:pass@account/db/schema "SELECT 1 FROM t"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			settings, err := loadSettings(configPath)
			if err != nil {
				return err
			}

			sc, err := loadSchema(cmd.Context(), ddlPath, warehouseDSN, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			translator, err := buildTranslator(settings, repair)
			if err != nil {
				return err
			}

			out, err := translator.Translate(cmd.Context(), translate.Request{
				Query:    query,
				Schema:   sc,
				Catalog:  catalog,
				Database: database,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML settings file")
	cmd.Flags().StringVar(&ddlPath, "schema", "", "path to a DDL file describing the schema")
	cmd.Flags().StringVar(&warehouseDSN, "warehouse-dsn", "", "snowflake DSN to introspect the schema from")
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog to qualify unqualified tables with")
	cmd.Flags().StringVar(&database, "database", "", "database to qualify unqualified tables with")
	cmd.Flags().BoolVar(&repair, "repair", false, "repair invalid queries through the generation API")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var (
		ddlPath      string
		warehouseDSN string
		catalog      string
		database     string
	)

	cmd := &cobra.Command{
		Use:   "validate [query]",
		Short: "Validate a query against the target dialect and schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			sc, err := loadSchema(cmd.Context(), ddlPath, warehouseDSN, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			translator := translate.New(nil)
			outcome := translator.Validate(translate.Request{
				Query:    query,
				Schema:   sc,
				Catalog:  catalog,
				Database: database,
			})
			if !outcome.Valid() {
				return fmt.Errorf("invalid query: %s", outcome.Message())
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Rewritten)
			return nil
		},
	}

	cmd.Flags().StringVar(&ddlPath, "schema", "", "path to a DDL file describing the schema")
	cmd.Flags().StringVar(&warehouseDSN, "warehouse-dsn", "", "snowflake DSN to introspect the schema from")
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog to qualify unqualified tables with")
	cmd.Flags().StringVar(&database, "database", "", "database to qualify unqualified tables with")

	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the translation HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(configPath)
			if err != nil {
				return err
			}
			if port != 0 {
				settings.Port = port
			}

			repair := os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != ""
			translator, err := buildTranslator(settings, repair)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			handler := handlers.NewTranslateHandler(translator, logger)
			if settings.ExecCheck {
				checker, err := validate.NewExecChecker()
				if err != nil {
					return err
				}
				defer checker.Close()
				handler = handler.WithExecChecker(checker)
			}

			r := chi.NewRouter()
			r.Use(middleware.Logger)
			r.Use(middleware.Recoverer)
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
			logger.Info("starting translation service", "port", settings.Port)
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML settings file")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides settings)")

	return cmd
}

func readQuery(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read query from stdin: %w", err)
	}
	query := strings.TrimSpace(string(raw))
	if query == "" {
		return "", fmt.Errorf("no query given")
	}
	return query, nil
}

func loadSettings(path string) (config.Settings, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadSchema(ctx context.Context, ddlPath, warehouseDSN string, warnings io.Writer) (*schema.Schema, error) {
	if ddlPath == "" && warehouseDSN == "" {
		return nil, nil
	}
	if ddlPath == "" {
		return schema.IntrospectDSN(ctx, warehouseDSN)
	}
	raw, err := os.ReadFile(ddlPath)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	sc, diags, err := schema.Source{Kind: schema.KindDDL, DDL: string(raw)}.Normalize()
	if err != nil {
		return nil, err
	}
	for _, d := range diags {
		fmt.Fprintf(warnings, "warning: skipped schema statement: %s (%s)\n", d.Statement, d.Reason)
	}
	return sc, nil
}

func buildTranslator(settings config.Settings, repair bool) (*translate.Translator, error) {
	var loop *correction.Loop
	if repair {
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
	}

	translator := translate.New(loop)
	translator.Source = dialect.Dialect(settings.SourceDialect)
	translator.Target = dialect.Dialect(settings.TargetDialect)
	translator.ProcessInputErrors = settings.ProcessInputErrors
	translator.ProcessOutputErrors = settings.ProcessOutputErrors
	return translator, nil
}
