package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/app"
	"github.com/spec-kit/employee-assistant/internal/config"
	"github.com/spec-kit/employee-assistant/internal/observability"
	"github.com/spec-kit/employee-assistant/internal/persistence"
	"github.com/spec-kit/employee-assistant/internal/repository"
)

const (
	targetRedis    = "redis"
	targetPostgres = "postgres"
)

type rootOptions struct {
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "assistant",
		Short:         "Answer HR questions about employees, leave and travel policy",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newAskCommand(opts),
		newReplCommand(opts),
		newConvertCommand(),
		newImportCommand(opts),
		newMigrateCommand(opts),
	)
	return root
}

// setup loads configuration and a console logger for CLI use.
func setup(opts *rootOptions) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	cfg.Logger.Level = opts.logLevel
	cfg.Logger.Format = "console"
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newAskCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			rt, err := app.New(cmd.Context(), *cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Fprintln(cmd.OutOrStdout(), rt.Assistant.Process(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}
}

func newReplCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Ask questions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			rt, err := app.New(cmd.Context(), *cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			return runRepl(cmd.Context(), rt.Assistant, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

type processor interface {
	Process(ctx context.Context, text string) string
}

var quitWords = map[string]struct{}{"quit": {}, "exit": {}, "q": {}, "bye": {}}

// runRepl answers one question per line until a quit word or end of input.
func runRepl(ctx context.Context, assistant processor, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Type your questions below (type 'quit' to exit):")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYour question: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if _, ok := quitWords[strings.ToLower(line)]; ok {
			fmt.Fprintln(out, "Thank you for using the Employee Information System!")
			return nil
		}
		if line == "" {
			continue
		}
		fmt.Fprintf(out, "\n%s\n", assistant.Process(ctx, line))
	}
}

func newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <employees.csv> <employees.json>",
		Short: "Convert a CSV export to the JSON employee list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := repository.ConvertCSVToJSON(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d employees from %s to %s\n", count, args[0], args[1])
			return nil
		},
	}
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Publish a JSON, CSV, XLSX or YAML employee file to Redis or Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			source, err := repository.NewFileSource(args[0])
			if err != nil {
				return err
			}
			employees, err := source.LoadEmployees(cmd.Context())
			if err != nil {
				return err
			}

			switch target {
			case targetRedis:
				rd := persistence.NewRedis(cmd.Context(), cfg.Redis, logger)
				defer rd.Close()
				if err := repository.NewRedisSource(rd.Client, cfg.Redis.SnapshotKey).WriteSnapshot(cmd.Context(), employees); err != nil {
					return err
				}
			case targetPostgres:
				pg, err := persistence.NewPostgres(cmd.Context(), cfg.Postgres, logger)
				if err != nil {
					return err
				}
				defer pg.Close()
				if !pg.Configured() {
					return fmt.Errorf("POSTGRES_DSN is required to import into postgres")
				}
				if err := pg.Migrate(cmd.Context(), logger); err != nil {
					return err
				}
				if err := repository.NewPostgresSource(pg.Pool).ReplaceEmployees(cmd.Context(), employees); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown import target %q (want %s or %s)", target, targetRedis, targetPostgres)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d employees into %s\n", len(employees), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", targetRedis, "destination: redis or postgres")
	return cmd
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			pg, err := persistence.NewPostgres(cmd.Context(), cfg.Postgres, logger)
			if err != nil {
				return err
			}
			defer pg.Close()
			if !pg.Configured() {
				return fmt.Errorf("POSTGRES_DSN is required to run migrations")
			}
			if err := pg.Migrate(cmd.Context(), logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
