// Command vendorctl runs maintenance and screening tasks against the
// configured vendorscreen stack.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"vendorscreen/internal/app"
	jwttoken "vendorscreen/internal/jwt_token"
	"vendorscreen/internal/platform/config"
	"vendorscreen/internal/platform/logger"
	"vendorscreen/internal/platform/postgres"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/requestcontext"
)

type loader func() (config.Config, error)

func main() {
	if err := newRootCmd(os.Stdout, config.FromEnv).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, load loader) *cobra.Command {
	root := &cobra.Command{
		Use:          "vendorctl",
		Short:        "Manage vendors and screening runs",
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(
		newMigrateCmd(load),
		newSeedCmd(load),
		newVendorsCmd(load),
		newScreenCmd(load),
		newTokenCmd(load),
	)
	return root
}

// withApp builds the stack for one command and tears it down afterwards.
func withApp(cmd *cobra.Command, load loader, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Server.LogLevel, "text")
	a, err := app.New(ctx, cfg, log, app.WithMigrations())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newMigrateCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.Storage.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}
			db, err := postgres.Open(cmd.Context(), cfg.Storage.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSeedCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Register the demo vendors that are not registered yet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				created, err := a.Vendors.Seed(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{"created": created})
			})
		},
	}
}

func newVendorsCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "List registered vendors, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				vendors, err := a.Vendors.List(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{"vendors": vendors})
			})
		},
	}
}

func newScreenCmd(load loader) *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "screen <vendor-id>",
		Short: "Run a screening for one vendor and print the outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendorID, err := domain.ParseVendorID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				outcome, err := a.Screening.Run(ctx, vendorID, actor)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"screening_run":      outcome.Run,
					"result":             outcome.Result,
					"evidence_snapshots": outcome.Snapshots,
				})
			})
		},
	}
	cmd.Flags().StringVar(&actor, "actor", requestcontext.DefaultActor, "analyst recorded as run_by")
	return cmd
}

func newTokenCmd(load loader) *cobra.Command {
	var (
		actor string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for an analyst",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.Server.JWTSigningKey == "" {
				return errors.New("JWT_SIGNING_KEY is required")
			}
			token, err := jwttoken.NewJWTService(cfg.Server.JWTSigningKey).GenerateActorToken(actor, time.Now(), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "analyst identity placed in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 8*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}
