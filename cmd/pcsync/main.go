// Command pcsync runs the race data sync operations once and prints the report.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/fantasy-cycling/internal/app"
	"github.com/riskibarqy/fantasy-cycling/internal/config"
	"github.com/riskibarqy/fantasy-cycling/internal/observability"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
	"github.com/spf13/cobra"
)

var errSyncHadFailures = errors.New("sync finished with failed items")

type runFunc func(ctx context.Context, svc *usecase.RaceSyncService, year int) (usecase.SyncReport, error)

var rootCmd = &cobra.Command{
	Use:           "pcsync",
	Short:         "Sync teams, cyclists, races and results into the fantasy cycling store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int("year", 0, "Season to sync (defaults to SYNC_YEAR)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory with the seed JSON files (defaults to SEED_DATA_DIR)")
	rootCmd.PersistentFlags().Bool("strict", false, "Exit non-zero when any race item failed")

	rootCmd.AddCommand(
		newSyncCommand(usecase.SyncOperationSeed, "Load teams, cyclists, races and category points from the seed files",
			func(ctx context.Context, svc *usecase.RaceSyncService, _ int) (usecase.SyncReport, error) {
				return svc.Sync(ctx)
			}),
		newSyncCommand(usecase.SyncOperationRaces, "Discover races from the procyclingstats calendars",
			func(ctx context.Context, svc *usecase.RaceSyncService, year int) (usecase.SyncReport, error) {
				return svc.SyncRemoteRaces(ctx, year)
			}),
		newSyncCommand(usecase.SyncOperationResults, "Fetch race results and settle race status",
			func(ctx context.Context, svc *usecase.RaceSyncService, year int) (usecase.SyncReport, error) {
				return svc.SyncRaceResults(ctx, year)
			}),
		newSyncCommand(usecase.SyncOperationStartlists, "Rebuild race startlists",
			func(ctx context.Context, svc *usecase.RaceSyncService, year int) (usecase.SyncReport, error) {
				return svc.SyncStartlists(ctx, year)
			}),
	)
}

func newSyncCommand(use, short string, run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, run)
		},
	}
}

func runSync(cmd *cobra.Command, run runFunc) error {
	year, _ := cmd.Flags().GetInt("year")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	strict, _ := cmd.Flags().GetBool("strict")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.SeedDataDir = dataDir
	}

	logger := logging.NewJSONTo(cmd.ErrOrStderr(), cfg.LogLevel).With("command", cmd.Name())
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	ctx := cmd.Context()
	repos, err := app.BuildRepositories(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build repositories: %w", err)
	}
	defer func() { _ = repos.Close() }()

	services := app.BuildServices(cfg, repos, app.NewRaceDataProvider(cfg, logger), logger)
	report, runErr := run(ctx, services.Sync, year)
	if report.Operation != "" {
		if err := writeReport(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	if strict && report.HasFailures() {
		return fmt.Errorf("%w: %d of %d", errSyncHadFailures, report.FailedCount, report.ItemCount)
	}
	return nil
}

func writeReport(w io.Writer, report usecase.SyncReport) error {
	raw, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "pcsync:", err)
		os.Exit(1)
	}
}
