package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mezonai/syncstate/exception"
	"github.com/mezonai/syncstate/logx"
	"github.com/mezonai/syncstate/monitoring"
	"github.com/mezonai/syncstate/store"
)

var (
	metricsAddr     string
	metricsInterval time.Duration
)

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Expose the sync state as Prometheus metrics",
	Long: `Open the database, poll the sync state every --interval and expose it on /metrics.
The database stays open until the process receives SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateInterval(metricsInterval); err != nil {
			return err
		}

		handle, ms, cfg, err := openMetaStore(cmd)
		if err != nil {
			return err
		}
		defer handle.Close()

		addr := cfg.Metrics.ListenAddr
		if cmd.Flags().Changed("addr") {
			addr = metricsAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serveMetrics(ctx, ms, addr, metricsInterval)
	},
}

func init() {
	rootCmd.AddCommand(serveMetricsCmd)
	serveMetricsCmd.Flags().StringVar(&metricsAddr, "addr", "", "Listen address, overrides metrics.listen_addr")
	serveMetricsCmd.Flags().DurationVar(&metricsInterval, "interval", 5*time.Second, "Sync state polling interval")
}

func validateInterval(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", interval)
	}
	return nil
}

func serveMetrics(ctx context.Context, ms store.MetaStore, addr string, interval time.Duration) error {
	if err := validateInterval(interval); err != nil {
		return err
	}
	monitoring.InitMetrics()

	mux := http.NewServeMux()
	monitoring.RegisterMetrics(mux)
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	exception.SafeGo("metrics-server", func() {
		logx.Info("METRICS", "Serving metrics on ", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Error("METRICS", "Metrics server stopped: ", err)
		}
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		refreshSyncStateMetrics(ms)
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
		}
	}
}

// refreshSyncStateMetrics copies the persisted sync state into the gauges.
// Read failures are logged and the previous values kept.
func refreshSyncStateMetrics(ms store.MetaStore) {
	state, err := readSyncState(ms)
	if err != nil {
		logx.Warn("METRICS", "Failed to read sync state: ", err)
		return
	}

	monitoring.SetSyncingTipCount(len(state.SyncingTips))
	monitoring.SetSyncBlockHeight(state.CurrentSyncBlock)
	if state.LatestBlock != nil {
		monitoring.SetLatestBlockNumber(state.LatestBlock.Number)
	}
}
