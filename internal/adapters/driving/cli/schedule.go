package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siria/internal/logger"
)

var (
	scheduleMetricsAddr string
	scheduleRunNow      bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the weekly update in the foreground",
	Long: `Starts the scheduler and runs the full update on its configured interval
(weekly by default) until interrupted.

With --metrics-addr, Prometheus metrics are served on /metrics and a
liveness probe on /healthz.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleMetricsAddr, "metrics-addr", "", "address for the metrics endpoint, e.g. :9464")
	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "run-now", false, "run a full update before waiting for the schedule")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if scheduleMetricsAddr != "" {
		srv, err := startMetricsServer(scheduleMetricsAddr)
		if err != nil {
			return err
		}
		cmd.Printf("Metrics listening on http://%s/metrics\n", srv.Addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck // Best effort on exit.
		}()
	}

	if scheduleRunNow {
		if updateService == nil {
			return errors.New("update service not configured")
		}
		report, err := updateService.RunFullUpdate(ctx)
		if err != nil {
			logger.Error("initial update failed: %v", err)
		} else {
			cmd.Printf("Initial update: %s, %d events stored\n", report.Status, report.EventsStored)
		}
	}

	cmd.Println("Scheduler running. Press Ctrl+C to stop.")
	errCh := make(chan error, 1)
	go func() {
		errCh <- scheduler.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := scheduler.Stop(); err != nil {
		return fmt.Errorf("stopping scheduler: %w", err)
	}
	return <-errCh
}

// startMetricsServer binds addr and serves the metrics handler in the background.
// The returned server's Addr holds the bound address.
func startMetricsServer(addr string) (*http.Server, error) {
	if metricsHandler == nil {
		return nil, errors.New("metrics not configured")
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server: %v", err)
		}
	}()
	return srv, nil
}
