package krishicash

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	entrypoint "github.com/louisbranch/krishicash/internal/platform/cmd"
	"github.com/louisbranch/krishicash/internal/random"
	"github.com/louisbranch/krishicash/internal/services/game/app"
	"github.com/louisbranch/krishicash/internal/services/game/storage"
)

// Run plays an interactive game on stdin and stdout.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceKrishiCash, func(ctx context.Context) error {
		return Play(ctx, cfg, os.Stdin, os.Stdout)
	})
}

// Play wires storage, metrics and the controller, restores the account's
// save and runs the session over in and out.
func Play(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	records, closeStore, err := openRecordStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("close %s store: %v", cfg.Store, err)
		}
	}()
	gateway := storage.NewGateway(records)

	src, seed, err := random.NewFromSeedOrEntropy(cfg.Seed)
	if err != nil {
		return err
	}
	log.Printf("event seed %d", seed)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	ctrl, err := app.New(
		app.WithStorage(gateway, cfg.AccountID),
		app.WithSource(src),
		app.WithMetrics(app.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		metrics, err := startMetricsServer(cfg.MetricsAddr, reg)
		if err != nil {
			return err
		}
		defer func() {
			if err := metrics.Close(); err != nil {
				log.Printf("metrics: %v", err)
			}
		}()
	}

	if err := ctrl.Restore(ctx); err != nil {
		return fmt.Errorf("restore game: %w", err)
	}
	return newSession(ctrl, gateway, out).run(ctx, in)
}
