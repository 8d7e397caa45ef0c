package demo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/contexlog"
	"github.com/oshokin/contexlog/internal/config"
)

// requestStageDelay paces the simulated pipeline so interleaving between
// goroutines is visible on a terminal.
const requestStageDelay = 10 * time.Millisecond

// Options controls the demo run.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file; empty means
	// built-in defaults.
	ConfigPath string
	// Requests overrides the configured request count when positive.
	Requests int
}

// Run simulates a burst of concurrent requests, each in its own goroutine
// with its own log context, and logs every stage. It demonstrates that
// request fields never leak between concurrent goroutines.
func Run(ctx context.Context, opts *Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if opts.Requests > 0 {
		cfg.Requests = opts.Requests
	}

	log := newLogger(cfg)
	log.InfoKV(ctx, "Demo starting", "requests", cfg.Requests)

	var wg sync.WaitGroup
	for i := 1; i <= cfg.Requests; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			handleRequest(
				contexlog.Set(ctx,
					"request_id", fmt.Sprintf("req-%03d", n),
					"user_id", fmt.Sprintf("user-%d", 100+n),
				),
				log,
			)
		}(i)
	}

	wg.Wait()
	log.Info(ctx, "Demo finished")

	// Syncing stderr fails on some platforms; the lines are already out.
	_ = log.Sync()

	return nil
}

// newLogger builds the demo logger from configuration. An unset level defers
// to the LOG_LEVEL environment variable.
func newLogger(cfg *config.Config) *contexlog.Logger {
	opts := make([]contexlog.Option, 0, 2)

	if lvl, ok := contexlog.ParseLevel(cfg.Level); ok {
		opts = append(opts, contexlog.WithLevel(lvl))
	}

	switch cfg.Color {
	case "on":
		opts = append(opts, contexlog.WithColor(true))
	case "off":
		opts = append(opts, contexlog.WithColor(false))
	}

	return contexlog.New("demo", opts...)
}

// handleRequest walks one simulated request through its stages. The database
// stage runs under a scoped context override that vanishes afterwards.
func handleRequest(ctx context.Context, log *contexlog.Logger) {
	if ctx.Err() != nil {
		log.Warn(ctx, "Request canceled before start")
		return
	}

	log.Info(ctx, "Request accepted")
	log.Debug(ctx, "Payload validated")

	err := contexlog.Scoped(ctx, func(ctx context.Context) error {
		log.Debug(ctx, "Query sent")
		time.Sleep(requestStageDelay)
		log.InfoKV(ctx, "Query finished", "rows", 3)

		return nil
	}, "stage", "db")
	if err != nil {
		log.Errorf(ctx, "Query failed: %v", err)
		return
	}

	log.Info(ctx, "Request served")
}
