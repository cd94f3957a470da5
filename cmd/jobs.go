package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/service"
	"github.com/vibast-solutions/ms-go-store-subscriptions/config"
)

var expireWorker bool

var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Expire active subscriptions whose expiration date has passed",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"expire",
			expireWorker,
			func(cfg *config.Config) time.Duration { return cfg.Jobs.ExpirationCheckInterval },
			func(s *service.SubscriptionService, ctx context.Context) (int, error) {
				return s.RunExpirationBatch(ctx)
			},
		)
	},
}

func init() {
	rootCmd.AddCommand(expireCmd)
	expireCmd.Flags().BoolVar(&expireWorker, "worker", false, "Run continuously using configured interval")
}

type batchFunc func(s *service.SubscriptionService, ctx context.Context) (int, error)

func runCommand(
	name string,
	worker bool,
	intervalResolver func(cfg *config.Config) time.Duration,
	fn batchFunc,
) {
	cfg, subscriptionService, cleanup := mustCreateSubscriptionService()
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if worker {
		runWorker(ctx, name, intervalResolver(cfg), subscriptionService, fn)
		return
	}

	runJob(name, func() (int, error) { return fn(subscriptionService, ctx) })
}

func runWorker(
	ctx context.Context,
	name string,
	interval time.Duration,
	subscriptionService *service.SubscriptionService,
	fn batchFunc,
) {
	if interval <= 0 {
		logrus.WithField("job", name).Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runJob(name, func() (int, error) { return fn(subscriptionService, ctx) })

	for {
		select {
		case <-ctx.Done():
			logrus.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, func() (int, error) { return fn(subscriptionService, ctx) })
		}
	}
}

func runJob(name string, fn func() (int, error)) {
	start := time.Now()
	processed, err := fn()
	entry := logrus.WithFields(logrus.Fields{
		"job":       name,
		"processed": processed,
		"latency":   time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("job_failed")
		return
	}
	entry.Info("job_completed")
}
