package cmd

import (
	"context"
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/clock"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/database"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/events"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/factory"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/mapper"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/metrics"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/repository"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/service"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/validation"
	"github.com/vibast-solutions/ms-go-store-subscriptions/config"
)

const (
	amqpConnectRetries = 5
	amqpConnectDelay   = 2 * time.Second
)

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	return cfg
}

func mustOpenDatabase(cfg *config.Config) *sql.DB {
	db, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		logrus.WithError(err).WithField("driver", cfg.Database.Driver).Fatal("Failed to connect to database")
	}
	return db
}

// mustCreateSubscriptionService wires the service with its store, event
// publisher and metrics. The returned cleanup closes everything it opened.
func mustCreateSubscriptionService() (*config.Config, *service.SubscriptionService, func()) {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	publisher, closePublisher := mustCreatePublisher(cfg)

	c := clock.NewSystem()
	subscriptionService := service.NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		validation.NewCreateSubscriptionValidator(c),
		mapper.NewCreateSubscriptionMapper(),
		c,
		service.WithPublisher(publisher),
		service.WithMetrics(metrics.NewRecorder(prometheus.DefaultRegisterer)),
		service.WithLogger(factory.NewModuleLogger("subscription_service")),
	)

	cleanup := func() {
		closePublisher()
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, subscriptionService, cleanup
}

func mustCreatePublisher(cfg *config.Config) (events.Publisher, func()) {
	if cfg.AMQP.URL == "" {
		logrus.Info("AMQP_URL not set, subscription events are not published")
		return events.NoopPublisher{}, func() {}
	}

	conn, err := events.Connect(cfg.AMQP.URL, amqpConnectRetries, amqpConnectDelay)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to AMQP broker")
	}
	ch, err := events.SetupChannel(conn, cfg.AMQP.Exchange)
	if err != nil {
		_ = conn.Close()
		logrus.WithError(err).Fatal("Failed to set up AMQP channel")
	}

	return events.NewAMQPPublisher(ch, cfg.AMQP.Exchange), func() {
		closeAMQP(ch, conn)
	}
}

func closeAMQP(ch *amqp.Channel, conn *amqp.Connection) {
	if err := ch.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close AMQP channel")
	}
	if err := conn.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close AMQP connection")
	}
}
