package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"workorders/cmd"
	"workorders/internal/adapters/out/postgres"
	"workorders/internal/adapters/out/rabbitmq"
	"workorders/internal/core/ports"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(envFile *string, logger *slog.Logger) *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the notification relay",
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			if err = config.ValidateForServe(); err != nil {
				return err
			}

			db, err := postgres.Open(config.ConnectionSettings())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if migrate {
				if err = postgres.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			sender, closeSender, err := newSender(config, logger)
			if err != nil {
				return err
			}
			defer closeSender()

			root := cmd.NewCompositionRoot(config, db, sender, nil, logger)

			jobManager := root.NewJobManager()
			if err = jobManager.StartAll(); err != nil {
				return fmt.Errorf("start jobs: %w", err)
			}
			defer jobManager.StopAll()

			return serveHTTP(root, config.HTTPPort, logger)
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return c
}

// newSender publishes to RabbitMQ when RABBITMQ_URL is set and only logs
// notifications otherwise.
func newSender(config cmd.Config, logger *slog.Logger) (ports.NotificationSender, func(), error) {
	if config.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL is not set, notifications are only logged")
		return rabbitmq.NewLoggingSender(logger), func() {}, nil
	}

	client, err := rabbitmq.Dial(config.RabbitMQURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	if err = client.DeclareTopicExchange(config.RabbitMQExchange); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", config.RabbitMQExchange, err)
	}
	return rabbitmq.NewNotificationSender(client, config.RabbitMQExchange), client.Close, nil
}

func serveHTTP(root cmd.CompositionRoot, port string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := root.NewHTTPServer().NewEcho()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
