package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/checkout"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/config"
	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/notify"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/routes"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/storage"
)

var inMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&inMemory, "memory", false, "keep data in process memory instead of MongoDB")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	mylog := log.Action("server_started")

	stores, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	c := controller.New(stores, helper.NewTokenIssuer(cfg.SecretKey), log)
	c.AdminEmails = cfg.AdminEmails
	c.MaxUploadBytes = cfg.UploadMaxBytes

	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		return err
	}
	c.Checkout = checkout.NewService(stores.Orders, uploader, log)

	if cfg.FederatedEnabled() {
		key, err := helper.ParseFederatedKey(cfg.FederatedPublicKey)
		if err != nil {
			return err
		}
		c.Federated = helper.NewFederatedVerifier(cfg.FederatedIssuer, cfg.FederatedAudience, key)
	}

	notifiers := notify.Multi{}
	if cfg.EmailBaseURL != "" {
		notifiers = append(notifiers, notify.NewEmailNotifier(cfg.EmailBaseURL, cfg.EmailTimeout))
	}
	if cfg.AmqpURL != "" {
		broker, err := notify.ConnectBroker(cfg.AmqpURL, log)
		if err != nil {
			mylog.Action("mb_connection_failed").Error("Failed to connect to message broker", err)
			return err
		}
		defer broker.Close()
		notifiers = append(notifiers, notify.NewBrokerNotifier(broker.Channel))
	}
	c.Notifier = notifiers

	srv := newHTTPServer(":"+cfg.Port, c)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	mylog.Info("Server running", "port", cfg.Port, "memory", inMemory)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Action("graceful_shutdown_started").Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
		return fmt.Errorf("http server shutdown: %w", err)
	}
	log.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")
	return nil
}

// newHTTPServer has no WriteTimeout, so /admin/stream responses stay open
// for as long as the client listens. Shutdown closes them through c.Closing.
func newHTTPServer(addr string, c *controller.Controller) *http.Server {
	closing, closeStreams := context.WithCancel(context.Background())
	c.Closing = closing

	srv := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(c),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(closeStreams)
	return srv
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repository.Stores, func(), error) {
	if inMemory {
		log.Action("db_connected").Warn("Using in-memory storage, data is lost on exit")
		return repository.NewMemoryStores(), func() {}, nil
	}

	client, err := config.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Action("db_connection_failed").Error("Failed to connect to database", err)
		return nil, nil, err
	}
	log.Action("db_connected").Info("Successful database connection", "database", cfg.MongoDatabase)

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Action("db_close_failed").Error("Failed to close database", err)
		}
	}
	return repository.NewMongoStores(config.OpenDatabase(client, cfg.MongoDatabase)), closeFn, nil
}

func newUploader(ctx context.Context, cfg *config.Config) (checkout.Uploader, error) {
	if cfg.S3Bucket == "" {
		return storage.Disabled{}, nil
	}
	return storage.NewS3Uploader(ctx, storage.Options{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		PublicBaseURL: cfg.S3PublicBaseURL,
		Endpoint:      cfg.S3Endpoint,
		MaxBytes:      cfg.UploadMaxBytes,
	})
}
