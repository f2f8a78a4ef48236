package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"machine_health/internal/handlers"
	"machine_health/internal/logger"
	"machine_health/internal/metrics"
	"machine_health/internal/repository"
	"machine_health/internal/server"
	"machine_health/internal/service"

	"github.com/spf13/viper"
)

const defaultMonitorTick = 1 * time.Minute

func main() {
	// load config.yml before the logger so log settings apply from the start
	if err := loadConfig(); err != nil {
		// no logger yet
		panic("error reading config: " + err.Error())
	}

	log := logger.Get(viper.GetString("log.level"), viper.GetString("log.encoding"))

	// register prometheus collectors once, before any traffic
	metrics.Register()

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, log, serviceOptions())
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the sensor freshness monitor (via composed service)
	go services.Monitor.Run(ctx, monitorTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	// secrets come from the environment: MH_AUTH_SIGNING_KEY, MH_INGEST_API_KEY
	viper.SetEnvPrefix("mh")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// serviceOptions assembles the service tuning knobs from configuration.
func serviceOptions() service.Options {
	tokenTTL := viper.GetDuration("auth.token_ttl")
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	staleAfter := viper.GetDuration("telemetry.stale_after")
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return service.Options{
		SigningKey:   viper.GetString("auth.signing_key"),
		TokenTTL:     tokenTTL,
		IngestAPIKey: viper.GetString("ingest.api_key"),
		StaleAfter:   staleAfter,
	}
}

func monitorTick() time.Duration {
	if tick := viper.GetDuration("telemetry.check_interval"); tick > 0 {
		return tick
	}
	return defaultMonitorTick
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "machine_health.db")
		dbPath = "machine_health.db"
	}
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
