package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fujical/internal/handlers"
	"fujical/internal/logger"
	"fujical/internal/repository"
	"fujical/internal/repository/db"
	"fujical/internal/server"
	"fujical/internal/service"
	"fujical/internal/weather"

	"github.com/spf13/viper"
)

const (
	defaultCalcTick       = 6 * time.Hour
	defaultWeatherBaseURL = "https://api.open-meteo.com"
	defaultWeatherTimeout = 10 * time.Second
)

func main() {
	// load config.yml, then init the logger at the configured level
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	provider := newWeatherProvider()
	services := service.NewService(repos, provider, authConfig(), log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the event calculator (via composed service)
	go services.Calculator.Run(ctx, calcTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "fujical.db")
		dbPath = "fujical.db"
	}
	return db.InitDB(dbPath)
}

func newWeatherProvider() weather.Provider {
	baseURL := viper.GetString("weather.base_url")
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	timeout := viper.GetDuration("weather.timeout")
	if timeout <= 0 {
		timeout = defaultWeatherTimeout
	}
	return weather.NewOpenMeteo(baseURL, timeout)
}

func authConfig() service.AuthConfig {
	return service.AuthConfig{
		SigningKey: viper.GetString("auth.signing_key"),
		TokenTTL:   viper.GetDuration("auth.token_ttl"),
	}
}

func calcTick() time.Duration {
	if tick := viper.GetDuration("calculator.tick"); tick > 0 {
		return tick
	}
	return defaultCalcTick
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
