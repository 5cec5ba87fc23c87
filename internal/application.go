package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixelforge/tictactoe-backend/internal/config"
	"github.com/pixelforge/tictactoe-backend/internal/repository"
	"github.com/pixelforge/tictactoe-backend/internal/repository/storage"
	"github.com/pixelforge/tictactoe-backend/internal/service"
	"github.com/pixelforge/tictactoe-backend/internal/usecase"
	"github.com/pixelforge/tictactoe-backend/transport/rest"
	"github.com/pixelforge/tictactoe-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	prefRepo, cleanup, err := newPreferenceRepository(ctx, conf, redisStorage)
	if err != nil {
		return fmt.Errorf("could not init preference storage: %w", err)
	}
	defer cleanup()

	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	gameManager := usecase.NewGameManager(logger, gameRepo)
	preferences := service.NewPreferenceStore(logger, prefRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameManager, preferences)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager, preferences)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newPreferenceRepository picks the theme storage backend from config.
func newPreferenceRepository(ctx context.Context, conf *config.Config, redisStorage *storage.RedisStorage) (repository.PreferenceRepository, func(), error) {
	switch conf.Preferences.Backend {
	case config.BackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Preferences.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		cleanup := func() { _ = sqliteStorage.Close() }

		return repository.NewSQLitePreferenceRepository(sqliteStorage.Connection), cleanup, nil
	case config.BackendRedis:
		return repository.NewPreferenceRepository(redisStorage.Connection), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown preference backend: %q", conf.Preferences.Backend)
	}
}
