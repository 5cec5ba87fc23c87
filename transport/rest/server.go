package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pixelforge/tictactoe-backend/internal/engine"
	"github.com/pixelforge/tictactoe-backend/internal/entity"
)

type gameManager interface {
	GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error)
	ApplyMove(ctx context.Context, gameID string, cell int) (*entity.Game, engine.MoveOutcome, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
}

type preferenceStore interface {
	Load(ctx context.Context) string
	Save(ctx context.Context, theme string)
}

type Server struct {
	logger *slog.Logger
	games  gameManager
	prefs  preferenceStore
}

func New(logger *slog.Logger, games gameManager, prefs preferenceStore) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		games:  games,
		prefs:  prefs,
	}
}

// Router wires all REST routes.
func (that *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/ping", that.handlePing)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", that.handleCreateGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", that.handleGetGame)
			r.Post("/moves", that.handleMove)
			r.Post("/restart", that.handleRestart)
		})
	})

	r.Get("/theme", that.handleGetTheme)
	r.Put("/theme", that.handlePutTheme)

	return r
}

// Start - starts the HTTP server and shuts it down when the context
// is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
