package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pixelforge/tictactoe-backend/internal/apperror"
	"github.com/pixelforge/tictactoe-backend/internal/engine"
	"github.com/pixelforge/tictactoe-backend/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager keeps independent game sessions in the repository and
// runs the rules engine against them. Both marks play on the same
// screen, so a session needs no player bookkeeping.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game-manager"),
		gameRepo: gameRepo,
	}
}

// GetOrCreateGame returns the stored game, or starts a fresh one when
// the ID is empty or unknown.
func (that *GameManager) GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error) {
	if id == "" {
		return that.createGame(ctx, uuid.NewString())
	}

	game, err := that.gameRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return that.createGame(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return game, nil
}

// ApplyMove loads the game, applies the move, and persists the result
// when the move was accepted. Rejected moves are not errors; the
// outcome tells the caller what happened.
func (that *GameManager) ApplyMove(ctx context.Context, gameID string, cell int) (*entity.Game, engine.MoveOutcome, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, engine.MoveRejectedGameOver, fmt.Errorf("failed get game by id: %w", err)
	}

	outcome := engine.New(game).ApplyMove(cell)
	if !outcome.Accepted() {
		that.logger.Debug("move ignored", "game_id", gameID, "cell", cell, "outcome", outcome.String())
		return game, outcome, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, outcome, fmt.Errorf("failed update game: %w", err)
	}

	return game, outcome, nil
}

// Restart replaces the session with a fresh board under the same ID.
func (that *GameManager) Restart(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	engine.New(game).Reset()

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

// DeleteGame removes a finished or abandoned session.
func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed delete game: %w", err)
	}

	return nil
}

func (that *GameManager) createGame(ctx context.Context, id string) (*entity.Game, error) {
	game := entity.NewGame(id)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	that.logger.Info("created new game", "game_id", game.ID)

	return game, nil
}
