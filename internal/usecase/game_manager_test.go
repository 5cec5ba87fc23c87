package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/tictactoe-backend/internal/apperror"
	"github.com/pixelforge/tictactoe-backend/internal/engine"
	"github.com/pixelforge/tictactoe-backend/internal/entity"
)

var errRedisDown = errors.New("redis down")

// fakeGameRepo is an in-memory stand-in for the redis repository.
type fakeGameRepo struct {
	games  map[string]*entity.Game
	getErr error
	setErr error
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[string]*entity.Game)}
}

func (that *fakeGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	if that.setErr != nil {
		return that.setErr
	}

	stored := *game
	that.games[game.ID] = &stored

	return nil
}

func (that *fakeGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	if that.getErr != nil {
		return nil, that.getErr
	}

	stored, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	game := *stored

	return &game, nil
}

func (that *fakeGameRepo) DeleteByID(_ context.Context, id string) error {
	delete(that.games, id)
	return nil
}

func newManager(repo *fakeGameRepo) *GameManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGameManager(logger, repo)
}

func TestGameManager_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new game when the ID is empty", func(t *testing.T) {
		// Given: an empty repository
		repo := newFakeGameRepo()
		manager := newManager(repo)

		// When: requesting a game without an ID
		game, err := manager.GetOrCreateGame(ctx, "")

		// Then: a fresh game is created and persisted
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.MarkX, game.Turn)
		assert.Contains(t, repo.games, game.ID)
	})

	t.Run("Returns the stored game for a known ID", func(t *testing.T) {
		// Given: a repository holding a game mid-play
		repo := newFakeGameRepo()
		manager := newManager(repo)

		stored := entity.NewGame("g1")
		stored.Board[0] = entity.MarkX
		stored.Turn = entity.MarkO
		require.NoError(t, repo.CreateOrUpdate(ctx, stored))

		// When: requesting that ID
		game, err := manager.GetOrCreateGame(ctx, "g1")

		// Then: the stored state comes back
		require.NoError(t, err)
		assert.Equal(t, stored, game)
	})

	t.Run("Creates a fresh game under an unknown ID", func(t *testing.T) {
		// Given: an empty repository
		repo := newFakeGameRepo()
		manager := newManager(repo)

		// When: requesting an unknown ID
		game, err := manager.GetOrCreateGame(ctx, "missing")

		// Then: a fresh game is created under that ID
		require.NoError(t, err)
		assert.Equal(t, "missing", game.ID)
		assert.Equal(t, [9]string{}, game.Board)
	})

	t.Run("Propagates storage failures", func(t *testing.T) {
		// Given: a repository that fails to read
		repo := newFakeGameRepo()
		repo.getErr = errRedisDown
		manager := newManager(repo)

		// When: requesting a game
		game, err := manager.GetOrCreateGame(ctx, "g1")

		// Then: the error is surfaced
		require.Error(t, err)
		assert.Nil(t, game)
	})
}

func TestGameManager_ApplyMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted move is persisted", func(t *testing.T) {
		// Given: a stored fresh game
		repo := newFakeGameRepo()
		manager := newManager(repo)
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("g1")))

		// When: X plays cell 4
		game, outcome, err := manager.ApplyMove(ctx, "g1", 4)

		// Then: the board and the stored copy both hold the move
		require.NoError(t, err)
		assert.Equal(t, engine.MoveAccepted, outcome)
		assert.Equal(t, entity.MarkX, game.Board[4])
		assert.Equal(t, entity.MarkX, repo.games["g1"].Board[4])
	})

	t.Run("Rejected move is a no-op and not persisted", func(t *testing.T) {
		// Given: a stored game where cell 4 is taken
		repo := newFakeGameRepo()
		manager := newManager(repo)

		stored := entity.NewGame("g1")
		stored.Board[4] = entity.MarkX
		stored.Turn = entity.MarkO
		require.NoError(t, repo.CreateOrUpdate(ctx, stored))

		// When: playing the occupied cell
		game, outcome, err := manager.ApplyMove(ctx, "g1", 4)

		// Then: no error, rejection outcome, stored state untouched
		require.NoError(t, err)
		assert.Equal(t, engine.MoveRejectedOccupied, outcome)
		assert.Equal(t, entity.MarkO, game.Turn)
		assert.Equal(t, stored, repo.games["g1"])
	})

	t.Run("Winning move is stored with the finished state", func(t *testing.T) {
		// Given: a game one move away from a win for X
		repo := newFakeGameRepo()
		manager := newManager(repo)
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("g1")))

		for _, cell := range []int{0, 3, 1, 4} {
			_, outcome, err := manager.ApplyMove(ctx, "g1", cell)
			require.NoError(t, err)
			require.Equal(t, engine.MoveAccepted, outcome)
		}

		// When: X completes the top row
		game, outcome, err := manager.ApplyMove(ctx, "g1", 2)

		// Then: the finished state is persisted
		require.NoError(t, err)
		assert.Equal(t, engine.MoveAccepted, outcome)
		assert.Equal(t, entity.MarkX, game.Winner)
		assert.Equal(t, entity.StatusFinished, repo.games["g1"].Status)
	})

	t.Run("Returns an error for an unknown game", func(t *testing.T) {
		repo := newFakeGameRepo()
		manager := newManager(repo)

		_, _, err := manager.ApplyMove(ctx, "missing", 0)

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameManager_Restart(t *testing.T) {
	ctx := context.Background()

	t.Run("Restart replaces a finished game with a fresh board", func(t *testing.T) {
		// Given: a stored finished game
		repo := newFakeGameRepo()
		manager := newManager(repo)

		stored := entity.NewGame("g1")
		stored.Board = [9]string{
			entity.MarkX, entity.MarkX, entity.MarkX,
			entity.MarkO, entity.MarkO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}
		stored.Winner = entity.MarkX
		stored.WinLine = &[3]int{0, 1, 2}
		stored.Status = entity.StatusFinished
		require.NoError(t, repo.CreateOrUpdate(ctx, stored))

		// When: restarting
		game, err := manager.Restart(ctx, "g1")

		// Then: the session is fresh again under the same ID
		require.NoError(t, err)
		assert.Equal(t, "g1", game.ID)
		assert.Equal(t, [9]string{}, game.Board)
		assert.Equal(t, entity.MarkX, game.Turn)
		assert.Empty(t, game.Winner)
		assert.Nil(t, game.WinLine)
		assert.Equal(t, entity.StatusOngoing, repo.games["g1"].Status)
	})

	t.Run("Returns an error for an unknown game", func(t *testing.T) {
		repo := newFakeGameRepo()
		manager := newManager(repo)

		_, err := manager.Restart(ctx, "missing")

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
