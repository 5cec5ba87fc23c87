package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pixelforge/tictactoe-backend/internal/apperror"
	"github.com/pixelforge/tictactoe-backend/internal/entity"
)

type preferenceRepo interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, value string) error
}

// PreferenceStore exposes the persisted display theme with a tolerant
// contract: Load never fails and Save never surfaces storage errors.
// A broken or empty store always degrades to entity.DefaultTheme.
type PreferenceStore struct {
	logger *slog.Logger
	repo   preferenceRepo
}

func NewPreferenceStore(logger *slog.Logger, repo preferenceRepo) *PreferenceStore {
	return &PreferenceStore{
		logger: logger.With("component", "preference-store"),
		repo:   repo,
	}
}

// Load returns the stored theme, or the default when the value is
// missing, unrecognized, or the storage is unavailable.
func (that *PreferenceStore) Load(ctx context.Context) string {
	value, err := that.repo.Get(ctx)
	if errors.Is(err, apperror.ErrPreferenceNotFound) {
		return entity.DefaultTheme
	}

	if err != nil {
		that.logger.Warn("failed to load theme, falling back to default", "error", err)
		return entity.DefaultTheme
	}

	if !entity.IsValidTheme(value) {
		that.logger.Warn("stored theme is not recognized, falling back to default", "theme", value)
		return entity.DefaultTheme
	}

	return value
}

// Save persists the theme. Unrecognized values and storage failures
// are dropped without surfacing an error.
func (that *PreferenceStore) Save(ctx context.Context, theme string) {
	if !entity.IsValidTheme(theme) {
		that.logger.Warn("refusing to save unrecognized theme", "theme", theme)
		return
	}

	if err := that.repo.Set(ctx, theme); err != nil {
		that.logger.Warn("failed to save theme", "theme", theme, "error", err)
	}
}
