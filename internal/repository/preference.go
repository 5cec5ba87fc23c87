package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pixelforge/tictactoe-backend/internal/apperror"
)

// The display theme is persisted under a single fixed key.
const (
	themeKey  = "preference:theme"
	themeName = "theme"
)

// PreferenceRepository reads and writes the stored display theme.
// Get returns apperror.ErrPreferenceNotFound when nothing is stored.
type PreferenceRepository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, value string) error
}

type dbPreference struct {
	client *redis.Client
}

func NewPreferenceRepository(client *redis.Client) PreferenceRepository {
	return &dbPreference{
		client: client,
	}
}

func (that *dbPreference) Get(ctx context.Context) (string, error) {
	value, err := that.client.Get(ctx, themeKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperror.ErrPreferenceNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get preference: %w", err)
	}

	return value, nil
}

func (that *dbPreference) Set(ctx context.Context, value string) error {
	if err := that.client.Set(ctx, themeKey, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}

	return nil
}

type sqlPreference struct {
	conn *sql.DB
}

func NewSQLitePreferenceRepository(conn *sql.DB) PreferenceRepository {
	return &sqlPreference{
		conn: conn,
	}
}

func (that *sqlPreference) Get(ctx context.Context) (string, error) {
	query := `SELECT value FROM preferences WHERE name = ?`

	var value string

	err := that.conn.QueryRowContext(ctx, query, themeName).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.ErrPreferenceNotFound
	}

	if err != nil {
		return "", fmt.Errorf("can't find preference: %w", err)
	}

	return value, nil
}

func (that *sqlPreference) Set(ctx context.Context, value string) error {
	query := `INSERT INTO preferences (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`

	if _, err := that.conn.ExecContext(ctx, query, themeName, value); err != nil {
		return fmt.Errorf("can't save preference: %w", err)
	}

	return nil
}
