package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
)

// PreferenceKeyTheme is the preference key of the color theme
const PreferenceKeyTheme = "theme"

// PreferenceRepository stores per-viewer key/value preferences
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetPreference retrieves a preference value, empty string if not set
func (r *PreferenceRepository) GetPreference(ctx context.Context, viewer, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM preferences WHERE viewer = ? AND key = ?", viewer, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference: %w", err)
	}
	return value, nil
}

// SetPreference stores a preference value, retried on lock errors
func (r *PreferenceRepository) SetPreference(ctx context.Context, viewer, key, value string) error {
	query := `
		INSERT INTO preferences (viewer, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(viewer, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, viewer, key, value); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set preference: %w", err)}
		}
		return nil
	}, errCritical)
	if err != nil {
		return fmt.Errorf("set preference %s for %s: %w", key, viewer, err)
	}
	return nil
}

// DeletePreferences removes all preferences of the viewer
func (r *PreferenceRepository) DeletePreferences(ctx context.Context, viewer string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM preferences WHERE viewer = ?", viewer); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
