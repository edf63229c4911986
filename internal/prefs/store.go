// Package prefs persists small widget preferences, such as the username of
// the most recently signed-out account, in a local SQLite database.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-login-widget/internal/logger"
)

//go:generate mockgen -source=store.go -destination=../mock/prefs_store_mock.go -package=mock

// usernameKey is the preference under which the remembered username is kept.
const usernameKey = "username"

// Store provides access to the named widget preferences.
//
// A preference that was never set reads back as an empty string, not as an
// error: the widget treats "no remembered username" and "remembered an empty
// username" identically.
type Store interface {
	// Get returns the value of the named preference, or "" when absent.
	Get(ctx context.Context, name string) (string, error)
	// Set stores the value of the named preference, replacing any
	// previous value.
	Set(ctx context.Context, name, value string) error

	// Username returns the remembered username, or "" when none is kept.
	Username(ctx context.Context) (string, error)
	// SetUsername remembers the given username for the next session.
	SetUsername(ctx context.Context, username string) error
}

// sqlStore implements [Store] on top of the prefs table.
type sqlStore struct {
	logger *logger.Logger
	db     *DB
}

// NewStore constructs a [Store] backed by the provided database connection
// and logger.
func NewStore(db *DB, log *logger.Logger) Store {
	log.Debug().Msg("creating preferences store")
	return &sqlStore{
		db:     db,
		logger: log,
	}
}

func (s *sqlStore) Get(ctx context.Context, name string) (string, error) {
	query, args, err := sq.Select("value").
		From("prefs").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("error building prefs query: %w", err)
	}

	var value string
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		s.logger.Err(err).Str("func", "*sqlStore.Get").Str("name", name).Msg("error: scanning error")
		return "", fmt.Errorf("unexpected DB error: %w", err)
	}

	return value, nil
}

func (s *sqlStore) Set(ctx context.Context, name, value string) error {
	query, args, err := sq.Insert("prefs").
		Columns("name", "value").
		Values(name, value).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building prefs query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqlStore.Set").Str("name", name).Msg("error: exec error")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (s *sqlStore) Username(ctx context.Context) (string, error) {
	return s.Get(ctx, usernameKey)
}

func (s *sqlStore) SetUsername(ctx context.Context, username string) error {
	return s.Set(ctx, usernameKey, username)
}
