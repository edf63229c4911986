package prefs

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-login-widget/internal/logger"
)

func newTestStore(t *testing.T) (*sqlStore, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	store := &sqlStore{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return store, mock, db
}

func TestGet_Found(t *testing.T) {
	store, mock, db := newTestStore(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"value"}).AddRow("arthur-dent")

	mock.ExpectQuery("SELECT value FROM prefs").
		WithArgs("username").
		WillReturnRows(rows)

	got, err := store.Get(context.Background(), "username")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "arthur-dent" {
		t.Errorf("expected value %q, got %q", "arthur-dent", got)
	}
}

func TestGet_AbsentKeyIsEmptyString(t *testing.T) {
	store, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM prefs").
		WithArgs("username").
		WillReturnError(sql.ErrNoRows)

	got, err := store.Get(context.Background(), "username")
	if err != nil {
		t.Fatalf("absent preference must not be an error, got: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string for absent preference, got %q", got)
	}
}

func TestGet_DBError(t *testing.T) {
	store, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM prefs").
		WithArgs("username").
		WillReturnError(errors.New("disk I/O error"))

	_, err := store.Get(context.Background(), "username")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSet_InsertsOrReplaces(t *testing.T) {
	store, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO prefs").
		WithArgs("username", "arthur-dent").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Set(context.Background(), "username", "arthur-dent"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSet_DBError(t *testing.T) {
	store, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO prefs").
		WithArgs("username", "x").
		WillReturnError(errors.New("database is locked"))

	if err := store.Set(context.Background(), "username", "x"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestUsername_RoundTrip(t *testing.T) {
	store, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO prefs").
		WithArgs("username", "ford-prefect").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT value FROM prefs").
		WithArgs("username").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("ford-prefect"))

	ctx := context.Background()
	if err := store.SetUsername(ctx, "ford-prefect"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Username(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ford-prefect" {
		t.Errorf("expected username %q, got %q", "ford-prefect", got)
	}
}
