package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return db, mock
}

func TestOpenPings(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()
	mock.ExpectPing()

	var gotDriver, gotDSN string
	open := func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return db, nil
	}
	store, err := Open(context.Background(), open, "postgres://db.abc.supabase.co:5432/postgres", zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if store == nil {
		t.Fatal("store nil")
	}
	if gotDriver != DriverName || gotDSN != "postgres://db.abc.supabase.co:5432/postgres" {
		t.Fatalf("unexpected open args: %s %s", gotDriver, gotDSN)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOpenPingFailureCloses(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	open := func(string, string) (*sql.DB, error) { return db, nil }
	_, err := Open(context.Background(), open, "postgres://x", nil)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOpenEmptyDSN(t *testing.T) {
	open := func(string, string) (*sql.DB, error) {
		t.Fatal("openDB must not be called")
		return nil, nil
	}
	if _, err := Open(context.Background(), open, "  ", nil); !errors.Is(err, ErrNoDSN) {
		t.Fatalf("expected ErrNoDSN, got %v", err)
	}
}

func TestOpenDriverError(t *testing.T) {
	open := func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	if _, err := Open(context.Background(), open, "postgres://x", nil); err == nil {
		t.Fatal("expected open error")
	}
}

func TestPingAndClose(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("gone"))
	mock.ExpectClose()

	store := NewStore(db, nil)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("first ping: %v", err)
	}
	if err := store.Ping(context.Background()); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
