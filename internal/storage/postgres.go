package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const DriverName = "pgx"

var (
	ErrNoDSN       = errors.New("storage: empty dsn")
	ErrUnreachable = errors.New("storage: database unreachable")
)

// Store is the direct Postgres connection to the Supabase database.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{db: db, logger: logger}
}

// Open connects to dsn and pings once. The handle is closed if the ping fails.
func Open(
	ctx context.Context,
	openDB func(driverName, dsn string) (*sql.DB, error),
	dsn string,
	logger *zap.SugaredLogger,
) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrNoDSN
	}
	db, err := openDB(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := NewStore(db, logger)
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warnw("database ping failed", "err", err)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
