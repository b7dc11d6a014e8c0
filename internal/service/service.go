package service

import (
	"context"

	"github.com/supabase-community/supabase-go"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	SupabaseConfigured = "configured"
	SupabaseMissing    = "missing"

	DatabaseOK          = "ok"
	DatabaseDisabled    = "disabled"
	DatabaseUnreachable = "unreachable"
)

// Service holds the client handle built at startup and hands it to the
// components that need it.
type Service struct {
	client *supabase.Client
	db     Pinger
}

// Pinger is the optional direct database connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	Status   string `json:"status"`
	Supabase string `json:"supabase"`
	Database string `json:"database"`
}

// New takes ownership of client. db may be nil when no direct connection is configured.
func New(client *supabase.Client, db Pinger) *Service {
	return &Service{client: client, db: db}
}

func (s *Service) Client() *supabase.Client {
	return s.client
}

func (s *Service) Health(ctx context.Context) Health {
	h := Health{Status: StatusOK, Supabase: SupabaseConfigured, Database: DatabaseDisabled}
	if s.client == nil {
		h.Supabase = SupabaseMissing
		h.Status = StatusDegraded
	}
	if s.db != nil {
		h.Database = DatabaseOK
		if err := s.db.Ping(ctx); err != nil {
			h.Database = DatabaseUnreachable
			h.Status = StatusDegraded
		}
	}
	return h
}
