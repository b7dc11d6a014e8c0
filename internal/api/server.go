package api

import (
	"net/http"

	"galeana/internal/service"

	"go.uber.org/zap"
)

type server struct {
	svc    *service.Service
	logger *zap.SugaredLogger
}

func NewServer(svc *service.Service, logger *zap.SugaredLogger) *server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &server{svc: svc, logger: logger}
}

func (s *server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleNotFound)
	return mux
}
