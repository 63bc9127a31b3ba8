package http

import (
	"net/http"

	"github.com/nvoropaev/bracketeer/internal/config"
	"github.com/nvoropaev/bracketeer/internal/ingest"
	"github.com/nvoropaev/bracketeer/internal/metrics"
	"github.com/nvoropaev/bracketeer/internal/picks"
	"github.com/nvoropaev/bracketeer/internal/scoring"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

func NewServer(store tournament.Store, picksSvc *picks.Service, scoringSvc *scoring.Service, orchestrator *ingest.Orchestrator, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Picks:          picksSvc,
		Scoring:        scoringSvc,
		Orchestrator:   orchestrator,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Routes reading or writing user data additionally carry the
	// authentication middleware verifying the Mini App initData.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), requestLogMiddleware))
	s.Router.Handle("GET /tournaments", Chain(s.ListTournamentsHandler(), requestLogMiddleware))
	s.Router.Handle("GET /tournaments/matches", Chain(s.DrawHandler(), requestLogMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(s.GlobalLeaderboardHandler(), requestLogMiddleware))
	s.Router.Handle("GET /leaderboard/tournament/{id}", Chain(s.TournamentLeaderboardHandler(), requestLogMiddleware))
	s.Router.Handle("POST /sync", Chain(s.SyncHandler(), requestLogMiddleware))
	s.Router.Handle("POST /picks", Chain(s.SavePicksHandler(), requestLogMiddleware, s.authMiddleware))
	s.Router.Handle("GET /picks", Chain(s.MyPicksHandler(), requestLogMiddleware, s.authMiddleware))
	s.Router.Handle("GET /results", Chain(s.ResultsHandler(), requestLogMiddleware, s.authMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
