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

type Server struct {
	Store          tournament.Store
	Picks          *picks.Service
	Scoring        *scoring.Service
	Orchestrator   *ingest.Orchestrator
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
