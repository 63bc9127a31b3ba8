package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	SyncCycles          prometheus.Counter
	TournamentsSynced   prometheus.Counter
	TournamentsFailed   prometheus.Counter
	RowsParsed          prometheus.Counter
	RowsFailed          prometheus.Counter
	PicksSaved          prometheus.Counter
	PicksRejected       prometheus.Counter
	LeaderboardRebuilds prometheus.Counter
	ScoringDuration     prometheus.Histogram
	StartupTimeSeconds  prometheus.Gauge
}

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SyncCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_sync_cycles_total",
			Help: "The total number of sync cycles started.",
		}),
		TournamentsSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_tournaments_synced_total",
			Help: "The total number of tournaments ingested successfully.",
		}),
		TournamentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_tournaments_failed_total",
			Help: "The total number of tournaments whose ingest was aborted.",
		}),
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_sheet_rows_parsed_total",
			Help: "The total number of tournaments-tab rows parsed successfully.",
		}),
		RowsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_sheet_rows_failed_total",
			Help: "The total number of tournaments-tab rows skipped as malformed.",
		}),
		PicksSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_picks_saved_total",
			Help: "The total number of user picks persisted.",
		}),
		PicksRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_picks_rejected_total",
			Help: "The total number of user picks rejected by validation or gating.",
		}),
		LeaderboardRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_leaderboard_rebuilds_total",
			Help: "The total number of per-tournament leaderboard rebuilds.",
		}),
		ScoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bracket_scoring_duration_seconds",
			Help:    "The duration of one tournament's score recomputation.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bracket_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SyncCycles,
		s.TournamentsSynced,
		s.TournamentsFailed,
		s.RowsParsed,
		s.RowsFailed,
		s.PicksSaved,
		s.PicksRejected,
		s.LeaderboardRebuilds,
		s.ScoringDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSyncCycles()          { s.SyncCycles.Inc() }
func (s *Service) IncTournamentsSynced()   { s.TournamentsSynced.Inc() }
func (s *Service) IncTournamentsFailed()   { s.TournamentsFailed.Inc() }
func (s *Service) IncRowsParsed()          { s.RowsParsed.Inc() }
func (s *Service) IncRowsFailed()          { s.RowsFailed.Inc() }
func (s *Service) IncPicksSaved()          { s.PicksSaved.Inc() }
func (s *Service) IncPicksRejected()       { s.PicksRejected.Inc() }
func (s *Service) IncLeaderboardRebuilds() { s.LeaderboardRebuilds.Inc() }

func (s *Service) ObserveScoringDuration(seconds float64) {
	s.ScoringDuration.Observe(seconds)
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
