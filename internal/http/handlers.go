package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/nvoropaev/bracketeer/internal/bracketview"
	"github.com/nvoropaev/bracketeer/internal/picks"
	"github.com/nvoropaev/bracketeer/internal/scoring"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := s.Store.ListTournaments()
		if err != nil {
			http.Error(w, "Failed to get tournaments", http.StatusInternalServerError)
			log.Error("Failed to get tournaments from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, tournaments)
	}
}

// DrawHandler serves the canonical bracket of one tournament.
func (s *Server) DrawHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := tournamentIDParam(w, r)
		if !ok {
			return
		}
		t, err := s.Store.GetTournament(id)
		if err != nil {
			if errors.Is(err, tournament.ErrNotFound) {
				http.Error(w, "Tournament not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get tournament", http.StatusInternalServerError)
			log.Error("Failed to get tournament from store", "tournamentID", id, "error", err)
			return
		}
		matches, err := s.Store.GetDrawMatches(id)
		if err != nil {
			http.Error(w, "Failed to get draw", http.StatusInternalServerError)
			log.Error("Failed to get draw from store", "tournamentID", id, "error", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"tournament": t,
			"matches":    matches,
		})
	}
}

func (s *Server) SavePicksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			http.Error(w, "Not authenticated", http.StatusForbidden)
			return
		}

		var reqs []picks.Request
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if len(reqs) == 0 {
			http.Error(w, "Empty pick batch", http.StatusBadRequest)
			return
		}

		saved, err := s.Picks.Save(user.ID, reqs)
		if err != nil {
			writePickError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, saved)
	}
}

func (s *Server) MyPicksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			http.Error(w, "Not authenticated", http.StatusForbidden)
			return
		}
		id, ok := tournamentIDParam(w, r)
		if !ok {
			return
		}
		userPicks, err := s.Picks.ForUser(user.ID, id)
		if err != nil {
			http.Error(w, "Failed to get picks", http.StatusInternalServerError)
			log.Error("Failed to get picks from store", "userID", user.ID, "error", err)
			return
		}
		respondJSON(w, http.StatusOK, userPicks)
	}
}

// ResultsHandler serves the user's bracket annotated against the draw.
func (s *Server) ResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			http.Error(w, "Not authenticated", http.StatusForbidden)
			return
		}
		id, ok := tournamentIDParam(w, r)
		if !ok {
			return
		}
		userPicks, err := s.Picks.ForUser(user.ID, id)
		if err != nil {
			http.Error(w, "Failed to get picks", http.StatusInternalServerError)
			log.Error("Failed to get picks from store", "userID", user.ID, "error", err)
			return
		}
		matches, err := s.Store.GetDrawMatches(id)
		if err != nil {
			http.Error(w, "Failed to get draw", http.StatusInternalServerError)
			log.Error("Failed to get draw from store", "tournamentID", id, "error", err)
			return
		}
		respondJSON(w, http.StatusOK, bracketview.Annotate(userPicks, matches))
	}
}

func (s *Server) GlobalLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := scoring.Category(r.URL.Query().Get("category"))
		entries, err := s.Scoring.GlobalLeaderboard(category)
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build global leaderboard", "category", category, "error", err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) TournamentLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "Invalid tournament id", http.StatusBadRequest)
			return
		}
		entries, err := s.Store.GetLeaderboard(id)
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "tournamentID", id, "error", err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) SyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting manual sync...")
		if err := s.Orchestrator.RunCycle(r.Context()); err != nil {
			http.Error(w, "Sync failed", http.StatusInternalServerError)
			log.Error("Manual sync failed", "error", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Sync completed.")
		log.Info("Manual sync finished.")
	}
}

// tournamentIDParam parses the tournament_id query parameter, writing a 400
// response on failure.
func tournamentIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("tournament_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid tournament_id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writePickError maps pick service errors onto HTTP statuses.
func writePickError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, picks.ErrMalformed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, picks.ErrTournamentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, picks.ErrPicksClosed), errors.Is(err, picks.ErrMatchDecided):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		log.Error("Failed to save picks", "error", err)
		http.Error(w, "Failed to save picks", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
