package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nvoropaev/bracketeer/internal/telegram"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const userKey contextKey = "user"

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		next.ServeHTTP(w, r)
	})
}

// authMiddleware verifies the Mini App initData carried in either the
// "Authorization: tma <initData>" header or "X-Telegram-Init-Data", upserts
// the launching user and places it in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		initData := r.Header.Get("X-Telegram-Init-Data")
		if initData == "" {
			if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "tma "); ok {
				initData = after
			}
		}
		if initData == "" {
			http.Error(w, "Missing init data", http.StatusForbidden)
			return
		}

		user, err := telegram.Verify(initData, s.Cfg.Telegram.BotToken, telegram.DefaultLifetime, time.Now())
		if err != nil {
			log.Warn("Rejected init data", "error", err)
			http.Error(w, "Invalid init data", http.StatusForbidden)
			return
		}
		if err := s.Store.UpsertUser(*user); err != nil {
			log.Error("Failed to upsert user", "userID", user.ID, "error", err)
			http.Error(w, "Failed to save user", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext retrieves the authenticated user placed by authMiddleware.
func userFromContext(r *http.Request) (*tournament.User, bool) {
	user, ok := r.Context().Value(userKey).(*tournament.User)
	return user, ok
}
