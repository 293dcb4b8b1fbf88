package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"go.uber.org/zap"
)

type contextKey string

const userIDContextKey contextKey = "userId"

// SessionStrategyKey identifies the session-cookie strategy
const SessionStrategyKey auth.StrategyKey = "session.cookie"

var authenticator auth.Authenticator

// sessionStrategy authenticates requests by verifying the signed session
// token in the cookie set at signin/signup
type sessionStrategy struct {
	sessions *SessionIssuer
}

func (s *sessionStrategy) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, fmt.Errorf("missing session cookie")
	}
	userID, err := s.sessions.Verify(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}
	return auth.NewDefaultUser(userID, userID, nil, nil), nil
}

// SetupSessionAuth sets up the go-guardian authenticator with the
// session-cookie strategy
func SetupSessionAuth(sessions *SessionIssuer) {
	authenticator = auth.New()
	authenticator.EnableStrategy(SessionStrategyKey, &sessionStrategy{sessions: sessions})
}

// Middleware requires a valid session cookie on the wrapped routes and puts
// the authenticated user id on the request context
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "unauthorized"}`))
			return
		}
		ctx := context.WithValue(r.Context(), userIDContextKey, user.ID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user id put there by
// Middleware, or empty for unauthenticated routes
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDContextKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags every request with an id and logs method, path, status
// and duration
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		zap.S().Infow("request completed",
			"requestId", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// CORS allows the configured client origins with credentials
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
