package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/civicvote/internal/server/visitor"
)

// contextKey тип для ключей контекста
type contextKey string

// VisitorIDKey ключ для хранения visitor id в контексте
const VisitorIDKey contextKey = "visitor_id"

// DefaultCookieName имя cookie с идентичностью посетителя
const DefaultCookieName = "d101_uid"

// VisitorID извлекает visitor id из контекста запроса
func VisitorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(VisitorIDKey).(string)
	return id, ok && id != ""
}

// WithVisitorID returns a context carrying visitorID
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, VisitorIDKey, visitorID)
}

// CookieConfig настройки cookie посетителя
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// VisitorMiddleware guarantees every request a visitor identity.
// A valid cookie is kept as is; a missing, forged or expired one is replaced
// by exactly one freshly minted identity, set on the response.
func VisitorMiddleware(logger *slog.Logger, issuer *visitor.Issuer, cfg CookieConfig) func(http.Handler) http.Handler {
	if cfg.Name == "" {
		cfg.Name = DefaultCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = issuer.TTL()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(cfg.Name); err == nil && c.Value != "" {
				visitorID, err := issuer.Parse(c.Value)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), visitorID)))
					return
				}
				logger.Debug("Replacing invalid visitor cookie", "error", err)
			}

			token, visitorID, expiresAt, err := issuer.Mint()
			if err != nil {
				logger.Error("Failed to mint visitor identity", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"failed to establish visitor identity"}`))
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.Name,
				Value:    token,
				Path:     "/",
				Expires:  expiresAt,
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), visitorID)))
		})
	}
}
