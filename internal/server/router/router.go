// Package router wires handlers and middleware into the server's http.Handler.
package router

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/civicvote/internal/server/handlers"
	"github.com/iudanet/civicvote/internal/server/metrics"
	"github.com/iudanet/civicvote/internal/server/middleware"
	"github.com/iudanet/civicvote/internal/server/visitor"
)

// Deps holds everything the router needs.
type Deps struct {
	Logger  *slog.Logger
	Ledger  handlers.VoteLedger
	Catalog handlers.ContentCatalog
	Storage handlers.Pinger
	Metrics *metrics.Metrics
	Issuer  *visitor.Issuer
	Cookie  middleware.CookieConfig
	Version string
}

// New returns the full handler: recovery, logging, metrics, then routing.
// Visitor identity is attached only to the vote routes.
func New(d Deps) http.Handler {
	votes := handlers.NewVotesHandler(d.Logger, d.Ledger)
	content := handlers.NewContentHandler(d.Logger, d.Catalog)
	health := handlers.NewHealthHandler(d.Logger, d.Storage, d.Version)

	withVisitor := middleware.VisitorMiddleware(d.Logger, d.Issuer, d.Cookie)

	mux := http.NewServeMux()
	mux.Handle("GET /api/votes", withVisitor(http.HandlerFunc(votes.ReadVotes)))
	mux.Handle("POST /api/votes", withVisitor(http.HandlerFunc(votes.SetVote)))
	mux.HandleFunc("/api/votes", votes.MethodNotAllowed)
	mux.HandleFunc("GET /api/content", content.List)
	mux.HandleFunc("GET /api/health", health.Health)
	mux.Handle("GET /metrics", d.Metrics.Handler())

	var handler http.Handler = mux
	handler = middleware.MetricsMiddleware(d.Metrics)(handler)
	handler = middleware.LoggingWithSkip(d.Logger, []string{"/api/health", "/metrics"})(handler)
	handler = middleware.RecoveryMiddleware(d.Logger)(handler)

	return handler
}
