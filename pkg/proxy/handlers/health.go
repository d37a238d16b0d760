package handlers

import (
	"net/http"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/limits/ratelimit"
	"the-savior/edge/pkg/proxy"
	"the-savior/edge/pkg/proxy/middleware"
)

// healthTimeFormat is RFC 3339 in UTC with millisecond precision.
const healthTimeFormat = "2006-01-02T15:04:05.000Z"

const shortCommitLength = 8

// HealthRoute is the guard configuration of GET /api/health.
var HealthRoute = Route{
	Path:    "/api/health",
	Methods: []string{http.MethodGet},
	CORS:    middleware.RouteCORS{Methods: "GET, OPTIONS", AllowHeaders: "Content-Type"},
	Policy:  ratelimit.HealthPolicy,
	Rule:    func(c *config.RateLimitsConfig) config.RateLimitRule { return c.Health },
	Deny:    healthDenial,
}

type healthResponse struct {
	Status          string    `json:"status"`
	Now             string    `json:"now"`
	HasServerAPIKey bool      `json:"hasServerApiKey"`
	Build           buildInfo `json:"build"`
}

// healthDenial reports guard rejections as a status word only.
func healthDenial(e *proxy.Error) any {
	status := "error"
	switch e.Status {
	case http.StatusForbidden:
		status = "forbidden"
	case http.StatusTooManyRequests:
		status = "rate_limited"
	case http.StatusMethodNotAllowed:
		status = "method_not_allowed"
	}
	return map[string]string{"status": status}
}

// NewHealthHandler returns the guarded GET /api/health handler.
func NewHealthHandler(deps *Dependencies) http.Handler {
	return Guard(HealthRoute, deps, func(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
		commit := cfg.Build.Commit
		if len(commit) > shortCommitLength {
			commit = commit[:shortCommitLength]
		}
		writeJSON(r.Context(), w, http.StatusOK, healthResponse{
			Status:          "ok",
			Now:             deps.now().UTC().Format(healthTimeFormat),
			HasServerAPIKey: cfg.HasServerAPIKey(),
			Build:           buildInfo{Branch: cfg.Build.Branch, Commit: commit},
		})
	})
}
