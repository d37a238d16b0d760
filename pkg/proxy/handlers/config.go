package handlers

import (
	"net/http"
	"strings"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/limits/ratelimit"
	"the-savior/edge/pkg/proxy/middleware"
)

// configCacheControl lets browsers and CDNs reuse the public config.
const configCacheControl = "public, max-age=300"

// ConfigRoute is the guard configuration of GET /api/config.
var ConfigRoute = Route{
	Path:    "/api/config",
	Methods: []string{http.MethodGet},
	CORS:    middleware.RouteCORS{Methods: "GET, OPTIONS", AllowHeaders: "Content-Type"},
	Policy:  ratelimit.ConfigPolicy,
	Rule:    func(c *config.RateLimitsConfig) config.RateLimitRule { return c.Config },
	Deny:    errorDenial,
}

type configResponse struct {
	HasServerAPIKey       bool         `json:"hasServerApiKey"`
	LLMProviderPreference string       `json:"llmProviderPreference"`
	OllamaEnabled         bool         `json:"ollamaEnabled"`
	OllamaModel           string       `json:"ollamaModel"`
	AdsenseClient         string       `json:"adsenseClient"`
	AdsenseSlots          adsenseSlots `json:"adsenseSlots"`
	APIBaseURL            string       `json:"apiBaseUrl"`
	Build                 buildInfo    `json:"build"`
}

type adsenseSlots struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
}

type buildInfo struct {
	Branch string `json:"branch"`
	Commit string `json:"commit"`
}

// NewConfigHandler returns the guarded GET /api/config handler.
func NewConfigHandler(deps *Dependencies) http.Handler {
	return Guard(ConfigRoute, deps, func(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
		w.Header().Set("Cache-Control", configCacheControl)
		writeJSON(r.Context(), w, http.StatusOK, configResponse{
			HasServerAPIKey:       cfg.HasServerAPIKey(),
			LLMProviderPreference: cfg.Upstream.Provider,
			OllamaEnabled:         cfg.Upstream.Ollama.Enabled,
			OllamaModel:           cfg.Upstream.Ollama.Model,
			AdsenseClient:         cfg.Public.AdsenseClient,
			AdsenseSlots: adsenseSlots{
				Top:    cfg.Public.AdsenseSlotTop,
				Bottom: cfg.Public.AdsenseSlotBottom,
			},
			APIBaseURL: strings.TrimRight(strings.TrimSpace(cfg.Public.APIBaseURL), "/"),
			Build: buildInfo{
				Branch: cfg.Build.Branch,
				Commit: cfg.Build.Commit,
			},
		})
	})
}
