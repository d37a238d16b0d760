package handlers

import (
	"log/slog"
	"net/http"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/limits/ratelimit"
	"the-savior/edge/pkg/providers"
	"the-savior/edge/pkg/providers/openai"
	"the-savior/edge/pkg/proxy"
	"the-savior/edge/pkg/proxy/middleware"
)

// Key verification messages.
const (
	MsgKeyMalformed      = "유효한 OpenAI API 키 형식이 아닙니다. `sk-`로 시작하는 키를 확인해 주세요."
	MsgKeyValid          = "유효한 API 키입니다."
	MsgKeyUnauthorized   = "인증에 실패했습니다. API 키를 다시 확인해 주세요."
	MsgKeyQuota          = "키는 확인되었지만 사용량 한도 또는 결제 상태 확인이 필요합니다."
	MsgKeyTimeout        = "키 유효성 확인이 지연되고 있습니다. 잠시 후 다시 시도해 주세요."
	MsgKeyNetwork        = "키 유효성 확인 중 네트워크 오류가 발생했습니다."
	MsgKeyUpstreamDetail = "키 유효성 확인 중 OpenAI 응답 오류가 발생했습니다."
	MsgKeyUnknown        = "키 유효성 확인 중 오류가 발생했습니다."
)

// Key check results, used as metric labels.
const (
	keyResultValid        = "valid"
	keyResultMalformed    = "malformed"
	keyResultUnauthorized = "unauthorized"
	keyResultQuota        = "quota"
	keyResultTimeout      = "timeout"
	keyResultNetwork      = "network_error"
	keyResultError        = "error"
)

// KeyCheckRoute is the guard configuration of POST /api/key-check.
var KeyCheckRoute = Route{
	Path:    "/api/key-check",
	Methods: []string{http.MethodPost},
	CORS:    middleware.RouteCORS{Methods: "POST, OPTIONS", AllowHeaders: "Content-Type"},
	Policy:  ratelimit.KeyCheckPolicy,
	Rule:    func(c *config.RateLimitsConfig) config.RateLimitRule { return c.KeyCheck },
	Deny: func(e *proxy.Error) any {
		return keyCheckResponse{Message: e.Message}
	},
}

// keyCheckResponse is every body of POST /api/key-check.
type keyCheckResponse struct {
	Valid   bool   `json:"valid"`
	Usable  bool   `json:"usable"`
	Message string `json:"message"`
}

// KeyCheckHandler verifies browser-supplied OpenAI keys.
type KeyCheckHandler struct {
	deps *Dependencies
}

// NewKeyCheckHandler returns the guarded POST /api/key-check handler.
func NewKeyCheckHandler(deps *Dependencies) http.Handler {
	h := &KeyCheckHandler{deps: deps}
	return Guard(KeyCheckRoute, deps, h.handle)
}

func (h *KeyCheckHandler) handle(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	ctx := r.Context()

	payload, err := proxy.ReadJSONBody(r, proxy.KeyCheckMaxBodyBytes)
	if err != nil {
		if e, ok := proxy.AsError(err); ok {
			writeJSON(ctx, w, e.Status, keyCheckResponse{Message: e.Message})
			return
		}
		slog.ErrorContext(ctx, "key check failed", "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, keyCheckResponse{Message: proxy.MsgInternalError})
		return
	}

	candidate, _ := payload["key"].(string)
	if !openai.IsLikelyKey(candidate) {
		h.deps.Metrics.RecordKeyCheck(keyResultMalformed)
		writeJSON(ctx, w, http.StatusBadRequest, keyCheckResponse{Message: MsgKeyMalformed})
		return
	}

	client := openai.New(cfg.Upstream.OpenAI, h.deps.OpenAI)
	result, label := classifyVerification(client.VerifyKey(ctx, candidate))
	h.deps.Metrics.RecordKeyCheck(label)
	slog.InfoContext(ctx, "key check completed", "result", label)

	status := http.StatusBadRequest
	if result.Valid {
		status = http.StatusOK
	}
	writeJSON(ctx, w, status, result)
}

// classifyVerification maps a VerifyKey outcome to the response body and
// its metric label.
func classifyVerification(err error) (keyCheckResponse, string) {
	if err == nil {
		return keyCheckResponse{Valid: true, Usable: true, Message: MsgKeyValid}, keyResultValid
	}

	upErr, ok := providers.AsUpstreamError(err)
	if !ok {
		return keyCheckResponse{Message: MsgKeyUnknown}, keyResultError
	}

	switch upErr.Kind {
	case providers.KindUnauthorized:
		return keyCheckResponse{Message: MsgKeyUnauthorized}, keyResultUnauthorized
	case providers.KindThrottled:
		return keyCheckResponse{Valid: true, Message: MsgKeyQuota}, keyResultQuota
	case providers.KindTimeout:
		return keyCheckResponse{Message: MsgKeyTimeout}, keyResultTimeout
	case providers.KindRequestFailed:
		return keyCheckResponse{Message: MsgKeyNetwork}, keyResultNetwork
	default:
		if upErr.Message != "" {
			return keyCheckResponse{Message: MsgKeyUpstreamDetail}, keyResultError
		}
		return keyCheckResponse{Message: MsgKeyUnknown}, keyResultError
	}
}
