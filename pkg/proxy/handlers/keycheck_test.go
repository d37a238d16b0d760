package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	mock "the-savior/edge/internal/providers"
	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/providers"
	"the-savior/edge/pkg/proxy"
)

func keyCheckBody(key string) string {
	return `{"key":"` + key + `"}`
}

func TestKeyCheckMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not a key", keyCheckBody("not-a-key")},
		{"too short", keyCheckBody("sk-short")},
		{"inner whitespace", keyCheckBody("sk-abc def ghijklmnopqrstuv")},
		{"missing", `{}`},
		{"not a string", `{"key":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)

			rec := serve(NewKeyCheckHandler(env.deps), newJSONRequest(http.MethodPost, KeyCheckRoute.Path, tt.body))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			body := decodeBody(t, rec)
			if body["valid"] != false || body["usable"] != false {
				t.Errorf("valid/usable = %v/%v, want false/false", body["valid"], body["usable"])
			}
			if body["message"] != MsgKeyMalformed {
				t.Errorf("message = %v, want %q", body["message"], MsgKeyMalformed)
			}
			if got := env.upstream.GetRequestCount(); got != 0 {
				t.Errorf("upstream requests = %d, want 0 for a malformed key", got)
			}
		})
	}
}

func TestKeyCheckVerification(t *testing.T) {
	tests := []struct {
		name        string
		response    mock.MockResponse
		wantStatus  int
		wantValid   bool
		wantUsable  bool
		wantMessage string
	}{
		{"accepted", mock.MockResponse{Body: `{"data":[]}`}, 200, true, true, MsgKeyValid},
		{"unauthorized", mock.MockResponse{StatusCode: 401, Body: mock.MockErrorResponse("bad key")}, 400, false, false, MsgKeyUnauthorized},
		{"forbidden", mock.MockResponse{StatusCode: 403}, 400, false, false, MsgKeyUnauthorized},
		{"quota", mock.MockResponse{StatusCode: 429, Body: mock.MockErrorResponse("quota")}, 200, true, false, MsgKeyQuota},
		{"server error with message", mock.MockResponse{StatusCode: 500, Body: mock.MockErrorResponse("boom")}, 400, false, false, MsgKeyUpstreamDetail},
		{"server error without message", mock.MockResponse{StatusCode: 500, Body: "oops"}, 400, false, false, MsgKeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.upstream.SetResponse("/models", tt.response)

			rec := serve(NewKeyCheckHandler(env.deps), newJSONRequest(http.MethodPost, KeyCheckRoute.Path, keyCheckBody(mock.TestKey)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			body := decodeBody(t, rec)
			if body["valid"] != tt.wantValid {
				t.Errorf("valid = %v, want %v", body["valid"], tt.wantValid)
			}
			if body["usable"] != tt.wantUsable {
				t.Errorf("usable = %v, want %v", body["usable"], tt.wantUsable)
			}
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %q", body["message"], tt.wantMessage)
			}

			sent, _ := env.upstream.LastRequest()
			if got := sent.Headers.Get("Authorization"); got != "Bearer "+mock.TestKey {
				t.Errorf("Authorization = %q, want the checked key", got)
			}
		})
	}
}

func TestKeyCheckTimeout(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Upstream.OpenAI.VerifyTimeout = 50 * time.Millisecond
	})
	env.upstream.SetResponse("/models", mock.MockResponse{Body: `{"data":[]}`, Delay: 2 * time.Second})

	rec := serve(NewKeyCheckHandler(env.deps), newJSONRequest(http.MethodPost, KeyCheckRoute.Path, keyCheckBody(mock.TestKey)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := decodeBody(t, rec)["message"]; got != MsgKeyTimeout {
		t.Errorf("message = %v, want %q", got, MsgKeyTimeout)
	}
}

func TestKeyCheckNetworkError(t *testing.T) {
	closed := mock.NewMockServer()
	closedURL := closed.URL()
	closed.Close()

	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Upstream.OpenAI.BaseURL = closedURL
	})

	rec := serve(NewKeyCheckHandler(env.deps), newJSONRequest(http.MethodPost, KeyCheckRoute.Path, keyCheckBody(mock.TestKey)))

	if got := decodeBody(t, rec)["message"]; got != MsgKeyNetwork {
		t.Errorf("message = %v, want %q", got, MsgKeyNetwork)
	}

	expected := `
# HELP test_edge_key_checks_total Total number of API key checks by result
# TYPE test_edge_key_checks_total counter
test_edge_key_checks_total{result="network_error"} 1
`
	if err := testutil.GatherAndCompare(env.registry, strings.NewReader(expected), "test_edge_key_checks_total"); err != nil {
		t.Error(err)
	}
}

func TestKeyCheckBodyErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	req := newJSONRequest(http.MethodPost, KeyCheckRoute.Path, `{"key":"`+strings.Repeat("k", proxy.KeyCheckMaxBodyBytes)+`"}`)

	rec := serve(NewKeyCheckHandler(env.deps), req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	body := decodeBody(t, rec)
	if body["message"] != proxy.MsgBodyTooLarge || body["valid"] != false {
		t.Errorf("body = %v, want key-check shaped 413", body)
	}
}

func TestKeyCheckDenialShape(t *testing.T) {
	env := newTestEnv(t, nil)
	req := newJSONRequest(http.MethodPost, KeyCheckRoute.Path, keyCheckBody(mock.TestKey))
	req.Header.Set("Origin", "https://evil.example")

	rec := serve(NewKeyCheckHandler(env.deps), req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	body := decodeBody(t, rec)
	if body["message"] != proxy.MsgOriginDenied || body["usable"] != false {
		t.Errorf("body = %v, want key-check shaped 403", body)
	}
}

func TestClassifyVerificationNonUpstreamError(t *testing.T) {
	got, label := classifyVerification(errors.New("marshal failed"))
	if got.Message != MsgKeyUnknown || label != keyResultError {
		t.Errorf("classifyVerification() = %+v, %q, want unknown error", got, label)
	}

	got, label = classifyVerification(&providers.UpstreamError{Kind: providers.KindEmptyResponse})
	if got.Message != MsgKeyUnknown || label != keyResultError {
		t.Errorf("classifyVerification(empty) = %+v, %q, want unknown error", got, label)
	}
}
