package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		trusted string
		want    string
	}{
		{"forwarded first entry", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1"}, "", "203.0.113.7"},
		{"forwarded wins over trusted", map[string]string{"X-Forwarded-For": "203.0.113.7", "CF-Connecting-IP": "198.51.100.2"}, "", "203.0.113.7"},
		{"default trusted header", map[string]string{"CF-Connecting-IP": "198.51.100.2"}, "", "198.51.100.2"},
		{"custom trusted header", map[string]string{"X-Real-IP": "192.0.2.9", "CF-Connecting-IP": "198.51.100.2"}, "X-Real-IP", "192.0.2.9"},
		{"empty forwarded entry", map[string]string{"X-Forwarded-For": " , 10.0.0.1", "CF-Connecting-IP": "198.51.100.2"}, "", "198.51.100.2"},
		{"nothing", nil, "", UnknownClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIdentifier(req, tt.trusted); got != tt.want {
				t.Errorf("ClientIdentifier() = %v, want %v", got, tt.want)
			}
		})
	}
}
