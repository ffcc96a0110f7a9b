package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodGet, "/healthz", false},
		{http.MethodGet, "/READYZ", false},
		{http.MethodOptions, "/v1/admin/allocate", false},
		{http.MethodPost, "/v1/admin/allocate", true},
		{http.MethodGet, "/v1/games", true},
		{http.MethodDelete, "/v1/seats/12", true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		if got := shouldTraceRequest(req); got != tt.want {
			t.Fatalf("shouldTraceRequest(%s %s)=%v want=%v", tt.method, tt.path, got, tt.want)
		}
	}
}
