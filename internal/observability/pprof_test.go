package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/season-tickets/internal/config"
)

func TestPprofMux_ServesNamedProfiles(t *testing.T) {
	srv := httptest.NewServer(pprofMux())
	defer srv.Close()

	for _, name := range namedProfiles {
		resp, err := http.Get(srv.URL + "/debug/pprof/" + name + "?debug=1")
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("profile %s: status %d", name, resp.StatusCode)
		}
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/debug/pprof/heap", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post heap: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected POST to be rejected, got %d", resp.StatusCode)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	if srv := StartPprofServer(config.Config{PprofEnabled: false}, nil); srv != nil {
		t.Fatalf("expected no server when pprof is disabled")
	}
}
