package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

func mapSource(values map[string]string) source {
	return source{lookup: func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	if _, err := load(mapSource(map[string]string{"APP_ENV": "invalid"})); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(mapSource(nil))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.TrackedTeamID != 137 {
		t.Fatalf("unexpected TrackedTeamID: %d", cfg.TrackedTeamID)
	}
	if cfg.LogLevel != logging.LevelInfo || cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected log settings: %s %s", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.ScheduleCircuit.Enabled || cfg.ScheduleCircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected schedule circuit defaults: %+v", cfg.ScheduleCircuit)
	}
	if cfg.EventsEnabled || cfg.RateLimitEnabled {
		t.Fatalf("expected optional integrations disabled by default")
	}
}

func TestLoad_AuthDomainDerivesIssuerAndJWKS(t *testing.T) {
	cfg, err := load(mapSource(map[string]string{
		"AUTH_DOMAIN":   "tenant.example.com",
		"AUTH_AUDIENCE": "https://api.example.com",
	}))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AuthIssuer != "https://tenant.example.com/" {
		t.Fatalf("unexpected issuer: %q", cfg.AuthIssuer)
	}
	if cfg.AuthJWKSURL != "https://tenant.example.com/.well-known/jwks.json" {
		t.Fatalf("unexpected jwks url: %q", cfg.AuthJWKSURL)
	}
}

func TestLoad_ProdRequiresAuth(t *testing.T) {
	if _, err := load(mapSource(map[string]string{"APP_ENV": EnvProd})); err == nil {
		t.Fatalf("expected error when auth is not configured in prod")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"team id":        {"TRACKED_TEAM_ID": "0"},
		"team id parse":  {"TRACKED_TEAM_ID": "giants"},
		"log format":     {"APP_LOG_FORMAT": "xml"},
		"workers":        {"SCHEDULE_SYNC_WORKERS": "0"},
		"circuit":        {"SCHEDULE_CIRCUIT_FAILURE_COUNT": "0"},
		"read timeout":   {"APP_READ_TIMEOUT": "-1s"},
		"events enabled": {"EVENTS_ENABLED": "yes please"},
		"uptrace dsn":    {"UPTRACE_ENABLED": "true"},
		"game cache":     {"GAME_CACHE_TTL": "-5s"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(mapSource(values)); err == nil {
				t.Fatalf("expected error for %v", values)
			}
		})
	}
}

func TestLoad_LayersFileDotenvAndEnv(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	dotenvPath := filepath.Join(dir, ".env")

	if err := os.WriteFile(configPath, []byte("APP_HTTP_ADDR: \":9000\"\nSCHEDULE_TIMEOUT: 5s\nTRACKED_TEAM_ID: 119\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	if err := os.WriteFile(dotenvPath, []byte("TRACKED_TEAM_ID=147\n"), 0o600); err != nil {
		t.Fatalf("write dotenv file: %v", err)
	}

	src, err := newSource(configPath, dotenvPath)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	src.lookup = func(key string) (string, bool) {
		if key == "APP_HTTP_ADDR" {
			return ":7000", true
		}
		return "", false
	}

	cfg, err := load(src)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":7000" {
		t.Fatalf("expected env to win, got %q", cfg.HTTPAddr)
	}
	if cfg.TrackedTeamID != 147 {
		t.Fatalf("expected dotenv to override file, got %d", cfg.TrackedTeamID)
	}
	if cfg.ScheduleTimeout != 5*time.Second {
		t.Fatalf("expected file value for SCHEDULE_TIMEOUT, got %s", cfg.ScheduleTimeout)
	}
}

func TestNewSource_MissingConfigFile(t *testing.T) {
	if _, err := newSource(filepath.Join(t.TempDir(), "missing.yaml"), filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoad_MemoryStoreWithDemoSeed(t *testing.T) {
	cfg, err := load(mapSource(map[string]string{
		"DB_URL":       MemoryDBURL,
		"DB_SEED_DEMO": "true",
	}))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBURL != MemoryDBURL || !cfg.DBSeedDemo {
		t.Fatalf("unexpected db settings: %q seed=%v", cfg.DBURL, cfg.DBSeedDemo)
	}

	if _, err := load(mapSource(map[string]string{"DB_SEED_DEMO": "maybe"})); err == nil {
		t.Fatalf("expected error for invalid DB_SEED_DEMO")
	}
}
