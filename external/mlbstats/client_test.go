package mlbstats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/riskibarqy/season-tickets/internal/platform/resilience"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

const sampleSchedule = `{
  "totalGames": 3,
  "dates": [
    {
      "date": "2026-03-27",
      "games": [
        {
          "gamePk": 823001,
          "gameGuid": "6f1c0f4e-1111-4d2b-9a7b-000000000001",
          "gameType": "R",
          "season": "2026",
          "gameDate": "2026-03-27T20:35:00Z",
          "officialDate": "2026-03-27",
          "status": {"abstractGameState": "Preview", "detailedState": "Scheduled", "statusCode": "S", "startTimeTBD": false},
          "teams": {
            "away": {"team": {"id": 119, "name": "Los Angeles Dodgers"}},
            "home": {"team": {"id": 137, "name": "San Francisco Giants"}}
          },
          "venue": {"id": 2395, "name": "Oracle Park"},
          "dayNight": "day",
          "seriesDescription": "Regular Season",
          "seriesGameNumber": 1,
          "gamesInSeries": 3,
          "promotions": [
            {"offerId": 5001, "name": "Opening Day Magnet Schedule", "offerType": "Giveaway", "distribution": "First 40,000 fans", "order": 1},
            {"offerId": 0, "name": "broken"}
          ]
        }
      ]
    },
    {
      "date": "2026-04-02",
      "games": [
        {
          "gamePk": 823002,
          "gameType": "R",
          "season": "2026",
          "gameDate": "2026-04-02T02:10:00Z",
          "officialDate": "2026-04-01",
          "status": {"abstractGameState": "Final", "detailedState": "Final", "statusCode": "F"},
          "teams": {
            "away": {"team": {"id": 137, "name": "San Francisco Giants"}, "score": 4, "isWinner": true},
            "home": {"team": {"id": 135, "name": "San Diego Padres"}, "score": 2, "isWinner": false}
          },
          "venue": {"id": 2680, "name": "Petco Park"},
          "doubleHeader": "S",
          "gameNumber": 2,
          "scheduledInnings": 7
        },
        {
          "gamePk": 823003,
          "gameDate": "not a date",
          "teams": {"away": {"team": {"id": 137}}, "home": {"team": {"id": 135}}}
        }
      ]
    }
  ]
}`

func newTestClient(t *testing.T, url string, circuit resilience.CircuitBreakerConfig) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		BaseURL:        url,
		MaxRetries:     2,
		Backoff:        time.Millisecond,
		Logger:         logging.NewNop(),
		CircuitBreaker: circuit,
	})
}

func TestFetchSeason_MapsGamesAndPromotions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("teamId") != "137" || q.Get("season") != "2026" || q.Get("sportId") != "1" ||
			q.Get("gameType") != "R" || q.Get("hydrate") != "game(promotions)" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(sampleSchedule))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	batch, err := client.FetchSeason(context.Background(), 137, 2026)
	if err != nil {
		t.Fatalf("fetch season: %v", err)
	}

	if len(batch.Games) != 2 {
		t.Fatalf("expected 2 valid games, got %d", len(batch.Games))
	}
	opener := batch.Games[0]
	if opener.Key != 823001 || opener.HomeTeamID != 137 || opener.AwayTeamName != "Los Angeles Dodgers" {
		t.Fatalf("unexpected opener %+v", opener)
	}
	if !opener.GameDate.Equal(time.Date(2026, 3, 27, 20, 35, 0, 0, time.UTC)) {
		t.Fatalf("unexpected game date %s", opener.GameDate)
	}
	if opener.DoubleHeader != "N" || opener.GameNumber != 1 || opener.ScheduledInnings != 9 {
		t.Fatalf("expected defaults, got dh=%s n=%d innings=%d", opener.DoubleHeader, opener.GameNumber, opener.ScheduledInnings)
	}
	if opener.GUID == nil || opener.DayNight == nil || *opener.DayNight != "day" {
		t.Fatalf("expected optional fields to be set: %+v", opener)
	}
	if opener.HomeScore != nil {
		t.Fatalf("expected no score for a scheduled game")
	}

	road := batch.Games[1]
	if road.OfficialDate != "2026-04-01" || road.DoubleHeader != "S" || road.GameNumber != 2 || road.ScheduledInnings != 7 {
		t.Fatalf("unexpected road game %+v", road)
	}
	if road.AwayScore == nil || *road.AwayScore != 4 || road.AwayIsWinner == nil || !*road.AwayIsWinner {
		t.Fatalf("expected away score and winner flag")
	}
	if road.GUID != nil {
		t.Fatalf("expected nil guid for empty value")
	}

	if len(batch.Promotions) != 1 {
		t.Fatalf("expected 1 promotion, got %d", len(batch.Promotions))
	}
	promo := batch.Promotions[0]
	if promo.OfferID != 5001 || promo.GameKey != 823001 || promo.DisplayOrder != 1 {
		t.Fatalf("unexpected promotion %+v", promo)
	}
	if promo.Distribution == nil || *promo.Distribution != "First 40,000 fans" || promo.Description != nil {
		t.Fatalf("unexpected optional promotion fields %+v", promo)
	}
}

func TestFetchSeason_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"dates": []}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	batch, err := client.FetchSeason(context.Background(), 137, 2026)
	if err != nil {
		t.Fatalf("fetch season: %v", err)
	}
	if len(batch.Games) != 0 {
		t.Fatalf("expected empty batch")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestFetchSeason_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"message":"bad season"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	_, err := client.FetchSeason(context.Background(), 137, 2026)
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("a 4xx is not a dependency outage: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestFetchSeason_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		_, err := client.FetchSeason(context.Background(), 137, 2026)
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected dependency unavailable, got %v", i, err)
		}
	}
	before := calls.Load()

	_, err := client.FetchSeason(context.Background(), 137, 2026)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable while open, got %v", err)
	}
	if calls.Load() != before {
		t.Fatalf("open circuit must not reach the provider")
	}
	if client.breaker.State() != resilience.StateOpen {
		t.Fatalf("expected open breaker, got %s", client.breaker.State())
	}
}

func TestFetchSeason_RejectsBadInput(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if _, err := client.FetchSeason(context.Background(), 0, 2026); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := client.FetchSeason(context.Background(), 137, 0); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
