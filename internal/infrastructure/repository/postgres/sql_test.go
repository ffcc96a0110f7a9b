package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
)

func TestPgCode(t *testing.T) {
	t.Run("unwraps pq errors", func(t *testing.T) {
		err := fmt.Errorf("insert seats: %w", &pq.Error{Code: pgUniqueViolation})
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation")
		}
		if isForeignKeyViolation(err) {
			t.Fatalf("did not expect foreign key violation")
		}
	})

	t.Run("ignores other errors", func(t *testing.T) {
		if pgCode(errors.New("connection refused")) != "" {
			t.Fatalf("expected empty code")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get seat: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("did not expect generic error to be not found")
	}
}

func TestNullableRoundTrip(t *testing.T) {
	notes := "aisle"
	if got := stringPtr(nullString(&notes)); got == nil || *got != notes {
		t.Fatalf("unexpected string round trip: %v", got)
	}
	if stringPtr(nullString(nil)) != nil {
		t.Fatalf("expected nil string")
	}
	score := 7
	if got := intPtr(nullInt(&score)); got == nil || *got != 7 {
		t.Fatalf("unexpected int round trip: %v", got)
	}
	if boolPtr(nullBool(nil)) != nil {
		t.Fatalf("expected nil bool")
	}
}

func TestDedupeSchedule_LastWins(t *testing.T) {
	games, promos := dedupeSchedule(
		[]game.Game{{Key: 1, StatusCode: "S"}, {Key: 2}, {Key: 1, StatusCode: "F"}},
		[]game.Promotion{{OfferID: 9, GameKey: 1, Name: "old"}, {OfferID: 9, GameKey: 1, Name: "new"}},
	)
	if len(games) != 2 || games[0].StatusCode != "F" {
		t.Fatalf("unexpected games: %+v", games)
	}
	if len(promos) != 1 || promos[0].Name != "new" {
		t.Fatalf("unexpected promotions: %+v", promos)
	}
}
