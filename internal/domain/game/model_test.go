package game

import "testing"

func TestGame_HomeAndOpponent(t *testing.T) {
	g := Game{HomeTeamID: 137, HomeTeamName: "San Francisco Giants", AwayTeamID: 119, AwayTeamName: "Los Angeles Dodgers"}

	if !g.IsHomeFor(137) || g.IsHomeFor(119) {
		t.Fatalf("unexpected home flag")
	}
	if got := g.Opponent(137); got != "Los Angeles Dodgers" {
		t.Fatalf("unexpected opponent: %s", got)
	}
	if got := g.Opponent(119); got != "San Francisco Giants" {
		t.Fatalf("unexpected opponent: %s", got)
	}
}

func TestGame_Month(t *testing.T) {
	if got := (Game{OfficialDate: "2026-07-04"}).Month(); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := (Game{OfficialDate: "July 4"}).Month(); got != 0 {
		t.Fatalf("expected 0 for malformed date, got %d", got)
	}
}

func TestFilter_Validate(t *testing.T) {
	for _, month := range []int{0, 1, 12} {
		if err := (Filter{Month: month}).Validate(); err != nil {
			t.Fatalf("month %d: unexpected error %v", month, err)
		}
	}
	for _, month := range []int{-1, 13} {
		if err := (Filter{Month: month}).Validate(); err == nil {
			t.Fatalf("month %d: expected error", month)
		}
	}
}
