package memory

import (
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/seat"
)

// SeedDemo loads a small roster and a homestand so a memory-backed server has
// something to show. Tickets are generated as for real data.
func (s *Store) SeedDemo(now time.Time) {
	seats := []seat.NewSeat{
		{Section: "121", Row: "E", Label: "1"},
		{Section: "121", Row: "E", Label: "2"},
		{Section: "121", Row: "E", Label: "3"},
		{Section: "121", Row: "E", Label: "4"},
	}
	games := SeedGames(s.trackedTeamID, now)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range seats {
		id := s.nextID()
		s.seats[id] = seat.Seat{ID: id, Section: n.Section, Row: n.Row, Label: n.Label, CreatedAt: now, UpdatedAt: now}
		s.seatIdx[seatKey{section: n.Section, row: n.Row, label: n.Label}] = id
	}
	keys := make([]int64, 0, len(games))
	for _, g := range games {
		g.CreatedAt, g.UpdatedAt = now, now
		s.games[g.Key] = g
		keys = append(keys, g.Key)
	}
	s.generate(keys, s.seatIDs())
}

// SeedGames returns a three game home series followed by one road game,
// starting a week after now.
func SeedGames(teamID int64, now time.Time) []game.Game {
	start := time.Date(now.Year(), now.Month(), now.Day(), 2, 15, 0, 0, time.UTC).AddDate(0, 0, 7)
	venue := "Oracle Park"
	out := make([]game.Game, 0, 4)
	for i := 0; i < 3; i++ {
		date := start.AddDate(0, 0, i)
		out = append(out, game.Game{
			Key:              900001 + int64(i),
			GameType:         "R",
			Season:           date.Format("2006"),
			GameDate:         date,
			OfficialDate:     date.Add(-12 * time.Hour).Format(time.DateOnly),
			StatusAbstract:   "Preview",
			StatusDetailed:   "Scheduled",
			StatusCode:       "S",
			AwayTeamID:       119,
			AwayTeamName:     "Los Angeles Dodgers",
			HomeTeamID:       teamID,
			HomeTeamName:     "San Francisco Giants",
			VenueID:          2395,
			VenueName:        venue,
			DoubleHeader:     game.DefaultDoubleHeader,
			GameNumber:       game.DefaultGameNumber,
			ScheduledInnings: game.DefaultScheduledInnings,
		})
	}
	road := start.AddDate(0, 0, 4)
	out = append(out, game.Game{
		Key:              900004,
		GameType:         "R",
		Season:           road.Format("2006"),
		GameDate:         road,
		OfficialDate:     road.Add(-12 * time.Hour).Format(time.DateOnly),
		StatusAbstract:   "Preview",
		StatusDetailed:   "Scheduled",
		StatusCode:       "S",
		AwayTeamID:       teamID,
		AwayTeamName:     "San Francisco Giants",
		HomeTeamID:       135,
		HomeTeamName:     "San Diego Padres",
		VenueID:          2680,
		VenueName:        "Petco Park",
		DoubleHeader:     game.DefaultDoubleHeader,
		GameNumber:       game.DefaultGameNumber,
		ScheduledInnings: game.DefaultScheduledInnings,
	})
	return out
}
