package game

import (
	"fmt"
	"time"
)

// Game is one scheduled game keyed by the schedule feed's game pk.
type Game struct {
	Key          int64
	GUID         *string
	GameType     string
	Season       string
	GameDate     time.Time
	OfficialDate string // YYYY-MM-DD in the home venue's calendar

	StatusAbstract string
	StatusDetailed string
	StatusCode     string
	StartTimeTBD   bool

	AwayTeamID   int64
	AwayTeamName string
	AwayScore    *int
	AwayIsWinner *bool
	HomeTeamID   int64
	HomeTeamName string
	HomeScore    *int
	HomeIsWinner *bool

	VenueID   int64
	VenueName string

	DayNight          *string
	SeriesDescription *string
	SeriesGameNumber  *int
	GamesInSeries     *int
	DoubleHeader      string
	GameNumber        int
	ScheduledInnings  int
	IsTie             bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	DefaultDoubleHeader     = "N"
	DefaultGameNumber       = 1
	DefaultScheduledInnings = 9
)

// IsHomeFor reports whether teamID hosts the game. Only home games carry
// tickets.
func (g Game) IsHomeFor(teamID int64) bool {
	return g.HomeTeamID == teamID
}

// Opponent is the other team's name from teamID's point of view.
func (g Game) Opponent(teamID int64) string {
	if g.IsHomeFor(teamID) {
		return g.AwayTeamName
	}
	return g.HomeTeamName
}

// Month extracts the month of OfficialDate, or 0 when it is malformed.
func (g Game) Month() int {
	t, err := time.Parse(time.DateOnly, g.OfficialDate)
	if err != nil {
		return 0
	}
	return int(t.Month())
}

// Promotion is a giveaway or theme night attached to a game.
type Promotion struct {
	OfferID      int64
	GameKey      int64
	Name         string
	OfferType    *string
	Description  *string
	Distribution *string
	PresentedBy  *string
	AltPageURL   *string
	TicketLink   *string
	ThumbnailURL *string
	ImageURL     *string
	DisplayOrder int
}

// Filter narrows List. Month 0 means every month.
type Filter struct {
	Month int
}

func (f Filter) Validate() error {
	if f.Month < 0 || f.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", f.Month)
	}
	return nil
}

// UpsertResult counts the rows written by one ingestion batch.
type UpsertResult struct {
	Games            int
	Promotions       int
	TicketsGenerated int
}
