package mlbstats

import (
	"strings"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

type scheduleResponse struct {
	TotalGames int            `json:"totalGames"`
	Dates      []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk       int64  `json:"gamePk"`
	GameGUID     string `json:"gameGuid"`
	GameType     string `json:"gameType"`
	Season       string `json:"season"`
	GameDate     string `json:"gameDate"`
	OfficialDate string `json:"officialDate"`
	Status       struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
		StatusCode        string `json:"statusCode"`
		StartTimeTBD      bool   `json:"startTimeTBD"`
	} `json:"status"`
	Teams struct {
		Away scheduleSide `json:"away"`
		Home scheduleSide `json:"home"`
	} `json:"teams"`
	Venue struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"venue"`
	IsTie             bool    `json:"isTie"`
	GameNumber        int     `json:"gameNumber"`
	DoubleHeader      string  `json:"doubleHeader"`
	DayNight          string  `json:"dayNight"`
	SeriesDescription string  `json:"seriesDescription"`
	SeriesGameNumber  *int    `json:"seriesGameNumber"`
	GamesInSeries     *int    `json:"gamesInSeries"`
	ScheduledInnings  int     `json:"scheduledInnings"`
	Promotions        []offer `json:"promotions"`
}

type scheduleSide struct {
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Score    *int  `json:"score"`
	IsWinner *bool `json:"isWinner"`
}

type offer struct {
	OfferID      int64  `json:"offerId"`
	Name         string `json:"name"`
	OfferType    string `json:"offerType"`
	Description  string `json:"description"`
	Distribution string `json:"distribution"`
	PresentedBy  string `json:"presentedBy"`
	AltPageURL   string `json:"altPageUrl"`
	TicketLink   string `json:"ticketLink"`
	ThumbnailURL string `json:"thumbnailUrl"`
	ImageURL     string `json:"imageUrl"`
	Order        int    `json:"order"`
}

// toBatch flattens the date buckets. Entries without a game pk, a parseable
// start time or both team ids are skipped and counted.
func (r scheduleResponse) toBatch() (usecase.ScheduleBatch, int) {
	var (
		batch   usecase.ScheduleBatch
		skipped int
	)
	for _, date := range r.Dates {
		for _, item := range date.Games {
			g, ok := item.toGame(date.Date)
			if !ok {
				skipped++
				continue
			}
			batch.Games = append(batch.Games, g)
			for _, o := range item.Promotions {
				if o.OfferID == 0 {
					continue
				}
				batch.Promotions = append(batch.Promotions, o.toPromotion(g.Key))
			}
		}
	}
	return batch, skipped
}

func (s scheduleGame) toGame(bucketDate string) (game.Game, bool) {
	if s.GamePk <= 0 || s.Teams.Home.Team.ID <= 0 || s.Teams.Away.Team.ID <= 0 {
		return game.Game{}, false
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(s.GameDate))
	if err != nil {
		return game.Game{}, false
	}

	officialDate := strings.TrimSpace(s.OfficialDate)
	if officialDate == "" {
		officialDate = strings.TrimSpace(bucketDate)
	}
	doubleHeader := strings.TrimSpace(s.DoubleHeader)
	if doubleHeader == "" {
		doubleHeader = game.DefaultDoubleHeader
	}
	gameNumber := s.GameNumber
	if gameNumber <= 0 {
		gameNumber = game.DefaultGameNumber
	}
	innings := s.ScheduledInnings
	if innings <= 0 {
		innings = game.DefaultScheduledInnings
	}

	return game.Game{
		Key:               s.GamePk,
		GUID:              optional(s.GameGUID),
		GameType:          s.GameType,
		Season:            s.Season,
		GameDate:          start.UTC(),
		OfficialDate:      officialDate,
		StatusAbstract:    s.Status.AbstractGameState,
		StatusDetailed:    s.Status.DetailedState,
		StatusCode:        s.Status.StatusCode,
		StartTimeTBD:      s.Status.StartTimeTBD,
		AwayTeamID:        s.Teams.Away.Team.ID,
		AwayTeamName:      s.Teams.Away.Team.Name,
		AwayScore:         s.Teams.Away.Score,
		AwayIsWinner:      s.Teams.Away.IsWinner,
		HomeTeamID:        s.Teams.Home.Team.ID,
		HomeTeamName:      s.Teams.Home.Team.Name,
		HomeScore:         s.Teams.Home.Score,
		HomeIsWinner:      s.Teams.Home.IsWinner,
		VenueID:           s.Venue.ID,
		VenueName:         s.Venue.Name,
		DayNight:          optional(s.DayNight),
		SeriesDescription: optional(s.SeriesDescription),
		SeriesGameNumber:  s.SeriesGameNumber,
		GamesInSeries:     s.GamesInSeries,
		DoubleHeader:      doubleHeader,
		GameNumber:        gameNumber,
		ScheduledInnings:  innings,
		IsTie:             s.IsTie,
	}, true
}

func (o offer) toPromotion(gameKey int64) game.Promotion {
	return game.Promotion{
		OfferID:      o.OfferID,
		GameKey:      gameKey,
		Name:         strings.TrimSpace(o.Name),
		OfferType:    optional(o.OfferType),
		Description:  optional(o.Description),
		Distribution: optional(o.Distribution),
		PresentedBy:  optional(o.PresentedBy),
		AltPageURL:   optional(o.AltPageURL),
		TicketLink:   optional(o.TicketLink),
		ThumbnailURL: optional(o.ThumbnailURL),
		ImageURL:     optional(o.ImageURL),
		DisplayOrder: o.Order,
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
