package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
)

type gameTableModel struct {
	Key               int64          `db:"game_pk"`
	GUID              sql.NullString `db:"game_guid"`
	GameType          string         `db:"game_type"`
	Season            string         `db:"season"`
	GameDate          time.Time      `db:"game_date"`
	OfficialDate      string         `db:"official_date"`
	StatusAbstract    string         `db:"status_abstract"`
	StatusDetailed    string         `db:"status_detailed"`
	StatusCode        string         `db:"status_code"`
	StartTimeTBD      bool           `db:"start_time_tbd"`
	AwayTeamID        int64          `db:"away_team_id"`
	AwayTeamName      string         `db:"away_team_name"`
	AwayScore         sql.NullInt32  `db:"away_score"`
	AwayIsWinner      sql.NullBool   `db:"away_is_winner"`
	HomeTeamID        int64          `db:"home_team_id"`
	HomeTeamName      string         `db:"home_team_name"`
	HomeScore         sql.NullInt32  `db:"home_score"`
	HomeIsWinner      sql.NullBool   `db:"home_is_winner"`
	VenueID           int64          `db:"venue_id"`
	VenueName         string         `db:"venue_name"`
	DayNight          sql.NullString `db:"day_night"`
	SeriesDescription sql.NullString `db:"series_description"`
	SeriesGameNumber  sql.NullInt32  `db:"series_game_number"`
	GamesInSeries     sql.NullInt32  `db:"games_in_series"`
	DoubleHeader      string         `db:"double_header"`
	GameNumber        int            `db:"game_number"`
	ScheduledInnings  int            `db:"scheduled_innings"`
	IsTie             bool           `db:"is_tie"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// gameInsertModel omits the timestamps so the column defaults apply.
type gameInsertModel struct {
	Key               int64          `db:"game_pk"`
	GUID              sql.NullString `db:"game_guid"`
	GameType          string         `db:"game_type"`
	Season            string         `db:"season"`
	GameDate          time.Time      `db:"game_date"`
	OfficialDate      string         `db:"official_date"`
	StatusAbstract    string         `db:"status_abstract"`
	StatusDetailed    string         `db:"status_detailed"`
	StatusCode        string         `db:"status_code"`
	StartTimeTBD      bool           `db:"start_time_tbd"`
	AwayTeamID        int64          `db:"away_team_id"`
	AwayTeamName      string         `db:"away_team_name"`
	AwayScore         sql.NullInt32  `db:"away_score"`
	AwayIsWinner      sql.NullBool   `db:"away_is_winner"`
	HomeTeamID        int64          `db:"home_team_id"`
	HomeTeamName      string         `db:"home_team_name"`
	HomeScore         sql.NullInt32  `db:"home_score"`
	HomeIsWinner      sql.NullBool   `db:"home_is_winner"`
	VenueID           int64          `db:"venue_id"`
	VenueName         string         `db:"venue_name"`
	DayNight          sql.NullString `db:"day_night"`
	SeriesDescription sql.NullString `db:"series_description"`
	SeriesGameNumber  sql.NullInt32  `db:"series_game_number"`
	GamesInSeries     sql.NullInt32  `db:"games_in_series"`
	DoubleHeader      string         `db:"double_header"`
	GameNumber        int            `db:"game_number"`
	ScheduledInnings  int            `db:"scheduled_innings"`
	IsTie             bool           `db:"is_tie"`
}

type promotionTableModel struct {
	OfferID      int64          `db:"offer_id"`
	GameKey      int64          `db:"game_pk"`
	Name         string         `db:"name"`
	OfferType    sql.NullString `db:"offer_type"`
	Description  sql.NullString `db:"description"`
	Distribution sql.NullString `db:"distribution"`
	PresentedBy  sql.NullString `db:"presented_by"`
	AltPageURL   sql.NullString `db:"alt_page_url"`
	TicketLink   sql.NullString `db:"ticket_link"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	ImageURL     sql.NullString `db:"image_url"`
	DisplayOrder int            `db:"display_order"`
}

const gameColumns = `game_pk, game_guid, game_type, season, game_date, official_date,
    status_abstract, status_detailed, status_code, start_time_tbd,
    away_team_id, away_team_name, away_score, away_is_winner,
    home_team_id, home_team_name, home_score, home_is_winner,
    venue_id, venue_name, day_night, series_description,
    series_game_number, games_in_series, double_header, game_number,
    scheduled_innings, is_tie, created_at, updated_at`

// upsertGameSuffix refreshes the fields the feed revises after first
// publication. Team assignments are not rewritten.
const upsertGameSuffix = `ON CONFLICT (game_pk) DO UPDATE SET
    game_guid = EXCLUDED.game_guid,
    game_date = EXCLUDED.game_date,
    official_date = EXCLUDED.official_date,
    status_abstract = EXCLUDED.status_abstract,
    status_detailed = EXCLUDED.status_detailed,
    status_code = EXCLUDED.status_code,
    start_time_tbd = EXCLUDED.start_time_tbd,
    away_score = EXCLUDED.away_score,
    away_is_winner = EXCLUDED.away_is_winner,
    home_score = EXCLUDED.home_score,
    home_is_winner = EXCLUDED.home_is_winner,
    venue_id = EXCLUDED.venue_id,
    venue_name = EXCLUDED.venue_name,
    day_night = EXCLUDED.day_night,
    series_description = EXCLUDED.series_description,
    series_game_number = EXCLUDED.series_game_number,
    games_in_series = EXCLUDED.games_in_series,
    double_header = EXCLUDED.double_header,
    game_number = EXCLUDED.game_number,
    scheduled_innings = EXCLUDED.scheduled_innings,
    is_tie = EXCLUDED.is_tie,
    updated_at = NOW()`

const upsertPromotionSuffix = `ON CONFLICT (offer_id, game_pk) DO UPDATE SET
    name = EXCLUDED.name,
    offer_type = EXCLUDED.offer_type,
    description = EXCLUDED.description,
    distribution = EXCLUDED.distribution,
    presented_by = EXCLUDED.presented_by,
    alt_page_url = EXCLUDED.alt_page_url,
    ticket_link = EXCLUDED.ticket_link,
    thumbnail_url = EXCLUDED.thumbnail_url,
    image_url = EXCLUDED.image_url,
    display_order = EXCLUDED.display_order,
    updated_at = NOW()`

func gameInsertFromDomain(g game.Game) gameInsertModel {
	return gameInsertModel{
		Key:               g.Key,
		GUID:              nullString(g.GUID),
		GameType:          g.GameType,
		Season:            g.Season,
		GameDate:          g.GameDate.UTC(),
		OfficialDate:      g.OfficialDate,
		StatusAbstract:    g.StatusAbstract,
		StatusDetailed:    g.StatusDetailed,
		StatusCode:        g.StatusCode,
		StartTimeTBD:      g.StartTimeTBD,
		AwayTeamID:        g.AwayTeamID,
		AwayTeamName:      g.AwayTeamName,
		AwayScore:         nullInt(g.AwayScore),
		AwayIsWinner:      nullBool(g.AwayIsWinner),
		HomeTeamID:        g.HomeTeamID,
		HomeTeamName:      g.HomeTeamName,
		HomeScore:         nullInt(g.HomeScore),
		HomeIsWinner:      nullBool(g.HomeIsWinner),
		VenueID:           g.VenueID,
		VenueName:         g.VenueName,
		DayNight:          nullString(g.DayNight),
		SeriesDescription: nullString(g.SeriesDescription),
		SeriesGameNumber:  nullInt(g.SeriesGameNumber),
		GamesInSeries:     nullInt(g.GamesInSeries),
		DoubleHeader:      g.DoubleHeader,
		GameNumber:        g.GameNumber,
		ScheduledInnings:  g.ScheduledInnings,
		IsTie:             g.IsTie,
	}
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		Key:               m.Key,
		GUID:              stringPtr(m.GUID),
		GameType:          m.GameType,
		Season:            m.Season,
		GameDate:          m.GameDate.UTC(),
		OfficialDate:      m.OfficialDate,
		StatusAbstract:    m.StatusAbstract,
		StatusDetailed:    m.StatusDetailed,
		StatusCode:        m.StatusCode,
		StartTimeTBD:      m.StartTimeTBD,
		AwayTeamID:        m.AwayTeamID,
		AwayTeamName:      m.AwayTeamName,
		AwayScore:         intPtr(m.AwayScore),
		AwayIsWinner:      boolPtr(m.AwayIsWinner),
		HomeTeamID:        m.HomeTeamID,
		HomeTeamName:      m.HomeTeamName,
		HomeScore:         intPtr(m.HomeScore),
		HomeIsWinner:      boolPtr(m.HomeIsWinner),
		VenueID:           m.VenueID,
		VenueName:         m.VenueName,
		DayNight:          stringPtr(m.DayNight),
		SeriesDescription: stringPtr(m.SeriesDescription),
		SeriesGameNumber:  intPtr(m.SeriesGameNumber),
		GamesInSeries:     intPtr(m.GamesInSeries),
		DoubleHeader:      m.DoubleHeader,
		GameNumber:        m.GameNumber,
		ScheduledInnings:  m.ScheduledInnings,
		IsTie:             m.IsTie,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func promotionFromDomain(p game.Promotion) promotionTableModel {
	return promotionTableModel{
		OfferID:      p.OfferID,
		GameKey:      p.GameKey,
		Name:         p.Name,
		OfferType:    nullString(p.OfferType),
		Description:  nullString(p.Description),
		Distribution: nullString(p.Distribution),
		PresentedBy:  nullString(p.PresentedBy),
		AltPageURL:   nullString(p.AltPageURL),
		TicketLink:   nullString(p.TicketLink),
		ThumbnailURL: nullString(p.ThumbnailURL),
		ImageURL:     nullString(p.ImageURL),
		DisplayOrder: p.DisplayOrder,
	}
}

func (m promotionTableModel) toDomain() game.Promotion {
	return game.Promotion{
		OfferID:      m.OfferID,
		GameKey:      m.GameKey,
		Name:         m.Name,
		OfferType:    stringPtr(m.OfferType),
		Description:  stringPtr(m.Description),
		Distribution: stringPtr(m.Distribution),
		PresentedBy:  stringPtr(m.PresentedBy),
		AltPageURL:   stringPtr(m.AltPageURL),
		TicketLink:   stringPtr(m.TicketLink),
		ThumbnailURL: stringPtr(m.ThumbnailURL),
		ImageURL:     stringPtr(m.ImageURL),
		DisplayOrder: m.DisplayOrder,
	}
}
