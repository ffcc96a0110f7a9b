package httpapi

import (
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	"github.com/riskibarqy/season-tickets/internal/domain/user"
)

type gameDTO struct {
	GamePK            int64     `json:"game_pk"`
	GameGUID          *string   `json:"game_guid,omitempty"`
	GameType          string    `json:"game_type"`
	Season            string    `json:"season"`
	GameDate          time.Time `json:"game_date"`
	OfficialDate      string    `json:"official_date"`
	Status            string    `json:"status"`
	StatusDetailed    string    `json:"status_detailed"`
	StatusCode        string    `json:"status_code"`
	StartTimeTBD      bool      `json:"start_time_tbd"`
	AwayTeamID        int64     `json:"away_team_id"`
	AwayTeamName      string    `json:"away_team_name"`
	AwayScore         *int      `json:"away_score,omitempty"`
	HomeTeamID        int64     `json:"home_team_id"`
	HomeTeamName      string    `json:"home_team_name"`
	HomeScore         *int      `json:"home_score,omitempty"`
	VenueName         string    `json:"venue_name"`
	DayNight          *string   `json:"day_night,omitempty"`
	SeriesDescription *string   `json:"series_description,omitempty"`
	DoubleHeader      string    `json:"double_header"`
	GameNumber        int       `json:"game_number"`
	ScheduledInnings  int       `json:"scheduled_innings"`
	IsHome            bool      `json:"is_home"`
	Opponent          string    `json:"opponent"`
}

func gameToDTO(g game.Game, trackedTeamID int64) gameDTO {
	return gameDTO{
		GamePK:            g.Key,
		GameGUID:          g.GUID,
		GameType:          g.GameType,
		Season:            g.Season,
		GameDate:          g.GameDate,
		OfficialDate:      g.OfficialDate,
		Status:            g.StatusAbstract,
		StatusDetailed:    g.StatusDetailed,
		StatusCode:        g.StatusCode,
		StartTimeTBD:      g.StartTimeTBD,
		AwayTeamID:        g.AwayTeamID,
		AwayTeamName:      g.AwayTeamName,
		AwayScore:         g.AwayScore,
		HomeTeamID:        g.HomeTeamID,
		HomeTeamName:      g.HomeTeamName,
		HomeScore:         g.HomeScore,
		VenueName:         g.VenueName,
		DayNight:          g.DayNight,
		SeriesDescription: g.SeriesDescription,
		DoubleHeader:      g.DoubleHeader,
		GameNumber:        g.GameNumber,
		ScheduledInnings:  g.ScheduledInnings,
		IsHome:            g.IsHomeFor(trackedTeamID),
		Opponent:          g.Opponent(trackedTeamID),
	}
}

type promotionDTO struct {
	OfferID      int64   `json:"offer_id"`
	GamePK       int64   `json:"game_pk"`
	Name         string  `json:"name"`
	OfferType    *string `json:"offer_type,omitempty"`
	Description  *string `json:"description,omitempty"`
	Distribution *string `json:"distribution,omitempty"`
	PresentedBy  *string `json:"presented_by,omitempty"`
	AltPageURL   *string `json:"alt_page_url,omitempty"`
	TicketLink   *string `json:"ticket_link,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	Order        int     `json:"order"`
}

func promotionToDTO(p game.Promotion) promotionDTO {
	return promotionDTO{
		OfferID:      p.OfferID,
		GamePK:       p.GameKey,
		Name:         p.Name,
		OfferType:    p.OfferType,
		Description:  p.Description,
		Distribution: p.Distribution,
		PresentedBy:  p.PresentedBy,
		AltPageURL:   p.AltPageURL,
		TicketLink:   p.TicketLink,
		ThumbnailURL: p.ThumbnailURL,
		ImageURL:     p.ImageURL,
		Order:        p.DisplayOrder,
	}
}

type seatDTO struct {
	ID      int64   `json:"id"`
	Section string  `json:"section"`
	Row     string  `json:"row"`
	Seat    string  `json:"seat"`
	Notes   *string `json:"notes,omitempty"`
}

func seatToDTO(s seat.Seat) seatDTO {
	return seatDTO{ID: s.ID, Section: s.Section, Row: s.Row, Seat: s.Label, Notes: s.Notes}
}

type ticketDTO struct {
	ID           int64   `json:"id"`
	GamePK       int64   `json:"game_pk"`
	SeatID       int64   `json:"seat_id"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	AssignedTo   *int64  `json:"assigned_to,omitempty"`
	Section      string  `json:"section,omitempty"`
	Row          string  `json:"row,omitempty"`
	Seat         string  `json:"seat,omitempty"`
	AssigneeName *string `json:"assignee_name,omitempty"`
	OfficialDate string  `json:"official_date,omitempty"`
	Opponent     string  `json:"opponent,omitempty"`
}

func ticketToDTO(t ticket.Ticket) ticketDTO {
	return ticketDTO{
		ID:         t.ID,
		GamePK:     t.GameKey,
		SeatID:     t.SeatID,
		Status:     string(t.Status),
		Notes:      t.Notes,
		AssignedTo: t.AssignedTo,
	}
}

func ticketDetailToDTO(d ticket.Detail) ticketDTO {
	out := ticketToDTO(d.Ticket)
	out.Section = d.Section
	out.Row = d.Row
	out.Seat = d.SeatLabel
	out.AssigneeName = d.AssigneeName
	out.OfficialDate = d.OfficialDate
	out.Opponent = d.Opponent
	return out
}

type ticketSummaryDTO struct {
	GamePK    int64 `json:"game_pk"`
	Total     int   `json:"total"`
	Available int   `json:"available"`
}

type requestDTO struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	GamePK         int64     `json:"game_pk"`
	SeatsRequested int       `json:"seats_requested"`
	SeatsApproved  int       `json:"seats_approved"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func requestToDTO(r request.Request) requestDTO {
	return requestDTO{
		ID:             r.ID,
		UserID:         r.UserID,
		GamePK:         r.GameKey,
		SeatsRequested: r.SeatsRequested,
		SeatsApproved:  r.SeatsApproved,
		Status:         string(r.Status),
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func requestDetailToDTO(d request.Detail) requestDTO {
	out := requestToDTO(d.Request)
	out.UserName = d.UserName
	return out
}

type userDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}

type allocationSummaryDTO struct {
	GamePK         int64  `json:"game_pk"`
	OfficialDate   string `json:"official_date"`
	Opponent       string `json:"opponent"`
	TotalSeats     int    `json:"total_seats"`
	Assigned       int    `json:"assigned"`
	Available      int    `json:"available"`
	TotalRequested int    `json:"total_requested"`
	Oversubscribed bool   `json:"oversubscribed"`
}

func allocationSummaryToDTO(s allocation.GameSummary) allocationSummaryDTO {
	return allocationSummaryDTO{
		GamePK:         s.GameKey,
		OfficialDate:   s.OfficialDate,
		Opponent:       s.Opponent,
		TotalSeats:     s.TotalSeats,
		Assigned:       s.Assigned,
		Available:      s.Available,
		TotalRequested: s.TotalRequested,
		Oversubscribed: s.Oversubscribed,
	}
}

func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, item := range in {
		out = append(out, fn(item))
	}
	return out
}
