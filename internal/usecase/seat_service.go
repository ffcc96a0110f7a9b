package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RegisterSeatsInput struct {
	Section string
	Row     string
	Start   int
	End     int
	Notes   *string
}

type RegisterSeatInput struct {
	Section string
	Row     string
	Label   string
	Notes   *string
}

type SeatService struct {
	seatRepo seat.Repository
	logger   *logging.Logger
}

func NewSeatService(seatRepo seat.Repository, logger *logging.Logger) *SeatService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeatService{seatRepo: seatRepo, logger: logger}
}

// RegisterSeats creates section/row seats start..end together with their
// tickets. Any clash rejects the whole range.
func (s *SeatService) RegisterSeats(ctx context.Context, input RegisterSeatsInput) (result seat.CreateResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeatService.RegisterSeats",
		attribute.String("seat.section", input.Section),
		attribute.String("seat.row", input.Row),
	)
	defer func() { endSpan(span, err) }()

	group, err := normalizeGroup(input.Section, input.Row)
	if err != nil {
		return seat.CreateResult{}, err
	}
	labels, err := seat.ExpandRange(input.Start, input.End)
	if err != nil {
		return seat.CreateResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	notes := normalizeNotes(input.Notes)
	batch := make([]seat.NewSeat, 0, len(labels))
	for _, label := range labels {
		batch = append(batch, seat.NewSeat{Section: group.Section, Row: group.Row, Label: label, Notes: notes})
	}
	return s.create(ctx, batch)
}

func (s *SeatService) RegisterSeat(ctx context.Context, input RegisterSeatInput) (seat.Seat, error) {
	group, err := normalizeGroup(input.Section, input.Row)
	if err != nil {
		return seat.Seat{}, err
	}
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return seat.Seat{}, fmt.Errorf("%w: seat label is required", ErrInvalidInput)
	}

	result, err := s.create(ctx, []seat.NewSeat{{
		Section: group.Section,
		Row:     group.Row,
		Label:   label,
		Notes:   normalizeNotes(input.Notes),
	}})
	if err != nil {
		return seat.Seat{}, err
	}
	if len(result.Seats) != 1 {
		return seat.Seat{}, storeError("create seat", fmt.Errorf("expected 1 seat, got %d", len(result.Seats)))
	}
	return result.Seats[0], nil
}

func (s *SeatService) create(ctx context.Context, batch []seat.NewSeat) (seat.CreateResult, error) {
	result, err := s.seatRepo.CreateBatch(ctx, batch)
	switch {
	case errors.Is(err, seat.ErrDuplicate):
		return seat.CreateResult{}, fmt.Errorf("%w: %v", ErrConflict, err)
	case err != nil:
		return seat.CreateResult{}, storeError("create seats", err)
	}

	s.logger.InfoContext(ctx, "seats registered",
		"section", batch[0].Section,
		"row", batch[0].Row,
		"seats", len(result.Seats),
		"tickets_generated", result.TicketsGenerated,
	)
	return result, nil
}

// UpdateGroupNotes sets notes on every seat of a section/row and returns the
// group. An empty group is not an error.
func (s *SeatService) UpdateGroupNotes(ctx context.Context, section, row string, notes *string) ([]seat.Seat, error) {
	group, err := normalizeGroup(section, row)
	if err != nil {
		return nil, err
	}
	seats, err := s.seatRepo.UpdateGroupNotes(ctx, group, normalizeNotes(notes))
	if err != nil {
		return nil, storeError("update group notes", err)
	}
	seat.Sort(seats)
	return seats, nil
}

func (s *SeatService) DeleteSeat(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: seat id must be positive", ErrInvalidInput)
	}
	tickets, found, err := s.seatRepo.Delete(ctx, id)
	if err != nil {
		return storeError("delete seat", err)
	}
	if !found {
		return fmt.Errorf("%w: seat=%d", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "seat deleted", "seat_id", id, "tickets_deleted", tickets)
	return nil
}

func (s *SeatService) ListSeats(ctx context.Context) ([]seat.Seat, error) {
	seats, err := s.seatRepo.List(ctx)
	if err != nil {
		return nil, storeError("list seats", err)
	}
	seat.Sort(seats)
	return seats, nil
}

func normalizeGroup(section, row string) (seat.Group, error) {
	group := seat.Group{Section: strings.TrimSpace(section), Row: strings.TrimSpace(row)}
	if group.Section == "" {
		return seat.Group{}, fmt.Errorf("%w: section is required", ErrInvalidInput)
	}
	if group.Row == "" {
		return seat.Group{}, fmt.Errorf("%w: row is required", ErrInvalidInput)
	}
	return group, nil
}

// normalizeNotes maps blank notes to nil so they are stored as NULL.
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	v := strings.TrimSpace(*notes)
	if v == "" {
		return nil
	}
	return &v
}
