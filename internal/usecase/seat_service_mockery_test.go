package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	seatmock "github.com/riskibarqy/season-tickets/internal/mocks/domain/seat"
	"github.com/stretchr/testify/mock"
)

func TestSeatService_RegisterSeats_RejectsBadInputBeforeStore(t *testing.T) {
	t.Parallel()

	repo := seatmock.NewRepository(t)
	service := NewSeatService(repo, nil)

	cases := map[string]RegisterSeatsInput{
		"start after end": {Section: "121", Row: "E", Start: 5, End: 4},
		"over batch cap":  {Section: "121", Row: "E", Start: 1, End: seat.MaxBatchSize + 1},
		"empty section":   {Section: "  ", Row: "E", Start: 1, End: 2},
		"empty row":       {Section: "121", Row: "", Start: 1, End: 2},
	}
	for name, input := range cases {
		if _, err := service.RegisterSeats(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestSeatService_RegisterSeats_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seatmock.NewRepository(t)
	service := NewSeatService(repo, nil)

	notes := "  aisle  "
	repo.
		On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []seat.NewSeat) bool {
			return len(batch) == 2 &&
				batch[0].Section == "121" && batch[0].Row == "E" && batch[0].Label == "1" &&
				batch[1].Label == "2" &&
				batch[0].Notes != nil && *batch[0].Notes == "aisle"
		})).
		Return(seat.CreateResult{
			Seats:            []seat.Seat{{ID: 1, Section: "121", Row: "E", Label: "1"}, {ID: 2, Section: "121", Row: "E", Label: "2"}},
			TicketsGenerated: 6,
		}, nil).
		Once()

	got, err := service.RegisterSeats(ctx, RegisterSeatsInput{Section: " 121 ", Row: "E", Start: 1, End: 2, Notes: &notes})
	if err != nil {
		t.Fatalf("register seats: %v", err)
	}
	if len(got.Seats) != 2 || got.TicketsGenerated != 6 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSeatService_RegisterSeats_DuplicateIsConflict(t *testing.T) {
	t.Parallel()

	repo := seatmock.NewRepository(t)
	service := NewSeatService(repo, nil)

	repo.
		On("CreateBatch", mock.Anything, mock.Anything).
		Return(seat.CreateResult{}, fmt.Errorf("%w: 121/E/2", seat.ErrDuplicate)).
		Once()

	_, err := service.RegisterSeats(context.Background(), RegisterSeatsInput{Section: "121", Row: "E", Start: 1, End: 3})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSeatService_DeleteSeat(t *testing.T) {
	t.Parallel()

	repo := seatmock.NewRepository(t)
	service := NewSeatService(repo, nil)

	repo.On("Delete", mock.Anything, int64(7)).Return(3, true, nil).Once()
	repo.On("Delete", mock.Anything, int64(8)).Return(0, false, nil).Once()
	repo.On("Delete", mock.Anything, int64(9)).Return(0, false, errors.New("connection reset")).Once()

	if err := service.DeleteSeat(context.Background(), 7); err != nil {
		t.Fatalf("delete seat: %v", err)
	}
	if err := service.DeleteSeat(context.Background(), 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := service.DeleteSeat(context.Background(), 9); !errors.Is(err, ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}

func TestSeatService_UpdateGroupNotes_EmptyGroup(t *testing.T) {
	t.Parallel()

	repo := seatmock.NewRepository(t)
	service := NewSeatService(repo, nil)

	repo.
		On("UpdateGroupNotes", mock.Anything, seat.Group{Section: "300", Row: "A"}, (*string)(nil)).
		Return([]seat.Seat{}, nil).
		Once()

	blank := "   "
	got, err := service.UpdateGroupNotes(context.Background(), "300", "A", &blank)
	if err != nil {
		t.Fatalf("update group notes: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil group, got %#v", got)
	}
}
