package seat

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MaxBatchSize caps how many seats one registration may create, which also
// bounds the ticket generation it triggers.
const MaxBatchSize = 50

var ErrDuplicate = errors.New("seat already exists")

// Seat is one physical seat. Section, Row and Label are opaque strings.
type Seat struct {
	ID        int64
	Section   string
	Row       string
	Label     string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSeat is a seat that has not been stored yet.
type NewSeat struct {
	Section string
	Row     string
	Label   string
	Notes   *string
}

// Group is every seat sharing a section and row.
type Group struct {
	Section string
	Row     string
}

func (s Seat) Group() Group {
	return Group{Section: s.Section, Row: s.Row}
}

func (s Seat) String() string {
	return fmt.Sprintf("%s/%s/%s", s.Section, s.Row, s.Label)
}

// CreateResult reports a committed registration.
type CreateResult struct {
	Seats            []Seat
	TicketsGenerated int
}

// ExpandRange returns the labels start..end inclusive.
func ExpandRange(start, end int) ([]string, error) {
	switch {
	case start < 0:
		return nil, fmt.Errorf("seat range start must be >= 0, got %d", start)
	case start > end:
		return nil, fmt.Errorf("seat range start %d must be <= end %d", start, end)
	case end-start+1 > MaxBatchSize:
		return nil, fmt.Errorf("seat range covers %d seats, maximum is %d", end-start+1, MaxBatchSize)
	}

	labels := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		labels = append(labels, strconv.Itoa(n))
	}
	return labels, nil
}

// CompareLabels orders labels so that "2" sorts before "10" and "9A" before
// "10". Runs of digits compare numerically, everything else bytewise.
func CompareLabels(a, b string) int {
	for a != "" && b != "" {
		da, db := isDigit(a[0]), isDigit(b[0])
		switch {
		case da && db:
			na, restA := leadingDigits(a)
			nb, restB := leadingDigits(b)
			if c := compareNumeric(na, nb); c != 0 {
				return c
			}
			a, b = restA, restB
		case a[0] != b[0]:
			if a[0] < b[0] {
				return -1
			}
			return 1
		default:
			a, b = a[1:], b[1:]
		}
	}
	return len(a) - len(b)
}

// Sort orders seats by section, row then label with CompareLabels.
func Sort(seats []Seat) {
	sort.SliceStable(seats, func(i, j int) bool {
		return Less(seats[i], seats[j])
	})
}

func Less(a, b Seat) bool {
	if c := CompareLabels(a.Section, b.Section); c != 0 {
		return c < 0
	}
	if c := CompareLabels(a.Row, b.Row); c != 0 {
		return c < 0
	}
	return CompareLabels(a.Label, b.Label) < 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func leadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}
