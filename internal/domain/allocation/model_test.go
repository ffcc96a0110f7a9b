package allocation

import (
	"testing"

	"pgregory.net/rapid"
)

func TestIsOversubscribed_Boundary(t *testing.T) {
	if IsOversubscribed(4, 4) {
		t.Fatalf("equal demand and supply must not be oversubscribed")
	}
	if !IsOversubscribed(5, 4) {
		t.Fatalf("expected oversubscribed when demand exceeds supply")
	}
	if IsOversubscribed(0, 0) {
		t.Fatalf("no demand must not be oversubscribed")
	}
}

func TestIsOversubscribed_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		available := rapid.IntRange(0, 200).Draw(rt, "available")
		requested := rapid.IntRange(0, 200).Draw(rt, "requested")
		if IsOversubscribed(requested, available) != (requested-available > 0) {
			rt.Fatalf("requested=%d available=%d", requested, available)
		}
	})
}
