package news

import (
	"testing"
	"time"
)

func TestNextSlot_FirstSlotRoundsUpToHour(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 32, 0, 0, time.UTC)

	slot := NextSlot(nil, now)

	want := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	if !slot.Equal(want) {
		t.Errorf("expected %v, got %v", want, slot)
	}
	// 15:00 is already past now+10m, so no correction applies.
	if !slot.After(now.Add(MinLead)) {
		t.Error("slot must satisfy the minimum lead requirement")
	}
}

func TestNextSlot_AdvancesFromLastScheduled(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 50, 0, 0, time.UTC)
	last := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)

	slot := NextSlot(&last, now)

	want := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
	if !slot.Equal(want) {
		t.Errorf("expected %v, got %v", want, slot)
	}
}

func TestNextSlot_StaleCursorResetsForward(t *testing.T) {
	// The last scheduled slot is hours in the past (a crashed run): the
	// computed slot would violate the lead rule, so it resets to the next
	// hour after now+11m.
	now := time.Date(2024, 3, 5, 14, 32, 0, 0, time.UTC)
	last := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	slot := NextSlot(&last, now)

	want := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	if !slot.Equal(want) {
		t.Errorf("expected %v, got %v", want, slot)
	}
	if !slot.After(now.Add(MinLead)) {
		t.Error("reset slot must satisfy the minimum lead requirement")
	}
}

func TestNextSlot_NeverInThePast(t *testing.T) {
	// Just before the hour boundary: rounding now up lands inside the
	// 10-minute lead window, so the slot has to push one hour further.
	now := time.Date(2024, 3, 5, 14, 55, 0, 0, time.UTC)

	slot := NextSlot(nil, now)

	want := time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC)
	if !slot.Equal(want) {
		t.Errorf("expected %v, got %v", want, slot)
	}
}

func TestNextSlot_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2024, 3, 5, 17, 32, 0, 0, loc) // 14:32 UTC
	last := time.Date(2024, 3, 5, 18, 0, 0, 0, loc) // 15:00 UTC

	slot := NextSlot(&last, now)

	want := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
	if !slot.Equal(want) {
		t.Errorf("expected %v, got %v", want, slot)
	}
	if slot.Location() != time.UTC {
		t.Errorf("slot must be UTC, got %v", slot.Location())
	}
}
