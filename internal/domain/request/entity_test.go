package request

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusRejected, false},
		{StatusRejected, StatusAccepted, false},
		{StatusAccepted, StatusPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestDecisionStatus(t *testing.T) {
	if DecisionAccept.Status() != StatusAccepted || DecisionReject.Status() != StatusRejected {
		t.Fatalf("unexpected decision mapping")
	}
	if Decision("Maybe").Valid() {
		t.Fatalf("unknown decision must be invalid")
	}
}

func TestSortNewestFirst_TieBreakByID(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	low := uuid.MustParse("00000000-0000-7000-8000-000000000001")
	high := uuid.MustParse("00000000-0000-7000-8000-000000000002")
	newest := uuid.MustParse("00000000-0000-7000-8000-000000000003")

	items := []SkillRequest{
		{ID: high, CreatedAt: ts},
		{ID: newest, CreatedAt: ts.Add(time.Minute)},
		{ID: low, CreatedAt: ts},
	}
	SortNewestFirst(items)

	if items[0].ID != newest || items[1].ID != low || items[2].ID != high {
		t.Fatalf("unexpected order: %v %v %v", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestCounterpart(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r := SkillRequest{FromUserID: a, ToUserID: b}
	if r.Counterpart(a) != b || r.Counterpart(b) != a {
		t.Fatalf("unexpected counterpart")
	}
	if r.Counterpart(uuid.New()) != uuid.Nil {
		t.Fatalf("stranger should have no counterpart")
	}
	if r.IsParticipant(uuid.Nil) {
		t.Fatalf("nil id is never a participant")
	}
}
