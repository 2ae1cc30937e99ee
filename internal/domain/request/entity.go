package request

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransition encodes the lifecycle: Pending moves to Accepted or Rejected,
// nothing else moves.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.Terminal()
}

type Decision string

const (
	DecisionAccept Decision = "Accept"
	DecisionReject Decision = "Reject"
)

func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

func (d Decision) Status() Status {
	switch d {
	case DecisionAccept:
		return StatusAccepted
	case DecisionReject:
		return StatusRejected
	default:
		return ""
	}
}

type SkillRequest struct {
	ID          uuid.UUID
	FromUserID  uuid.UUID
	ToUserID    uuid.UUID
	FromName    string
	ToName      string
	FromSkill   string
	ToSkill     string
	Message     string
	Status      Status
	CreatedAt   time.Time
	RespondedAt *time.Time
}

func (r SkillRequest) IsParticipant(userID uuid.UUID) bool {
	return userID != uuid.Nil && (r.FromUserID == userID || r.ToUserID == userID)
}

// Counterpart returns the other participant, or uuid.Nil when userID is not
// part of the request.
func (r SkillRequest) Counterpart(userID uuid.UUID) uuid.UUID {
	switch userID {
	case r.FromUserID:
		return r.ToUserID
	case r.ToUserID:
		return r.FromUserID
	default:
		return uuid.Nil
	}
}

// SortNewestFirst orders by creation time descending, ascending id on ties.
func SortNewestFirst(items []SkillRequest) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return bytes.Compare(items[i].ID[:], items[j].ID[:]) < 0
	})
}
