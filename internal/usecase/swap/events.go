package swap

import (
	"skill-swap/internal/domain/feedback"
	"skill-swap/internal/domain/request"

	"github.com/google/uuid"
)

type EventType string

const (
	EventRequestCreated  EventType = "request_created"
	EventRequestResolved EventType = "request_resolved"
	EventFeedbackLeft    EventType = "feedback_left"
)

// Event is a snapshot of a lifecycle change addressed to the users in
// Recipients.
type Event struct {
	Type       EventType
	Recipients []uuid.UUID
	Request    request.SkillRequest
	Feedback   *feedback.Feedback
}

// Publisher must not block the caller.
type Publisher interface {
	Publish(ev Event)
}

type PublisherFunc func(ev Event)

func (f PublisherFunc) Publish(ev Event) { f(ev) }

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
