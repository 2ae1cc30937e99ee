package ws

import (
	"encoding/json"
	"time"

	"skill-swap/internal/delivery/http/dto"
	ucswap "skill-swap/internal/usecase/swap"
)

type LifecycleEvent struct {
	Type      string                   `json:"type"`
	Request   dto.SkillRequestResponse `json:"request"`
	Feedback  *dto.FeedbackResponse    `json:"feedback,omitempty"`
	Timestamp string                   `json:"timestamp"`
}

// SwapNotifier publishes lifecycle events to the hub.
type SwapNotifier struct {
	hub *Hub
	now func() time.Time
}

func NewSwapNotifier(hub *Hub) *SwapNotifier {
	return &SwapNotifier{hub: hub, now: time.Now}
}

func (n *SwapNotifier) Publish(ev ucswap.Event) {
	if n == nil || n.hub == nil {
		return
	}

	evt := LifecycleEvent{
		Type:      string(ev.Type),
		Request:   dto.NewSkillRequestResponse(ev.Request),
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	if ev.Feedback != nil {
		f := dto.NewFeedbackResponse(*ev.Feedback)
		evt.Feedback = &f
	}

	b, err := json.Marshal(evt)
	if err != nil {
		n.hub.logf("WS notify error | type=%s err=%v", ev.Type, err)
		return
	}
	n.hub.Send(b, ev.Recipients...)
}

var _ ucswap.Publisher = (*SwapNotifier)(nil)
