package scheduling

import (
	"context"
	"log"
	"time"
)

type EventType string

const (
	EventAvailabilityAdded    EventType = "availability.added"
	EventAvailabilityModified EventType = "availability.modified"
	EventAvailabilityDeleted  EventType = "availability.deleted"
	EventMeetingRequested     EventType = "meeting.requested"
	EventMeetingConfirmed     EventType = "meeting.confirmed"
	EventMeetingDeclined      EventType = "meeting.declined"
)

// Event describes one applied mutation. Exactly one of Slot or Meeting is set.
type Event struct {
	Type       EventType         `json:"type"`
	UserID     string            `json:"user_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Slot       *AvailabilitySlot `json:"slot,omitempty"`
	Meeting    *Meeting          `json:"meeting,omitempty"`
}

// SubjectID returns the id of the slot or meeting the event is about.
func (e Event) SubjectID() string {
	switch {
	case e.Slot != nil:
		return e.Slot.ID
	case e.Meeting != nil:
		return e.Meeting.ID
	default:
		return ""
	}
}

// Listener receives lifecycle events after a mutation has been applied.
// Errors are logged by the engine and never undo the mutation.
type Listener interface {
	HandleEvent(ctx context.Context, ev Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, ev Event) error

func (f ListenerFunc) HandleEvent(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// LogListener writes every event to the standard logger.
type LogListener struct{}

func (LogListener) HandleEvent(_ context.Context, ev Event) error {
	log.Printf("event=%s user=%s subject=%s", ev.Type, ev.UserID, ev.SubjectID())
	return nil
}
