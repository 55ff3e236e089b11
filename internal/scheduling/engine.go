package scheduling

import (
	"context"
	"log"
)

// DefaultMeetingTitle is used when a request carries no title.
const DefaultMeetingTitle = "New Meeting"

// Engine validates proposed meetings against availability and performs every
// state transition on both stores.
type Engine struct {
	userID       string
	availability *AvailabilityStore
	meetings     *MeetingStore
	clock        Clock
	listeners    []Listener
}

func NewEngine(userID string, availability *AvailabilityStore, meetings *MeetingStore, clock Clock, listeners ...Listener) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{
		userID:       userID,
		availability: availability,
		meetings:     meetings,
		clock:        clock,
		listeners:    listeners,
	}
}

// Subscribe registers a listener. Listeners are called in registration order.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// CheckSelection reports whether iv may become a meeting and returns the first
// slot that contains it.
func (e *Engine) CheckSelection(iv Interval) (AvailabilitySlot, error) {
	if !iv.Valid() {
		return AvailabilitySlot{}, ErrInvalidInterval
	}
	slot, ok := e.availability.Containing(iv)
	if !ok {
		return AvailabilitySlot{}, ErrOutsideAvailability
	}
	return slot, nil
}

// RequestMeeting creates a requested meeting if its interval lies inside a
// single availability slot. Spanning two adjacent slots is rejected.
func (e *Engine) RequestMeeting(ctx context.Context, req MeetingRequest) (Meeting, error) {
	if _, err := e.CheckSelection(req.Interval()); err != nil {
		return Meeting{}, err
	}
	if req.Title == "" {
		req.Title = DefaultMeetingTitle
	}

	m, err := e.meetings.Request(req)
	if err != nil {
		return Meeting{}, err
	}
	e.emit(ctx, Event{Type: EventMeetingRequested, Meeting: &m})
	return m, nil
}

// Accept confirms a requested meeting. Availability is not re-checked.
func (e *Engine) Accept(ctx context.Context, id string) (Meeting, error) {
	m, err := e.meetings.SetStatus(id, StatusConfirmed)
	if err != nil {
		return Meeting{}, err
	}
	e.emit(ctx, Event{Type: EventMeetingConfirmed, Meeting: &m})
	return m, nil
}

// Decline declines a requested meeting.
func (e *Engine) Decline(ctx context.Context, id string) (Meeting, error) {
	m, err := e.meetings.SetStatus(id, StatusDeclined)
	if err != nil {
		return Meeting{}, err
	}
	e.emit(ctx, Event{Type: EventMeetingDeclined, Meeting: &m})
	return m, nil
}

func (e *Engine) AddAvailability(ctx context.Context, in NewSlot) (AvailabilitySlot, error) {
	slot, err := e.availability.Add(in)
	if err != nil {
		return AvailabilitySlot{}, err
	}
	e.emit(ctx, Event{Type: EventAvailabilityAdded, Slot: &slot})
	return slot, nil
}

func (e *Engine) ModifyAvailability(ctx context.Context, id string, patch SlotPatch) (AvailabilitySlot, error) {
	slot, err := e.availability.Modify(id, patch)
	if err != nil {
		return AvailabilitySlot{}, err
	}
	e.emit(ctx, Event{Type: EventAvailabilityModified, Slot: &slot})
	return slot, nil
}

// DeleteAvailability removes a slot. Meetings validated against it stay as they are.
func (e *Engine) DeleteAvailability(ctx context.Context, id string) error {
	slot, err := e.availability.Delete(id)
	if err != nil {
		return err
	}
	e.emit(ctx, Event{Type: EventAvailabilityDeleted, Slot: &slot})
	return nil
}

func (e *Engine) Snapshot() ReadModel {
	return ReadModel{
		Availability: e.availability.List(),
		Meetings:     e.meetings.List(),
	}
}

func (e *Engine) emit(ctx context.Context, ev Event) {
	ev.UserID = e.userID
	ev.OccurredAt = e.clock.Now()

	for _, l := range e.listeners {
		if err := l.HandleEvent(ctx, ev); err != nil {
			log.Printf("failed to deliver event %s for %s: %v", ev.Type, ev.SubjectID(), err)
		}
	}
}
