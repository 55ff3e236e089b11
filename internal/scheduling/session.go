package scheduling

import (
	"context"
	"fmt"
	"sync"
)

// Session is one user's scheduling state: both stores plus the engine that
// mutates them. Every operation runs under a single mutex, so readers never
// observe a half-applied mutation.
type Session struct {
	mu           sync.Mutex
	userID       string
	availability *AvailabilityStore
	meetings     *MeetingStore
	engine       *Engine
}

type SessionConfig struct {
	Clock     Clock
	IDs       IDGenerator
	Listeners []Listener
}

func NewSession(userID string, cfg SessionConfig) *Session {
	availability := NewAvailabilityStore(cfg.IDs)
	meetings := NewMeetingStore(cfg.IDs, cfg.Clock)
	return &Session{
		userID:       userID,
		availability: availability,
		meetings:     meetings,
		engine:       NewEngine(userID, availability, meetings, cfg.Clock, cfg.Listeners...),
	}
}

func (s *Session) UserID() string { return s.userID }

// Seed restores slots and meetings from a seed. It emits no events.
func (s *Session) Seed(seed Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range seed.Availability {
		if err := s.availability.Restore(slot); err != nil {
			return fmt.Errorf("seed availability: %w", err)
		}
	}
	for _, m := range seed.Meetings {
		if err := s.meetings.Restore(m); err != nil {
			return fmt.Errorf("seed meetings: %w", err)
		}
	}
	return nil
}

func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Subscribe(l)
}

func (s *Session) AddAvailability(ctx context.Context, in NewSlot) (AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.AddAvailability(ctx, in)
}

func (s *Session) ModifyAvailability(ctx context.Context, id string, patch SlotPatch) (AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ModifyAvailability(ctx, id, patch)
}

func (s *Session) DeleteAvailability(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.DeleteAvailability(ctx, id)
}

func (s *Session) ListAvailability() []AvailabilitySlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availability.List()
}

func (s *Session) CheckSelection(iv Interval) (AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CheckSelection(iv)
}

func (s *Session) RequestMeeting(ctx context.Context, req MeetingRequest) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.RequestMeeting(ctx, req)
}

func (s *Session) AcceptMeeting(ctx context.Context, id string) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Accept(ctx, id)
}

func (s *Session) DeclineMeeting(ctx context.Context, id string) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Decline(ctx, id)
}

func (s *Session) GetMeeting(id string) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meetings.Get(id)
}

func (s *Session) ListMeetings() []Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meetings.List()
}

// Snapshot returns both collections taken under the same lock.
func (s *Session) Snapshot() ReadModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}
