package scheduling

import (
	"fmt"
	"slices"
)

// MeetingStore holds one user's meetings. Meetings are never removed.
// It is not safe for concurrent use; Session serializes access.
type MeetingStore struct {
	meetings []Meeting
	ids      IDGenerator
	clock    Clock
}

func NewMeetingStore(ids IDGenerator, clock Clock) *MeetingStore {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &MeetingStore{ids: ids, clock: clock}
}

// Request appends a new meeting in the requested state.
func (s *MeetingStore) Request(req MeetingRequest) (Meeting, error) {
	if !req.Interval().Valid() {
		return Meeting{}, ErrInvalidInterval
	}

	now := s.clock.Now()
	m := Meeting{
		ID:          s.freshID(),
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusRequested,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.meetings = append(s.meetings, m)
	return m, nil
}

// Restore appends an existing meeting record. Any status is accepted since
// seeded meetings carry their history.
func (s *MeetingStore) Restore(m Meeting) error {
	if m.ID == "" {
		return fmt.Errorf("restore meeting: empty id")
	}
	if !m.Interval().Valid() {
		return fmt.Errorf("restore meeting %s: %w", m.ID, ErrInvalidInterval)
	}
	if !m.Status.IsValid() {
		return fmt.Errorf("restore meeting %s: unknown status %q", m.ID, m.Status)
	}
	if s.indexOf(m.ID) >= 0 {
		return fmt.Errorf("restore meeting %s: %w", m.ID, ErrDuplicateID)
	}
	s.meetings = append(s.meetings, m)
	return nil
}

// SetStatus moves a requested meeting to confirmed or declined. Both targets are terminal.
func (s *MeetingStore) SetStatus(id string, to MeetingStatus) (Meeting, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Meeting{}, fmt.Errorf("set status of meeting %s: %w", id, ErrMeetingNotFound)
	}

	m := s.meetings[idx]
	if m.Status != StatusRequested || !to.IsTerminal() {
		return Meeting{}, fmt.Errorf("%s -> %s: %w", m.Status, to, ErrInvalidTransition)
	}

	m.Status = to
	m.UpdatedAt = s.clock.Now()
	s.meetings[idx] = m
	return m, nil
}

func (s *MeetingStore) Get(id string) (Meeting, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Meeting{}, ErrMeetingNotFound
	}
	return s.meetings[idx], nil
}

// List returns a copy of the meetings in insertion order.
func (s *MeetingStore) List() []Meeting {
	return slices.Clone(s.meetings)
}

func (s *MeetingStore) Len() int {
	return len(s.meetings)
}

func (s *MeetingStore) indexOf(id string) int {
	return slices.IndexFunc(s.meetings, func(m Meeting) bool {
		return m.ID == id
	})
}

func (s *MeetingStore) freshID() string {
	id := s.ids.New()
	for s.indexOf(id) >= 0 {
		id = s.ids.New()
	}
	return id
}
