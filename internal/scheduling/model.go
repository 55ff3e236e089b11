package scheduling

import (
	"time"
)

type MeetingStatus string

const (
	StatusRequested MeetingStatus = "requested"
	StatusConfirmed MeetingStatus = "confirmed"
	StatusDeclined  MeetingStatus = "declined"
)

// IsValid reports whether s is one of the known statuses.
func (s MeetingStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusDeclined:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s MeetingStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusDeclined
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether Start is strictly before End.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Contains reports whether other lies entirely within i, endpoints included.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

type AvailabilitySlot struct {
	ID          string
	Start       time.Time
	End         time.Time
	DisplayHint string
}

func (s AvailabilitySlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

type Meeting struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Status      MeetingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m Meeting) Interval() Interval {
	return Interval{Start: m.Start, End: m.End}
}

// NewSlot is the caller-supplied part of an availability slot.
type NewSlot struct {
	Start       time.Time
	End         time.Time
	DisplayHint string
}

// SlotPatch replaces only the non-nil fields of a slot.
type SlotPatch struct {
	Start       *time.Time
	End         *time.Time
	DisplayHint *string
}

// MeetingRequest is the caller-supplied part of a meeting.
type MeetingRequest struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

func (r MeetingRequest) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// ReadModel is the order-preserving view handed to presentation surfaces.
type ReadModel struct {
	Availability []AvailabilitySlot
	Meetings     []Meeting
}
