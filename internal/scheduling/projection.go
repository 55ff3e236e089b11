package scheduling

import (
	"sort"
	"time"
)

const (
	ColorConfirmed    = "#28a745"
	ColorPending      = "#ffc107"
	ColorAvailability = "#d4edda"
)

type CalendarEventKind string

const (
	KindMeeting      CalendarEventKind = "meeting"
	KindAvailability CalendarEventKind = "availability"
)

// CalendarEvent is one entry of the calendar grid.
type CalendarEvent struct {
	ID      string            `json:"id"`
	Kind    CalendarEventKind `json:"kind"`
	Title   string            `json:"title,omitempty"`
	Start   time.Time         `json:"start"`
	End     time.Time         `json:"end"`
	Status  MeetingStatus     `json:"status,omitempty"`
	Color   string            `json:"color"`
	Display string            `json:"display,omitempty"`
}

// CalendarEvents projects the read model onto the calendar grid: meetings
// first, then availability as background events. Declined meetings are left out.
func CalendarEvents(view ReadModel) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(view.Meetings)+len(view.Availability))

	for _, m := range view.Meetings {
		ev := CalendarEvent{
			ID:     m.ID,
			Kind:   KindMeeting,
			Start:  m.Start,
			End:    m.End,
			Status: m.Status,
		}
		switch m.Status {
		case StatusConfirmed:
			ev.Title = m.Title
			if ev.Title == "" {
				ev.Title = "Meeting"
			}
			ev.Color = ColorConfirmed
		case StatusRequested:
			ev.Title = "Pending"
			ev.Color = ColorPending
		default:
			continue
		}
		events = append(events, ev)
	}

	for _, slot := range view.Availability {
		display := slot.DisplayHint
		if display == "" {
			display = "background"
		}
		events = append(events, CalendarEvent{
			ID:      slot.ID,
			Kind:    KindAvailability,
			Start:   slot.Start,
			End:     slot.End,
			Color:   ColorAvailability,
			Display: display,
		})
	}

	return events
}

// PendingRequests returns meetings still waiting for accept or decline.
func PendingRequests(meetings []Meeting) []Meeting {
	return filterStatus(meetings, StatusRequested)
}

// UpcomingMeetings returns confirmed meetings ordered by start time.
func UpcomingMeetings(meetings []Meeting) []Meeting {
	confirmed := filterStatus(meetings, StatusConfirmed)
	sort.SliceStable(confirmed, func(i, j int) bool {
		return confirmed[i].Start.Before(confirmed[j].Start)
	})
	return confirmed
}

func filterStatus(meetings []Meeting, status MeetingStatus) []Meeting {
	out := make([]Meeting, 0, len(meetings))
	for _, m := range meetings {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}
