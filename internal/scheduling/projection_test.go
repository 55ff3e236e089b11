package scheduling

import (
	"bytes"
	"strings"
	"testing"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectionView() ReadModel {
	return ReadModel{
		Availability: []AvailabilitySlot{
			{ID: "avail1", Start: jan5(9, 0), End: jan5(17, 0)},
			{ID: "avail2", Start: jan5(18, 0), End: jan5(20, 0), DisplayHint: "inverse-background"},
		},
		Meetings: []Meeting{
			{ID: "3", Title: "Late", Start: jan5(15, 0), End: jan5(15, 30), Status: StatusConfirmed},
			{ID: "1", Title: "Pitch", Start: jan5(10, 0), End: jan5(10, 30), Status: StatusRequested},
			{ID: "2", Start: jan5(11, 0), End: jan5(11, 30), Status: StatusConfirmed},
			{ID: "4", Title: "Nope", Start: jan5(12, 0), End: jan5(12, 30), Status: StatusDeclined},
		},
	}
}

func TestCalendarEvents(t *testing.T) {
	events := CalendarEvents(projectionView())

	require.Len(t, events, 5)

	assert.Equal(t, CalendarEvent{ID: "3", Kind: KindMeeting, Title: "Late", Start: jan5(15, 0), End: jan5(15, 30), Status: StatusConfirmed, Color: ColorConfirmed}, events[0])
	assert.Equal(t, "Pending", events[1].Title)
	assert.Equal(t, ColorPending, events[1].Color)
	assert.Equal(t, "Meeting", events[2].Title, "untitled confirmed meeting")

	assert.Equal(t, KindAvailability, events[3].Kind)
	assert.Equal(t, "background", events[3].Display)
	assert.Equal(t, ColorAvailability, events[3].Color)
	assert.Equal(t, "inverse-background", events[4].Display)

	for _, ev := range events {
		assert.NotEqual(t, "4", ev.ID, "declined meetings are not drawn")
	}
}

func TestPendingRequests(t *testing.T) {
	pending := PendingRequests(projectionView().Meetings)

	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].ID)
}

func TestUpcomingMeetings(t *testing.T) {
	view := projectionView()
	upcoming := UpcomingMeetings(view.Meetings)

	require.Len(t, upcoming, 2)
	assert.Equal(t, "2", upcoming[0].ID)
	assert.Equal(t, "3", upcoming[1].ID)
	assert.Equal(t, "3", view.Meetings[0].ID, "input order untouched")
}

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, projectionView(), jan5(8, 0)))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Pitch")
	assert.Contains(t, out, "STATUS:TENTATIVE")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.NotContains(t, out, "Nope")

	cal, err := ical.NewDecoder(strings.NewReader(out)).Decode()
	require.NoError(t, err)

	var uids []string
	for _, child := range cal.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		uid, err := child.Props.Text(ical.PropUID)
		require.NoError(t, err)
		uids = append(uids, uid)
	}
	assert.Equal(t, []string{
		"meeting-3", "meeting-1", "meeting-2",
		"availability-avail1", "availability-avail2",
	}, uids)
}
