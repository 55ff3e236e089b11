package scheduling

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
)

const icsProductID = "-//meeting-scheduler//EN"

// WriteICS encodes the read model as an iCalendar feed. Requested meetings are
// TENTATIVE, confirmed ones CONFIRMED, declined ones are skipped. Each slot
// becomes a transparent "Available" event.
func WriteICS(w io.Writer, view ReadModel, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)

	for _, m := range view.Meetings {
		var status string
		switch m.Status {
		case StatusRequested:
			status = "TENTATIVE"
		case StatusConfirmed:
			status = "CONFIRMED"
		default:
			continue
		}

		ve := newVEvent("meeting-"+m.ID, m.Start, m.End, stamp)
		title := m.Title
		if title == "" {
			title = "Meeting"
		}
		ve.Props.SetText(ical.PropSummary, title)
		if m.Description != "" {
			ve.Props.SetText(ical.PropDescription, m.Description)
		}
		ve.Props.SetText(ical.PropStatus, status)
		cal.Children = append(cal.Children, ve)
	}

	for _, slot := range view.Availability {
		ve := newVEvent("availability-"+slot.ID, slot.Start, slot.End, stamp)
		ve.Props.SetText(ical.PropSummary, "Available")
		ve.Props.SetText(ical.PropTransparency, "TRANSPARENT")
		cal.Children = append(cal.Children, ve)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func newVEvent(uid string, start, end, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, uid)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	return ve
}
