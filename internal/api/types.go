package api

import (
	"time"

	"github.com/hackgods/meeting-scheduler/internal/scheduling"
)

type AddSlotRequest struct {
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	DisplayHint string     `json:"display_hint,omitempty"`
}

type ModifySlotRequest struct {
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	DisplayHint *string    `json:"display_hint,omitempty"`
}

type SlotResponse struct {
	ID          string    `json:"id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DisplayHint string    `json:"display_hint,omitempty"`
}

type RequestMeetingRequest struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
}

type MeetingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SelectionRequest struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

type SelectionResponse struct {
	Available bool   `json:"available"`
	SlotID    string `json:"slot_id"`
}

type CalendarResponse struct {
	Events []scheduling.CalendarEvent `json:"events"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toSlotResponse(s scheduling.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		ID:          s.ID,
		Start:       s.Start,
		End:         s.End,
		DisplayHint: s.DisplayHint,
	}
}

func toSlotResponses(slots []scheduling.AvailabilitySlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotResponse(s))
	}
	return out
}

func toMeetingResponse(m scheduling.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Start:       m.Start,
		End:         m.End,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMeetingResponses(meetings []scheduling.Meeting) []MeetingResponse {
	out := make([]MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, toMeetingResponse(m))
	}
	return out
}
