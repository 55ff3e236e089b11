package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/meeting-scheduler/internal/scheduling"
)

type handlers struct {
	sessions SessionProvider
	clock    scheduling.Clock
}

// session resolves the acting user's session or writes an error.
func (h *handlers) session(w http.ResponseWriter, r *http.Request) (*scheduling.Session, bool) {
	s, err := h.sessions.ForUser(r.Context(), GetUserID(r.Context()))
	if err != nil {
		log.Printf("resolve session for user=%s: %v", GetUserID(r.Context()), err)
		writeError(w, http.StatusServiceUnavailable, "session_unavailable", err.Error())
		return nil, false
	}
	return s, true
}

func (h *handlers) listAvailability(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponses(s.ListAvailability()))
}

func (h *handlers) addAvailability(w http.ResponseWriter, r *http.Request) {
	var req AddSlotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Start == nil || req.End == nil {
		writeError(w, http.StatusBadRequest, "missing_interval", "start and end are required")
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	slot, err := s.AddAvailability(r.Context(), scheduling.NewSlot{
		Start:       *req.Start,
		End:         *req.End,
		DisplayHint: req.DisplayHint,
	})
	if err != nil {
		handleSchedulingError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSlotResponse(slot))
}

func (h *handlers) modifyAvailability(w http.ResponseWriter, r *http.Request) {
	var req ModifySlotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	slot, err := s.ModifyAvailability(r.Context(), chi.URLParam(r, "id"), scheduling.SlotPatch{
		Start:       req.Start,
		End:         req.End,
		DisplayHint: req.DisplayHint,
	})
	if err != nil {
		handleSchedulingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponse(slot))
}

func (h *handlers) deleteAvailability(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.DeleteAvailability(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleSchedulingError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) checkSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Start == nil || req.End == nil {
		writeError(w, http.StatusBadRequest, "missing_interval", "start and end are required")
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	slot, err := s.CheckSelection(scheduling.Interval{Start: *req.Start, End: *req.End})
	if err != nil {
		handleSchedulingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SelectionResponse{Available: true, SlotID: slot.ID})
}

func (h *handlers) listMeetings(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponses(s.ListMeetings()))
}

func (h *handlers) getMeeting(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	m, err := s.GetMeeting(chi.URLParam(r, "id"))
	if err != nil {
		handleSchedulingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponse(m))
}

func (h *handlers) requestMeeting(w http.ResponseWriter, r *http.Request) {
	var req RequestMeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Start == nil || req.End == nil {
		writeError(w, http.StatusBadRequest, "missing_interval", "start and end are required")
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	m, err := s.RequestMeeting(r.Context(), scheduling.MeetingRequest{
		Title:       req.Title,
		Description: req.Description,
		Start:       *req.Start,
		End:         *req.End,
	})
	if err != nil {
		handleSchedulingError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMeetingResponse(m))
}

func (h *handlers) acceptMeeting(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	m, err := s.AcceptMeeting(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleSchedulingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponse(m))
}

func (h *handlers) declineMeeting(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	m, err := s.DeclineMeeting(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleSchedulingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponse(m))
}

func (h *handlers) pendingRequests(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponses(scheduling.PendingRequests(s.ListMeetings())))
}

func (h *handlers) upcomingMeetings(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponses(scheduling.UpcomingMeetings(s.ListMeetings())))
}

func (h *handlers) calendar(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CalendarResponse{Events: scheduling.CalendarEvents(s.Snapshot())})
}

func (h *handlers) calendarICS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if err := scheduling.WriteICS(w, s.Snapshot(), h.clock.Now()); err != nil {
		log.Printf("write calendar for user=%s: %v", s.UserID(), err)
	}
}

func handleSchedulingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrInvalidInterval):
		writeError(w, http.StatusUnprocessableEntity, "invalid_interval", err.Error())
	case errors.Is(err, scheduling.ErrOutsideAvailability):
		writeError(w, http.StatusUnprocessableEntity, "outside_availability", err.Error())
	case errors.Is(err, scheduling.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, scheduling.ErrMeetingNotFound):
		writeError(w, http.StatusNotFound, "meeting_not_found", err.Error())
	case errors.Is(err, scheduling.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
