package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/meeting-scheduler/internal/scheduling"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestServer(t *testing.T, deps map[string]Pinger) (*httptest.Server, *scheduling.Registry) {
	t.Helper()
	registry := scheduling.NewRegistry(scheduling.StaticSeed, scheduling.SessionConfig{})
	srv := httptest.NewServer(NewRouter(RouterConfig{
		Sessions:      registry,
		Clock:         fixedClock{now: time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)},
		Dependencies:  deps,
		DefaultUserID: "demo",
		Env:           "test",
		Version:       "v-test",
	}))
	t.Cleanup(srv.Close)
	return srv, registry
}

func doJSON(t *testing.T, method, url, user string, body any, out any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func at(day, hour, min int) *time.Time {
	t := time.Date(2025, time.January, day, hour, min, 0, 0, time.UTC)
	return &t
}

func TestAPI_RequestAcceptFlow(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var created MeetingResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/meetings", "founder", RequestMeetingRequest{
		Title: "Seed round",
		Start: at(5, 10, 0),
		End:   at(5, 10, 30),
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "requested", created.Status)
	assert.NotEmpty(t, created.ID)

	var pending []MeetingResponse
	doJSON(t, http.MethodGet, srv.URL+"/meetings/requests", "founder", nil, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	var accepted MeetingResponse
	resp = doJSON(t, http.MethodPost, srv.URL+"/meetings/"+created.ID+"/accept", "founder", nil, &accepted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", accepted.Status)

	var errResp ErrorResponse
	resp = doJSON(t, http.MethodPost, srv.URL+"/meetings/"+created.ID+"/decline", "founder", nil, &errResp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "invalid_status_transition", errResp.Error)

	var fetched MeetingResponse
	doJSON(t, http.MethodGet, srv.URL+"/meetings/"+created.ID, "founder", nil, &fetched)
	assert.Equal(t, "confirmed", fetched.Status)

	var upcoming []MeetingResponse
	doJSON(t, http.MethodGet, srv.URL+"/meetings/upcoming", "founder", nil, &upcoming)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "1", upcoming[0].ID)
}

func TestAPI_RequestErrors(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name       string
		body       RequestMeetingRequest
		wantStatus int
		wantCode   string
	}{
		{"outside availability", RequestMeetingRequest{Start: at(5, 16, 0), End: at(5, 18, 0)}, http.StatusUnprocessableEntity, "outside_availability"},
		{"zero length", RequestMeetingRequest{Start: at(5, 10, 0), End: at(5, 10, 0)}, http.StatusUnprocessableEntity, "invalid_interval"},
		{"missing end", RequestMeetingRequest{Start: at(5, 10, 0)}, http.StatusBadRequest, "missing_interval"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var errResp ErrorResponse
			resp := doJSON(t, http.MethodPost, srv.URL+"/meetings", "", tc.body, &errResp)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, tc.wantCode, errResp.Error)
		})
	}

	var meetings []MeetingResponse
	doJSON(t, http.MethodGet, srv.URL+"/meetings", "", nil, &meetings)
	assert.Len(t, meetings, 1, "only the seeded meeting exists")
}

func TestAPI_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/availability", "application/json", strings.NewReader(`{"start":`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_AvailabilityLifecycle(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var slot SlotResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/availability", "investor", AddSlotRequest{
		Start: at(7, 9, 0),
		End:   at(7, 12, 0),
	}, &slot)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var modified SlotResponse
	resp = doJSON(t, http.MethodPatch, srv.URL+"/availability/"+slot.ID, "investor", ModifySlotRequest{End: at(7, 13, 0)}, &modified)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, slot.ID, modified.ID)
	assert.True(t, modified.End.Equal(*at(7, 13, 0)))

	var errResp ErrorResponse
	resp = doJSON(t, http.MethodPatch, srv.URL+"/availability/"+slot.ID, "investor", ModifySlotRequest{End: at(7, 8, 0)}, &errResp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "invalid_interval", errResp.Error)

	var slots []SlotResponse
	doJSON(t, http.MethodGet, srv.URL+"/availability", "investor", nil, &slots)
	require.Len(t, slots, 3)
	assert.Equal(t, []string{"avail1", "avail2", slot.ID}, []string{slots[0].ID, slots[1].ID, slots[2].ID})

	resp = doJSON(t, http.MethodDelete, srv.URL+"/availability/"+slot.ID, "investor", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodPatch, srv.URL+"/availability/"+slot.ID, "investor", ModifySlotRequest{End: at(7, 14, 0)}, &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "slot_not_found", errResp.Error)
}

func TestAPI_UsersAreIsolated(t *testing.T) {
	srv, registry := newTestServer(t, nil)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/availability/avail1", "alice", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var slots []SlotResponse
	doJSON(t, http.MethodGet, srv.URL+"/availability", "bob", nil, &slots)
	assert.Len(t, slots, 2)
	assert.Equal(t, 2, registry.Len())
}

func TestAPI_Selection(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var sel SelectionResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/selections", "", SelectionRequest{Start: at(6, 9, 0), End: at(6, 17, 0)}, &sel)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, sel.Available)
	assert.Equal(t, "avail2", sel.SlotID)

	var errResp ErrorResponse
	resp = doJSON(t, http.MethodPost, srv.URL+"/selections", "", SelectionRequest{Start: at(5, 16, 0), End: at(6, 10, 0)}, &errResp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "outside_availability", errResp.Error)
}

func TestAPI_Calendar(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var cal CalendarResponse
	doJSON(t, http.MethodGet, srv.URL+"/calendar", "", nil, &cal)
	require.Len(t, cal.Events, 3)
	assert.Equal(t, "Investor Call", cal.Events[0].Title)
	assert.Equal(t, scheduling.KindAvailability, cal.Events[1].Kind)

	resp, err := http.Get(srv.URL + "/calendar.ics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "SUMMARY:Investor Call")
}

func TestAPI_UnknownMeeting(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var errResp ErrorResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/meetings/nope/accept", "", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "meeting_not_found", errResp.Error)
}

func TestAPI_Health(t *testing.T) {
	srv, _ := newTestServer(t, map[string]Pinger{
		"postgres": PingFunc(func(context.Context) error { return nil }),
		"redis":    PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	var live LivenessResponse
	doJSON(t, http.MethodGet, srv.URL+"/health/live", "", nil, &live)
	assert.Equal(t, "ok", live.Status)
	assert.Equal(t, "v-test", live.Version)

	var ready ReadinessResponse
	resp := doJSON(t, http.MethodGet, srv.URL+"/health/ready", "", nil, &ready)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "degraded", ready.Status)
	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "down"}, ready.Dependencies)
}

func TestAPI_RequestIDEchoed(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health/live", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
}

func TestUserMiddleware_NoDefault(t *testing.T) {
	h := UserMiddleware("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meetings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	req.Header.Set("X-User-ID", "carol")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
