package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hackgods/meeting-scheduler/internal/api"
)

// Client talks to the scheduler HTTP API on behalf of one user.
type Client struct {
	baseURL string
	userID  string
	http    *http.Client
}

func NewClient(baseURL, userID string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		userID:  userID,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Details)
	}
	return fmt.Sprintf("%s (%d)", e.Code, e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
		var er api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
			apiErr.Code = er.Error
			apiErr.Details = er.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if w, ok := out.(io.Writer); ok {
		_, err := io.Copy(w, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) ListAvailability(ctx context.Context) ([]api.SlotResponse, error) {
	var out []api.SlotResponse
	err := c.do(ctx, http.MethodGet, "/availability", nil, &out)
	return out, err
}

func (c *Client) AddAvailability(ctx context.Context, req api.AddSlotRequest) (api.SlotResponse, error) {
	var out api.SlotResponse
	err := c.do(ctx, http.MethodPost, "/availability", req, &out)
	return out, err
}

func (c *Client) ModifyAvailability(ctx context.Context, id string, req api.ModifySlotRequest) (api.SlotResponse, error) {
	var out api.SlotResponse
	err := c.do(ctx, http.MethodPatch, "/availability/"+id, req, &out)
	return out, err
}

func (c *Client) DeleteAvailability(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/availability/"+id, nil, nil)
}

func (c *Client) ListMeetings(ctx context.Context, view string) ([]api.MeetingResponse, error) {
	path := "/meetings"
	if view != "" {
		path += "/" + view
	}
	var out []api.MeetingResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) RequestMeeting(ctx context.Context, req api.RequestMeetingRequest) (api.MeetingResponse, error) {
	var out api.MeetingResponse
	err := c.do(ctx, http.MethodPost, "/meetings", req, &out)
	return out, err
}

// Transition posts to /meetings/{id}/{action}, action being accept or decline.
func (c *Client) Transition(ctx context.Context, id, action string) (api.MeetingResponse, error) {
	var out api.MeetingResponse
	err := c.do(ctx, http.MethodPost, "/meetings/"+id+"/"+action, nil, &out)
	return out, err
}

func (c *Client) Calendar(ctx context.Context) (api.CalendarResponse, error) {
	var out api.CalendarResponse
	err := c.do(ctx, http.MethodGet, "/calendar", nil, &out)
	return out, err
}

func (c *Client) CalendarICS(ctx context.Context, w io.Writer) error {
	return c.do(ctx, http.MethodGet, "/calendar.ics", nil, w)
}
