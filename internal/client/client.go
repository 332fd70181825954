// Package client calls the schedule and partners endpoints of the API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/scoala-altfel/orar/backend/internal/domain"
)

// APIError is a non-2xx answer. Message is the server's "error" field when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

type ScheduleList struct {
	Entries []domain.ScheduleEntry `json:"entries"`
	// Notice is the soft error the API sends alongside an empty list.
	Notice string `json:"error,omitempty"`
}

type PartnerList struct {
	Partners []domain.Partner `json:"partners"`
	Notice   string           `json:"error,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if dst == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *Client) ListSchedule(ctx context.Context) (*ScheduleList, error) {
	list := &ScheduleList{}
	if err := c.do(ctx, http.MethodGet, "/api/schedule", nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) SaveEntry(ctx context.Context, entry domain.ScheduleEntry) (*domain.ScheduleEntry, error) {
	body := map[string]string{
		"className": entry.ClassName,
		"day":       entry.Day,
		"time":      entry.Time,
		"activity":  entry.Activity,
		"professor": entry.Professor,
	}

	var payload struct {
		Entry *domain.ScheduleEntry `json:"entry"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/schedule", body, &payload); err != nil {
		return nil, err
	}
	if payload.Entry == nil {
		return nil, fmt.Errorf("api: response without entry")
	}
	return payload.Entry, nil
}

func (c *Client) DeleteEntry(ctx context.Context, key domain.SlotKey) error {
	body := map[string]string{
		"className": key.ClassName,
		"day":       key.Day,
		"time":      key.Time,
	}
	return c.do(ctx, http.MethodDelete, "/api/schedule", body, nil)
}

func (c *Client) ListPartners(ctx context.Context) (*PartnerList, error) {
	list := &PartnerList{}
	if err := c.do(ctx, http.MethodGet, "/api/partners", nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreatePartner(ctx context.Context, name string) (*domain.Partner, error) {
	var payload struct {
		Partner *domain.Partner `json:"partner"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/partners", map[string]string{"name": name}, &payload); err != nil {
		return nil, err
	}
	if payload.Partner == nil {
		return nil, fmt.Errorf("api: response without partner")
	}
	return payload.Partner, nil
}

func (c *Client) DeletePartner(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/partners", map[string]string{"id": id}, nil)
}
