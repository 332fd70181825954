// Package supabase talks to the PostgREST endpoint of a Supabase project.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scoala-altfel/orar/backend/internal/domain"
)

const scheduleTable = "schedule_entries"

// Error is the error body PostgREST returns.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("supabase: status %d", e.Status)
}

// Is lets a unique violation match domain.ErrDuplicate.
func (e *Error) Is(target error) bool {
	return target == domain.ErrDuplicate && e.Code == "23505"
}

type Client struct {
	restURL       string
	key           string
	partnersTable string
	httpClient    *http.Client
}

func NewClient(baseURL, key, partnersTable string, timeout time.Duration) *Client {
	return &Client{
		restURL:       strings.TrimRight(baseURL, "/") + "/rest/v1/",
		key:           key,
		partnersTable: partnersTable,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body any, prefer string, dst any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.restURL + url.PathEscape(table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{Status: resp.StatusCode}
		// a body that is not JSON still yields a usable status error
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if dst == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *Client) GetAllPartners(ctx context.Context) ([]*domain.PartnerRecord, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "name.asc")

	partners := make([]*domain.PartnerRecord, 0)
	if err := c.do(ctx, http.MethodGet, c.partnersTable, query, nil, "", &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (c *Client) CreatePartner(ctx context.Context, name string) (*domain.PartnerRecord, error) {
	query := url.Values{}
	query.Set("select", "*")

	var rows []*domain.PartnerRecord
	body := []map[string]string{{"name": name}}
	if err := c.do(ctx, http.MethodPost, c.partnersTable, query, body, "return=representation", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Status: http.StatusOK, Message: "partenerul nu a fost returnat după inserare"}
	}
	return rows[0], nil
}

func (c *Client) DeletePartner(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	return c.do(ctx, http.MethodDelete, c.partnersTable, query, nil, "", nil)
}

func (c *Client) GetAllScheduleEntries(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "class_name.asc")

	entries := make([]*domain.ScheduleEntry, 0)
	if err := c.do(ctx, http.MethodGet, scheduleTable, query, nil, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) UpsertScheduleEntry(ctx context.Context, entry *domain.ScheduleEntry) error {
	query := url.Values{}
	query.Set("on_conflict", "class_name,day,time")
	query.Set("select", "*")

	var rows []*domain.ScheduleEntry
	prefer := "resolution=merge-duplicates,return=representation"
	if err := c.do(ctx, http.MethodPost, scheduleTable, query, []*domain.ScheduleEntry{entry}, prefer, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return &Error{Status: http.StatusOK, Message: "slotul nu a fost returnat după salvare"}
	}

	*entry = *rows[0]
	return nil
}

func (c *Client) DeleteScheduleEntry(ctx context.Context, key domain.SlotKey) error {
	query := url.Values{}
	query.Set("class_name", "eq."+key.ClassName)
	query.Set("day", "eq."+key.Day)
	query.Set("time", "eq."+key.Time)

	return c.do(ctx, http.MethodDelete, scheduleTable, query, nil, "", nil)
}
