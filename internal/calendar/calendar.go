// Package calendar is the best-effort calendar-sync collaborator: a task
// with a due date becomes a calendar event. Errors never propagate to the
// user; the store logs and moves on.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"ai-task-manager/internal/models"
)

// Config holds the OAuth2 client-credentials settings for the calendar API.
// An empty ClientID disables sync entirely.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	CalendarID   string
}

// ConfigFromEnv reads CALENDAR_* settings; unset CALENDAR_CLIENT_ID means
// sync stays disabled.
func ConfigFromEnv() Config {
	return Config{
		BaseURL:      getEnv("CALENDAR_BASE_URL", "https://graph.microsoft.com/v1.0"),
		TokenURL:     getEnv("CALENDAR_TOKEN_URL", "https://login.microsoftonline.com/common/oauth2/v2.0/token"),
		ClientID:     os.Getenv("CALENDAR_CLIENT_ID"),
		ClientSecret: os.Getenv("CALENDAR_CLIENT_SECRET"),
		Scopes:       []string{getEnv("CALENDAR_SCOPE", "https://graph.microsoft.com/.default")},
		CalendarID:   os.Getenv("CALENDAR_ID"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Client posts calendar events over an OAuth2-authenticated HTTP client.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New builds a calendar client, or nil when cfg has no client id (sync
// disabled). A nil *Client is safe to skip at the call site.
func New(ctx context.Context, cfg Config) *Client {
	if cfg.ClientID == "" {
		return nil
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	return &Client{
		cfg:        cfg,
		httpClient: cc.Client(ctx),
	}
}

// event is the wire shape for the events endpoint.
type event struct {
	Subject string `json:"subject"`
	Body    struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	Start eventTime `json:"start"`
	End   eventTime `json:"end"`
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// CreateEvent turns a task's due date/time into a one-hour calendar event.
// Tasks without a due date are skipped silently.
func (c *Client) CreateEvent(ctx context.Context, task models.Task) error {
	if task.DueDate == "" {
		return nil
	}

	startClock := task.DueTime
	if startClock == "" {
		startClock = "09:00"
	}
	start, err := time.Parse(models.DateLayout+" 15:04", task.DueDate+" "+startClock)
	if err != nil {
		return fmt.Errorf("calendar: bad due date/time on task %s: %w", task.ID, err)
	}
	end := start.Add(time.Hour)

	var ev event
	ev.Subject = task.Title
	ev.Body.ContentType = "text"
	ev.Body.Content = task.Description
	ev.Start = eventTime{DateTime: start.Format("2006-01-02T15:04:05"), TimeZone: "UTC"}
	ev.End = eventTime{DateTime: end.Format("2006-01-02T15:04:05"), TimeZone: "UTC"}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	url := c.cfg.BaseURL + "/me/events"
	if c.cfg.CalendarID != "" {
		url = fmt.Sprintf("%s/me/calendars/%s/events", c.cfg.BaseURL, c.cfg.CalendarID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("calendar: event create returned %d: %s", res.StatusCode, raw)
	}
	return nil
}
