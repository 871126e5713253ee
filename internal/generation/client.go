package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// Client calls the model gateway over HTTP JSON. It implements both
// MinutesGenerator and TaskExtractor.
type Client struct {
	logger     zerolog.Logger
	httpClient *http.Client
	baseURL    string
}

func NewClient(logger zerolog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

type generateRequest struct {
	Transcript string `json:"transcript"`
}

type generateResponse struct {
	Title        string   `json:"title"`
	Date         string   `json:"date"`
	Participants []string `json:"participants"`
	Agenda       []string `json:"agenda"`
	Discussion   string   `json:"discussion"`
	Decisions    []string `json:"decisions"`
	ActionItems  []struct {
		Description string `json:"description"`
		Assignee    string `json:"assignee"`
		DueDate     string `json:"due_date"`
		Completed   bool   `json:"completed"`
	} `json:"action_items"`
}

func (c *Client) Generate(ctx context.Context, transcript string) (models.MeetingRecord, error) {
	if strings.TrimSpace(transcript) == "" {
		return models.MeetingRecord{}, ErrEmptyTranscript
	}

	var resp generateResponse
	err := c.post(ctx, "/v1/minutes", generateRequest{Transcript: transcript}, &resp)
	if err != nil {
		c.logger.Error().
			Err(err).
			Msg("minutes generation failed")
		return models.MeetingRecord{}, err
	}

	date, err := time.Parse("2006-01-02 15:04", resp.Date)
	if err != nil {
		// Fall back to the date-only layout before giving up.
		date, err = time.Parse("2006-01-02", resp.Date)
		if err != nil {
			return models.MeetingRecord{}, fmt.Errorf("unparseable meeting date %q: %w", resp.Date, err)
		}
	}

	rec := models.MeetingRecord{
		Title:        resp.Title,
		Date:         date,
		Participants: resp.Participants,
		Agenda:       resp.Agenda,
		Discussion:   resp.Discussion,
		Decisions:    resp.Decisions,
	}
	for _, item := range resp.ActionItems {
		rec.ActionItems = append(rec.ActionItems, models.ActionItem{
			Description: item.Description,
			Assignee:    item.Assignee,
			DueDate:     item.DueDate,
			Completed:   item.Completed,
		})
	}

	c.logger.Info().
		Str("title", rec.Title).
		Int("action_items", len(rec.ActionItems)).
		Msg("generated minutes")
	return rec, nil
}

type extractRequest struct {
	MinutesText string `json:"minutes_text"`
}

type extractResponse struct {
	Tasks []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Assignee    string `json:"assignee"`
		DueDate     string `json:"due_date"`
		Priority    string `json:"priority"`
		SourceQuote string `json:"source_quote"`
	} `json:"tasks"`
}

func (c *Client) Extract(ctx context.Context, minutesText string) ([]models.Task, error) {
	var resp extractResponse
	err := c.post(ctx, "/v1/tasks", extractRequest{MinutesText: minutesText}, &resp)
	if err != nil {
		c.logger.Error().
			Err(err).
			Msg("task extraction failed")
		return nil, err
	}

	tasks := make([]models.Task, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		task := models.NewTask(t.Title, t.Description, models.Priority(strings.ToLower(t.Priority)))
		task.Assignee = t.Assignee
		task.SourceQuote = t.SourceQuote
		if t.DueDate != "" {
			// Placeholder strings from the model are dropped, not guessed at.
			if due, err := time.Parse("2006-01-02", t.DueDate); err == nil {
				task.DueDate = due
			} else {
				c.logger.Warn().
					Str("due_date", t.DueDate).
					Str("title", t.Title).
					Msg("dropped unparseable due date")
			}
		}
		tasks = append(tasks, task)
	}

	c.logger.Info().
		Int("count", len(tasks)).
		Msg("extracted tasks")
	return tasks, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call model gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model gateway returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
