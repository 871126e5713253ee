package materialize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-minutes/internal/codec"
	"github.com/adanyl0v/go-minutes/internal/models"
)

// Webhook posts approved records to a configured endpoint as JSON carrying
// the rendered Markdown body.
type Webhook struct {
	logger     zerolog.Logger
	httpClient *http.Client
	url        string
}

func NewWebhook(logger zerolog.Logger, url string, timeout time.Duration) *Webhook {
	return &Webhook{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

type webhookPayload struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	Body      string `json:"body"`
}

func (w *Webhook) MaterializeMinutes(ctx context.Context, sessionID string, rec models.MeetingRecord) error {
	return w.send(ctx, webhookPayload{
		SessionID: sessionID,
		Kind:      string(models.KindMinutes),
		Body:      codec.MinutesToText(rec),
	})
}

func (w *Webhook) MaterializeTasks(ctx context.Context, batch models.TaskBatch) error {
	return w.send(ctx, webhookPayload{
		SessionID: batch.SessionID,
		Kind:      string(models.KindTasks),
		Body:      codec.BatchToText(batch),
	})
}

func (w *Webhook) send(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to materializer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("materializer returned %s", resp.Status)
	}

	w.logger.Info().
		Str("session_id", payload.SessionID).
		Str("kind", payload.Kind).
		Msg("materialized record")
	return nil
}
