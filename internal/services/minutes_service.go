package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-minutes/internal/approval"
	"github.com/adanyl0v/go-minutes/internal/codec"
	"github.com/adanyl0v/go-minutes/internal/generation"
	"github.com/adanyl0v/go-minutes/internal/materialize"
	"github.com/adanyl0v/go-minutes/internal/models"
)

type minutesServiceImpl struct {
	logger       zerolog.Logger
	store        recordStore
	engine       approval.Engine
	generator    generation.MinutesGenerator
	materializer materialize.Materializer
}

func NewMinutesService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	generator generation.MinutesGenerator,
	materializer materialize.Materializer,
) MinutesService {
	return &minutesServiceImpl{
		logger:       logger,
		store:        recordStore{logger: logger, pgPool: pgPool},
		engine:       approval.NewEngine(),
		generator:    generator,
		materializer: materializer,
	}
}

func (s *minutesServiceImpl) Generate(ctx context.Context, sessionID, transcript string) (*MinutesReview, error) {
	rec, err := s.generator.Generate(ctx, transcript)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("minutes generation failed")
		return nil, fmt.Errorf("generate minutes: %w", err)
	}
	if rec.Title == "" || rec.Discussion == "" {
		s.logger.Error().
			Str("session_id", sessionID).
			Msg("generated minutes missing title or discussion")
		return nil, ErrEmptyMinutes
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal minutes: %w", err)
	}

	now := time.Now()
	approvalRec := models.ApprovalRecord{
		SessionID: sessionID,
		Kind:      models.KindMinutes,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(models.ApprovalTTL),
	}
	recordID := uuid.NewString()

	err = s.store.insert(ctx, approvalRec, recordID, body, transcript)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("record_id", recordID).
		Msg("created pending minutes")
	return &MinutesReview{
		SessionID: sessionID,
		RecordID:  recordID,
		Status:    models.StatusPending,
		ExpiresAt: approvalRec.ExpiresAt,
		Markdown:  codec.MinutesToText(rec),
	}, nil
}

func (s *minutesServiceImpl) Get(ctx context.Context, sessionID string) (*MinutesReview, error) {
	approvalRec, recordID, err := s.loadWithExpiry(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rec, err := s.loadBody(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &MinutesReview{
		SessionID:     sessionID,
		RecordID:      recordID,
		Status:        approvalRec.Status,
		RevisionCount: approvalRec.RevisionCount,
		ExpiresAt:     approvalRec.ExpiresAt,
		Markdown:      codec.MinutesToText(rec),
	}, nil
}

func (s *minutesServiceImpl) HandleAction(ctx context.Context, params ActionParams) (*ActionResult, error) {
	approvalRec, _, err := s.loadWithExpiry(ctx, params.SessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := s.engine.HandleAction(models.KindMinutes, params.ActionID, approvalRec.Status, now)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", params.SessionID).
			Str("action_id", params.ActionID).
			Msg("rejected lifecycle action")
		return nil, err
	}

	err = s.store.setStatus(ctx, params.SessionID, models.KindMinutes, result.Status, params.ActorID, false, now)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("session_id", params.SessionID).
		Str("action_id", params.ActionID).
		Str("status", result.Status).
		Msg("applied lifecycle action")

	if result.Status == models.StatusApproved {
		s.materialize(ctx, params.SessionID)
	}

	return &ActionResult{
		SessionID: params.SessionID,
		Status:    result.Status,
		Message:   result.Message,
		Timestamp: result.Timestamp,
	}, nil
}

func (s *minutesServiceImpl) SubmitRevision(ctx context.Context, params RevisionParams) (*MinutesReview, error) {
	approvalRec, recordID, err := s.loadWithExpiry(ctx, params.SessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := s.engine.HandleAction(models.KindMinutes, approval.ActionSubmitRevision, approvalRec.Status, now)
	if err != nil {
		return nil, err
	}

	rec, err := codec.MinutesFromText(params.Markdown)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", params.SessionID).
			Msg("rejected unparseable revision")
		return nil, err
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal minutes: %w", err)
	}
	err = s.store.setBody(ctx, params.SessionID, models.KindMinutes, body)
	if err != nil {
		return nil, err
	}
	err = s.store.setStatus(ctx, params.SessionID, models.KindMinutes, result.Status, params.ActorID, true, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", params.SessionID).
		Int("revision_count", approvalRec.RevisionCount+1).
		Msg("applied minutes revision")
	return &MinutesReview{
		SessionID:     params.SessionID,
		RecordID:      recordID,
		Status:        result.Status,
		RevisionCount: approvalRec.RevisionCount + 1,
		ExpiresAt:     approvalRec.ExpiresAt,
		Markdown:      codec.MinutesToText(rec),
	}, nil
}

// loadWithExpiry reads the approval record and applies the lazy expiry rule:
// a pending record past its horizon is persisted as expired before being
// returned, so no caller ever observes stale pending state.
func (s *minutesServiceImpl) loadWithExpiry(ctx context.Context, sessionID string) (models.ApprovalRecord, string, error) {
	approvalRec, recordID, err := s.store.get(ctx, sessionID, models.KindMinutes)
	if err != nil {
		return approvalRec, "", err
	}

	now := time.Now()
	effective := s.engine.StatusAt(approvalRec, now)
	if effective != approvalRec.Status {
		err = s.store.setStatus(ctx, sessionID, models.KindMinutes, effective, "", false, now)
		if err != nil {
			return approvalRec, "", err
		}
		s.logger.Info().
			Str("session_id", sessionID).
			Msg("pending minutes expired")
		approvalRec.Status = effective
		approvalRec.UpdatedAt = now
	}

	return approvalRec, recordID, nil
}

func (s *minutesServiceImpl) loadBody(ctx context.Context, sessionID string) (models.MeetingRecord, error) {
	var rec models.MeetingRecord

	body, err := s.store.getBody(ctx, sessionID, models.KindMinutes)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(body, &rec)
	if err != nil {
		return rec, fmt.Errorf("unmarshal minutes: %w", err)
	}

	return rec, nil
}

// materialize hands the approved record downstream. The outcome is logged,
// never tracked; approval has already been persisted.
func (s *minutesServiceImpl) materialize(ctx context.Context, sessionID string) {
	rec, err := s.loadBody(ctx, sessionID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to load minutes for materialization")
		return
	}

	err = s.materializer.MaterializeMinutes(ctx, sessionID, rec)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to materialize minutes")
		return
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Msg("materialized approved minutes")
}
