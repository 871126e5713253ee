package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-minutes/internal/approval"
	"github.com/adanyl0v/go-minutes/internal/codec"
	"github.com/adanyl0v/go-minutes/internal/dedup"
	"github.com/adanyl0v/go-minutes/internal/generation"
	"github.com/adanyl0v/go-minutes/internal/materialize"
	"github.com/adanyl0v/go-minutes/internal/models"
	"github.com/adanyl0v/go-minutes/internal/mutation"
	"github.com/adanyl0v/go-minutes/internal/validate"
)

type taskServiceImpl struct {
	logger       zerolog.Logger
	store        recordStore
	engine       approval.Engine
	extractor    generation.TaskExtractor
	materializer materialize.Materializer
	mutations    MutationService
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	extractor generation.TaskExtractor,
	materializer materialize.Materializer,
	mutations MutationService,
) TaskService {
	return &taskServiceImpl{
		logger:       logger,
		store:        recordStore{logger: logger, pgPool: pgPool},
		engine:       approval.NewEngine(),
		extractor:    extractor,
		materializer: materializer,
		mutations:    mutations,
	}
}

func (s *taskServiceImpl) Extract(ctx context.Context, sessionID string) (*BatchReview, error) {
	minutesRec, recordID, err := s.store.get(ctx, sessionID, models.KindMinutes)
	if err != nil {
		return nil, err
	}
	if minutesRec.Status != models.StatusApproved {
		s.logger.Warn().
			Str("session_id", sessionID).
			Str("status", minutesRec.Status).
			Msg("extraction requested before minutes approval")
		return nil, ErrNoApprovedMinutes
	}

	body, err := s.store.getBody(ctx, sessionID, models.KindMinutes)
	if err != nil {
		return nil, err
	}
	var minutes models.MeetingRecord
	err = json.Unmarshal(body, &minutes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal minutes: %w", err)
	}

	// A failed extraction degrades to an empty, still-valid batch; the
	// reviewer sees "no tasks found" rather than an error.
	tasks, err := s.extractor.Extract(ctx, codec.MinutesToText(minutes))
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("extraction failed, continuing with empty batch")
		tasks = nil
	}

	now := time.Now()
	batch := models.TaskBatch{
		SessionID:      sessionID,
		SourceRecordID: recordID,
		Tasks:          dedup.Merge(tasks),
		Status:         models.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	dropped := len(batch.Tasks)
	batch = validate.Filter(batch)
	dropped -= len(batch.Tasks)
	if dropped > 0 {
		s.logger.Info().
			Int("dropped", dropped).
			Str("session_id", sessionID).
			Msg("filtered invalid tasks")
	}

	batchBody, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("marshal batch: %w", err)
	}
	approvalRec := models.ApprovalRecord{
		SessionID: sessionID,
		Kind:      models.KindTasks,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(models.ApprovalTTL),
	}
	err = s.store.insert(ctx, approvalRec, recordID, batchBody, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Int("count", len(batch.Tasks)).
		Msg("created pending task batch")
	return s.review(batch, approvalRec), nil
}

func (s *taskServiceImpl) Get(ctx context.Context, sessionID string) (*BatchReview, error) {
	approvalRec, _, err := s.store.get(ctx, sessionID, models.KindTasks)
	if err != nil {
		return nil, err
	}
	batch, err := s.loadBatch(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.review(batch, approvalRec), nil
}

func (s *taskServiceImpl) HandleAction(ctx context.Context, params ActionParams) (*ActionResult, error) {
	approvalRec, _, err := s.store.get(ctx, params.SessionID, models.KindTasks)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := s.engine.HandleAction(models.KindTasks, params.ActionID, approvalRec.Status, now)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", params.SessionID).
			Str("action_id", params.ActionID).
			Msg("rejected lifecycle action")
		return nil, err
	}

	bump := params.ActionID == approval.ActionSubmitTaskRevision
	err = s.store.setStatus(ctx, params.SessionID, models.KindTasks, result.Status, params.ActorID, bump, now)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("session_id", params.SessionID).
		Str("action_id", params.ActionID).
		Str("status", result.Status).
		Msg("applied lifecycle action")

	if result.Status == models.StatusApproved {
		s.materialize(ctx, params.SessionID, result.Status)
	}

	return &ActionResult{
		SessionID: params.SessionID,
		Status:    result.Status,
		Message:   result.Message,
		Timestamp: result.Timestamp,
	}, nil
}

func (s *taskServiceImpl) AddTask(ctx context.Context, params AddTaskParams) (*BatchReview, error) {
	approvalRec, _, err := s.store.get(ctx, params.SessionID, models.KindTasks)
	if err != nil {
		return nil, err
	}
	batch, err := s.loadBatch(ctx, params.SessionID)
	if err != nil {
		return nil, err
	}
	batch.Status = approvalRec.Status

	if verr := validate.Check(params.Task); verr != nil {
		return nil, verr
	}

	updated, err := approval.AddItem(batch, params.Task, time.Now())
	if err != nil {
		return nil, err
	}
	err = s.saveBatch(ctx, params.SessionID, updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", params.SessionID).
		Str("task_id", params.Task.ID).
		Msg("added task")
	return s.review(updated, approvalRec), nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) (*BatchReview, error) {
	approvalRec, _, err := s.store.get(ctx, params.SessionID, models.KindTasks)
	if err != nil {
		return nil, err
	}
	batch, err := s.loadBatch(ctx, params.SessionID)
	if err != nil {
		return nil, err
	}
	batch.Status = approvalRec.Status

	updated, err := approval.DeleteItem(batch, params.TaskID, time.Now())
	if err != nil {
		return nil, err
	}
	err = s.saveBatch(ctx, params.SessionID, updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", params.SessionID).
		Str("task_id", params.TaskID).
		Msg("deleted task")
	return s.review(updated, approvalRec), nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*BatchReview, error) {
	approvalRec, _, err := s.store.get(ctx, params.SessionID, models.KindTasks)
	if err != nil {
		return nil, err
	}
	batch, err := s.loadBatch(ctx, params.SessionID)
	if err != nil {
		return nil, err
	}
	batch.Status = approvalRec.Status

	var original models.Task
	found := false
	for _, task := range batch.Tasks {
		if task.ID == params.TaskID {
			original = task
			found = true
			break
		}
	}
	if !found {
		return nil, approval.ErrTaskNotFound
	}

	edited := original
	if params.Title != nil {
		edited.Title = *params.Title
	}
	if params.Description != nil {
		edited.Description = *params.Description
	}
	if params.Assignee != nil {
		edited.Assignee = *params.Assignee
	}
	if params.DueDate != nil {
		edited.DueDate = *params.DueDate
	}
	if params.Priority != nil {
		edited.Priority = *params.Priority
	}

	if verr := validate.Check(edited); verr != nil {
		return nil, verr
	}

	now := time.Now()
	updated, err := approval.ReplaceItem(batch, edited, now)
	if err != nil {
		return nil, err
	}
	err = s.saveBatch(ctx, params.SessionID, updated)
	if err != nil {
		return nil, err
	}

	// Every accepted edit lands in the mutation log; a logging failure
	// must not undo the edit itself.
	records := mutation.Diff(params.SessionID, params.ActorID, original, edited, now)
	if len(records) > 0 {
		if err := s.mutations.Append(ctx, records); err != nil {
			s.logger.Error().
				Err(err).
				Str("session_id", params.SessionID).
				Msg("failed to append mutation records")
		}
	}

	s.logger.Info().
		Str("session_id", params.SessionID).
		Str("task_id", params.TaskID).
		Int("mutations", len(records)).
		Msg("updated task")
	return s.review(updated, approvalRec), nil
}

// review renders the batch for the review surface. The approval record is
// authoritative for status and revision count; the status stored inside the
// body is overwritten on render, never trusted.
func (s *taskServiceImpl) review(batch models.TaskBatch, rec models.ApprovalRecord) *BatchReview {
	batch.Status = rec.Status
	return &BatchReview{
		SessionID:      batch.SessionID,
		SourceRecordID: batch.SourceRecordID,
		Status:         rec.Status,
		RevisionCount:  rec.RevisionCount,
		TaskCount:      len(batch.Tasks),
		Markdown:       codec.BatchToText(batch),
	}
}

func (s *taskServiceImpl) loadBatch(ctx context.Context, sessionID string) (models.TaskBatch, error) {
	var batch models.TaskBatch

	body, err := s.store.getBody(ctx, sessionID, models.KindTasks)
	if err != nil {
		return batch, err
	}
	err = json.Unmarshal(body, &batch)
	if err != nil {
		return batch, fmt.Errorf("unmarshal batch: %w", err)
	}

	return batch, nil
}

func (s *taskServiceImpl) saveBatch(ctx context.Context, sessionID string, batch models.TaskBatch) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	return s.store.setBody(ctx, sessionID, models.KindTasks, body)
}

func (s *taskServiceImpl) materialize(ctx context.Context, sessionID, status string) {
	batch, err := s.loadBatch(ctx, sessionID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to load batch for materialization")
		return
	}
	batch.Status = status

	err = s.materializer.MaterializeTasks(ctx, batch)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to materialize task batch")
		return
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Int("count", len(batch.Tasks)).
		Msg("materialized approved task batch")
}
