package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// recordStore persists the approval-record/body pair. Both rows share the
// (session_id, kind) key; the pairing is never split across identifiers.
type recordStore struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func (s recordStore) insert(ctx context.Context, rec models.ApprovalRecord, recordID string, body []byte, transcript string) error {
	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer tx.Rollback(ctx)

	const insertRecordQuery = `
INSERT INTO approval_records (session_id,
                              kind,
                              record_id,
                              status,
                              revision_count,
                              actor_id,
                              created_at,
                              updated_at,
                              expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err = tx.Exec(
		ctx,
		insertRecordQuery,
		rec.SessionID,
		rec.Kind,
		recordID,
		rec.Status,
		rec.RevisionCount,
		rec.ActorID,
		rec.CreatedAt,
		rec.UpdatedAt,
		rec.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn().
				Str("session_id", rec.SessionID).
				Str("kind", string(rec.Kind)).
				Msg("session already has an active record")
			return ErrSessionAlreadyActive
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert approval record")
		return err
	}

	const insertBlobQuery = `
INSERT INTO record_blobs (session_id, kind, body, source_transcript)
VALUES ($1, $2, $3, $4)
`
	_, err = tx.Exec(
		ctx,
		insertBlobQuery,
		rec.SessionID,
		rec.Kind,
		body,
		transcript,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert record blob")
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit record insert")
		return err
	}

	s.logger.Debug().
		Str("session_id", rec.SessionID).
		Str("kind", string(rec.Kind)).
		Msg("inserted pending record")
	return nil
}

func (s recordStore) get(ctx context.Context, sessionID string, kind models.RecordKind) (models.ApprovalRecord, string, error) {
	rec := models.ApprovalRecord{
		SessionID: sessionID,
		Kind:      kind,
	}
	var recordID string

	const selectRecordQuery = `
SELECT record_id,
       status,
       revision_count,
       actor_id,
       created_at,
       updated_at,
       expires_at
FROM approval_records
WHERE session_id = $1 AND kind = $2
`
	err := s.pgPool.QueryRow(
		ctx,
		selectRecordQuery,
		sessionID,
		kind,
	).Scan(
		&recordID,
		&rec.Status,
		&rec.RevisionCount,
		&rec.ActorID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("session_id", sessionID).
				Str("kind", string(kind)).
				Msg("approval record not found")
			return rec, "", ErrSessionNotFound
		}

		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to select approval record")
		return rec, "", err
	}

	return rec, recordID, nil
}

func (s recordStore) getBody(ctx context.Context, sessionID string, kind models.RecordKind) ([]byte, error) {
	const selectBlobQuery = `
SELECT body
FROM record_blobs
WHERE session_id = $1 AND kind = $2
`
	var body []byte
	err := s.pgPool.QueryRow(
		ctx,
		selectBlobQuery,
		sessionID,
		kind,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}

		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to select record blob")
		return nil, err
	}

	return body, nil
}

func (s recordStore) setStatus(ctx context.Context, sessionID string, kind models.RecordKind, status, actorID string, bumpRevision bool, now time.Time) error {
	const updateStatusQuery = `
UPDATE approval_records
SET status = $1,
    actor_id = CASE WHEN $2 <> '' THEN $2 ELSE actor_id END,
    revision_count = revision_count + $3,
    updated_at = $4
WHERE session_id = $5 AND kind = $6
`
	bump := 0
	if bumpRevision {
		bump = 1
	}
	tag, err := s.pgPool.Exec(
		ctx,
		updateStatusQuery,
		status,
		actorID,
		bump,
		now,
		sessionID,
		kind,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to update approval status")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("kind", string(kind)).
		Str("status", status).
		Msg("updated approval status")
	return nil
}

func (s recordStore) setBody(ctx context.Context, sessionID string, kind models.RecordKind, body []byte) error {
	const updateBlobQuery = `
UPDATE record_blobs
SET body = $1
WHERE session_id = $2 AND kind = $3
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateBlobQuery,
		body,
		sessionID,
		kind,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to update record blob")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}
