package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-minutes/internal/models"
)

type mutationServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewMutationService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) MutationService {
	return &mutationServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *mutationServiceImpl) Append(ctx context.Context, records []models.MutationRecord) error {
	if len(records) == 0 {
		return nil
	}

	const insertMutationQuery = `
INSERT INTO mutation_log (id,
                          session_id,
                          task_id,
                          actor_id,
                          type,
                          original,
                          modified,
                          created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			insertMutationQuery,
			rec.ID,
			rec.SessionID,
			rec.TaskID,
			rec.ActorID,
			rec.Type,
			rec.Original,
			rec.Modified,
			rec.CreatedAt,
		)
	}

	err := s.pgPool.SendBatch(ctx, batch).Close()
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("count", len(records)).
			Msg("failed to append mutation records")
		return err
	}

	s.logger.Debug().
		Int("count", len(records)).
		Str("session_id", records[0].SessionID).
		Msg("appended mutation records")
	return nil
}

func (s *mutationServiceImpl) ListBySession(ctx context.Context, sessionID string) ([]models.MutationRecord, error) {
	const selectMutationsQuery = `
SELECT id,
       task_id,
       actor_id,
       type,
       original,
       modified,
       created_at
FROM mutation_log
WHERE session_id = $1
ORDER BY created_at
`
	rows, err := s.pgPool.Query(
		ctx,
		selectMutationsQuery,
		sessionID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to select mutation records")
		return nil, err
	}
	defer rows.Close()

	var records []models.MutationRecord
	for rows.Next() {
		rec := models.MutationRecord{SessionID: sessionID}
		err = rows.Scan(
			&rec.ID,
			&rec.TaskID,
			&rec.ActorID,
			&rec.Type,
			&rec.Original,
			&rec.Modified,
			&rec.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan mutation record")
			return nil, err
		}
		records = append(records, rec)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	return records, nil
}

func (s *mutationServiceImpl) CountByType(ctx context.Context, actorID string) (map[models.MutationType]int, error) {
	const countByTypeQuery = `
SELECT type, COUNT(*)
FROM mutation_log
WHERE actor_id = $1
GROUP BY type
`
	rows, err := s.pgPool.Query(
		ctx,
		countByTypeQuery,
		actorID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("actor_id", actorID).
			Msg("failed to count mutation records")
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.MutationType]int)
	for rows.Next() {
		var typ models.MutationType
		var count int
		err = rows.Scan(&typ, &count)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan mutation count")
			return nil, err
		}
		counts[typ] = count
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	return counts, nil
}
