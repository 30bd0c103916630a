package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/infra/postgres"
)

// ResultRepository stores completed quiz results in PostgreSQL.
type ResultRepository struct {
	db         postgres.DBTX
	transactor *postgres.Transactor
}

// NewResultRepository creates a ResultRepository. Writes go through transactor
// so a result and its answers are stored atomically.
func NewResultRepository(db postgres.DBTX, transactor *postgres.Transactor) *ResultRepository {
	return &ResultRepository{db: db, transactor: transactor}
}

// Save inserts the result together with its answers.
func (r *ResultRepository) Save(ctx context.Context, result *entities.QuizResult) error {
	return r.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO quiz_results (
				owner, session_id, difficulty, topics,
				score, total, percentage, started_at, completed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`

		var id int64
		err := tx.QueryRow(
			ctx,
			query,
			result.Owner,
			result.SessionID,
			string(result.Difficulty),
			result.Topics,
			result.Score,
			result.Total,
			result.Percentage,
			result.StartedAt,
			result.CompletedAt,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert quiz result: %w", err)
		}

		batch := &pgx.Batch{}
		for i, a := range result.Answers {
			batch.Queue(`
				INSERT INTO quiz_answers (
					result_id, question_order, question_id,
					selected_option, correct_answer, is_correct, answered_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, id, i, a.QuestionID, a.SelectedOption, a.CorrectAnswer, a.IsCorrect, a.AnsweredAt)
		}

		if batch.Len() > 0 {
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("insert quiz answers: %w", err)
			}
		}

		result.ID = id
		return nil
	})
}

// ListByOwner returns the owner's results, newest first.
// A limit of zero or less returns all of them.
func (r *ResultRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]entities.QuizResult, error) {
	query := `
		SELECT id, owner, session_id, difficulty, topics,
		       score, total, percentage, started_at, completed_at
		FROM quiz_results
		WHERE owner = $1
		ORDER BY completed_at DESC, id DESC
		LIMIT NULLIF($2::int, 0)
	`

	if limit < 0 {
		limit = 0
	}

	rows, err := r.db.Query(ctx, query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	var (
		results []entities.QuizResult
		ids     []int64
	)
	for rows.Next() {
		var (
			res        entities.QuizResult
			difficulty string
		)
		err = rows.Scan(
			&res.ID,
			&res.Owner,
			&res.SessionID,
			&difficulty,
			&res.Topics,
			&res.Score,
			&res.Total,
			&res.Percentage,
			&res.StartedAt,
			&res.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		res.Difficulty = entities.Difficulty(difficulty)
		results = append(results, res)
		ids = append(ids, res.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}

	if len(ids) == 0 {
		return results, nil
	}

	answers, err := r.answersByResult(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Answers = answers[results[i].ID]
	}

	return results, nil
}

func (r *ResultRepository) answersByResult(ctx context.Context, ids []int64) (map[int64][]entities.QuizAnswer, error) {
	query := `
		SELECT result_id, question_id, selected_option, correct_answer, is_correct, answered_at
		FROM quiz_answers
		WHERE result_id = ANY($1)
		ORDER BY result_id, question_order
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list quiz answers: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]entities.QuizAnswer, len(ids))
	for rows.Next() {
		var (
			resultID int64
			a        entities.QuizAnswer
		)
		err = rows.Scan(
			&resultID,
			&a.QuestionID,
			&a.SelectedOption,
			&a.CorrectAnswer,
			&a.IsCorrect,
			&a.AnsweredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz answer: %w", err)
		}
		out[resultID] = append(out[resultID], a)
	}

	return out, rows.Err()
}
