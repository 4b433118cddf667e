package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"english-placement/internal/domain"
	"english-placement/internal/repository/models"
	"english-placement/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id "id",
		question "question",
		correct "correct",
		distractor1 "distractor1",
		distractor2 "distractor2",
		distractor3 "distractor3",
		quick3 "quick3",
		level6 "level6",
		created_at "created_at",
		updated_at "updated_at"`

// labelColumns whitelists the column holding each scheme's raw label.
var labelColumns = map[domain.Scheme]string{
	domain.SchemeQuick3: "quick3",
	domain.SchemeCEFR6:  "level6",
}

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
	tx *TransactionManagerAdapter
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) *QuestionDatabaseAdapter {
	return &QuestionDatabaseAdapter{db: db, tx: NewTransactionManagerAdapter(db)}
}

// GetQuestionByID implements domain.QuestionBank
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var row models.Question
	query := `SELECT ` + questionColumns + `
	FROM english_test_questions
	WHERE id = :1`

	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// SampleQuestions implements domain.QuestionBank. Sampling happens in the
// database through DBMS_RANDOM so only n rows cross the wire.
func (a *QuestionDatabaseAdapter) SampleQuestions(ctx context.Context, filter domain.BandFilter, n int) ([]*domain.Question, error) {
	if n <= 0 || len(filter.Labels) == 0 {
		return []*domain.Question{}, nil
	}
	query, args, err := buildSampleQuery(filter, n)
	if err != nil {
		return nil, err
	}

	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}

	out := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuestion(&rows[i]))
	}
	return out, nil
}

func buildSampleQuery(filter domain.BandFilter, n int) (string, []interface{}, error) {
	col, ok := labelColumns[filter.Scheme]
	if !ok {
		return "", nil, fmt.Errorf("unknown band scheme %q", filter.Scheme)
	}

	placeholders := make([]string, 0, len(filter.Labels))
	args := make([]interface{}, 0, len(filter.Labels)+1)
	for i, l := range filter.Labels {
		placeholders = append(placeholders, fmt.Sprintf(":%d", i+1))
		args = append(args, l)
	}
	args = append(args, n)

	query := fmt.Sprintf(`SELECT %s
	FROM english_test_questions
	WHERE question IS NOT NULL
	AND correct IS NOT NULL
	AND LOWER(REPLACE(REPLACE(TRIM(%s), ' ', ''), '-', '')) IN (%s)
	ORDER BY DBMS_RANDOM.VALUE
	FETCH FIRST :%d ROWS ONLY`, questionColumns, col, strings.Join(placeholders, ", "), len(filter.Labels)+1)
	return query, args, nil
}

// UpsertQuestion implements domain.QuestionRepository. Questions are matched on prompt text.
func (a *QuestionDatabaseAdapter) UpsertQuestion(ctx context.Context, q *domain.Question) (bool, error) {
	m := toModelQuestion(q)
	if m == nil {
		return false, fmt.Errorf("cannot save nil question")
	}

	created := false
	err := a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, a.db)
		now := time.Now()

		var existingID string
		err := exec.GetContext(ctx, &existingID,
			`SELECT id "id" FROM english_test_questions WHERE question = :1 FETCH FIRST 1 ROWS ONLY`, m.Question)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			m.ID = util.NewULID()
			m.CreatedAt = now
			m.UpdatedAt = now
			_, err = exec.ExecContext(ctx, `INSERT INTO english_test_questions (
				id, question, correct, distractor1, distractor2, distractor3,
				quick3, level6, created_at, updated_at
			) VALUES (
				:1, :2, :3, :4, :5, :6, :7, :8, :9, :10
			)`,
				m.ID, m.Question, m.Correct, m.Distractor1, m.Distractor2, m.Distractor3,
				m.Quick3, m.Level6, m.CreatedAt, m.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert question: %w", err)
			}
			created = true
		case err != nil:
			return fmt.Errorf("failed to look up question: %w", err)
		default:
			m.ID = existingID
			m.UpdatedAt = now
			_, err = exec.ExecContext(ctx, `UPDATE english_test_questions SET
				correct = :1,
				distractor1 = :2,
				distractor2 = :3,
				distractor3 = :4,
				quick3 = :5,
				level6 = :6,
				updated_at = :7
			WHERE id = :8`,
				m.Correct, m.Distractor1, m.Distractor2, m.Distractor3,
				m.Quick3, m.Level6, m.UpdatedAt, m.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to update question %s: %w", m.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	q.ID = m.ID
	q.UpdatedAt = m.UpdatedAt
	if created {
		q.CreatedAt = m.CreatedAt
	}
	return created, nil
}

// CountQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountQuestions(ctx context.Context) (int, error) {
	var n int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM english_test_questions`); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}
