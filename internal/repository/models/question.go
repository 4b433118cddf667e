package models

import (
	"database/sql"
	"time"
)

// Question is a row of the english_test_questions table.
// Oracle stores empty strings as NULL, so every optional text column is nullable.
type Question struct {
	ID          string         `db:"id"`
	Question    string         `db:"question"`
	Correct     string         `db:"correct"`
	Distractor1 sql.NullString `db:"distractor1"`
	Distractor2 sql.NullString `db:"distractor2"`
	Distractor3 sql.NullString `db:"distractor3"`
	Quick3      sql.NullString `db:"quick3"`
	Level6      sql.NullString `db:"level6"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// TableName returns the table backing Question.
func (Question) TableName() string {
	return "english_test_questions"
}
