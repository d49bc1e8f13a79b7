package repository

import (
	"context"
	"errors"
	"fmt"

	"devboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// endDateSuffix sorts above every character that can follow the date portion
// of an ISO-8601 timestamp, so "date <= endDate+suffix" takes in the whole
// end day. Only valid under byte-order comparison; the date column is
// COLLATE "C" for exactly this reason.
const endDateSuffix = "\uf8ff"

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns the user's tasks filtered by completion status and an
// inclusive date range. Empty bounds mean unbounded.
func (r *TaskRepository) List(ctx context.Context, email, status, startDate, endDate string) ([]domain.Task, error) {
	query := `SELECT id, text, completed, date FROM tasks WHERE user_email = $1`
	args := []any{email}

	switch status {
	case domain.StatusCompleted:
		query += ` AND completed = TRUE`
	case domain.StatusPending:
		query += ` AND completed = FALSE`
	}

	if startDate != "" {
		args = append(args, startDate)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if endDate != "" {
		args = append(args, endDate+endDateSuffix)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}

	query += ` ORDER BY date`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.Date); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, email string, t *domain.Task) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tasks (id, user_email, text, completed, date) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, email, t.Text, t.Completed, t.Date)
	return err
}

// Toggle flips the completed flag and returns the new value. The task must
// belong to the given user.
func (r *TaskRepository) Toggle(ctx context.Context, email, id string) (bool, error) {
	var completed bool
	err := r.db.QueryRow(ctx,
		`UPDATE tasks SET completed = NOT completed WHERE id = $1 AND user_email = $2 RETURNING completed`,
		id, email).Scan(&completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	return completed, err
}
