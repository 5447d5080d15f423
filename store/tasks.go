package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo-api-v2/api"
)

// TaskStore persists tasks. Every statement filters by user_id, so a task
// owned by someone else behaves exactly like a missing one.
type TaskStore struct {
	DB *sql.DB
}

const taskColumns = "id, user_id, title, description, status, created_at, updated_at"

func scanTask(row *sql.Row) (api.Task, error) {
	var t api.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return api.Task{}, ErrNotFound
		}
		return api.Task{}, fmt.Errorf("scan task: %w", err)
	}
	return t, nil
}

// Create inserts a task for userID with the default Incomplete status.
func (s *TaskStore) Create(ctx context.Context, userID int, title string, description *string) (api.Task, error) {
	now := time.Now().UTC()
	t := api.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      api.StatusIncomplete,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO tasks (user_id, title, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userID, title, description, t.Status, now, now,
	).Scan(&t.ID)
	if err != nil {
		return api.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// Get fetches a single task owned by userID.
func (s *TaskStore) Get(ctx context.Context, userID, taskID int) (api.Task, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND id = $2`,
		userID, taskID,
	)
	return scanTask(row)
}

// List returns one page of userID's tasks, newest first, plus the total
// count across all pages. The id tiebreak keeps pagination deterministic
// for tasks created within the same instant.
func (s *TaskStore) List(ctx context.Context, userID, page, perPage int) ([]api.Task, int, error) {
	var total int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	offset := (page - 1) * perPage
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, perPage, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []api.Task{}
	for rows.Next() {
		var t api.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, total, nil
}

// Update applies the non-nil fields of a partial update and returns the
// resulting task. updated_at advances whenever a field is supplied; an
// empty patch mutates nothing and hands back the current row.
func (s *TaskStore) Update(ctx context.Context, userID, taskID int, title, description *string) (api.Task, error) {
	if title == nil && description == nil {
		return s.Get(ctx, userID, taskID)
	}

	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)
	if title != nil {
		args = append(args, *title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if description != nil {
		args = append(args, *description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, userID, taskID)
	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE user_id = $%d AND id = $%d RETURNING `+taskColumns,
		strings.Join(sets, ", "), len(args)-1, len(args),
	)
	return scanTask(s.DB.QueryRowContext(ctx, query, args...))
}

// SetStatus updates only the completion status.
func (s *TaskStore) SetStatus(ctx context.Context, userID, taskID int, status api.TaskStatus) (api.Task, error) {
	row := s.DB.QueryRowContext(ctx,
		`UPDATE tasks SET status = $1, updated_at = $2 WHERE user_id = $3 AND id = $4 RETURNING `+taskColumns,
		status, time.Now().UTC(), userID, taskID,
	)
	return scanTask(row)
}

// Delete removes a task owned by userID.
func (s *TaskStore) Delete(ctx context.Context, userID, taskID int) error {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = $1 AND id = $2`,
		userID, taskID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
