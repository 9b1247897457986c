package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type PgTaskRepository struct {
	db *sql.DB
}

func NewPgTaskRepository(db *sql.DB) *PgTaskRepository {
	return &PgTaskRepository{db: db}
}

// Create inserts the task row and its label links in one transaction.
func (r *PgTaskRepository) Create(ctx context.Context, task *TaskRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO tasks (name, description, task_status_id, author_id, executor_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		task.Name, task.Description, task.TaskStatusID, task.AuthorID, task.ExecutorID,
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating task: %w", translatePgError(err))
	}

	if err := syncTaskLabels(ctx, tx, task.ID, task.LabelIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing task create: %w", err)
	}
	return nil
}

func (r *PgTaskRepository) GetByID(ctx context.Context, id int) (TaskRecord, error) {
	var task TaskRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, task_status_id, author_id, executor_id, created_at
		 FROM tasks WHERE id = $1`, id,
	).Scan(&task.ID, &task.Name, &task.Description, &task.TaskStatusID, &task.AuthorID, &task.ExecutorID, &task.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return TaskRecord{}, notFoundTask(id)
	}
	if err != nil {
		return TaskRecord{}, fmt.Errorf("fetching task %d: %w", id, err)
	}

	task.LabelIDs, err = r.labelIDs(ctx, id)
	if err != nil {
		return TaskRecord{}, err
	}
	return task, nil
}

func (r *PgTaskRepository) Find(ctx context.Context, filter TaskFilter) ([]TaskRecord, error) {
	query := `SELECT DISTINCT t.id, t.name, t.description, t.task_status_id, t.author_id, t.executor_id, t.created_at
		FROM tasks t`
	var conds []string
	var args []interface{}

	if filter.LabelID != nil {
		query += ` JOIN task_label tl ON tl.task_id = t.id`
		args = append(args, *filter.LabelID)
		conds = append(conds, fmt.Sprintf("tl.label_id = $%d", len(args)))
	}
	if filter.TaskStatusID != nil {
		args = append(args, *filter.TaskStatusID)
		conds = append(conds, fmt.Sprintf("t.task_status_id = $%d", len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, fmt.Sprintf("t.author_id = $%d", len(args)))
	}
	if filter.ExecutorID != nil {
		args = append(args, *filter.ExecutorID)
		conds = append(conds, fmt.Sprintf("t.executor_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer rows.Close()

	tasks := []TaskRecord{}
	for rows.Next() {
		var task TaskRecord
		if err := rows.Scan(&task.ID, &task.Name, &task.Description, &task.TaskStatusID, &task.AuthorID, &task.ExecutorID, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating over tasks: %w", err)
	}

	for i := range tasks {
		tasks[i].LabelIDs, err = r.labelIDs(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// Update replaces the mutable columns and rebuilds the label links in one
// transaction. Author and created_at are never touched here.
func (r *PgTaskRepository) Update(ctx context.Context, task *TaskRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE tasks SET name = $1, description = $2, task_status_id = $3, executor_id = $4
		 WHERE id = $5`,
		task.Name, task.Description, task.TaskStatusID, task.ExecutorID, task.ID)
	if err != nil {
		return fmt.Errorf("updating task %d: %w", task.ID, translatePgError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundTask(task.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_label WHERE task_id = $1`, task.ID); err != nil {
		return fmt.Errorf("clearing task labels: %w", err)
	}
	if err := syncTaskLabels(ctx, tx, task.ID, task.LabelIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing task update: %w", err)
	}
	return nil
}

func (r *PgTaskRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, translatePgError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundTask(id)
	}
	return nil
}

func (r *PgTaskRepository) CountByStatus(ctx context.Context, statusID int) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE task_status_id = $1`, statusID)
}

func (r *PgTaskRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE author_id = $1 OR executor_id = $1`, userID)
}

func (r *PgTaskRepository) CountByLabel(ctx context.Context, labelID int) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM task_label WHERE label_id = $1`, labelID)
}

func (r *PgTaskRepository) count(ctx context.Context, query string, arg int) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting task references: %w", err)
	}
	return n, nil
}

func (r *PgTaskRepository) labelIDs(ctx context.Context, taskID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT label_id FROM task_label WHERE task_id = $1 ORDER BY label_id ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("fetching task labels: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning task label: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating over task labels: %w", err)
	}
	return ids, nil
}

func syncTaskLabels(ctx context.Context, tx *sql.Tx, taskID int, labelIDs []int) error {
	for _, labelID := range labelIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO task_label (task_id, label_id) VALUES ($1, $2)`, taskID, labelID)
		if err != nil {
			return fmt.Errorf("linking label %d to task %d: %w", labelID, taskID, translatePgError(err))
		}
	}
	return nil
}
