package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	dom "github.com/savansr/task-management-app/internal/domain"
	"github.com/savansr/task-management-app/internal/errs"
)

// TaskRepo provides task persistence. Lookups are by bare ID so the
// service layer can tell "does not exist" apart from "not yours".
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]dom.Task, error)
	Update(ctx context.Context, id int64, patch dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
}

type PGTaskRepo struct {
	db PgxPool
}

func NewPGTaskRepo(db PgxPool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (owner_id, title, description, priority, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, title, description, priority, status, created_at, updated_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, t.OwnerID, t.Title, t.Description, t.Priority, t.Status).Scan(
		&out.ID, &out.OwnerID, &out.Title, &out.Description, &out.Priority, &out.Status,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	query := `
		SELECT id, owner_id, title, description, priority, status, created_at, updated_at
		FROM tasks WHERE id = $1`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Task{}, errs.ErrNotFound
	}
	return t, err
}

// ListByOwner returns the owner's tasks, newest first. Rows created in the
// same instant keep insertion order (ascending id), so the listing is
// deterministic for a fixed data set.
func (r *PGTaskRepo) ListByOwner(ctx context.Context, ownerID int64) ([]dom.Task, error) {
	query := `
		SELECT id, owner_id, title, description, priority, status, created_at, updated_at
		FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC, id ASC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority, &t.Status,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update overwrites the mutable columns. owner_id is deliberately not in
// the SET list: ownership never changes after creation.
func (r *PGTaskRepo) Update(ctx context.Context, id int64, patch dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $2, description = $3, priority = $4, status = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, owner_id, title, description, priority, status, created_at, updated_at`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, patch.Title, patch.Description, patch.Priority, patch.Status).Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Task{}, errs.ErrNotFound
	}
	return t, err
}

// Delete removes the row permanently. errs.ErrNotFound if nothing matched.
func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
