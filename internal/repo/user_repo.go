package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	dom "github.com/savansr/task-management-app/internal/domain"
	"github.com/savansr/task-management-app/internal/errs"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, name, email, passwordHash string) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db PgxPool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db PgxPool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Create inserts a new user and returns it. A duplicate email maps to errs.ErrEmailTaken.
func (r *PGUserRepo) Create(ctx context.Context, name, email, passwordHash string) (dom.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, name, email, passwordHash).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return dom.User{}, errs.ErrEmailTaken
	}
	return u, err
}

// GetByEmail returns the user with the given email, errs.ErrNotFound if absent.
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, errs.ErrNotFound
	}
	return u, err
}

// GetByID returns the user with the given ID, errs.ErrNotFound if absent.
func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, errs.ErrNotFound
	}
	return u, err
}
