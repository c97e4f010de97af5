package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, is_active, last_login_at, login_count, created_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &lastLogin, &u.LoginCount, &u.CreatedOn)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedOn = time.Now()
	query := `INSERT INTO users (id, name, email, password_hash, role, is_active, login_count, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive, u.LoginCount, u.CreatedOn)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY last_login_at DESC NULLS LAST`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $1, login_count = login_count + 1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}

func (r *userRepository) GetStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	stats := &domain.UserStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM borrowers WHERE owner_id = $1 AND deleted = FALSE`, userID).
		Scan(&stats.BorrowerCount)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM interest_collections WHERE owner_id = $1`, userID).
		Scan(&stats.CollectionCount)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM interest_collections WHERE owner_id = $1 AND status = 'pending'`, userID).
		Scan(&stats.PendingCollections)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (total, active, admins int32, err error) {
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE is_active),
	                 count(*) FILTER (WHERE role = 'admin')
	          FROM users`
	err = r.db.QueryRowContext(ctx, query).Scan(&total, &active, &admins)
	return total, active, admins, err
}

func (r *userRepository) CountLoginsSince(ctx context.Context, since time.Time) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM users WHERE last_login_at >= $1`, since).Scan(&count)
	return count, err
}
