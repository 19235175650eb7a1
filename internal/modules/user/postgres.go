package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_users (id, email, password_hash, name)
		VALUES ($1,$2,$3,$4)`,
		u.ID, u.Email, u.PasswordHash, u.Name)
	return err
}

func scanUser(scan func(...interface{}) error) (*User, error) {
	u := &User{}
	err := scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id,email,password_hash,name,created_at,updated_at
		FROM admin_users WHERE email=$1`, email)
	return scanUser(row.Scan)
}

func (r *postgresRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,email,password_hash,name,created_at,updated_at
		FROM admin_users WHERE id=$1`, uid)
	return scanUser(row.Scan)
}
