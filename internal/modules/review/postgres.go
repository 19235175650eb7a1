package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, rv *Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews
		  (id, product_id, customer_name, customer_email, rating, comment, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rv.ID, rv.ProductID, rv.CustomerName, rv.CustomerEmail, rv.Rating, rv.Comment, rv.Status)
	return err
}

func scanReview(scan func(...interface{}) error) (*Review, error) {
	rv := &Review{}
	err := scan(&rv.ID, &rv.ProductID, &rv.CustomerName, &rv.CustomerEmail,
		&rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrReviewNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,product_id,customer_name,customer_email,rating,comment,status,created_at
		FROM reviews WHERE id=$1`, uid)
	return scanReview(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]*Review, error) {
	query := `SELECT id,product_id,customer_name,customer_email,rating,comment,status,created_at
	          FROM reviews`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		rv, err := scanReview(rows.Scan)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status ReviewStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrReviewNotFound
	}
	res, err := r.db.ExecContext(ctx, `UPDATE reviews SET status=$1 WHERE id=$2`, status, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrReviewNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
