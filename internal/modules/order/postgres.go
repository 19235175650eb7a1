package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	products, err := json.Marshal(o.Products)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders
		  (id, customer_name, customer_email, products, total, status, shipping_address)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.CustomerName, o.CustomerEmail, products, o.Total, o.Status, o.ShippingAddress)
	return err
}

func scanOrder(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	var products []byte
	err := scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &products,
		&o.Total, &o.Status, &o.ShippingAddress, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(products, &o.Products); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,customer_name,customer_email,products,total,status,shipping_address,created_at
		FROM orders WHERE id=$1`, uid)
	return scanOrder(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]*Order, error) {
	query := `SELECT id,customer_name,customer_email,products,total,status,shipping_address,created_at
	          FROM orders`
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

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrOrderNotFound
	}
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
