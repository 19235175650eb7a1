package message

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, m *Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, name, email, subject, message, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.Name, m.Email, m.Subject, m.Message, m.Status)
	return err
}

func scanMessage(scan func(...interface{}) error) (*Message, error) {
	m := &Message{}
	var reply sql.NullString
	err := scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &reply, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Reply = reply.String
	return m, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Message, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrMessageNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,name,email,subject,message,status,reply,created_at
		FROM messages WHERE id=$1`, uid)
	return scanMessage(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]*Message, error) {
	query := `SELECT id,name,email,subject,message,status,reply,created_at FROM messages`
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

	var messages []*Message
	for rows.Next() {
		m, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status MessageStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrMessageNotFound
	}
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET status=$1 WHERE id=$2`, status, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *postgresRepo) SetReply(ctx context.Context, id string, reply string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrMessageNotFound
	}
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET reply=$1 WHERE id=$2`, reply, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrMessageNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMessageNotFound
	}
	return nil
}
