package dashboard

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		MonthlyRevenue: []MonthRevenue{},
		TopProducts:    []TopProduct{},
	}

	// Cancelled orders never count toward sales or revenue.
	err := r.db.QueryRowContext(ctx, `
		SELECT
		  COALESCE(SUM(total) FILTER (WHERE status <> 'cancelled'), 0),
		  COUNT(*),
		  COUNT(*) FILTER (WHERE status = 'pending')
		FROM orders`).Scan(&stats.TotalRevenue, &stats.TotalOrders, &stats.PendingOrders)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT
		  COUNT(*),
		  COUNT(*) FILTER (WHERE status = 'active' AND stock < $1)
		FROM products`, lowStockThreshold).Scan(&stats.TotalProducts, &stats.LowStockCount)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM((line->>'quantity')::int), 0)
		FROM orders, jsonb_array_elements(products) AS line
		WHERE status <> 'cancelled'`).Scan(&stats.TotalSales)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       COALESCE(SUM(total), 0)
		FROM orders
		WHERE status <> 'cancelled'
		  AND created_at >= date_trunc('month', NOW()) - INTERVAL '5 months'
		GROUP BY 1 ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, err
		}
		stats.MonthlyRevenue = append(stats.MonthlyRevenue, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topRows, err := r.db.QueryContext(ctx, `
		SELECT line->>'name', SUM((line->>'quantity')::int) AS sales
		FROM orders, jsonb_array_elements(products) AS line
		WHERE status <> 'cancelled'
		GROUP BY 1 ORDER BY sales DESC LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer topRows.Close()
	for topRows.Next() {
		var t TopProduct
		if err := topRows.Scan(&t.Name, &t.Sales); err != nil {
			return nil, err
		}
		stats.TopProducts = append(stats.TopProducts, t)
	}
	return stats, topRows.Err()
}
