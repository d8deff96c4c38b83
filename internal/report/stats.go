// Package report computes the admin dashboard aggregates.
package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/database"
)

// Stats is the admin dashboard summary. TotalUsers counts role=user only.
type Stats struct {
	TotalProducts int64           `json:"totalProducts"`
	TotalOrders   int64           `json:"totalOrders"`
	TotalUsers    int64           `json:"totalUsers"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue" swaggertype:"number"`
}

type Repository interface {
	Stats(ctx context.Context) (Stats, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM users WHERE role = 'user'),
			(SELECT COALESCE(SUM(total_amount), 0)::text FROM orders)
	`).Scan(&s.TotalProducts, &s.TotalOrders, &s.TotalUsers, &s.TotalRevenue)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}
