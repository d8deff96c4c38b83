// Package order persists order snapshots and performs checkout.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/storefront/internal/database"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	// Checkout stores o with its items and empties the owner's cart in one
	// transaction. OrderDate is filled from the database.
	Checkout(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const columns = `id::text, user_id::text, total_amount::text, customer_name, email, address, phone, status, order_date`

func scan(row pgx.Row, o *Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.CustomerName, &o.Email, &o.Address, &o.Phone, &o.Status, &o.OrderDate)
}

func (r *PGRepo) Checkout(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, total_amount, customer_name, email, address, phone, status, order_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
		RETURNING order_date
	`, o.ID, o.UserID, o.TotalAmount, o.CustomerName, o.Email, o.Address, o.Phone, o.Status).Scan(&o.OrderDate); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, position, product_id, name, price, quantity)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, uuid.NewString(), o.ID, i, it.ProductID, it.Name, it.Price, it.Quantity); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, o.UserID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var o Order
	if err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM orders WHERE id=$1`, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	out := []Order{o}
	if err := r.loadItems(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, `SELECT `+columns+` FROM orders WHERE user_id=$1 ORDER BY order_date DESC, id`, userID)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+columns+` FROM orders ORDER BY order_date DESC, id`)
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := []Order{}
	for rows.Next() {
		var o Order
		if err := scan(rows, &o); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadItems fills Items of every order with one query.
func (r *PGRepo) loadItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	idx := make(map[string]int, len(orders))
	ids := make([]string, 0, len(orders))
	for i := range orders {
		orders[i].Items = []Item{}
		idx[orders[i].ID] = i
		ids = append(ids, orders[i].ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT order_id::text, product_id::text, name, price::text, quantity
		FROM order_items WHERE order_id::text = ANY($1)
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var it Item
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return err
		}
		if i, ok := idx[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
