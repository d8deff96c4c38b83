// Package cart stores the per-user shopping cart lines in PostgreSQL.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/storefront/internal/database"
)

var (
	ErrNotFound         = errors.New("cart item not found")
	ErrQuantityTooLarge = fmt.Errorf("quantity must be at most %d", database.MaxCount)
)

type Repository interface {
	List(ctx context.Context, userID string) ([]Item, error)
	// Add inserts the line or increments the quantity of the existing
	// (user, product) line. inserted reports which one happened.
	Add(ctx context.Context, it *Item) (inserted bool, err error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*Item, error)
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const columns = `id::text, user_id::text, product_id::text, name, price::text, quantity, image, created_at`

func scan(row pgx.Row, it *Item) error {
	return row.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.Image, &it.CreatedAt)
}

func (r *PGRepo) List(ctx context.Context, userID string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+columns+`
		FROM cart_items WHERE user_id=$1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		var it Item
		if err := scan(rows, &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Add is a single upsert statement, so concurrent first adds of the same
// product collapse into one line. On conflict the stored name, price and
// image are kept and it is overwritten with the stored row.
func (r *PGRepo) Add(ctx context.Context, it *Item) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var inserted bool
	err := r.db.QueryRow(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, name, price, quantity, image, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING `+columns+`, (xmax = 0) AS inserted
	`, it.ID, it.UserID, it.ProductID, it.Name, it.Price, it.Quantity, it.Image).
		Scan(&it.ID, &it.UserID, &it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.Image, &it.CreatedAt, &inserted)
	if err != nil {
		if database.IsNumericOverflow(err) {
			return false, ErrQuantityTooLarge
		}
		return false, fmt.Errorf("upsert cart item: %w", err)
	}
	return inserted, nil
}

func (r *PGRepo) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var it Item
	err := scan(r.db.QueryRow(ctx, `
		UPDATE cart_items SET quantity=$3
		WHERE id=$1 AND user_id=$2
		RETURNING `+columns,
		itemID, userID, quantity), &it)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return &it, nil
}

func (r *PGRepo) Remove(ctx context.Context, userID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id=$1 AND user_id=$2`, itemID, userID)
	return err
}

func (r *PGRepo) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}
