// Package product provides the repository interface and PostgreSQL implementation for managing products.
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/storefront/internal/database"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id string, patch UpdateProductRequest) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const columns = `id::text, name, price::text, category, stock, is_available, image, description, created_at, updated_at`

func scan(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock, &p.IsAvailable,
		&p.Image, &p.Description, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts p and overwrites it with the stored row.
func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	err := scan(r.db.QueryRow(ctx, `
		INSERT INTO products (id, name, price, category, stock, is_available, image, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		RETURNING `+columns,
		p.ID, p.Name, p.Price, p.Category, p.Stock, p.IsAvailable, p.Image, p.Description,
	), p)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var p Product
	if err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM products WHERE id=$1`, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := scan(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update merges the non-nil fields of patch and returns the stored row.
func (r *PGRepo) Update(ctx context.Context, id string, patch UpdateProductRequest) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var p Product
	err := scan(r.db.QueryRow(ctx, `
		UPDATE products
		SET name         = COALESCE($2, name),
		    price        = COALESCE($3::numeric, price),
		    category     = COALESCE($4, category),
		    stock        = COALESCE($5, stock),
		    is_available = COALESCE($6, is_available),
		    image        = COALESCE($7, image),
		    description  = COALESCE($8, description),
		    updated_at   = NOW()
		WHERE id = $1
		RETURNING `+columns,
		id, patch.Name, patch.Price, patch.Category, patch.Stock, patch.IsAvailable, patch.Image, patch.Description,
	), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
