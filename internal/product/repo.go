// Package product provides the repository interface and PostgreSQL
// implementation for the menu catalog.
package product

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	ListAvailable(ctx context.Context) ([]Product, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	custom, err := json.Marshal(p.CustomizationOptions)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO products
		  (id, name, description, price, category_id, image_url, is_available,
		   customization_options, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
	`, p.ID, p.Name, p.Description, p.Price, p.CategoryID, p.ImageURL, p.IsAvailable, custom)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	var custom []byte
	err := r.db.QueryRow(ctx, `
		SELECT id, name, COALESCE(description,''), price::text, category_id,
		       COALESCE(image_url,''), is_available, customization_options,
		       created_at, updated_at
		FROM products WHERE id=$1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID,
		&p.ImageURL, &p.IsAvailable, &custom, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(custom) > 0 {
		_ = json.Unmarshal(custom, &p.CustomizationOptions)
	}
	return &p, nil
}

func (r *PGRepo) ListAvailable(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.description,''), p.price::text, p.category_id,
		       COALESCE(p.image_url,''), p.is_available, p.customization_options,
		       p.created_at, p.updated_at,
		       c.id, c.name, COALESCE(c.description,'')
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_available = TRUE
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		var c Category
		var custom []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID,
			&p.ImageURL, &p.IsAvailable, &custom, &p.CreatedAt, &p.UpdatedAt,
			&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		if len(custom) > 0 {
			_ = json.Unmarshal(custom, &p.CustomizationOptions)
		}
		p.Category = &c
		out = append(out, p)
	}
	return out, rows.Err()
}
