// Package table manages the physical ordering points a QR code maps to.
package table

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("table not found")
	ErrAlreadyExists = errors.New("table number already exists")
)

type Table struct {
	ID          string    `json:"id"`
	TableNumber int       `json:"table_number"`
	QRCode      string    `json:"qr_code"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTableRequest payload of creation.
// swagger:model CreateTableRequest
type CreateTableRequest struct {
	TableNumber int   `json:"table_number" example:"5"`
	IsActive    *bool `json:"is_active,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, t *Table) error
	GetActiveByID(ctx context.Context, id string) (*Table, error)
	GetActiveByNumber(ctx context.Context, number int) (*Table, error)
	ListActive(ctx context.Context) ([]Table, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, t *Table) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tables WHERE table_number=$1)`, t.TableNumber,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO tables (id, table_number, qr_code, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
	`, t.ID, t.TableNumber, t.QRCode, t.IsActive)
	return err
}

func scanTable(row pgx.Row) (*Table, error) {
	var t Table
	err := row.Scan(&t.ID, &t.TableNumber, &t.QRCode, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepo) GetActiveByID(ctx context.Context, id string) (*Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanTable(r.db.QueryRow(ctx, `
		SELECT id, table_number, qr_code, is_active, created_at, updated_at
		FROM tables WHERE id=$1 AND is_active=TRUE
	`, id))
}

func (r *PGRepo) GetActiveByNumber(ctx context.Context, number int) (*Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanTable(r.db.QueryRow(ctx, `
		SELECT id, table_number, qr_code, is_active, created_at, updated_at
		FROM tables WHERE table_number=$1 AND is_active=TRUE
	`, number))
}

func (r *PGRepo) ListActive(ctx context.Context) ([]Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, table_number, qr_code, is_active, created_at, updated_at
		FROM tables WHERE is_active=TRUE
		ORDER BY table_number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
