package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrInvalidPatch = errors.New("no updatable fields in patch")
)

type Filter struct {
	UserID string
	Status string
}

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByOrderNumber(ctx context.Context, number string) (*Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayID string) (*Order, error)
	GetDetail(ctx context.Context, id string) (*Detail, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*Order, error)
	GetItems(ctx context.Context, orderID string) ([]Item, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `
  id, order_number, COALESCE(gateway_order_id,''), user_id, table_id,
  total_amount::text, status, payment_status, COALESCE(payment_method,''),
  COALESCE(gateway_transaction_id,''), COALESCE(notes,''), created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.GatewayOrderID, &o.UserID, &o.TableID,
		&o.TotalAmount, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.GatewayTxnID, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders
      (id, order_number, gateway_order_id, user_id, table_id, total_amount,
       status, payment_status, notes, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW(),NOW())
  `, o.ID, o.OrderNumber, o.GatewayOrderID, o.UserID, o.TableID, o.TotalAmount,
		o.Status, o.PaymentStatus, o.Notes); err != nil {
		return err
	}

	for _, it := range items {
		custom, err := json.Marshal(it.Customizations)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, quantity, price, customizations, notes)
      VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, it.ID, o.ID, it.ProductID, it.Quantity, it.Price, custom, it.Notes); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// id::text so that non-UUID lookup keys (webhook resolution feeds
	// arbitrary correlation ids through here) read as not-found instead of a
	// cast error
	return scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id::text=$1`, id))
}

func (r *PGRepo) GetByOrderNumber(ctx context.Context, number string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, number))
}

func (r *PGRepo) GetByGatewayOrderID(ctx context.Context, gatewayID string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE gateway_order_id=$1`, gatewayID))
}

func (r *PGRepo) GetDetail(ctx context.Context, id string) (*Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &Detail{Order: *o}

	rows, err := r.db.Query(ctx, `
    SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price::text,
           oi.customizations, COALESCE(oi.notes,''), p.name, p.price::text
    FROM order_items oi
    JOIN products p ON p.id = oi.product_id
    WHERE oi.order_id=$1
  `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it ItemDetail
		var custom []byte
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
			&custom, &it.Notes, &it.ProductName, &it.ProductPrice); err != nil {
			return nil, err
		}
		if len(custom) > 0 {
			_ = json.Unmarshal(custom, &it.Customizations)
		}
		d.Items = append(d.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var ts TableSummary
	if err := r.db.QueryRow(ctx,
		`SELECT id, table_number FROM tables WHERE id=$1`, o.TableID,
	).Scan(&ts.ID, &ts.TableNumber); err == nil {
		d.Table = &ts
	}

	if o.UserID != nil {
		var ps ProfileSummary
		if err := r.db.QueryRow(ctx,
			`SELECT id, COALESCE(full_name,''), email FROM profiles WHERE id=$1`, *o.UserID,
		).Scan(&ps.ID, &ps.FullName, &ps.Email); err == nil {
			d.Profile = &ps
		}
	}
	return d, nil
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := `SELECT ` + orderColumns + ` FROM orders`
	var conds []string
	var args []any
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// updatableColumns gates the dynamic patch; callers cannot touch identity,
// correlation keys or totals through it.
var updatableColumns = map[string]bool{
	"status":                 true,
	"payment_status":         true,
	"payment_method":         true,
	"gateway_transaction_id": true,
	"notes":                  true,
}

func (r *PGRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cols := make([]string, 0, len(fields))
	for c := range fields {
		if updatableColumns[c] {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return nil, ErrInvalidPatch
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols)+1)
	args := []any{id}
	for _, c := range cols {
		args = append(args, fields[c])
		sets = append(sets, fmt.Sprintf("%s=$%d", c, len(args)))
	}
	sets = append(sets, "updated_at=NOW()")

	q := `UPDATE orders SET ` + strings.Join(sets, ", ") +
		` WHERE id=$1 RETURNING ` + orderColumns
	return scanOrder(r.db.QueryRow(ctx, q, args...))
}

func (r *PGRepo) GetItems(ctx context.Context, orderID string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, quantity, price::text, customizations, COALESCE(notes,'')
    FROM order_items WHERE order_id=$1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var custom []byte
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &custom, &it.Notes); err != nil {
			return nil, err
		}
		if len(custom) > 0 {
			_ = json.Unmarshal(custom, &it.Customizations)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
