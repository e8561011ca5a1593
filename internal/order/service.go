package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hafidmst/qrcafe/internal/product"
	"github.com/hafidmst/qrcafe/internal/table"
)

var (
	ErrInvalidTable = errors.New("invalid table")
	ErrNoItems      = errors.New("order has no items")
)

// TableLookup resolves the ordering point a request claims to come from.
type TableLookup interface {
	GetActiveByID(ctx context.Context, id string) (*table.Table, error)
}

// ProductLookup re-prices submitted lines against the current catalog.
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

type Service struct {
	repo     Repository
	tables   TableLookup
	products ProductLookup
}

func NewService(repo Repository, tables TableLookup, products ProductLookup) *Service {
	return &Service{repo: repo, tables: tables, products: products}
}

// Create validates the table, prices the submitted lines against current
// product prices and persists the order with its items in one transaction.
// Lines whose product id does not resolve are dropped from both the total and
// the persisted items; an order whose lines all fail to resolve still goes
// through with a zero total.
func (s *Service) Create(ctx context.Context, req *CreateOrderRequest, userID *string) (*Order, []Item, *table.Table, error) {
	if len(req.Items) == 0 {
		return nil, nil, nil, ErrNoItems
	}

	tbl, err := s.tables.GetActiveByID(ctx, req.TableID)
	if err != nil {
		return nil, nil, nil, ErrInvalidTable
	}

	total := decimal.Zero
	var items []Item
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			continue
		}
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, Item{
			ID:             uuid.NewString(),
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			Price:          p.Price,
			Customizations: line.Customizations,
			Notes:          line.Notes,
		})
	}

	number := GenerateOrderNumber()
	o := &Order{
		ID:          uuid.NewString(),
		OrderNumber: number,
		// the gateway correlates notifications by this value, keep it equal
		// to the customer-facing number
		GatewayOrderID: number,
		UserID:         userID,
		TableID:        tbl.ID,
		TotalAmount:    total.String(),
		Status:         StatusPending,
		PaymentStatus:  PaymentPending,
		Notes:          req.Notes,
	}
	for i := range items {
		items[i].OrderID = o.ID
	}

	if err := s.repo.Create(ctx, o, items); err != nil {
		return nil, nil, nil, fmt.Errorf("persist order: %w", err)
	}
	return o, items, tbl, nil
}

// GenerateOrderNumber builds the customer-facing correlation key:
// a millisecond timestamp plus a random suffix.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORDER-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}
