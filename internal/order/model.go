package order

import "time"

// Order statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

var validStatuses = map[string]bool{
	StatusPending: true, StatusConfirmed: true, StatusPreparing: true,
	StatusReady: true, StatusCompleted: true, StatusCancelled: true,
}

var validPaymentStatuses = map[string]bool{
	PaymentPending: true, PaymentPaid: true, PaymentFailed: true, PaymentRefunded: true,
}

func ValidStatus(s string) bool        { return validStatuses[s] }
func ValidPaymentStatus(s string) bool { return validPaymentStatuses[s] }

type Order struct {
	ID             string `json:"id"`
	OrderNumber    string `json:"order_number"`
	GatewayOrderID string `json:"gateway_order_id,omitempty"`
	// UserID is nil for guest (walk-up) orders.
	UserID        *string   `json:"user_id"`
	TableID       string    `json:"table_id"`
	TotalAmount   string    `json:"total_amount"` // NUMERIC -> string
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	GatewayTxnID  string    `json:"gateway_transaction_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	// Price is the unit price snapshotted at order time; later product price
	// changes must not alter it.
	Price          string         `json:"price"`
	Customizations map[string]any `json:"customizations,omitempty"`
	Notes          string         `json:"notes,omitempty"`
}

// Detail is the joined read projection served to the UI.
type Detail struct {
	Order
	Items   []ItemDetail    `json:"items"`
	Table   *TableSummary   `json:"table,omitempty"`
	Profile *ProfileSummary `json:"profile,omitempty"`
}

type ItemDetail struct {
	Item
	ProductName  string `json:"product_name"`
	ProductPrice string `json:"product_price"`
}

type TableSummary struct {
	ID          string `json:"id"`
	TableNumber int    `json:"table_number"`
}

type ProfileSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
