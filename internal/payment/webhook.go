package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hafidmst/qrcafe/internal/order"
)

// MaxNotificationBytes caps the webhook request body.
const MaxNotificationBytes = 10 << 10

var ErrMalformedNotification = errors.New("invalid payload structure")

var knownTransactionStatuses = map[string]bool{
	"capture": true, "settlement": true, "pending": true,
	"deny": true, "cancel": true, "expire": true, "refund": true,
}

// Notification is the gateway's asynchronous status push. It is transient:
// its only effect is an order mutation.
// swagger:model Notification
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	TransactionID     string `json:"transaction_id,omitempty"`
	PaymentType       string `json:"payment_type,omitempty"`
}

func (n *Notification) Validate() error {
	switch {
	case n.OrderID == "":
		return fmt.Errorf("%w: order_id is required", ErrMalformedNotification)
	case n.StatusCode == "":
		return fmt.Errorf("%w: status_code is required", ErrMalformedNotification)
	case n.GrossAmount == "":
		return fmt.Errorf("%w: gross_amount is required", ErrMalformedNotification)
	case n.SignatureKey == "":
		return fmt.Errorf("%w: signature_key is required", ErrMalformedNotification)
	case !knownTransactionStatuses[n.TransactionStatus]:
		return fmt.Errorf("%w: unknown transaction_status %q", ErrMalformedNotification, n.TransactionStatus)
	}
	return nil
}

// MapStatus translates a gateway (transaction_status, fraud_status) pair into
// the internal (payment_status, order status) pair. ok=false means the
// combination carries no state change and the order must be left untouched.
func MapStatus(transactionStatus, fraudStatus string) (paymentStatus, orderStatus string, ok bool) {
	switch transactionStatus {
	case "capture", "settlement":
		if fraudStatus == "accept" || fraudStatus == "" {
			return order.PaymentPaid, order.StatusConfirmed, true
		}
		return "", "", false
	case "pending":
		return order.PaymentPending, order.StatusPending, true
	case "deny", "cancel", "expire":
		return order.PaymentFailed, order.StatusCancelled, true
	case "refund":
		return order.PaymentRefunded, order.StatusCancelled, true
	default:
		return "", "", false
	}
}

// Result reports what a reconciliation did to the target order.
type Result struct {
	Order         *order.Order
	PaymentStatus string
	OrderStatus   string
	// Duplicate: the notification re-delivered an already-applied paid
	// transition and was acknowledged without writes.
	Duplicate bool
	// Applied: the order row was updated.
	Applied bool
}

// Reconciler converges an order onto the status a gateway notification
// reports, once per logical status change.
type Reconciler struct {
	orders    order.Repository
	serverKey string
	logger    *slog.Logger
	// onSignatureMismatch is invoked for metrics/alerting; a mismatch is
	// logged but does not block processing, matching the gateway-observed
	// contract.
	onSignatureMismatch func()
}

func NewReconciler(orders order.Repository, serverKey string, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{orders: orders, serverKey: serverKey, logger: logger}
}

// OnSignatureMismatch registers a hook fired on signature verification
// failures.
func (r *Reconciler) OnSignatureMismatch(fn func()) { r.onSignatureMismatch = fn }

// Process validates, resolves and applies one notification. It returns
// order.ErrNotFound when no candidate key matches and
// ErrMalformedNotification on schema failures; any other error is a
// persistence failure the gateway should retry.
func (r *Reconciler) Process(ctx context.Context, n *Notification, clientIP string) (*Result, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	expected := Signature(n.OrderID, n.StatusCode, n.GrossAmount, r.serverKey)
	if n.SignatureKey != expected {
		r.logger.Warn("webhook signature mismatch",
			"order_id", n.OrderID, "client_ip", clientIP)
		if r.onSignatureMismatch != nil {
			r.onSignatureMismatch()
		}
	}

	target, err := r.resolve(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}

	paymentStatus, orderStatus, ok := MapStatus(n.TransactionStatus, n.FraudStatus)
	if !ok {
		r.logger.Info("webhook carried no state change",
			"order_number", target.OrderNumber,
			"transaction_status", n.TransactionStatus,
			"fraud_status", n.FraudStatus)
		return &Result{Order: target, PaymentStatus: target.PaymentStatus, OrderStatus: target.Status}, nil
	}

	if target.PaymentStatus == order.PaymentPaid && paymentStatus == order.PaymentPaid {
		r.logger.Warn("duplicate webhook for paid order",
			"order_number", target.OrderNumber, "client_ip", clientIP)
		return &Result{
			Order:         target,
			PaymentStatus: target.PaymentStatus,
			OrderStatus:   target.Status,
			Duplicate:     true,
		}, nil
	}

	before := target.Status
	beforePayment := target.PaymentStatus
	updated, err := r.orders.UpdateFields(ctx, target.ID, map[string]any{
		"payment_status":         paymentStatus,
		"status":                 orderStatus,
		"payment_method":         n.PaymentType,
		"gateway_transaction_id": n.TransactionID,
	})
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", target.OrderNumber, err)
	}

	r.logger.Info("order reconciled",
		"order_number", updated.OrderNumber,
		"status", slog.GroupValue(
			slog.String("from", before), slog.String("to", orderStatus)),
		"payment_status", slog.GroupValue(
			slog.String("from", beforePayment), slog.String("to", paymentStatus)),
		"transaction_status", n.TransactionStatus,
		"payment_type", n.PaymentType,
		"client_ip", clientIP)

	return &Result{
		Order:         updated,
		PaymentStatus: paymentStatus,
		OrderStatus:   orderStatus,
		Applied:       true,
	}, nil
}

// resolve tries the candidate keys in a fixed order and stops at the first
// hit: customer-facing order number, then the gateway correlation field,
// then the primary key.
func (r *Reconciler) resolve(ctx context.Context, id string) (*order.Order, error) {
	lookups := []func(context.Context, string) (*order.Order, error){
		r.orders.GetByOrderNumber,
		r.orders.GetByGatewayOrderID,
		r.orders.GetByID,
	}
	for _, lookup := range lookups {
		o, err := lookup(ctx, id)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, order.ErrNotFound) {
			return nil, err
		}
	}
	return nil, order.ErrNotFound
}
