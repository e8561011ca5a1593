package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hafidmst/qrcafe/internal/order"
)

//
// ---------- STUBS ----------
//

// stubOrders implements order.Repository in memory, keyed the three ways the
// reconciler resolves.
type stubOrders struct {
	orders    map[string]*order.Order // by id
	updateErr error
	updates   int
}

func newStubOrders(os ...*order.Order) *stubOrders {
	s := &stubOrders{orders: map[string]*order.Order{}}
	for _, o := range os {
		s.orders[o.ID] = o
	}
	return s
}

func (s *stubOrders) Create(ctx context.Context, o *order.Order, items []order.Item) error {
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *stubOrders) GetByID(ctx context.Context, id string) (*order.Order, error) {
	if o, ok := s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, order.ErrNotFound
}

func (s *stubOrders) GetByOrderNumber(ctx context.Context, number string) (*order.Order, error) {
	for _, o := range s.orders {
		if o.OrderNumber == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrNotFound
}

func (s *stubOrders) GetByGatewayOrderID(ctx context.Context, gatewayID string) (*order.Order, error) {
	for _, o := range s.orders {
		if o.GatewayOrderID == gatewayID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrNotFound
}

func (s *stubOrders) GetDetail(ctx context.Context, id string) (*order.Detail, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &order.Detail{Order: *o}, nil
}

func (s *stubOrders) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	return nil, nil
}

func (s *stubOrders) UpdateFields(ctx context.Context, id string, fields map[string]any) (*order.Order, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	s.updates++
	if v, ok := fields["status"].(string); ok {
		o.Status = v
	}
	if v, ok := fields["payment_status"].(string); ok {
		o.PaymentStatus = v
	}
	if v, ok := fields["payment_method"].(string); ok {
		o.PaymentMethod = v
	}
	if v, ok := fields["gateway_transaction_id"].(string); ok {
		o.GatewayTxnID = v
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrders) GetItems(ctx context.Context, orderID string) ([]order.Item, error) {
	return nil, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testServerKey = "SB-Mid-server-test"

func notification(orderID, txnStatus, fraudStatus string) *Notification {
	n := &Notification{
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       "82000.00",
		TransactionStatus: txnStatus,
		FraudStatus:       fraudStatus,
		TransactionID:     "txn-123",
		PaymentType:       "qris",
	}
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, testServerKey)
	return n
}

//
// ---------- TESTS ----------
//

func TestMapStatus_Table(t *testing.T) {
	cases := []struct {
		txn, fraud     string
		wantPayment    string
		wantStatus     string
		wantApplicable bool
	}{
		{"capture", "accept", order.PaymentPaid, order.StatusConfirmed, true},
		{"capture", "", order.PaymentPaid, order.StatusConfirmed, true},
		{"settlement", "accept", order.PaymentPaid, order.StatusConfirmed, true},
		{"settlement", "", order.PaymentPaid, order.StatusConfirmed, true},
		{"capture", "challenge", "", "", false},
		{"settlement", "deny", "", "", false},
		{"pending", "", order.PaymentPending, order.StatusPending, true},
		{"deny", "", order.PaymentFailed, order.StatusCancelled, true},
		{"cancel", "", order.PaymentFailed, order.StatusCancelled, true},
		{"expire", "", order.PaymentFailed, order.StatusCancelled, true},
		{"refund", "", order.PaymentRefunded, order.StatusCancelled, true},
		{"chargeback", "", "", "", false},
	}
	for _, tc := range cases {
		p, s, ok := MapStatus(tc.txn, tc.fraud)
		if ok != tc.wantApplicable || p != tc.wantPayment || s != tc.wantStatus {
			t.Errorf("MapStatus(%q,%q)=(%q,%q,%v), want (%q,%q,%v)",
				tc.txn, tc.fraud, p, s, ok, tc.wantPayment, tc.wantStatus, tc.wantApplicable)
		}
	}
}

func TestNotificationValidate(t *testing.T) {
	n := notification("ORDER-1-1", "settlement", "accept")
	if err := n.Validate(); err != nil {
		t.Fatalf("valid notification rejected: %v", err)
	}

	bad := notification("", "settlement", "accept")
	if err := bad.Validate(); !errors.Is(err, ErrMalformedNotification) {
		t.Fatalf("missing order_id: got %v", err)
	}

	bad = notification("ORDER-1-1", "paidinfull", "")
	if err := bad.Validate(); !errors.Is(err, ErrMalformedNotification) {
		t.Fatalf("unknown transaction_status: got %v", err)
	}
}

func TestReconciler_SettlementConfirmsOrder(t *testing.T) {
	o := &order.Order{
		ID: "11111111-1111-1111-1111-111111111111", OrderNumber: "ORDER-1700000000000-7",
		GatewayOrderID: "ORDER-1700000000000-7",
		Status:         order.StatusPending, PaymentStatus: order.PaymentPending,
	}
	repo := newStubOrders(o)
	rec := NewReconciler(repo, testServerKey, quietLogger())

	res, err := rec.Process(context.Background(), notification(o.OrderNumber, "settlement", "accept"), "1.2.3.4")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !res.Applied {
		t.Fatal("expected an applied update")
	}
	if res.Order.PaymentStatus != order.PaymentPaid || res.Order.Status != order.StatusConfirmed {
		t.Fatalf("got %s/%s, want paid/confirmed", res.Order.PaymentStatus, res.Order.Status)
	}
	if res.Order.GatewayTxnID != "txn-123" || res.Order.PaymentMethod != "qris" {
		t.Fatalf("transaction id / payment method not recorded: %+v", res.Order)
	}
}

func TestReconciler_DuplicatePaidIsIdempotent(t *testing.T) {
	o := &order.Order{
		ID: "22222222-2222-2222-2222-222222222222", OrderNumber: "ORDER-1700000000001-8",
		GatewayOrderID: "ORDER-1700000000001-8",
		Status:         order.StatusPending, PaymentStatus: order.PaymentPending,
	}
	repo := newStubOrders(o)
	rec := NewReconciler(repo, testServerKey, quietLogger())
	n := notification(o.OrderNumber, "settlement", "accept")

	first, err := rec.Process(context.Background(), n, "1.2.3.4")
	if err != nil || !first.Applied {
		t.Fatalf("first delivery: res=%+v err=%v", first, err)
	}
	second, err := rec.Process(context.Background(), n, "1.2.3.4")
	if err != nil {
		t.Fatalf("second delivery must still succeed: %v", err)
	}
	if !second.Duplicate || second.Applied {
		t.Fatalf("second delivery should short-circuit, got %+v", second)
	}
	if repo.updates != 1 {
		t.Fatalf("expected exactly one write, got %d", repo.updates)
	}
	if second.PaymentStatus != order.PaymentPaid || second.OrderStatus != order.StatusConfirmed {
		t.Fatalf("duplicate must report the settled state, got %s/%s", second.PaymentStatus, second.OrderStatus)
	}
}

func TestReconciler_UnmappedCombinationLeavesOrderUntouched(t *testing.T) {
	o := &order.Order{
		ID: "33333333-3333-3333-3333-333333333333", OrderNumber: "ORDER-1700000000002-9",
		Status: order.StatusPending, PaymentStatus: order.PaymentPending,
	}
	repo := newStubOrders(o)
	rec := NewReconciler(repo, testServerKey, quietLogger())

	res, err := rec.Process(context.Background(), notification(o.OrderNumber, "capture", "challenge"), "1.2.3.4")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Applied || res.Duplicate {
		t.Fatalf("no write expected, got %+v", res)
	}
	if repo.updates != 0 {
		t.Fatalf("order was written %d times", repo.updates)
	}
	if got, _ := repo.GetByID(context.Background(), o.ID); got.Status != order.StatusPending {
		t.Fatalf("order mutated to %s", got.Status)
	}
}

func TestReconciler_ResolutionFallsBackToPrimaryKey(t *testing.T) {
	// order_number and gateway id do not match the incoming id, the pk does
	o := &order.Order{
		ID: "44444444-4444-4444-4444-444444444444", OrderNumber: "ORDER-1700000000003-1",
		GatewayOrderID: "ORDER-1700000000003-1",
		Status:         order.StatusPending, PaymentStatus: order.PaymentPending,
	}
	repo := newStubOrders(o)
	rec := NewReconciler(repo, testServerKey, quietLogger())

	res, err := rec.Process(context.Background(), notification(o.ID, "settlement", "accept"), "1.2.3.4")
	if err != nil {
		t.Fatalf("primary-key-shaped id must resolve: %v", err)
	}
	if res.Order.OrderNumber != o.OrderNumber {
		t.Fatalf("resolved wrong order: %+v", res.Order)
	}
}

func TestReconciler_ResolutionPrefersOrderNumber(t *testing.T) {
	// one order whose number collides with another order's gateway id: the
	// order_number lookup must win
	byNumber := &order.Order{
		ID: "55555555-5555-5555-5555-555555555555", OrderNumber: "ORDER-X",
		GatewayOrderID: "other", Status: order.StatusPending, PaymentStatus: order.PaymentPending,
	}
	byGateway := &order.Order{
		ID: "66666666-6666-6666-6666-666666666666", OrderNumber: "ORDER-Y",
		GatewayOrderID: "ORDER-X", Status: order.StatusPending, PaymentStatus: order.PaymentPending,
	}
	repo := newStubOrders(byNumber, byGateway)
	rec := NewReconciler(repo, testServerKey, quietLogger())

	res, err := rec.Process(context.Background(), notification("ORDER-X", "settlement", "accept"), "1.2.3.4")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Order.ID != byNumber.ID {
		t.Fatalf("expected the order_number match to win, got %s", res.Order.ID)
	}
}

func TestReconciler_UnknownOrder(t *testing.T) {
	rec := NewReconciler(newStubOrders(), testServerKey, quietLogger())
	_, err := rec.Process(context.Background(), notification("ORDER-GONE", "settlement", "accept"), "1.2.3.4")
	if !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("want order.ErrNotFound, got %v", err)
	}
}

func TestReconciler_SignatureMismatchIsNonFatal(t *testing.T) {
	o := &order.Order{
		ID: "77777777-7777-7777-7777-777777777777", OrderNumber: "ORDER-1700000000004-2",
		Status: order.StatusPending, PaymentStatus: order.PaymentPending,
	}
	repo := newStubOrders(o)
	rec := NewReconciler(repo, testServerKey, quietLogger())
	mismatches := 0
	rec.OnSignatureMismatch(func() { mismatches++ })

	n := notification(o.OrderNumber, "settlement", "accept")
	n.SignatureKey = "definitely-wrong"

	res, err := rec.Process(context.Background(), n, "1.2.3.4")
	if err != nil {
		t.Fatalf("mismatch must not block processing: %v", err)
	}
	if !res.Applied {
		t.Fatal("update should still apply")
	}
	if mismatches != 1 {
		t.Fatalf("mismatch hook fired %d times", mismatches)
	}
}

func TestReconciler_PersistenceFailureSurfaces(t *testing.T) {
	o := &order.Order{
		ID: "88888888-8888-8888-8888-888888888888", OrderNumber: "ORDER-1700000000005-3",
		Status: order.StatusPending, PaymentStatus: order.PaymentPending,
	}
	repo := newStubOrders(o)
	repo.updateErr = errors.New("connection reset")
	rec := NewReconciler(repo, testServerKey, quietLogger())

	_, err := rec.Process(context.Background(), notification(o.OrderNumber, "settlement", "accept"), "1.2.3.4")
	if err == nil || errors.Is(err, order.ErrNotFound) {
		t.Fatalf("want persistence error, got %v", err)
	}
}

func TestReconciler_RefundCancelsOrder(t *testing.T) {
	o := &order.Order{
		ID: "99999999-9999-9999-9999-999999999999", OrderNumber: "ORDER-1700000000006-4",
		Status: order.StatusConfirmed, PaymentStatus: order.PaymentPaid,
	}
	repo := newStubOrders(o)
	rec := NewReconciler(repo, testServerKey, quietLogger())

	res, err := rec.Process(context.Background(), notification(o.OrderNumber, "refund", ""), "1.2.3.4")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Order.PaymentStatus != order.PaymentRefunded || res.Order.Status != order.StatusCancelled {
		t.Fatalf("got %s/%s, want refunded/cancelled", res.Order.PaymentStatus, res.Order.Status)
	}
}
