package order

// CreateOrderItem payload for one cart line.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID      string         `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity       int            `json:"quantity"   example:"2"`
	Customizations map[string]any `json:"customizations,omitempty"`
	Notes          string         `json:"notes,omitempty"`
}

// CreateOrderRequest payload for order creation.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	TableID string            `json:"table_id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	Items   []CreateOrderItem `json:"items"`
	Notes   string            `json:"notes,omitempty"`
}

// UpdateOrderRequest is the staff/owner field patch. Only the listed fields
// may change; anything else in the body is rejected by the handler.
// swagger:model UpdateOrderRequest
type UpdateOrderRequest struct {
	Status        *string `json:"status,omitempty"        example:"preparing"`
	PaymentStatus *string `json:"payment_status,omitempty" example:"paid"`
	Notes         *string `json:"notes,omitempty"`
}
