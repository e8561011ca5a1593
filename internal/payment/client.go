// Package payment integrates with the Midtrans Snap gateway: creating hosted
// payment sessions and reconciling its asynchronous status notifications.
package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hafidmst/qrcafe/internal/product"
)

var (
	ErrNotConfigured      = errors.New("payment gateway server key is not configured")
	ErrMissingTransaction = errors.New("missing required transaction details")
)

// GatewayError is a non-success response from the gateway, carrying the
// human-readable message extracted from its error body.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway rejected request (%d): %s", e.StatusCode, e.Message)
}

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ItemDetail accepts both the canonical and the cart-shaped field names the
// UI sends; missing name/price are backfilled from the catalog.
type ItemDetail struct {
	ID           string `json:"id,omitempty"`
	ProductID    string `json:"product_id,omitempty"`
	Name         string `json:"name,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	Price        int64  `json:"price,omitempty"`
	ProductPrice int64  `json:"product_price,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
}

type Callbacks struct {
	Finish   string `json:"finish,omitempty"`
	Unfinish string `json:"unfinish,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SessionRequest is the POST /payment/create-session body.
// swagger:model SessionRequest
type SessionRequest struct {
	TransactionDetails *TransactionDetails `json:"transaction_details"`
	CustomerDetails    *CustomerDetails    `json:"customer_details,omitempty"`
	ItemDetails        []ItemDetail        `json:"item_details,omitempty"`
	Callbacks          *Callbacks          `json:"callbacks,omitempty"`
}

// Session is the opaque handle to a hosted payment page.
// swagger:model Session
type Session struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// ProductLookup backfills item names and prices the caller omitted.
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

type Client struct {
	HTTP      *http.Client
	APIURL    string
	ServerKey string
	BaseURL   string
	Products  ProductLookup
}

func NewClient(apiURL, serverKey, baseURL string, products ProductLookup) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		APIURL:    strings.TrimRight(apiURL, "/"),
		ServerKey: serverKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Products:  products,
	}
}

type snapItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type snapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	ItemDetails        []snapItem         `json:"item_details"`
	Callbacks          Callbacks          `json:"callbacks"`
	CreditCard         struct {
		Secure bool `json:"secure"`
	} `json:"credit_card"`
}

// CreateSession requests a hosted payment session for an order and returns
// the gateway token and redirect URL.
func (c *Client) CreateSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	if req.TransactionDetails == nil || req.TransactionDetails.OrderID == "" ||
		req.TransactionDetails.GrossAmount <= 0 {
		return nil, ErrMissingTransaction
	}
	if c.ServerKey == "" {
		return nil, ErrNotConfigured
	}

	var sr snapRequest
	sr.TransactionDetails = *req.TransactionDetails
	sr.CustomerDetails = c.customer(req.CustomerDetails)
	sr.ItemDetails = c.items(ctx, req.ItemDetails)
	sr.Callbacks = c.callbacks(req.Callbacks)
	sr.CreditCard.Secure = true

	body, err := json.Marshal(sr)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.APIURL+"/snap/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization",
		"Basic "+base64.StdEncoding.EncodeToString([]byte(c.ServerKey+":")))

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		return nil, &GatewayError{StatusCode: res.StatusCode, Message: extractGatewayMessage(raw)}
	}

	var s Session
	if err := json.NewDecoder(res.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return &s, nil
}

func (c *Client) customer(cd *CustomerDetails) CustomerDetails {
	if cd != nil && (cd.FirstName != "" || cd.Email != "" || cd.Phone != "") {
		return *cd
	}
	return CustomerDetails{
		FirstName: "Customer",
		Email:     "customer@example.com",
		Phone:     "08123456789",
	}
}

func (c *Client) items(ctx context.Context, details []ItemDetail) []snapItem {
	out := make([]snapItem, 0, len(details))
	for _, d := range details {
		it := snapItem{
			ID:       d.ID,
			Name:     d.Name,
			Price:    d.Price,
			Quantity: d.Quantity,
		}
		if it.ID == "" {
			it.ID = d.ProductID
		}
		if it.Name == "" {
			it.Name = d.ProductName
		}
		if it.Price == 0 {
			it.Price = d.ProductPrice
		}
		if it.Quantity == 0 {
			it.Quantity = 1
		}
		if (it.Name == "" || it.Price == 0) && c.Products != nil && it.ID != "" {
			if p, err := c.Products.GetByID(ctx, it.ID); err == nil {
				if it.Name == "" {
					it.Name = p.Name
				}
				if it.Price == 0 {
					if price, err := decimal.NewFromString(p.Price); err == nil {
						it.Price = price.IntPart()
					}
				}
			}
		}
		out = append(out, it)
	}
	return out
}

func (c *Client) callbacks(cb *Callbacks) Callbacks {
	out := Callbacks{
		Finish:   c.BaseURL + "/payment/success",
		Unfinish: c.BaseURL + "/payment/pending",
		Error:    c.BaseURL + "/payment/error",
	}
	if cb == nil {
		return out
	}
	if cb.Finish != "" {
		out.Finish = cb.Finish
	}
	if cb.Unfinish != "" {
		out.Unfinish = cb.Unfinish
	}
	if cb.Error != "" {
		out.Error = cb.Error
	}
	return out
}

func extractGatewayMessage(raw []byte) string {
	var parsed struct {
		ErrorMessages []string `json:"error_messages"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed.ErrorMessages) > 0 {
		return strings.Join(parsed.ErrorMessages, ", ")
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return "failed to create payment token"
}
