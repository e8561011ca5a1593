package product

import "time"

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price                string         `json:"price"`
	CategoryID           string         `json:"category_id"`
	ImageURL             string         `json:"image_url,omitempty"`
	IsAvailable          bool           `json:"is_available"`
	CustomizationOptions map[string]any `json:"customization_options,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`

	Category *Category `json:"category,omitempty"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name                 string         `json:"name"        example:"Es Kopi Susu"`
	Description          string         `json:"description" example:"Iced coffee with palm sugar"`
	Price                string         `json:"price"       example:"25000"`
	CategoryID           string         `json:"category_id"`
	ImageURL             string         `json:"image_url,omitempty"`
	IsAvailable          *bool          `json:"is_available,omitempty"`
	CustomizationOptions map[string]any `json:"customization_options,omitempty"`
}
