package server

import (
	"github.com/stocklight/stocklight/internal/inventory"
)

// Validation limits for product fields.
const (
	minNameLength = 2
	maxNameLength = 100
	minPrice      = 1.0
)

const msgRequired = "Missing data for required field."

// productPayload is the JSON body of product create and update requests.
// Pointer fields distinguish absent fields from zero values, which partial
// updates rely on.
type productPayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int64   `json:"quantity"`
}

// validate checks the payload and returns per-field error messages. When
// partial is true, absent fields are skipped; present fields are always
// checked.
func (p *productPayload) validate(partial bool) map[string]string {
	fieldErrors := make(map[string]string)

	if p.Name == nil {
		if !partial {
			fieldErrors["name"] = msgRequired
		}
	} else if len(*p.Name) < minNameLength || len(*p.Name) > maxNameLength {
		fieldErrors["name"] = "Length must be between 2 and 100."
	}

	if p.Description == nil {
		if !partial {
			fieldErrors["description"] = msgRequired
		}
	} else if *p.Description == "" {
		fieldErrors["description"] = msgRequired
	}

	if p.Price == nil {
		if !partial {
			fieldErrors["price"] = msgRequired
		}
	} else if *p.Price < minPrice {
		fieldErrors["price"] = "Price must be greater or equal to 1."
	}

	if p.Quantity == nil {
		if !partial {
			fieldErrors["quantity"] = msgRequired
		}
	} else if *p.Quantity < 0 {
		fieldErrors["quantity"] = "Quantity must be greater or equal to 0."
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// toProduct builds a product from a full (non-partial) payload. Category
// defaults to empty, which triggers auto-classification on create.
func (p *productPayload) toProduct() *inventory.Product {
	product := &inventory.Product{
		Name:        *p.Name,
		Description: *p.Description,
		Price:       *p.Price,
		Quantity:    *p.Quantity,
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	return product
}

// toPatch builds a partial-update patch from the payload.
func (p *productPayload) toPatch() inventory.ProductPatch {
	return inventory.ProductPatch{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}
