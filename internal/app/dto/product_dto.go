package dto

import (
	"github.com/niharikakanakala/products-api/internal/domain"
)

// ProductPayload is the JSON shape of a product on the wire, used for both
// requests and responses.
type ProductPayload struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// ToDomain converts the payload to a domain Product
func (p *ProductPayload) ToDomain() *domain.Product {
	return &domain.Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
	}
}

// ToProductPayload converts a domain Product to its wire shape
func ToProductPayload(p *domain.Product) *ProductPayload {
	return &ProductPayload{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
	}
}

// ToProductPayloadList converts a list of domain Products to wire shapes
func ToProductPayloadList(products []domain.Product) []*ProductPayload {
	payloads := make([]*ProductPayload, len(products))
	for i := range products {
		payloads[i] = ToProductPayload(&products[i])
	}
	return payloads
}
