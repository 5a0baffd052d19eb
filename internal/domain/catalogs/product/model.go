// Package product provides the Product catalog.
// Products represent goods and services that appear on order and invoice lines.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/entity"
)

// ProductType defines the type of item.
type ProductType string

const (
	TypeGoods   ProductType = "goods"
	TypeService ProductType = "service"
)

// Product represents a sellable good or service.
type Product struct {
	entity.Catalog

	// Type defines item category
	Type ProductType `db:"type" json:"type"`

	// SKU is the stock keeping unit identifier
	SKU *string `db:"sku" json:"sku,omitempty"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// SalePrice is the default unit price used when the product is put on a line
	SalePrice decimal.Decimal `db:"sale_price" json:"salePrice"`

	// CostPrice is the purchase cost used on purchase order lines
	CostPrice decimal.Decimal `db:"cost_price" json:"costPrice"`

	// Description is a detailed description, copied onto lines as the default text
	Description *string `db:"description" json:"description,omitempty"`

	// Active indicates whether the product can be placed on new documents
	Active bool `db:"active" json:"active"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, itemType ProductType) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		Type:      itemType,
		SalePrice: decimal.Zero,
		CostPrice: decimal.Zero,
		Active:    true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Type validation
	if !isValidProductType(p.Type) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	// Sale price must be non-negative
	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}

	// Cost price must be non-negative
	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price cannot be negative").
			WithDetail("field", "costPrice")
	}

	return nil
}

// IsPhysical returns true if item has physical presence (not a service).
func (p *Product) IsPhysical() bool {
	return p.Type != TypeService
}

// --- Validation Helpers ---

func isValidProductType(t ProductType) bool {
	switch t {
	case TypeGoods, TypeService:
		return true
	}
	return false
}
