package dto

import (
	"github.com/shopspring/decimal"

	"bizledger/internal/core/entity"
	"bizledger/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Type        product.ProductType `json:"type" binding:"required"`
	SKU         *string             `json:"sku"`
	Barcode     *string             `json:"barcode"`
	SalePrice   decimal.Decimal     `json:"salePrice"`
	CostPrice   decimal.Decimal     `json:"costPrice"`
	Description *string             `json:"description"`
	Active      *bool               `json:"active"`
	ParentID    *string             `json:"parentId"`
	IsFolder    bool                `json:"isFolder"`
	Attributes  entity.Attributes   `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Type)
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.SalePrice = r.SalePrice
	p.CostPrice = r.CostPrice
	p.Description = r.Description
	if r.Active != nil {
		p.Active = *r.Active
	}
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Type        product.ProductType `json:"type" binding:"required"`
	SKU         *string             `json:"sku"`
	Barcode     *string             `json:"barcode"`
	SalePrice   decimal.Decimal     `json:"salePrice"`
	CostPrice   decimal.Decimal     `json:"costPrice"`
	Description *string             `json:"description"`
	Active      bool                `json:"active"`
	ParentID    *string             `json:"parentId"`
	IsFolder    bool                `json:"isFolder"`
	Attributes  entity.Attributes   `json:"attributes"`
	Version     int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Type = r.Type
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.SalePrice = r.SalePrice
	p.CostPrice = r.CostPrice
	p.Description = r.Description
	p.Active = r.Active
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID           string              `json:"id"`
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	Type         product.ProductType `json:"type"`
	SKU          *string             `json:"sku,omitempty"`
	Barcode      *string             `json:"barcode,omitempty"`
	SalePrice    decimal.Decimal     `json:"salePrice"`
	CostPrice    decimal.Decimal     `json:"costPrice"`
	Description  *string             `json:"description,omitempty"`
	Active       bool                `json:"active"`
	ParentID     *string             `json:"parentId,omitempty"`
	IsFolder     bool                `json:"isFolder"`
	DeletionMark bool                `json:"deletionMark"`
	Version      int                 `json:"version"`
	Attributes   entity.Attributes   `json:"attributes,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		Type:         p.Type,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		SalePrice:    p.SalePrice,
		CostPrice:    p.CostPrice,
		Description:  p.Description,
		Active:       p.Active,
		ParentID:     p.ParentID,
		IsFolder:     p.IsFolder,
		DeletionMark: p.DeletionMark,
		Version:      p.Version,
		Attributes:   p.Attributes,
	}
}
