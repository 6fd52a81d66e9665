package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVendorRequest registers a new vendor.
type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// UpdateVendorRequest applies a partial update to a vendor.
type UpdateVendorRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contactName"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	IsActive    *bool   `json:"isActive"`
}

// CreateProductRequest registers a new product.
type CreateProductRequest struct {
	SKU       string          `json:"sku" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
	StockQty  int64           `json:"stockQty"`
}

// UpdateProductRequest applies a partial update to a product.
type UpdateProductRequest struct {
	Name      *string          `json:"name"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	StockQty  *int64           `json:"stockQty"`
	IsActive  *bool            `json:"isActive"`
}

// CreatePromotionRequest registers a new promotion.
type CreatePromotionRequest struct {
	Name            string          `json:"name" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discountPercent" binding:"required"`
	StartsAt        time.Time       `json:"startsAt" binding:"required"`
	EndsAt          time.Time       `json:"endsAt" binding:"required"`
}

// UpdatePromotionRequest applies a partial update to a promotion.
type UpdatePromotionRequest struct {
	Name            *string          `json:"name"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	StartsAt        *time.Time       `json:"startsAt"`
	EndsAt          *time.Time       `json:"endsAt"`
	IsActive        *bool            `json:"isActive"`
}
