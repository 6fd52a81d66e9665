package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is a supplier the business buys from.
type Vendor struct {
	VendorID    string `json:"vendorID"`
	WorkplaceID string `json:"workplaceID"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// Product is one sellable item in the inventory.
type Product struct {
	ProductID   string          `json:"productID"`
	WorkplaceID string          `json:"workplaceID"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	StockQty    int64           `json:"stockQty"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// Promotion is a time-bound discount applied at sale time.
type Promotion struct {
	PromotionID     string          `json:"promotionID"`
	WorkplaceID     string          `json:"workplaceID"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	StartsAt        time.Time       `json:"startsAt"`
	EndsAt          time.Time       `json:"endsAt"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
