package services

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
)

// VendorSvc defines operations for vendors.
type VendorSvc interface {
	GetVendorByID(ctx context.Context, workplaceID, vendorID, userID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, workplaceID, userID string) ([]domain.Vendor, error)
	CreateVendor(ctx context.Context, workplaceID string, req dto.CreateVendorRequest, userID string) (*domain.Vendor, error)
	UpdateVendor(ctx context.Context, workplaceID, vendorID string, req dto.UpdateVendorRequest, userID string) (*domain.Vendor, error)
	DeleteVendor(ctx context.Context, workplaceID, vendorID, userID string) error
}

// ProductSvc defines operations for products.
type ProductSvc interface {
	GetProductByID(ctx context.Context, workplaceID, productID, userID string) (*domain.Product, error)
	ListProducts(ctx context.Context, workplaceID, userID string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, workplaceID string, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, workplaceID, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, workplaceID, productID, userID string) error
}

// PromotionSvc defines operations for promotions.
type PromotionSvc interface {
	GetPromotionByID(ctx context.Context, workplaceID, promotionID, userID string) (*domain.Promotion, error)
	ListPromotions(ctx context.Context, workplaceID, userID string) ([]domain.Promotion, error)
	CreatePromotion(ctx context.Context, workplaceID string, req dto.CreatePromotionRequest, userID string) (*domain.Promotion, error)
	UpdatePromotion(ctx context.Context, workplaceID, promotionID string, req dto.UpdatePromotionRequest, userID string) (*domain.Promotion, error)
	DeletePromotion(ctx context.Context, workplaceID, promotionID, userID string) error
}

// CatalogSvcFacade combines the vendor/product/promotion services.
type CatalogSvcFacade interface {
	VendorSvc
	ProductSvc
	PromotionSvc
}
