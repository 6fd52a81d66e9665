package repositories

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// VendorRepository defines persistence for vendors.
type VendorRepository interface {
	FindVendorByID(ctx context.Context, workplaceID, vendorID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, workplaceID string) ([]domain.Vendor, error)
	SaveVendor(ctx context.Context, vendor domain.Vendor) error
	UpdateVendor(ctx context.Context, vendor domain.Vendor) error
	DeleteVendor(ctx context.Context, workplaceID, vendorID string) error
}

// ProductRepository defines persistence for products.
type ProductRepository interface {
	FindProductByID(ctx context.Context, workplaceID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, workplaceID string) ([]domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, workplaceID, productID string) error
}

// PromotionRepository defines persistence for promotions.
type PromotionRepository interface {
	FindPromotionByID(ctx context.Context, workplaceID, promotionID string) (*domain.Promotion, error)
	ListPromotions(ctx context.Context, workplaceID string) ([]domain.Promotion, error)
	SavePromotion(ctx context.Context, promotion domain.Promotion) error
	UpdatePromotion(ctx context.Context, promotion domain.Promotion) error
	DeletePromotion(ctx context.Context, workplaceID, promotionID string) error
}

// CatalogRepositoryFacade combines the vendor/product/promotion repositories.
type CatalogRepositoryFacade interface {
	VendorRepository
	ProductRepository
	PromotionRepository
}
