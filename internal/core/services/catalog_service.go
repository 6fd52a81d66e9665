package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/platform/events"
	"github.com/google/uuid"
)

const (
	vendorsTable    = "vendors"
	productsTable   = "products"
	promotionsTable = "promotions"
)

type catalogService struct {
	BaseService
	repo     portsrepo.CatalogRepositoryFacade
	notifier events.Notifier
}

// NewCatalogService creates the service covering vendors, products and
// promotions.
func NewCatalogService(repo portsrepo.CatalogRepositoryFacade, workplaceAuthorizer portssvc.WorkplaceAuthorizerSvc, notifier events.Notifier) portssvc.CatalogSvcFacade {
	return &catalogService{
		BaseService: BaseService{WorkplaceAuthorizer: workplaceAuthorizer},
		repo:        repo,
		notifier:    notifier,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) publish(ctx context.Context, table string, action domain.ChangeAction, entityID, workplaceID string) {
	s.notifier.Publish(ctx, domain.ChangeEvent{
		Table:       table,
		Action:      action,
		EntityID:    entityID,
		WorkplaceID: workplaceID,
	})
}

// --- Vendors ---

func (s *catalogService) CreateVendor(ctx context.Context, workplaceID string, req dto.CreateVendorRequest, userID string) (*domain.Vendor, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vendor := domain.Vendor{
		VendorID:    uuid.NewString(),
		WorkplaceID: workplaceID,
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		IsActive:    true,
		AuditFields: newAudit(userID, now),
	}
	if err := s.repo.SaveVendor(ctx, vendor); err != nil {
		s.LogError(ctx, err, "Failed to save vendor", slog.String("name", req.Name))
		return nil, err
	}
	s.publish(ctx, vendorsTable, domain.ActionInsert, vendor.VendorID, workplaceID)
	return &vendor, nil
}

func (s *catalogService) UpdateVendor(ctx context.Context, workplaceID, vendorID string, req dto.UpdateVendorRequest, userID string) (*domain.Vendor, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	vendor, err := s.repo.FindVendorByID(ctx, workplaceID, vendorID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.ContactName != nil {
		vendor.ContactName = *req.ContactName
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	vendor.LastUpdatedAt = time.Now().UTC()
	vendor.LastUpdatedBy = userID

	if err := s.repo.UpdateVendor(ctx, *vendor); err != nil {
		s.LogError(ctx, err, "Failed to update vendor", slog.String("vendor_id", vendorID))
		return nil, err
	}
	s.publish(ctx, vendorsTable, domain.ActionUpdate, vendorID, workplaceID)
	return vendor, nil
}

func (s *catalogService) DeleteVendor(ctx context.Context, workplaceID, vendorID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteVendor(ctx, workplaceID, vendorID); err != nil {
		return err
	}
	s.publish(ctx, vendorsTable, domain.ActionDelete, vendorID, workplaceID)
	return nil
}

func (s *catalogService) GetVendorByID(ctx context.Context, workplaceID, vendorID, userID string) (*domain.Vendor, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindVendorByID(ctx, workplaceID, vendorID)
}

func (s *catalogService) ListVendors(ctx context.Context, workplaceID, userID string) ([]domain.Vendor, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListVendors(ctx, workplaceID)
}

// --- Products ---

func (s *catalogService) CreateProduct(ctx context.Context, workplaceID string, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.UnitPrice.IsNegative() || req.StockQty < 0 {
		return nil, apperrors.NewAppError(400, "price and stock must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:   uuid.NewString(),
		WorkplaceID: workplaceID,
		SKU:         req.SKU,
		Name:        req.Name,
		UnitPrice:   req.UnitPrice,
		StockQty:    req.StockQty,
		IsActive:    true,
		AuditFields: newAudit(userID, now),
	}
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("sku", req.SKU))
		return nil, err
	}
	s.publish(ctx, productsTable, domain.ActionInsert, product.ProductID, workplaceID)
	return &product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, workplaceID, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	product, err := s.repo.FindProductByID(ctx, workplaceID, productID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, apperrors.NewAppError(400, "price must not be negative", apperrors.ErrValidation)
		}
		product.UnitPrice = *req.UnitPrice
	}
	if req.StockQty != nil {
		if *req.StockQty < 0 {
			return nil, apperrors.NewAppError(400, "stock must not be negative", apperrors.ErrValidation)
		}
		product.StockQty = *req.StockQty
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID

	if err := s.repo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product", slog.String("product_id", productID))
		return nil, err
	}
	s.publish(ctx, productsTable, domain.ActionUpdate, productID, workplaceID)
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, workplaceID, productID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, workplaceID, productID); err != nil {
		return err
	}
	s.publish(ctx, productsTable, domain.ActionDelete, productID, workplaceID)
	return nil
}

func (s *catalogService) GetProductByID(ctx context.Context, workplaceID, productID, userID string) (*domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindProductByID(ctx, workplaceID, productID)
}

func (s *catalogService) ListProducts(ctx context.Context, workplaceID, userID string) ([]domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListProducts(ctx, workplaceID)
}

// --- Promotions ---

func (s *catalogService) CreatePromotion(ctx context.Context, workplaceID string, req dto.CreatePromotionRequest, userID string) (*domain.Promotion, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.EndsAt.Before(req.StartsAt) {
		return nil, apperrors.NewAppError(400, "promotion must end after it starts", apperrors.ErrValidation)
	}
	if req.DiscountPercent.IsNegative() {
		return nil, apperrors.NewAppError(400, "discount must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	promotion := domain.Promotion{
		PromotionID:     uuid.NewString(),
		WorkplaceID:     workplaceID,
		Name:            req.Name,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		IsActive:        true,
		AuditFields:     newAudit(userID, now),
	}
	if err := s.repo.SavePromotion(ctx, promotion); err != nil {
		s.LogError(ctx, err, "Failed to save promotion", slog.String("name", req.Name))
		return nil, err
	}
	s.publish(ctx, promotionsTable, domain.ActionInsert, promotion.PromotionID, workplaceID)
	return &promotion, nil
}

func (s *catalogService) UpdatePromotion(ctx context.Context, workplaceID, promotionID string, req dto.UpdatePromotionRequest, userID string) (*domain.Promotion, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	promotion, err := s.repo.FindPromotionByID(ctx, workplaceID, promotionID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		promotion.Name = *req.Name
	}
	if req.DiscountPercent != nil {
		if req.DiscountPercent.IsNegative() {
			return nil, apperrors.NewAppError(400, "discount must not be negative", apperrors.ErrValidation)
		}
		promotion.DiscountPercent = *req.DiscountPercent
	}
	if req.StartsAt != nil {
		promotion.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		promotion.EndsAt = *req.EndsAt
	}
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}
	if promotion.EndsAt.Before(promotion.StartsAt) {
		return nil, apperrors.NewAppError(400, "promotion must end after it starts", apperrors.ErrValidation)
	}
	promotion.LastUpdatedAt = time.Now().UTC()
	promotion.LastUpdatedBy = userID

	if err := s.repo.UpdatePromotion(ctx, *promotion); err != nil {
		s.LogError(ctx, err, "Failed to update promotion", slog.String("promotion_id", promotionID))
		return nil, err
	}
	s.publish(ctx, promotionsTable, domain.ActionUpdate, promotionID, workplaceID)
	return promotion, nil
}

func (s *catalogService) DeletePromotion(ctx context.Context, workplaceID, promotionID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.repo.DeletePromotion(ctx, workplaceID, promotionID); err != nil {
		return err
	}
	s.publish(ctx, promotionsTable, domain.ActionDelete, promotionID, workplaceID)
	return nil
}

func (s *catalogService) GetPromotionByID(ctx context.Context, workplaceID, promotionID, userID string) (*domain.Promotion, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.FindPromotionByID(ctx, workplaceID, promotionID)
}

func (s *catalogService) ListPromotions(ctx context.Context, workplaceID, userID string) ([]domain.Promotion, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.repo.ListPromotions(ctx, workplaceID)
}
