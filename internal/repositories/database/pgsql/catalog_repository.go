package pgsql

import (
	"context"
	"errors"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for vendors, products and
// promotions.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

// --- Vendors ---

const vendorColumns = `
	vendor_id, workplace_id, name, contact_name, email, phone, address, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCatalogRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		vendor.VendorID, vendor.WorkplaceID, vendor.Name, vendor.ContactName,
		vendor.Email, vendor.Phone, vendor.Address, vendor.IsActive,
		vendor.CreatedAt, vendor.CreatedBy, vendor.LastUpdatedAt, vendor.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert vendor "+vendor.VendorID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $1, contact_name = $2, email = $3, phone = $4, address = $5,
		    is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE workplace_id = $9 AND vendor_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		vendor.Name, vendor.ContactName, vendor.Email, vendor.Phone, vendor.Address,
		vendor.IsActive, vendor.LastUpdatedAt, vendor.LastUpdatedBy,
		vendor.WorkplaceID, vendor.VendorID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update vendor "+vendor.VendorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) DeleteVendor(ctx context.Context, workplaceID, vendorID string) error {
	query := `DELETE FROM vendors WHERE workplace_id = $1 AND vendor_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, vendorID)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Bills still reference this vendor.
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete vendor "+vendorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) FindVendorByID(ctx context.Context, workplaceID, vendorID string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE workplace_id = $1 AND vendor_id = $2;`
	vendor, err := scanVendor(r.Pool.QueryRow(ctx, query, workplaceID, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find vendor "+vendorID, err)
	}
	return vendor, nil
}

func (r *PgxCatalogRepository) ListVendors(ctx context.Context, workplaceID string) ([]domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE workplace_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vendors", err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vendor row", err)
		}
		vendors = append(vendors, *vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate vendor rows", err)
	}
	return vendors, nil
}

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var v domain.Vendor
	err := row.Scan(
		&v.VendorID, &v.WorkplaceID, &v.Name, &v.ContactName,
		&v.Email, &v.Phone, &v.Address, &v.IsActive,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// --- Products ---

const productColumns = `
	product_id, workplace_id, sku, name, unit_price, stock_qty, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCatalogRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.WorkplaceID, product.SKU, product.Name,
		product.UnitPrice, product.StockQty, product.IsActive,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert product "+product.ProductID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET sku = $1, name = $2, unit_price = $3, stock_qty = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE workplace_id = $8 AND product_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		product.SKU, product.Name, product.UnitPrice, product.StockQty, product.IsActive,
		product.LastUpdatedAt, product.LastUpdatedBy,
		product.WorkplaceID, product.ProductID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update product "+product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) DeleteProduct(ctx context.Context, workplaceID, productID string) error {
	query := `DELETE FROM products WHERE workplace_id = $1 AND product_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, productID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete product "+productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) FindProductByID(ctx context.Context, workplaceID, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE workplace_id = $1 AND product_id = $2;`
	product, err := scanProduct(r.Pool.QueryRow(ctx, query, workplaceID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product "+productID, err)
	}
	return product, nil
}

func (r *PgxCatalogRepository) ListProducts(ctx context.Context, workplaceID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE workplace_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate product rows", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID, &p.WorkplaceID, &p.SKU, &p.Name,
		&p.UnitPrice, &p.StockQty, &p.IsActive,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --- Promotions ---

const promotionColumns = `
	promotion_id, workplace_id, name, discount_percent, starts_at, ends_at, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCatalogRepository) SavePromotion(ctx context.Context, promotion domain.Promotion) error {
	query := `
		INSERT INTO promotions (` + promotionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		promotion.PromotionID, promotion.WorkplaceID, promotion.Name,
		promotion.DiscountPercent, promotion.StartsAt, promotion.EndsAt, promotion.IsActive,
		promotion.CreatedAt, promotion.CreatedBy, promotion.LastUpdatedAt, promotion.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert promotion "+promotion.PromotionID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UpdatePromotion(ctx context.Context, promotion domain.Promotion) error {
	query := `
		UPDATE promotions
		SET name = $1, discount_percent = $2, starts_at = $3, ends_at = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE workplace_id = $8 AND promotion_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		promotion.Name, promotion.DiscountPercent, promotion.StartsAt, promotion.EndsAt,
		promotion.IsActive, promotion.LastUpdatedAt, promotion.LastUpdatedBy,
		promotion.WorkplaceID, promotion.PromotionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update promotion "+promotion.PromotionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) DeletePromotion(ctx context.Context, workplaceID, promotionID string) error {
	query := `DELETE FROM promotions WHERE workplace_id = $1 AND promotion_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, workplaceID, promotionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete promotion "+promotionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) FindPromotionByID(ctx context.Context, workplaceID, promotionID string) (*domain.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE workplace_id = $1 AND promotion_id = $2;`
	promotion, err := scanPromotion(r.Pool.QueryRow(ctx, query, workplaceID, promotionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find promotion "+promotionID, err)
	}
	return promotion, nil
}

func (r *PgxCatalogRepository) ListPromotions(ctx context.Context, workplaceID string) ([]domain.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE workplace_id = $1 ORDER BY starts_at DESC;`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query promotions", err)
	}
	defer rows.Close()

	promotions := []domain.Promotion{}
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan promotion row", err)
		}
		promotions = append(promotions, *promotion)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate promotion rows", err)
	}
	return promotions, nil
}

func scanPromotion(row pgx.Row) (*domain.Promotion, error) {
	var p domain.Promotion
	err := row.Scan(
		&p.PromotionID, &p.WorkplaceID, &p.Name,
		&p.DiscountPercent, &p.StartsAt, &p.EndsAt, &p.IsActive,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
