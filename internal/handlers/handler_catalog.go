package handlers

import (
	"net/http"

	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// catalogHandler handles HTTP requests for vendors, products and promotions.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// registerCatalogRoutes registers catalog routes under a workplace group.
func registerCatalogRoutes(wp *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := &catalogHandler{catalogService: catalogService}

	vendors := wp.Group("/vendors")
	{
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:vendor_id", h.getVendor)
		vendors.PUT("/:vendor_id", h.updateVendor)
		vendors.DELETE("/:vendor_id", h.deleteVendor)
	}

	products := wp.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:product_id", h.getProduct)
		products.PUT("/:product_id", h.updateProduct)
		products.DELETE("/:product_id", h.deleteProduct)
	}

	promotions := wp.Group("/promotions")
	{
		promotions.POST("", h.createPromotion)
		promotions.GET("", h.listPromotions)
		promotions.GET("/:promotion_id", h.getPromotion)
		promotions.PUT("/:promotion_id", h.updatePromotion)
		promotions.DELETE("/:promotion_id", h.deletePromotion)
	}
}

// createVendor godoc
// @Summary Register a vendor
// @Tags catalog
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} domain.Vendor
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/vendors [post]
func (h *catalogHandler) createVendor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	vendor, err := h.catalogService.CreateVendor(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create vendor")
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

func (h *catalogHandler) listVendors(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	vendors, err := h.catalogService.ListVendors(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list vendors")
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (h *catalogHandler) getVendor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	vendor, err := h.catalogService.GetVendorByID(c.Request.Context(), c.Param("workplace_id"), c.Param("vendor_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve vendor")
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *catalogHandler) updateVendor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	vendor, err := h.catalogService.UpdateVendor(c.Request.Context(), c.Param("workplace_id"), c.Param("vendor_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update vendor")
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// deleteVendor removes a vendor. Vendors referenced by bills cannot be
// deleted; the service surfaces that as a conflict.
func (h *catalogHandler) deleteVendor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteVendor(c.Request.Context(), c.Param("workplace_id"), c.Param("vendor_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete vendor")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Products ---

func (h *catalogHandler) createProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	product, err := h.catalogService.CreateProduct(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *catalogHandler) listProducts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	products, err := h.catalogService.ListProducts(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *catalogHandler) getProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	product, err := h.catalogService.GetProductByID(c.Request.Context(), c.Param("workplace_id"), c.Param("product_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *catalogHandler) updateProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("workplace_id"), c.Param("product_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *catalogHandler) deleteProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("workplace_id"), c.Param("product_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Promotions ---

func (h *catalogHandler) createPromotion(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	promotion, err := h.catalogService.CreatePromotion(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create promotion")
		return
	}
	c.JSON(http.StatusCreated, promotion)
}

func (h *catalogHandler) listPromotions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	promotions, err := h.catalogService.ListPromotions(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list promotions")
		return
	}
	c.JSON(http.StatusOK, promotions)
}

func (h *catalogHandler) getPromotion(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	promotion, err := h.catalogService.GetPromotionByID(c.Request.Context(), c.Param("workplace_id"), c.Param("promotion_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve promotion")
		return
	}
	c.JSON(http.StatusOK, promotion)
}

func (h *catalogHandler) updatePromotion(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	promotion, err := h.catalogService.UpdatePromotion(c.Request.Context(), c.Param("workplace_id"), c.Param("promotion_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update promotion")
		return
	}
	c.JSON(http.StatusOK, promotion)
}

func (h *catalogHandler) deletePromotion(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeletePromotion(c.Request.Context(), c.Param("workplace_id"), c.Param("promotion_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete promotion")
		return
	}
	c.Status(http.StatusNoContent)
}
