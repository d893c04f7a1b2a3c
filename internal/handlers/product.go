package handlers

import (
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/internal/services"
	"github.com/urmedia/masala-api/pkg/dto"
)

type ProductHandler struct {
	productService ProductServiceInterface
}

func NewProductHandler(productService ProductServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func productParams(req dto.ProductRequest) services.ProductParams {
	status := req.Status
	if status == "" {
		status = models.ProductStatusActive
	}
	return services.ProductParams{
		Name:          req.Name,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		StockQty:      req.StockQty,
		SKU:           req.SKU,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		Status:        status,
	}
}

func (h *ProductHandler) Create(c *drift.Context) {
	var req dto.ProductRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	if req.Price <= 0 {
		c.BadRequest("price must be greater than zero")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), productParams(req))
	if err != nil {
		c.InternalServerError("failed to create product")
		return
	}

	_ = c.JSON(201, product)
}

// List returns every product for the admin catalog page.
func (h *ProductHandler) List(c *drift.Context) {
	products, err := h.productService.List(c.Request.Context(), false)
	if err != nil {
		c.InternalServerError("failed to list products")
		return
	}
	_ = c.JSON(200, products)
}

// ListPublic returns active products only, for the storefront.
func (h *ProductHandler) ListPublic(c *drift.Context) {
	products, err := h.productService.List(c.Request.Context(), true)
	if err != nil {
		c.InternalServerError("failed to list products")
		return
	}
	_ = c.JSON(200, products)
}

func (h *ProductHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.BadRequest("invalid product id")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.NotFound("product not found")
		return
	}

	_ = c.JSON(200, product)
}

func (h *ProductHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.BadRequest("invalid product id")
		return
	}

	var req dto.ProductRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	if req.Price <= 0 {
		c.BadRequest("price must be greater than zero")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, productParams(req))
	if err != nil {
		c.NotFound("product not found")
		return
	}

	_ = c.JSON(200, product)
}

func (h *ProductHandler) UpdateStatus(c *drift.Context) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.BadRequest("invalid product id")
		return
	}

	var req dto.ProductStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Status != models.ProductStatusActive && req.Status != models.ProductStatusInactive {
		c.BadRequest("status must be active or inactive")
		return
	}

	product, err := h.productService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.NotFound("product not found")
		return
	}

	_ = c.JSON(200, product)
}

func (h *ProductHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.BadRequest("invalid product id")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		c.InternalServerError("failed to delete product")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "product deleted"})
}
