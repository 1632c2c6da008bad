package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartstock/backend-go/internal/api/middleware"
	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.Inventory
}

func NewInventoryHandler(service *service.Inventory) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// ensureSession syncs the session with the owner identity on the
// request. The first observation of a new identity triggers a cloud
// sync; a sync failure degrades silently to local state.
func (h *InventoryHandler) ensureSession(c *gin.Context) {
	ownerID := middleware.OwnerID(c)
	if ownerID != h.service.OwnerID() {
		_ = h.service.SetSession(c.Request.Context(), ownerID)
	}
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	h.ensureSession(c)
	c.JSON(http.StatusOK, gin.H{"products": h.service.Products()})
}

type createProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" binding:"min=0"`
	Price       float64 `json:"price" binding:"min=0"`
	MinStock    int     `json:"min_stock" binding:"required,min=1"`
	TargetStock int     `json:"target_stock" binding:"required,min=1"`
	Unit        string  `json:"unit"`
}

func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	h.ensureSession(c)

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := h.service.AddProduct(c.Request.Context(), domain.Product{
		Name:        req.Name,
		Category:    req.Category,
		Stock:       req.Stock,
		Price:       req.Price,
		MinStock:    req.MinStock,
		TargetStock: req.TargetStock,
		Unit:        req.Unit,
	})

	c.JSON(http.StatusCreated, product)
}

func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	h.ensureSession(c)

	var req domain.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := h.service.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	h.ensureSession(c)

	if !h.service.DeleteProduct(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

type addStockRequest struct {
	Amount  int  `json:"amount" binding:"required"`
	IsOrder bool `json:"is_order"`
}

func (h *InventoryHandler) AddStock(c *gin.Context) {
	h.ensureSession(c)

	var req addStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := h.service.AddStock(c.Request.Context(), c.Param("id"), req.Amount, req.IsOrder)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) GetSummary(c *gin.Context) {
	h.ensureSession(c)
	c.JSON(http.StatusOK, h.service.Summary(c.Request.Context()))
}
