package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smartstock/backend-go/internal/api/middleware"
	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/service"
)

// AssistantHandler serves the management assistant surfaces: derived
// alerts, the audit trail, forecasts and business settings.
type AssistantHandler struct {
	service *service.Inventory
}

func NewAssistantHandler(service *service.Inventory) *AssistantHandler {
	return &AssistantHandler{service: service}
}

func (h *AssistantHandler) ensureSession(c *gin.Context) {
	ownerID := middleware.OwnerID(c)
	if ownerID != h.service.OwnerID() {
		_ = h.service.SetSession(c.Request.Context(), ownerID)
	}
}

func (h *AssistantHandler) GetAlerts(c *gin.Context) {
	h.ensureSession(c)
	c.JSON(http.StatusOK, gin.H{"alerts": h.service.ActiveAlerts()})
}

func (h *AssistantHandler) IgnoreAlert(c *gin.Context) {
	h.ensureSession(c)

	if !h.service.IgnoreAlert(c.Request.Context(), c.Param("productId")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssistantHandler) MarkAlertRead(c *gin.Context) {
	h.ensureSession(c)
	h.service.MarkAlertRead(c.Request.Context(), c.Param("productId"))
	c.Status(http.StatusNoContent)
}

func (h *AssistantHandler) MarkAllRead(c *gin.Context) {
	h.ensureSession(c)
	h.service.MarkAllRead(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *AssistantHandler) ListEvents(c *gin.Context) {
	h.ensureSession(c)

	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("include_archived", "false"))
	c.JSON(http.StatusOK, gin.H{"events": h.service.Events(includeArchived)})
}

func (h *AssistantHandler) ArchiveEvents(c *gin.Context) {
	h.ensureSession(c)
	h.service.ArchiveHistory()
	c.Status(http.StatusNoContent)
}

func (h *AssistantHandler) ClearEvents(c *gin.Context) {
	h.ensureSession(c)
	h.service.ClearHistory()
	c.Status(http.StatusNoContent)
}

func (h *AssistantHandler) GetForecast(c *gin.Context) {
	h.ensureSession(c)
	c.JSON(http.StatusOK, gin.H{"forecasts": h.service.Forecasts()})
}

func (h *AssistantHandler) GetReorderReport(c *gin.Context) {
	h.ensureSession(c)
	c.JSON(http.StatusOK, h.service.ReorderReport())
}

func (h *AssistantHandler) GetSettings(c *gin.Context) {
	h.ensureSession(c)
	c.JSON(http.StatusOK, h.service.Config())
}

func (h *AssistantHandler) UpdateSettings(c *gin.Context) {
	h.ensureSession(c)

	var req domain.BusinessConfigUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.service.UpdateBusinessConfig(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "settings could not be saved", "config": cfg})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *AssistantHandler) SyncNow(c *gin.Context) {
	h.ensureSession(c)

	if err := h.service.SyncFromCloud(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssistantHandler) ResetSystem(c *gin.Context) {
	h.service.Reset(c.Request.Context())
	c.Status(http.StatusNoContent)
}
