package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petspa-backend/internal/model"
)

type serviceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Duration    int      `json:"duration"`
	IsActive    *bool    `json:"isActive"`
}

// ListServices handles GET /api/services.
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.store.ListActiveServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetService handles GET /api/services/:id.
func (h *Handler) GetService(c *gin.Context) {
	service, err := h.store.ServiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Servicio no encontrado"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// CreateService handles POST /api/services (admin only).
func (h *Handler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de solicitud inválido"})
		return
	}

	service := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		IsActive:    true,
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if service.Duration == 0 {
		service.Duration = model.DefaultServiceDuration
	}
	service.Normalize()

	if errs := service.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": model.FirstMessage(errs), "errors": errs})
		return
	}

	if err := h.store.CreateService(c.Request.Context(), service); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

// UpdateService handles PUT /api/services/:id (admin only). Empty or absent
// fields are left unchanged.
func (h *Handler) UpdateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de solicitud inválido"})
		return
	}

	service, err := h.store.ServiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Servicio no encontrado"})
			return
		}
		respondError(c, err)
		return
	}

	if req.Name != "" {
		service.Name = req.Name
	}
	if req.Description != "" {
		service.Description = req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Duration != 0 {
		service.Duration = req.Duration
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.Normalize()

	if errs := service.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": model.FirstMessage(errs), "errors": errs})
		return
	}

	if err := h.store.SaveService(c.Request.Context(), service); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService handles DELETE /api/services/:id (admin only). Unlike
// appointments, services are removed outright.
func (h *Handler) DeleteService(c *gin.Context) {
	if _, err := h.store.ServiceByID(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Servicio no encontrado"})
			return
		}
		respondError(c, err)
		return
	}

	if err := h.store.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Servicio eliminado correctamente"})
}
