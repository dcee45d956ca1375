package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetStats handles GET /api/admin/stats.
func (h *Handler) GetStats(c *gin.Context) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	stats, err := h.store.DashboardStats(c.Request.Context(), monthStart)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListAllAppointments handles GET /api/admin/appointments.
func (h *Handler) ListAllAppointments(c *gin.Context) {
	appts, err := h.store.ListAppointments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// ListAllComments handles GET /api/admin/comments.
func (h *Handler) ListAllComments(c *gin.Context) {
	comments, err := h.store.ListComments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// ListAllUsers handles GET /api/admin/users.
func (h *Handler) ListAllUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
