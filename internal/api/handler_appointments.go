package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petspa-backend/internal/booking"
	"petspa-backend/internal/mw"
)

type createAppointmentRequest struct {
	ServiceID string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// GetAvailability handles GET /api/appointments/available/:date.
func (h *Handler) GetAvailability(c *gin.Context) {
	avail, err := h.engine.Availability(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

// CreateAppointment handles POST /api/appointments.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de solicitud inválido"})
		return
	}

	user := mw.CurrentUser(c)
	appt, err := h.engine.Create(c.Request.Context(), user.ID, req.ServiceID, req.Date, req.Time)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// MyAppointments handles GET /api/appointments/my.
func (h *Handler) MyAppointments(c *gin.Context) {
	user := mw.CurrentUser(c)
	appts, err := h.engine.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetAppointment handles GET /api/appointments/:id.
func (h *Handler) GetAppointment(c *gin.Context) {
	appt, err := h.engine.Get(c.Request.Context(), c.Param("id"), mw.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// UpdateAppointment handles PUT /api/appointments/:id.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	var changes booking.Changes
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de solicitud inválido"})
		return
	}

	appt, err := h.engine.Update(c.Request.Context(), c.Param("id"), mw.CurrentUser(c), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelAppointment handles DELETE /api/appointments/:id. Cancellation is a
// status change; the record is never removed.
func (h *Handler) CancelAppointment(c *gin.Context) {
	if err := h.engine.Cancel(c.Request.Context(), c.Param("id"), mw.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": booking.CancelledMessage})
}
