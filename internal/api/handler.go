package api

import (
	"github.com/gin-gonic/gin"

	"petspa-backend/internal/apperr"
	"petspa-backend/internal/auth"
	"petspa-backend/internal/booking"
	"petspa-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store      store.Store
	engine     *booking.Engine
	tokens     *auth.TokenIssuer
	bcryptCost int
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, engine *booking.Engine, tokens *auth.TokenIssuer, bcryptCost int) *Handler {
	return &Handler{
		store:      s,
		engine:     engine,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// respondError writes the {message} failure body with the status mapped from
// the error kind.
func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.Status(err), gin.H{"message": apperr.Message(err)})
}
