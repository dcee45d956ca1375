package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petspa-backend/internal/model"
	"petspa-backend/internal/mw"
)

type commentRequest struct {
	Text      string  `json:"text"`
	Image     *string `json:"image"`
	ImageType *string `json:"imageType"`
}

// ListComments handles GET /api/comments.
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.store.ListComments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment handles POST /api/comments.
func (h *Handler) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de solicitud inválido"})
		return
	}

	user := mw.CurrentUser(c)
	comment := &model.Comment{
		UserID: user.ID,
		Text:   req.Text,
	}
	if req.Image != nil {
		comment.Image = *req.Image
	}
	if req.ImageType != nil {
		comment.ImageType = *req.ImageType
	}

	if errs := comment.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": model.FirstMessage(errs), "errors": errs})
		return
	}

	if err := h.store.CreateComment(c.Request.Context(), comment); err != nil {
		respondError(c, err)
		return
	}

	created, err := h.store.CommentByID(c.Request.Context(), comment.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateComment handles PUT /api/comments/:id. Only the owner may edit;
// admins cannot rewrite other people's words.
func (h *Handler) UpdateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de solicitud inválido"})
		return
	}

	comment, err := h.store.CommentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comentario no encontrado"})
			return
		}
		respondError(c, err)
		return
	}

	user := mw.CurrentUser(c)
	if comment.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "No autorizado para editar este comentario"})
		return
	}

	if req.Text != "" {
		comment.Text = req.Text
	}
	if req.Image != nil {
		comment.Image = *req.Image
	}
	if req.ImageType != nil {
		comment.ImageType = *req.ImageType
	}

	if errs := comment.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": model.FirstMessage(errs), "errors": errs})
		return
	}

	if err := h.store.SaveComment(c.Request.Context(), comment); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.store.CommentByID(c.Request.Context(), comment.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteComment handles DELETE /api/comments/:id. The owner or an admin may
// remove a comment; this one is a real delete.
func (h *Handler) DeleteComment(c *gin.Context) {
	comment, err := h.store.CommentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comentario no encontrado"})
			return
		}
		respondError(c, err)
		return
	}

	user := mw.CurrentUser(c)
	if comment.UserID != user.ID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "No autorizado para eliminar este comentario"})
		return
	}

	if err := h.store.DeleteComment(c.Request.Context(), comment.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comentario eliminado correctamente"})
}
