package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petspa-backend/internal/auth"
	"petspa-backend/internal/model"
	"petspa-backend/internal/mw"
)

type registerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	PetName       string `json:"petName"`
	PetType       string `json:"petType"`
	PetBreed      string `json:"petBreed"`
	TermsAccepted bool   `json:"termsAccepted"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the profile-plus-token body returned by register and login.
type authResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PetName  string `json:"petName"`
	PetType  string `json:"petType"`
	PetBreed string `json:"petBreed"`
	IsAdmin  bool   `json:"isAdmin"`
	Token    string `json:"token"`
}

func (h *Handler) newAuthResponse(user *model.User) (*authResponse, error) {
	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	return &authResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		PetName:  user.PetName,
		PetType:  user.PetType,
		PetBreed: user.PetBreed,
		IsAdmin:  user.IsAdmin,
		Token:    token,
	}, nil
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de solicitud inválido"})
		return
	}

	if !req.TermsAccepted {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Debes aceptar los términos y condiciones"})
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "La contraseña debe tener al menos 6 caracteres"})
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	user := &model.User{
		Name:              req.Name,
		Email:             req.Email,
		Password:          hash,
		Phone:             req.Phone,
		PetName:           req.PetName,
		PetType:           req.PetType,
		PetBreed:          req.PetBreed,
		TermsAccepted:     true,
		TermsAcceptedDate: &now,
	}
	if user.PetBreed == "" {
		user.PetBreed = model.DefaultPetBreed
	}
	user.Normalize()

	if errs := user.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": model.FirstMessage(errs), "errors": errs})
		return
	}

	if _, err := h.store.UserByEmail(c.Request.Context(), user.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El usuario ya existe"})
		return
	}

	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		// Unique index on email closes the register race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "El usuario ya existe"})
			return
		}
		respondError(c, err)
		return
	}

	resp, err := h.newAuthResponse(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de solicitud inválido"})
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email o contraseña inválidos"})
		return
	}

	resp, err := h.newAuthResponse(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Profile handles GET /api/auth/profile.
func (h *Handler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, mw.CurrentUser(c))
}
