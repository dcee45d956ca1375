package model

import (
	"strings"
	"time"
)

// DefaultServiceDuration is the booking length, in minutes, assigned when a
// service is created without one. It matches the slot granularity.
const DefaultServiceDuration = 30

// Service is a grooming service offered in the catalog.
type Service struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Duration    int       `gorm:"not null;default:30" json:"duration"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Normalize trims the service name.
func (s *Service) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
}

// Validate checks the entity before any write.
func (s *Service) Validate() []FieldError {
	var errs []FieldError
	if s.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "El nombre del servicio es requerido"})
	}
	if s.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "La descripción es requerida"})
	}
	if s.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "El precio no puede ser negativo"})
	}
	if s.Duration <= 0 {
		errs = append(errs, FieldError{Field: "duration", Message: "La duración debe ser positiva"})
	}
	return errs
}
