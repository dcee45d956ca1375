package model

import (
	"strings"
	"time"
)

// Recognized pet types.
const (
	PetTypeDog   = "Perro"
	PetTypeCat   = "Gato"
	PetTypeOther = "Otro"
)

// DefaultPetBreed is assigned when registration omits the breed.
const DefaultPetBreed = "Mestizo"

// User represents a registered customer or administrator.
type User struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string     `gorm:"size:256;not null" json:"name"`
	Email             string     `gorm:"size:256;not null;uniqueIndex" json:"email"`
	Password          string     `gorm:"size:128;not null" json:"-"`
	Phone             string     `gorm:"size:32;not null" json:"phone"`
	PetName           string     `gorm:"size:256;not null" json:"petName"`
	PetType           string     `gorm:"size:32;not null" json:"petType"`
	PetBreed          string     `gorm:"size:128;not null" json:"petBreed"`
	IsAdmin           bool       `gorm:"not null;default:false" json:"isAdmin"`
	TermsAccepted     bool       `gorm:"not null;default:false" json:"termsAccepted"`
	TermsAcceptedDate *time.Time `json:"termsAcceptedDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Normalize trims and lowercases the fields the store treats as canonical.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// Validate checks the entity before any write. Password length is checked
// against the plaintext at registration time, not here, since the stored value
// is a bcrypt hash.
func (u *User) Validate() []FieldError {
	var errs []FieldError
	if u.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "El nombre es requerido"})
	}
	if u.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "El email es requerido"})
	}
	if u.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "La contraseña es requerida"})
	}
	if u.Phone == "" {
		errs = append(errs, FieldError{Field: "phone", Message: "El teléfono es requerido"})
	}
	if u.PetName == "" {
		errs = append(errs, FieldError{Field: "petName", Message: "El nombre de la mascota es requerido"})
	}
	switch u.PetType {
	case PetTypeDog, PetTypeCat, PetTypeOther:
	default:
		errs = append(errs, FieldError{Field: "petType", Message: "El tipo de mascota es requerido"})
	}
	return errs
}
