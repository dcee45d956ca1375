package model

import "time"

// MaxCommentImageChars caps the base64 image payload (roughly 5MB of raw data).
const MaxCommentImageChars = 7000000

// Comment is customer feedback with an optional inline image.
type Comment struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	Text      string    `gorm:"size:1000;not null" json:"text"`
	Image     string    `json:"image,omitempty"`
	ImageType string    `gorm:"size:64" json:"imageType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Validate checks the entity before any write.
func (c *Comment) Validate() []FieldError {
	var errs []FieldError
	if c.UserID == "" {
		errs = append(errs, FieldError{Field: "user", Message: "El usuario es requerido"})
	}
	if c.Text == "" {
		errs = append(errs, FieldError{Field: "text", Message: "El comentario no puede estar vacío"})
	}
	if len(c.Text) > 1000 {
		errs = append(errs, FieldError{Field: "text", Message: "El comentario es demasiado largo (máximo 1000 caracteres)"})
	}
	if len(c.Image) > MaxCommentImageChars {
		errs = append(errs, FieldError{Field: "image", Message: "La imagen es demasiado grande (máximo 5MB)"})
	}
	return errs
}
