package model

import (
	"regexp"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment. The values are
// the Spanish labels the API has always exposed.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pendiente"
	StatusConfirmed AppointmentStatus = "Confirmada"
	StatusCompleted AppointmentStatus = "Completada"
	StatusCancelled AppointmentStatus = "Cancelada"
)

// Valid reports whether s is one of the recognized statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Appointment is a booked slot. The partial unique index on (date, time) over
// non-cancelled rows is the correctness backstop for concurrent bookings; the
// service layer's existence pre-check only provides the friendly error path.
type Appointment struct {
	ID        string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string            `gorm:"type:uuid;not null;index" json:"userId"`
	ServiceID string            `gorm:"type:uuid;not null;index" json:"serviceId"`
	Date      time.Time         `gorm:"not null;index;uniqueIndex:ux_appointments_slot,where:status <> 'Cancelada'" json:"date"`
	Time      string            `gorm:"size:5;not null;uniqueIndex:ux_appointments_slot,where:status <> 'Cancelada'" json:"time"`
	Status    AppointmentStatus `gorm:"size:32;not null;default:'Pendiente'" json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`

	// Associations, populated on read for client convenience.
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// Active reports whether the appointment occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// Validate checks the entity before any write.
func (a *Appointment) Validate() []FieldError {
	var errs []FieldError
	if a.UserID == "" {
		errs = append(errs, FieldError{Field: "user", Message: "El usuario es requerido"})
	}
	if a.ServiceID == "" {
		errs = append(errs, FieldError{Field: "service", Message: "El servicio es requerido"})
	}
	if a.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: "La fecha es requerida"})
	}
	if a.Time == "" {
		errs = append(errs, FieldError{Field: "time", Message: "La hora es requerida"})
	} else if !timeOfDayRe.MatchString(a.Time) {
		errs = append(errs, FieldError{Field: "time", Message: "Formato de hora inválido (usar HH:MM)"})
	}
	if !a.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "Estado de cita inválido"})
	}
	return errs
}
