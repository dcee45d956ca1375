// Package booking implements the scheduling engine: slot availability,
// race-safe appointment creation, and the appointment lifecycle.
package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"petspa-backend/internal/apperr"
	"petspa-backend/internal/model"
	"petspa-backend/internal/schedule"
	"petspa-backend/internal/store"
)

// Client-facing messages. The frontend renders these verbatim.
const (
	msgInvalidDate         = "Fecha inválida (usar YYYY-MM-DD)"
	msgServiceNotFound     = "Servicio no encontrado"
	msgAppointmentNotFound = "Cita no encontrada"
	msgOutOfWorkingHours   = "Horario fuera del rango permitido (10:00 - 18:00)"
	msgSlotTaken           = "Este horario ya está ocupado"
	msgNotAuthorized       = "No autorizado"
	msgCancelled           = "Cita cancelada correctamente"
)

// CancelledMessage is the response body text for a successful cancellation.
const CancelledMessage = msgCancelled

// Availability is the slot picture for one calendar date.
type Availability struct {
	Date           string   `json:"date"`
	AllSlots       []string `json:"allSlots"`
	BookedSlots    []string `json:"bookedSlots"`
	AvailableSlots []string `json:"availableSlots"`
}

// Changes is a partial update to an appointment. Empty fields are left
// untouched.
type Changes struct {
	ServiceID string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

// Engine coordinates slot availability and appointment writes on top of the
// store. The store's partial unique index is the final arbiter under
// concurrent bookings; everything else here is validation and the friendly
// error path.
type Engine struct {
	store store.Store
}

// NewEngine creates a booking engine backed by s.
func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

// Availability resolves booked and free slots for a "YYYY-MM-DD" date. The
// result is a snapshot: it can be stale by the time a booking is attempted,
// which the create path re-checks.
func (e *Engine) Availability(ctx context.Context, dateStr string) (*Availability, error) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, msgInvalidDate)
	}

	dayStart, dayEnd := schedule.DayWindow(date)
	bookedTimes, err := e.store.BookedTimes(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// The slot invariant makes duplicates impossible, but do not rely on it.
	booked := make([]string, 0, len(bookedTimes))
	seen := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		if !seen[t] {
			seen[t] = true
			booked = append(booked, t)
		}
	}

	all := schedule.Slots()
	free := make([]string, 0, len(all))
	for _, slot := range all {
		if !seen[slot] {
			free = append(free, slot)
		}
	}

	return &Availability{
		Date:           dateStr,
		AllSlots:       all,
		BookedSlots:    booked,
		AvailableSlots: free,
	}, nil
}

// Create books a slot for a user. Validation order: service existence, working
// hours, slot collision. The duplicate-key path exists because two requests
// can both pass the collision pre-check before either commits.
func (e *Engine) Create(ctx context.Context, userID, serviceID, dateStr, timeOfDay string) (*model.Appointment, error) {
	if _, err := e.store.ServiceByID(ctx, serviceID); err != nil {
		return nil, asNotFound(err, msgServiceNotFound)
	}

	if !schedule.InWorkingHours(timeOfDay) {
		return nil, apperr.New(apperr.KindInvalidInput, msgOutOfWorkingHours)
	}

	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, msgInvalidDate)
	}

	appt := &model.Appointment{
		UserID:    userID,
		ServiceID: serviceID,
		Date:      schedule.Normalize(date),
		Time:      timeOfDay,
		Status:    model.StatusPending,
	}
	if errs := appt.Validate(); len(errs) > 0 {
		return nil, apperr.New(apperr.KindInvalidInput, model.FirstMessage(errs))
	}

	dayStart, dayEnd := schedule.DayWindow(appt.Date)
	taken, err := e.store.SlotTaken(ctx, dayStart, dayEnd, appt.Time, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.KindConflict, msgSlotTaken)
	}

	if err := e.store.CreateAppointment(ctx, appt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.KindConflict, msgSlotTaken)
		}
		return nil, err
	}

	return e.store.AppointmentByID(ctx, appt.ID)
}

// Get fetches an appointment, enforcing ownership.
func (e *Engine) Get(ctx context.Context, id string, requester *model.User) (*model.Appointment, error) {
	appt, err := e.store.AppointmentByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, msgAppointmentNotFound)
	}
	if err := authorize(appt, requester); err != nil {
		return nil, err
	}
	return appt, nil
}

// Update applies a partial change set. A new date or time re-runs the working
// hours and collision checks against the new slot, excluding the appointment
// itself; status or service-only changes skip slot re-validation.
func (e *Engine) Update(ctx context.Context, id string, requester *model.User, ch Changes) (*model.Appointment, error) {
	appt, err := e.store.AppointmentByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, msgAppointmentNotFound)
	}
	if err := authorize(appt, requester); err != nil {
		return nil, err
	}

	if ch.Date != "" || ch.Time != "" {
		newDate := appt.Date
		if ch.Date != "" {
			parsed, err := schedule.ParseDate(ch.Date)
			if err != nil {
				return nil, apperr.New(apperr.KindInvalidInput, msgInvalidDate)
			}
			newDate = schedule.Normalize(parsed)
		}
		newTime := appt.Time
		if ch.Time != "" {
			newTime = ch.Time
		}

		if !schedule.InWorkingHours(newTime) {
			return nil, apperr.New(apperr.KindInvalidInput, msgOutOfWorkingHours)
		}

		dayStart, dayEnd := schedule.DayWindow(newDate)
		taken, err := e.store.SlotTaken(ctx, dayStart, dayEnd, newTime, appt.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.New(apperr.KindConflict, msgSlotTaken)
		}

		appt.Date = newDate
		appt.Time = newTime
	}

	if ch.ServiceID != "" {
		if _, err := e.store.ServiceByID(ctx, ch.ServiceID); err != nil {
			return nil, asNotFound(err, msgServiceNotFound)
		}
		appt.ServiceID = ch.ServiceID
	}

	if ch.Status != "" {
		// Any recognized status is accepted; there is no transition graph.
		status := model.AppointmentStatus(ch.Status)
		if !status.Valid() {
			return nil, apperr.New(apperr.KindInvalidInput, "Estado de cita inválido")
		}
		appt.Status = status
	}

	if errs := appt.Validate(); len(errs) > 0 {
		return nil, apperr.New(apperr.KindInvalidInput, model.FirstMessage(errs))
	}

	if err := e.store.SaveAppointment(ctx, appt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.KindConflict, msgSlotTaken)
		}
		return nil, err
	}

	return e.store.AppointmentByID(ctx, appt.ID)
}

// Cancel soft-deletes an appointment: the status flips to cancelled and the
// slot frees up immediately. Cancelling from any status, including a second
// cancel, succeeds.
func (e *Engine) Cancel(ctx context.Context, id string, requester *model.User) error {
	appt, err := e.store.AppointmentByID(ctx, id)
	if err != nil {
		return asNotFound(err, msgAppointmentNotFound)
	}
	if err := authorize(appt, requester); err != nil {
		return err
	}

	appt.Status = model.StatusCancelled
	return e.store.SaveAppointment(ctx, appt)
}

// ListForUser returns the requester's own appointments, soonest first.
func (e *Engine) ListForUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	return e.store.AppointmentsByUser(ctx, userID)
}

// authorize allows the owning user and administrators.
func authorize(appt *model.Appointment, requester *model.User) error {
	if requester == nil {
		return apperr.New(apperr.KindUnauthenticated, msgNotAuthorized)
	}
	if appt.UserID != requester.ID && !requester.IsAdmin {
		return apperr.New(apperr.KindForbidden, msgNotAuthorized)
	}
	return nil
}

func asNotFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.KindNotFound, message)
	}
	return err
}
