package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"petspa-backend/internal/model"
)

func (s *gormStore) CreateAppointment(ctx context.Context, appt *model.Appointment) error {
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	touch(&appt.CreatedAt, &appt.UpdatedAt)
	return s.db.WithContext(ctx).Create(appt).Error
}

func (s *gormStore) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *gormStore) SaveAppointment(ctx context.Context, appt *model.Appointment) error {
	touch(&appt.CreatedAt, &appt.UpdatedAt)
	// Save the bare row; associations are read-only projections.
	return s.db.WithContext(ctx).Omit("User", "Service").Save(appt).Error
}

// BookedTimes returns the time labels of all active appointments inside the
// day window, ordered for stable output.
func (s *gormStore) BookedTimes(ctx context.Context, dayStart, dayEnd time.Time) ([]string, error) {
	var times []string
	if err := s.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Where("status <> ?", model.StatusCancelled).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// SlotTaken reports whether an active appointment already occupies timeOfDay
// inside the day window. excludeID, when non-empty, leaves a specific
// appointment out of the search so an update does not collide with itself.
func (s *gormStore) SlotTaken(ctx context.Context, dayStart, dayEnd time.Time, timeOfDay, excludeID string) (bool, error) {
	q := s.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Where("time = ?", timeOfDay).
		Where("status <> ?", model.StatusCancelled)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormStore) AppointmentsByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := s.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("date ASC, time ASC").
		Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *gormStore) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Order("date DESC, time DESC").
		Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

// CompleteElapsedAppointments marks confirmed appointments from fully elapsed
// days as completed and returns how many rows changed.
func (s *gormStore) CompleteElapsedAppointments(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("status = ?", model.StatusConfirmed).
		Where("date < ?", before).
		Updates(map[string]any{
			"status":     model.StatusCompleted,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}
