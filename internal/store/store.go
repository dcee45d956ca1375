package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"petspa-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Users
	CreateUser(ctx context.Context, user *model.User) error
	UserByID(ctx context.Context, id string) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	// Services
	CreateService(ctx context.Context, service *model.Service) error
	ServiceByID(ctx context.Context, id string) (*model.Service, error)
	ListActiveServices(ctx context.Context) ([]model.Service, error)
	SaveService(ctx context.Context, service *model.Service) error
	DeleteService(ctx context.Context, id string) error

	// Appointments
	CreateAppointment(ctx context.Context, appt *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	SaveAppointment(ctx context.Context, appt *model.Appointment) error
	BookedTimes(ctx context.Context, dayStart, dayEnd time.Time) ([]string, error)
	SlotTaken(ctx context.Context, dayStart, dayEnd time.Time, timeOfDay, excludeID string) (bool, error)
	AppointmentsByUser(ctx context.Context, userID string) ([]model.Appointment, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	CompleteElapsedAppointments(ctx context.Context, before time.Time) (int64, error)

	// Comments
	CreateComment(ctx context.Context, comment *model.Comment) error
	CommentByID(ctx context.Context, id string) (*model.Comment, error)
	ListComments(ctx context.Context) ([]model.Comment, error)
	SaveComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, id string) error

	// Reporting
	DashboardStats(ctx context.Context, monthStart time.Time) (*DashboardStats, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// touch sets the managed timestamps explicitly; no save hooks are involved.
func touch(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
