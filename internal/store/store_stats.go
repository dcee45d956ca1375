package store

import (
	"context"
	"time"

	"petspa-backend/internal/model"
)

// StatusCount is the number of appointments in one status.
type StatusCount struct {
	Status model.AppointmentStatus `json:"status"`
	Count  int64                   `json:"count"`
}

// PopularService is an aggregation row for the most-booked services.
type PopularService struct {
	ServiceID string  `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Count     int64   `json:"count"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	TotalUsers            int64            `json:"totalUsers"`
	TotalAppointments     int64            `json:"totalAppointments"`
	TotalServices         int64            `json:"totalServices"`
	TotalComments         int64            `json:"totalComments"`
	AppointmentsByStatus  []StatusCount    `json:"appointmentsByStatus"`
	AppointmentsThisMonth int64            `json:"appointmentsThisMonth"`
	MonthlyRevenue        float64          `json:"monthlyRevenue"`
	PopularServices       []PopularService `json:"popularServices"`
}

// DashboardStats aggregates the dashboard counters in a handful of grouped
// queries. monthStart bounds the month-to-date figures.
func (s *gormStore) DashboardStats(ctx context.Context, monthStart time.Time) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &DashboardStats{}

	if err := db.Model(&model.User{}).
		Where("is_admin = ?", false).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Appointment{}).
		Count(&stats.TotalAppointments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Service{}).
		Where("is_active = ?", true).
		Count(&stats.TotalServices).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Comment{}).
		Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Appointment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&stats.AppointmentsByStatus).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Appointment{}).
		Where("date >= ?", monthStart).
		Count(&stats.AppointmentsThisMonth).Error; err != nil {
		return nil, err
	}

	// Estimated revenue: sum of service prices over this month's active
	// appointments.
	if err := db.Model(&model.Appointment{}).
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.date >= ?", monthStart).
		Where("appointments.status IN ?", []model.AppointmentStatus{
			model.StatusPending, model.StatusConfirmed, model.StatusCompleted,
		}).
		Select("COALESCE(SUM(services.price), 0)").
		Scan(&stats.MonthlyRevenue).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Appointment{}).
		Joins("JOIN services ON services.id = appointments.service_id").
		Select("appointments.service_id as service_id, services.name as name, services.price as price, COUNT(*) as count").
		Group("appointments.service_id, services.name, services.price").
		Order("count DESC").
		Limit(5).
		Scan(&stats.PopularServices).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
