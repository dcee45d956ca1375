package store

import (
	"context"

	"github.com/google/uuid"

	"petspa-backend/internal/model"
)

func (s *gormStore) CreateService(ctx context.Context, service *model.Service) error {
	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	touch(&service.CreatedAt, &service.UpdatedAt)
	return s.db.WithContext(ctx).Create(service).Error
}

func (s *gormStore) ServiceByID(ctx context.Context, id string) (*model.Service, error) {
	var service model.Service
	if err := s.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *gormStore) ListActiveServices(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *gormStore) SaveService(ctx context.Context, service *model.Service) error {
	touch(&service.CreatedAt, &service.UpdatedAt)
	return s.db.WithContext(ctx).Save(service).Error
}

func (s *gormStore) DeleteService(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Service{}, "id = ?", id).Error
}
