package store

import (
	"context"

	"github.com/google/uuid"

	"petspa-backend/internal/model"
)

func (s *gormStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	touch(&comment.CreatedAt, &comment.UpdatedAt)
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *gormStore) CommentByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := s.db.WithContext(ctx).Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *gormStore) ListComments(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	if err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *gormStore) SaveComment(ctx context.Context, comment *model.Comment) error {
	touch(&comment.CreatedAt, &comment.UpdatedAt)
	return s.db.WithContext(ctx).Omit("User").Save(comment).Error
}

func (s *gormStore) DeleteComment(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id).Error
}
