package service

import (
	"context"
	"errors"

	classeserrors "classbook/internal/classes/errors"
	"classbook/internal/classes/repository"
	"classbook/internal/classes/validator"
	"classbook/pkg/config"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/model"
	"classbook/pkg/sanitizer"
)

type ClassService interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id int64) (*model.Class, error)
	List(ctx context.Context) ([]*model.Class, error)
}

type classService struct {
	repo      repository.ClassRepository
	validator *validator.ClassValidator
	cfg       *config.Config
}

func NewClassService(
	repo repository.ClassRepository,
	validator *validator.ClassValidator,
	cfg *config.Config,
) ClassService {
	return &classService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *classService) Create(ctx context.Context, class *model.Class) error {
	class.ID = 0
	class.Name = sanitizer.NormalizeName(class.Name)

	if err := s.validator.Validate(class); err != nil {
		s.cfg.Log.Warn("Class validation failed", "error", err)
		return apperrors.Validation("Class validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Save(ctx, class); err != nil {
		s.cfg.Log.Error("Failed to create class", "error", err)
		return apperrors.Internal("Failed to create class", err)
	}

	s.cfg.Log.Info("Class created successfully",
		"id", class.ID,
		"start_date", class.StartDate.String(),
		"end_date", class.EndDate.String(),
	)
	return nil
}

func (s *classService) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, classeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Class", id)
		}
		return nil, apperrors.Internal("Failed to retrieve class", err)
	}
	return class, nil
}

func (s *classService) List(ctx context.Context) ([]*model.Class, error) {
	classes, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list classes", "error", err)
		return nil, apperrors.Internal("Failed to retrieve classes", err)
	}
	return classes, nil
}
