package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
)

// CategoryService implements category CRUD. Deletion is refused while any
// product still references the category.
type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, input ports.CategoryInput) (*domain.Category, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	// Refresh the derived count so the response matches a fresh list.
	updated.ProductCount, err = s.repo.ProductCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.ProductCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}
