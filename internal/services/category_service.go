package services

import (
	"context"
	"errors"
	"fmt"

	"inventaria/internal/forms"
	"inventaria/internal/models"
	"inventaria/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// CategoryService handles the category workflow: listing, detail, the
// duplicate-name create/update rules and the referential delete guard.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	itemRepo     repositories.ItemRepository
	events       Publisher
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository, events Publisher) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		events:       events,
	}
}

// ListCategories retrieves all categories.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// Category retrieves a single category by its ID.
func (s *CategoryService) Category(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// CategoryDetail fetches a category and its referencing items. The two reads
// are independent and run concurrently; the first error wins.
func (s *CategoryService) CategoryDetail(ctx context.Context, id string) (*models.Category, []models.Item, error) {
	var (
		category *models.Category
		items    []models.Item
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		category, err = s.categoryRepo.GetByID(id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.itemRepo.GetByCategory(id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return category, items, nil
}

// CreateCategory persists a new category unless one with the same name
// already exists. The create is idempotent by name: when a same-named
// category is found it is returned with existed=true and nothing is written.
func (s *CategoryService) CreateCategory(form forms.CategoryForm) (category *models.Category, existed bool, err error) {
	existing, err := s.categoryRepo.GetByName(form.Name)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("duplicate-name check failed: %w", err)
	}

	category = &models.Category{
		Name:        form.Name,
		Description: form.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, false, err
	}
	publish(s.events, "category", "created", category.ID, category.Name)
	return category, false, nil
}

// UpdateCategory updates a category in place. If a different category
// already holds the requested name, nothing is written and that other
// category is returned with collided=true; the caller redirects there. The
// stored category is loaded and mutated so its creation time survives.
func (s *CategoryService) UpdateCategory(id string, form forms.CategoryForm) (*models.Category, bool, error) {
	other, err := s.categoryRepo.GetByName(form.Name)
	if err == nil && other.ID != id {
		return other, true, nil
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("duplicate-name check failed: %w", err)
	}

	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, false, err
	}
	category.Name = form.Name
	category.Description = form.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, false, err
	}
	publish(s.events, "category", "updated", category.ID, category.Name)
	return category, false, nil
}

// DeleteCategory removes a category unless items still reference it. When
// blocked, the category and its referencing items are returned untouched so
// the caller can re-render the confirmation view. A successful delete
// returns the removed category with no items.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) (*models.Category, []models.Item, error) {
	category, items, err := s.CategoryDetail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(items) > 0 {
		return category, items, nil
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return nil, nil, err
	}
	publish(s.events, "category", "deleted", category.ID, category.Name)
	return category, nil, nil
}
