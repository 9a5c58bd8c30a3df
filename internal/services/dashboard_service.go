package services

import (
	"context"

	"inventaria/internal/models"
	"inventaria/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// Dashboard aggregates what the inventory home page shows.
type Dashboard struct {
	CategoryCount int64
	ItemCount     int64
	Items         []models.Item
}

// DashboardService produces the inventory home page aggregation.
type DashboardService struct {
	categoryRepo repositories.CategoryRepository
	itemRepo     repositories.ItemRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository) *DashboardService {
	return &DashboardService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

// Overview fetches both counts and the item list concurrently; the first
// error wins and fails the whole request.
func (s *DashboardService) Overview(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.CategoryCount, err = s.categoryRepo.Count()
		return err
	})
	g.Go(func() error {
		var err error
		d.ItemCount, err = s.itemRepo.Count()
		return err
	})
	g.Go(func() error {
		var err error
		d.Items, err = s.itemRepo.GetAll()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
