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

// ErrUnknownCategory is returned when a submitted item references a category
// id that does not resolve to a stored category. The store does not enforce
// the reference, so the service checks it at write time.
var ErrUnknownCategory = errors.New("referenced category does not exist")

// ItemService handles the item workflow: listing, detail with the category
// resolved, create/update with image attachment and unconditional delete.
type ItemService struct {
	itemRepo     repositories.ItemRepository
	categoryRepo repositories.CategoryRepository
	events       Publisher
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repositories.ItemRepository, categoryRepo repositories.CategoryRepository, events Publisher) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		events:       events,
	}
}

// ListItems retrieves all items.
func (s *ItemService) ListItems() ([]models.Item, error) {
	return s.itemRepo.GetAll()
}

// ItemDetail retrieves a single item with its category resolved. Stores that
// cannot resolve the reference themselves get a follow-up category lookup.
func (s *ItemService) ItemDetail(id string) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.Category == nil && item.CategoryID != "" {
		category, err := s.categoryRepo.GetByID(item.CategoryID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		item.Category = category
	}
	return item, nil
}

// FormCategories retrieves the categories offered by the item form's
// selection control.
func (s *ItemService) FormCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// UpdateFormData fetches the item (category resolved) and the full category
// list concurrently for the update form; the first error wins.
func (s *ItemService) UpdateFormData(ctx context.Context, id string) (*models.Item, []models.Category, error) {
	var (
		item       *models.Item
		categories []models.Category
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		item, err = s.itemRepo.GetByID(id)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.GetAll()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return item, categories, nil
}

// CreateItem persists a new item carrying the stored image paths. The
// referenced category must exist; items have no duplicate-name rule.
func (s *ItemService) CreateItem(form forms.ItemForm, images []string) (*models.Item, error) {
	if err := s.checkCategory(form.Category); err != nil {
		return nil, err
	}
	item := &models.Item{
		Name:          form.Name,
		Description:   form.Description,
		CategoryID:    form.Category,
		Price:         form.Price,
		NumberInStock: form.Stock(),
		Images:        images,
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}
	publish(s.events, "item", "created", item.ID, item.Name)
	return item, nil
}

// UpdateItem updates an item in place. Stored image paths are replaced only
// when the request carried new files; otherwise the existing ones survive.
func (s *ItemService) UpdateItem(id string, form forms.ItemForm, images []string) (*models.Item, error) {
	if err := s.checkCategory(form.Category); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.Name = form.Name
	item.Description = form.Description
	item.CategoryID = form.Category
	item.Category = nil
	item.Price = form.Price
	item.NumberInStock = form.Stock()
	if len(images) > 0 {
		item.Images = images
	}
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	publish(s.events, "item", "updated", item.ID, item.Name)
	return item, nil
}

// DeleteItem deletes an item by id unconditionally.
func (s *ItemService) DeleteItem(id string) error {
	if err := s.itemRepo.Delete(id); err != nil {
		return err
	}
	publish(s.events, "item", "deleted", id, "")
	return nil
}

func (s *ItemService) checkCategory(id string) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("category %s: %w", id, ErrUnknownCategory)
		}
		return err
	}
	return nil
}
