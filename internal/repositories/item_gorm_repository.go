package repositories

import (
	"errors"
	"fmt"

	"inventaria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// GetAll retrieves all items with their categories resolved.
func (r *GORMItemRepository) GetAll() ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Preload("Category").Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID with its category resolved.
func (r *GORMItemRepository) GetByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// GetByCategory retrieves all items referencing the given category.
func (r *GORMItemRepository) GetByCategory(categoryID string) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Where("category_id = ?", categoryID).Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get items for category %s: %w", categoryID, err)
	}
	return items, nil
}

// Count returns the number of stored items.
func (r *GORMItemRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Item{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// Create creates a new item in the database.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update updates an existing item in the database. The row is loaded first:
// GORM's Save inserts when the primary key matches nothing, which would turn
// an update of a stale id into a create.
func (r *GORMItemRepository) Update(item *models.Item) error {
	var existing models.Item
	if err := r.db.First(&existing, "id = ?", item.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item with ID %s: %w", item.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update item: %w", err)
	}
	item.CreatedAt = existing.CreatedAt // creation time is immutable
	if err := r.db.Omit("Category").Save(item).Error; err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

// Delete deletes an item by its ID from the database.
func (r *GORMItemRepository) Delete(id string) error {
	res := r.db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
