package repositories

import (
	"inventaria/internal/models"
)

// ItemRepository defines the interface for item data access. GetByID and
// GetAll resolve the referenced category when the backing store can.
type ItemRepository interface {
	GetAll() ([]models.Item, error)
	GetByID(id string) (*models.Item, error)
	GetByCategory(categoryID string) ([]models.Item, error)
	Count() (int64, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	Delete(id string) error
}
