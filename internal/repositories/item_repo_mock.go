package repositories

import (
	"fmt"
	"sort"
	"sync"

	"inventaria/internal/models"

	"github.com/google/uuid"
)

// MockItemRepository is an in-memory implementation of ItemRepository. The
// category reference stays unresolved (CategoryID only); callers that need
// the category itself pair this with a CategoryRepository.
type MockItemRepository struct {
	items map[string]models.Item
	mu    sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items: make(map[string]models.Item),
	}
}

// GetAll returns all items ordered by name.
func (r *MockItemRepository) GetAll() ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.Item, 0, len(r.items))
	for _, i := range r.items {
		itemList = append(itemList, i)
	}
	sort.Slice(itemList, func(i, j int) bool {
		return itemList[i].Name < itemList[j].Name
	})
	return itemList, nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	return &item, nil
}

// GetByCategory returns all items referencing the given category.
func (r *MockItemRepository) GetByCategory(categoryID string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var itemList []models.Item
	for _, i := range r.items {
		if i.CategoryID == categoryID {
			itemList = append(itemList, i)
		}
	}
	sort.Slice(itemList, func(i, j int) bool {
		return itemList[i].Name < itemList[j].Name
	})
	return itemList, nil
}

// Count returns the number of stored items.
func (r *MockItemRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// Create adds a new item.
func (r *MockItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing item.
func (r *MockItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", item.ID, ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by its ID.
func (r *MockItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}
