package repositories_test

import (
	"path/filepath"
	"testing"

	"inventaria/internal/models"
	"inventaria/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Item{}))
	return db
}

func TestGORMCategoryRepository_UpdateMissingIDDoesNotInsert(t *testing.T) {
	repo := repositories.NewGORMCategoryRepository(newTestDB(t))

	err := repo.Update(&models.Category{ID: "ghost", Name: "Tablet", Description: "d"})

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	count, countErr := repo.Count()
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), count, "an update of a missing id must not insert a row")
}

func TestGORMItemRepository_UpdateMissingIDDoesNotInsert(t *testing.T) {
	repo := repositories.NewGORMItemRepository(newTestDB(t))

	err := repo.Update(&models.Item{ID: "ghost", Name: "Galaxy Tab", CategoryID: "cat-1", Price: "1000$"})

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	count, countErr := repo.Count()
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), count, "an update of a missing id must not insert a row")
}

func TestGORMCategoryRepository_UpdatePreservesCreatedAt(t *testing.T) {
	repo := repositories.NewGORMCategoryRepository(newTestDB(t))
	category := &models.Category{Name: "Tablet", Description: "d"}
	require.NoError(t, repo.Create(category))

	stored, err := repo.GetByID(category.ID)
	require.NoError(t, err)
	require.False(t, stored.CreatedAt.IsZero())

	require.NoError(t, repo.Update(&models.Category{ID: category.ID, Name: "Tablets", Description: "d2"}))

	updated, err := repo.GetByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tablets", updated.Name)
	assert.True(t, updated.CreatedAt.Equal(stored.CreatedAt), "CreatedAt must survive an update")
}

func TestGORMItemRepository_UpdatePersistsNewFields(t *testing.T) {
	repo := repositories.NewGORMItemRepository(newTestDB(t))
	item := &models.Item{
		Name:        "Galaxy Tab",
		Description: "A tablet.",
		CategoryID:  "cat-1",
		Price:       "1000$",
		Images:      models.StringList{"/uploads/p1.png"},
	}
	require.NoError(t, repo.Create(item))

	item.Name = "Galaxy Tab A"
	item.Images = models.StringList{"/uploads/p2.gif"}
	require.NoError(t, repo.Update(item))

	updated, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Galaxy Tab A", updated.Name)
	assert.Equal(t, models.StringList{"/uploads/p2.gif"}, updated.Images)
}
