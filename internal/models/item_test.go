package models_test

import (
	"testing"

	"inventaria/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_PreservesOrderThroughColumn(t *testing.T) {
	list := models.StringList{"/uploads/p1.png", "/uploads/p2.gif"}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned models.StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringList_EmptyAndNull(t *testing.T) {
	var empty models.StringList
	value, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	var scanned models.StringList
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
	require.NoError(t, scanned.Scan(""))
	assert.Nil(t, scanned)
}

func TestItemURL(t *testing.T) {
	item := models.Item{ID: "item-1"}
	assert.Equal(t, "/inv/item/item-1", item.URL())

	category := models.Category{ID: "cat-1"}
	assert.Equal(t, "/inv/category/cat-1", category.URL())
}
