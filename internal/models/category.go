package models

import "gorm.io/gorm"

// Category groups related items. Names are unique across the collection,
// enforced by the create/update workflows rather than the database.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string `json:"description" gorm:"type:varchar(300)" validate:"required,max=300"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// URL returns the canonical location of this category.
func (c *Category) URL() string {
	return "/inv/category/" + c.ID
}
