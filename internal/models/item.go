package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Item represents a stocked inventory item belonging to one category.
type Item struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string    `json:"description" gorm:"type:varchar(300)" validate:"required,max=300"`
	CategoryID  string    `json:"category_id" gorm:"type:varchar(36);index" validate:"required"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	// Price is an opaque formatted string (e.g. "$12.50") and is stored
	// exactly as entered. The forms layer only requires it to be non-empty.
	Price         string     `json:"price" gorm:"type:varchar(50)" validate:"required"`
	NumberInStock int        `json:"number_in_stock" validate:"gte=0"`
	Images        StringList `json:"images" gorm:"type:text"`
	gorm.Model               // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// URL returns the canonical location of this item.
func (i *Item) URL() string {
	return "/inv/item/" + i.ID
}

// StringList persists an ordered list of strings as a JSON text column so
// the order of stored image paths survives a round trip on any dialect.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*l = nil
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = nil
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported source type %T for string list", src)
	}
}
