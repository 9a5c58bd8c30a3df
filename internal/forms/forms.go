// Package forms binds and validates incoming form fields before anything is
// persisted or echoed back into a view. Binding trims whitespace and escapes
// markup; validation produces an ordered list of (field, message) pairs.
package forms

import (
	"html"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError pairs a form field with a human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered list of field errors produced by validation. The
// order follows the field order of the form struct.
type Errors []FieldError

// HasErrors reports whether any field failed validation.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// CategoryForm carries the cleaned fields of a category create/update form.
type CategoryForm struct {
	Name        string `validate:"required,min=3,max=100"`
	Description string `validate:"required,max=300"`
}

// ItemForm carries the cleaned fields of an item create/update form.
// NumberInStock stays a string until validation has confirmed it is a whole
// number; the number rule rejects decimals and signs so Stock cannot lose
// anything in the conversion.
type ItemForm struct {
	Name          string `validate:"required,min=3,max=100"`
	Description   string `validate:"required,max=300"`
	Category      string `validate:"required"`
	Price         string `validate:"required"`
	NumberInStock string `validate:"required,number"`
}

// NewCategoryForm builds a CategoryForm from raw form values.
func NewCategoryForm(name, description string) CategoryForm {
	return CategoryForm{
		Name:        clean(name),
		Description: clean(description),
	}
}

// NewItemForm builds an ItemForm from raw form values.
func NewItemForm(name, description, category, price, numberInStock string) ItemForm {
	return ItemForm{
		Name:          clean(name),
		Description:   clean(description),
		Category:      clean(category),
		Price:         clean(price),
		NumberInStock: strings.TrimSpace(numberInStock),
	}
}

// Validate applies the category rule set.
func (f *CategoryForm) Validate() Errors {
	return collect(validate.Struct(f))
}

// Validate applies the item rule set.
func (f *ItemForm) Validate() Errors {
	return collect(validate.Struct(f))
}

// Stock converts the validated stock field. Only meaningful after Validate
// returned no error for NumberInStock; the number rule guarantees the field
// is all digits, so Atoi cannot fail here.
func (f *ItemForm) Stock() int {
	n, _ := strconv.Atoi(f.NumberInStock)
	return n
}

// clean trims surrounding whitespace and escapes markup so the value is safe
// to store and to echo back into a re-rendered form.
func clean(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// messages maps form field and failed rule to the message shown to the user.
var messages = map[string]map[string]string{
	"Name": {
		"required": "Name must not be empty.",
		"min":      "Name must be at least 3 characters.",
		"max":      "Name must not exceed 100 characters.",
	},
	"Description": {
		"required": "Description must not be empty.",
		"max":      "Description must not exceed 300 characters.",
	},
	"Category": {
		"required": "Category must not be empty.",
	},
	"Price": {
		"required": "Price must not be empty.",
	},
	"NumberInStock": {
		"required": "Number in stock must not be empty.",
		"number":   "Number in stock must be a number.",
	},
}

// collect turns validator errors into the ordered Errors list.
func collect(err error) Errors {
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "form", Message: err.Error()}}
	}
	out := make(Errors, 0, len(validationErrors))
	for _, e := range validationErrors {
		msg := ""
		if byTag, ok := messages[e.Field()]; ok {
			msg = byTag[e.Tag()]
		}
		if msg == "" {
			msg = "Field '" + e.Field() + "' failed on the '" + e.Tag() + "' rule."
		}
		out = append(out, FieldError{Field: e.Field(), Message: msg})
	}
	return out
}
