package handlers

import (
	"errors"
	"log"
	"mime/multipart"

	"inventaria/internal/forms"
	"inventaria/internal/repositories"
	"inventaria/internal/services"
	"inventaria/pkg/uploads"

	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for the item workflow, including image
// uploads on the create and update forms.
type ItemHandler struct {
	service *services.ItemService
	saver   *uploads.Saver
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService, saver *uploads.Saver) *ItemHandler {
	return &ItemHandler{
		service: service,
		saver:   saver,
	}
}

// RegisterRoutes registers the item routes on the /inv group. The literal
// create route must precede the :id routes.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/items", h.HandleList)
	router.Get("/item/create", h.HandleCreateForm)
	router.Post("/item/create", h.HandleCreateSubmit)
	router.Post("/item/delete", h.HandleDeleteSubmit)
	router.Get("/item/:id/delete", h.HandleDeleteForm)
	router.Get("/item/:id/update", h.HandleUpdateForm)
	router.Post("/item/:id/update", h.HandleUpdateSubmit)
	router.Get("/item/:id", h.HandleDetail)
}

// HandleList renders the item list.
func (h *ItemHandler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.ListItems()
	if err != nil {
		log.Printf("Error getting all items: %v", err)
		return storeError(c, err)
	}
	return c.Render("item_list", fiber.Map{
		"Title":    "Item List",
		"ItemList": items,
	})
}

// HandleDetail renders one item with its category resolved.
func (h *ItemHandler) HandleDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	item, err := h.service.ItemDetail(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return renderError(c, fiber.StatusNotFound, "Item not found")
		}
		log.Printf("Error getting item %s: %v", id, err)
		return storeError(c, err)
	}
	return c.Render("item_detail", fiber.Map{
		"Title": item.Name,
		"Item":  item,
	})
}

// HandleCreateForm renders an empty item form with the category selection.
func (h *ItemHandler) HandleCreateForm(c *fiber.Ctx) error {
	categories, err := h.service.FormCategories()
	if err != nil {
		log.Printf("Error getting categories for item form: %v", err)
		return storeError(c, err)
	}
	return c.Render("item_form", fiber.Map{
		"Title":            "Create Item",
		"Action":           "/inv/item/create",
		"Categories":       categories,
		"SelectedCategory": "",
	})
}

// HandleCreateSubmit stores any uploaded images, validates the form and
// persists a new item. Stored files are removed again when a later step
// fails so no orphans accumulate.
func (h *ItemHandler) HandleCreateSubmit(c *fiber.Ctx) error {
	images, err := h.saver.SaveImages(imageHeaders(c))
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, err.Error())
	}

	form := itemForm(c)
	if errs := form.Validate(); errs.HasErrors() {
		h.saver.Remove(images)
		return h.renderItemForm(c, "Create Item", "/inv/item/create", form, errs)
	}

	item, err := h.service.CreateItem(form, images)
	if err != nil {
		h.saver.Remove(images)
		if errors.Is(err, services.ErrUnknownCategory) {
			errs := forms.Errors{{Field: "Category", Message: "Category does not exist."}}
			return h.renderItemForm(c, "Create Item", "/inv/item/create", form, errs)
		}
		log.Printf("Error creating item: %v", err)
		return storeError(c, err)
	}
	return c.Redirect(item.URL())
}

// HandleDeleteForm renders the item delete confirmation. A stale id
// silently falls back to the list.
func (h *ItemHandler) HandleDeleteForm(c *fiber.Ctx) error {
	id := c.Params("id")
	item, err := h.service.ItemDetail(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Redirect("/inv/items")
		}
		log.Printf("Error getting item %s for delete: %v", id, err)
		return storeError(c, err)
	}
	return c.Render("item_delete", fiber.Map{
		"Title": "Delete Item",
		"Item":  item,
	})
}

// HandleDeleteSubmit deletes an item unconditionally. Deleting an already
// gone record redirects back to its would-be detail page; a successful
// delete lands on the category list.
func (h *ItemHandler) HandleDeleteSubmit(c *fiber.Ctx) error {
	id := c.FormValue("itemid")
	if err := h.service.DeleteItem(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Redirect("/inv/item/" + id)
		}
		log.Printf("Error deleting item %s: %v", id, err)
		return storeError(c, err)
	}
	return c.Redirect("/inv/categories")
}

// HandleUpdateForm renders the item form pre-filled, with the item's
// category pre-selected.
func (h *ItemHandler) HandleUpdateForm(c *fiber.Ctx) error {
	id := c.Params("id")
	item, categories, err := h.service.UpdateFormData(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return renderError(c, fiber.StatusNotFound, "Item not found")
		}
		log.Printf("Error getting item %s for update: %v", id, err)
		return storeError(c, err)
	}
	return c.Render("item_form", fiber.Map{
		"Title":            "Update Item",
		"Action":           "/inv/item/" + id + "/update",
		"Item":             item,
		"Categories":       categories,
		"SelectedCategory": item.CategoryID,
	})
}

// HandleUpdateSubmit stores any newly uploaded images, validates the form
// and updates the item in place. Images are only replaced when new files
// arrived with the request.
func (h *ItemHandler) HandleUpdateSubmit(c *fiber.Ctx) error {
	id := c.Params("id")
	images, err := h.saver.SaveImages(imageHeaders(c))
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, err.Error())
	}

	action := "/inv/item/" + id + "/update"
	form := itemForm(c)
	if errs := form.Validate(); errs.HasErrors() {
		h.saver.Remove(images)
		return h.renderItemForm(c, "Update Item", action, form, errs)
	}

	item, err := h.service.UpdateItem(id, form, images)
	if err != nil {
		h.saver.Remove(images)
		if errors.Is(err, services.ErrUnknownCategory) {
			errs := forms.Errors{{Field: "Category", Message: "Category does not exist."}}
			return h.renderItemForm(c, "Update Item", action, form, errs)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return renderError(c, fiber.StatusNotFound, "Item not found")
		}
		log.Printf("Error updating item %s: %v", id, err)
		return storeError(c, err)
	}
	return c.Redirect(item.URL())
}

// renderItemForm re-renders the item form with the submitted values, the
// category selection and the validation errors.
func (h *ItemHandler) renderItemForm(c *fiber.Ctx, title, action string, form forms.ItemForm, errs forms.Errors) error {
	categories, err := h.service.FormCategories()
	if err != nil {
		log.Printf("Error getting categories for item form: %v", err)
		return storeError(c, err)
	}
	return c.Render("item_form", fiber.Map{
		"Title":  title,
		"Action": action,
		"Item": fiber.Map{
			"Name":          form.Name,
			"Description":   form.Description,
			"Price":         form.Price,
			"NumberInStock": form.NumberInStock,
		},
		"Categories":       categories,
		"SelectedCategory": form.Category,
		"Errors":           errs,
	})
}

func itemForm(c *fiber.Ctx) forms.ItemForm {
	return forms.NewItemForm(
		c.FormValue("name"),
		c.FormValue("description"),
		c.FormValue("category"),
		c.FormValue("price"),
		c.FormValue("numberInStock"),
	)
}

func imageHeaders(c *fiber.Ctx) []*multipart.FileHeader {
	mf, err := c.MultipartForm()
	if err != nil || mf == nil {
		return nil
	}
	return mf.File[uploads.FieldName]
}
