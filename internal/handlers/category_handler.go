package handlers

import (
	"errors"
	"log"

	"inventaria/internal/forms"
	"inventaria/internal/repositories"
	"inventaria/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for the category workflow.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes on the /inv group. The
// literal create route must precede the :id routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleList)
	router.Get("/category/create", h.HandleCreateForm)
	router.Post("/category/create", h.HandleCreateSubmit)
	router.Post("/category/delete", h.HandleDeleteSubmit)
	router.Get("/category/:id/delete", h.HandleDeleteForm)
	router.Get("/category/:id/update", h.HandleUpdateForm)
	router.Post("/category/:id/update", h.HandleUpdateSubmit)
	router.Get("/category/:id", h.HandleDetail)
}

// HandleList renders the category list.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		log.Printf("Error getting all categories: %v", err)
		return storeError(c, err)
	}
	return c.Render("category_list", fiber.Map{
		"Title":        "Category List",
		"CategoryList": categories,
	})
}

// HandleDetail renders one category and the items referencing it.
func (h *CategoryHandler) HandleDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	category, items, err := h.service.CategoryDetail(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return renderError(c, fiber.StatusNotFound, "Category not found")
		}
		log.Printf("Error getting category %s: %v", id, err)
		return storeError(c, err)
	}
	return c.Render("category_detail", fiber.Map{
		"Title":    category.Name,
		"Category": category,
		"Items":    items,
	})
}

// HandleCreateForm renders an empty category form.
func (h *CategoryHandler) HandleCreateForm(c *fiber.Ctx) error {
	return c.Render("category_form", fiber.Map{
		"Title":  "Create Category",
		"Action": "/inv/category/create",
	})
}

// HandleCreateSubmit validates the form and persists a new category. A
// same-named category wins: the request redirects to it and nothing is
// written.
func (h *CategoryHandler) HandleCreateSubmit(c *fiber.Ctx) error {
	form := forms.NewCategoryForm(c.FormValue("name"), c.FormValue("description"))
	if errs := form.Validate(); errs.HasErrors() {
		return c.Render("category_form", fiber.Map{
			"Title":    "Create Category",
			"Action":   "/inv/category/create",
			"Category": fiber.Map{"Name": form.Name, "Description": form.Description},
			"Errors":   errs,
		})
	}

	category, existed, err := h.service.CreateCategory(form)
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return storeError(c, err)
	}
	if existed {
		log.Printf("Category named %q already exists, redirecting to %s", category.Name, category.ID)
	}
	return c.Redirect(category.URL())
}

// HandleDeleteForm renders the delete confirmation, listing any items that
// block the delete. A stale id silently falls back to the list.
func (h *CategoryHandler) HandleDeleteForm(c *fiber.Ctx) error {
	id := c.Params("id")
	category, items, err := h.service.CategoryDetail(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Redirect("/inv/categories")
		}
		log.Printf("Error getting category %s for delete: %v", id, err)
		return storeError(c, err)
	}
	return c.Render("category_delete", fiber.Map{
		"Title":    "Delete Category",
		"Category": category,
		"Items":    items,
	})
}

// HandleDeleteSubmit deletes a category when nothing references it. A
// blocked delete re-renders the confirmation view with the blocking items.
func (h *CategoryHandler) HandleDeleteSubmit(c *fiber.Ctx) error {
	id := c.FormValue("categoryid")
	category, items, err := h.service.DeleteCategory(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Redirect("/inv/categories")
		}
		log.Printf("Error deleting category %s: %v", id, err)
		return storeError(c, err)
	}
	if len(items) > 0 {
		return c.Render("category_delete", fiber.Map{
			"Title":    "Delete Category",
			"Category": category,
			"Items":    items,
		})
	}
	return c.Redirect("/inv/categories")
}

// HandleUpdateForm renders the category form pre-filled.
func (h *CategoryHandler) HandleUpdateForm(c *fiber.Ctx) error {
	id := c.Params("id")
	category, err := h.service.Category(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return renderError(c, fiber.StatusNotFound, "Category not found")
		}
		log.Printf("Error getting category %s for update: %v", id, err)
		return storeError(c, err)
	}
	return c.Render("category_form", fiber.Map{
		"Title":    "Update Category",
		"Action":   "/inv/category/" + id + "/update",
		"Category": category,
	})
}

// HandleUpdateSubmit validates the form and updates the category in place.
// If another category already holds the requested name, the request
// redirects there and the edit is not applied.
func (h *CategoryHandler) HandleUpdateSubmit(c *fiber.Ctx) error {
	id := c.Params("id")
	form := forms.NewCategoryForm(c.FormValue("name"), c.FormValue("description"))
	if errs := form.Validate(); errs.HasErrors() {
		return c.Render("category_form", fiber.Map{
			"Title":    "Update Category",
			"Action":   "/inv/category/" + id + "/update",
			"Category": fiber.Map{"Name": form.Name, "Description": form.Description},
			"Errors":   errs,
		})
	}

	category, collided, err := h.service.UpdateCategory(id, form)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return renderError(c, fiber.StatusNotFound, "Category not found")
		}
		log.Printf("Error updating category %s: %v", id, err)
		return storeError(c, err)
	}
	if collided {
		log.Printf("Category named %q already exists, redirecting to %s", category.Name, category.ID)
	}
	return c.Redirect(category.URL())
}
