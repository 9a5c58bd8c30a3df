package handlers

import (
	"log"

	"inventaria/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler serves the inventory home page.
type InventoryHandler struct {
	service *services.DashboardService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.DashboardService) *InventoryHandler {
	return &InventoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the dashboard route on the /inv group.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
}

// HandleHome renders the dashboard: category and item counts plus the full
// item list.
func (h *InventoryHandler) HandleHome(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.UserContext())
	if err != nil {
		log.Printf("Error building inventory overview: %v", err)
		return storeError(c, err)
	}
	return c.Render("index", fiber.Map{
		"Title":         "Inventory",
		"CategoryCount": overview.CategoryCount,
		"ItemCount":     overview.ItemCount,
		"Items":         overview.Items,
	})
}
