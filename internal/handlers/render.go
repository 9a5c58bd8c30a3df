package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// renderError renders the generic error page with the given status.
func renderError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).Render("error", fiber.Map{
		"Title":   "Error",
		"Status":  status,
		"Message": message,
	})
}

// storeError renders the error page for a failed store operation, using the
// status carried by the error when present, else 500.
func storeError(c *fiber.Ctx, err error) error {
	log.Printf("Store operation failed: %v", err)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return renderError(c, fiberErr.Code, fiberErr.Message)
	}
	return renderError(c, fiber.StatusInternalServerError, "Something went wrong while talking to the store.")
}
