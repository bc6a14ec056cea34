package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/mubashirbm/laibix-admin/internal/repositories"
	"github.com/mubashirbm/laibix-admin/internal/services"
)

// respondError turns a service error into the single notification the
// console shows. message is used for errors without a more specific one.
func respondError(c *fiber.Ctx, err error, message string) error {
	var (
		validationErr *services.ValidationError
		writeErr      *services.WriteError
		readErr       *services.ReadError
		deleteErr     *services.DeleteError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"field":   validationErr.Field,
			"rule":    validationErr.Rule,
			"error":   validationErr.Message,
		})
	case errors.As(err, &writeErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message":    "Error saving product",
			"step":       writeErr.Step,
			"product_id": writeErr.ProductID,
			"error":      writeErr.Error(),
		})
	case errors.As(err, &readErr) && readErr.NotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   readErr.Error(),
		})
	case errors.As(err, &readErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error loading product",
			"error":   readErr.Error(),
		})
	case errors.As(err, &deleteErr) && errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   deleteErr.Error(),
		})
	case errors.As(err, &deleteErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting product",
			"error":   deleteErr.Error(),
		})
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Edit session not found",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrIndexOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image index",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrNothingPending):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "No deletion is pending",
		})
	}

	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
