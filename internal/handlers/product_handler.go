package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/mubashirbm/laibix-admin/internal/middleware"
	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/services"
)

// ProductHandler handles HTTP requests for listing, validating and deleting products.
type ProductHandler struct {
	reader    *services.CatalogReader
	validator *services.Validator
	desk      *services.DeletionDesk
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(reader *services.CatalogReader, validator *services.Validator, desk *services.DeletionDesk) *ProductHandler {
	return &ProductHandler{
		reader:    reader,
		validator: validator,
		desk:      desk,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/validate", h.HandleValidate)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/:id/delete", h.HandleRequestDelete)

	deletionRoutes := router.Group("/deletion")
	deletionRoutes.Get("/", h.HandleGetDeletion)
	deletionRoutes.Post("/confirm", h.HandleConfirmDelete)
	deletionRoutes.Post("/cancel", h.HandleCancelDelete)
}

// HandleListProducts lists products newest first, each with its first image.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.reader.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message":  "Error loading products",
			"error":    err.Error(),
			"products": products,
		})
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product with all its images.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.reader.LoadOne(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error loading product")
	}
	return c.JSON(product)
}

// HandleValidate checks a product form without saving it.
func (h *ProductHandler) HandleValidate(c *fiber.Ctx) error {
	var form models.ProductForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing product form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	sub, err := h.validator.Validate(form)
	if err != nil {
		return respondError(c, err, "Could not validate product")
	}
	return c.JSON(sub)
}

// HandleRequestDelete asks for confirmation before deleting a product.
func (h *ProductHandler) HandleRequestDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	h.desk.For(middleware.Admin(c)).RequestDelete(id)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    "Are you sure you want to delete this product? This action cannot be undone.",
		"pending_id": id,
	})
}

// HandleGetDeletion reports the caller's pending deletion, if any.
func (h *ProductHandler) HandleGetDeletion(c *fiber.Ctx) error {
	id, pending := h.desk.For(middleware.Admin(c)).Pending()
	return c.JSON(fiber.Map{
		"pending":    pending,
		"pending_id": id,
	})
}

// HandleConfirmDelete deletes the pending product.
func (h *ProductHandler) HandleConfirmDelete(c *fiber.Ctx) error {
	if err := h.desk.For(middleware.Admin(c)).ConfirmDelete(c.UserContext()); err != nil {
		return respondError(c, err, "Error deleting product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// HandleCancelDelete drops the pending deletion.
func (h *ProductHandler) HandleCancelDelete(c *fiber.Ctx) error {
	h.desk.For(middleware.Admin(c)).CancelDelete()
	return c.JSON(fiber.Map{
		"message": "Deletion cancelled",
	})
}
