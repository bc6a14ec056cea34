package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/services"
)

// DraftHandler handles HTTP requests of the product editor: one draft per
// open editor, holding the working image list until the form is submitted.
type DraftHandler struct {
	editor *services.EditorService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(editor *services.EditorService) *DraftHandler {
	return &DraftHandler{editor: editor}
}

// RegisterRoutes registers the draft routes with the Fiber app.
func (h *DraftHandler) RegisterRoutes(router fiber.Router) {
	draftRoutes := router.Group("/drafts")
	draftRoutes.Post("/", h.HandleOpenDraft)
	draftRoutes.Get("/:id", h.HandleGetDraft)
	draftRoutes.Patch("/:id", h.HandleUpdateDraft)
	draftRoutes.Delete("/:id", h.HandleDiscardDraft)
	draftRoutes.Post("/:id/images", h.HandleUploadImages)
	draftRoutes.Delete("/:id/images/:index", h.HandleRemoveImage)
	draftRoutes.Post("/:id/submit", h.HandleSubmitDraft)
}

type openDraftRequest struct {
	ProductID string `json:"product_id" form:"product_id"`
}

// HandleOpenDraft opens an editor for a new product, or for an existing one
// when product_id is given.
func (h *DraftHandler) HandleOpenDraft(c *fiber.Ctx) error {
	var req openDraftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing draft request body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	draft, err := h.editor.Open(c.UserContext(), req.ProductID)
	if err != nil {
		return respondError(c, err, "Could not open editor")
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// HandleGetDraft returns the draft's current images.
func (h *DraftHandler) HandleGetDraft(c *fiber.Ctx) error {
	draft, err := h.editor.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not load editor")
	}
	return c.JSON(draft)
}

type updateDraftRequest struct {
	Title string `json:"title" form:"title"`
}

// HandleUpdateDraft records the title typed so far, used as the default alt
// text of later uploads.
func (h *DraftHandler) HandleUpdateDraft(c *fiber.Ctx) error {
	var req updateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing draft update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	draft, err := h.editor.SetTitle(c.Params("id"), req.Title)
	if err != nil {
		return respondError(c, err, "Could not update editor")
	}
	return c.JSON(draft)
}

// HandleDiscardDraft closes the editor without saving.
func (h *DraftHandler) HandleDiscardDraft(c *fiber.Ctx) error {
	h.editor.Close(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadImages stores the multipart "images" files and appends them
// to the draft in the order they were sent.
func (h *DraftHandler) HandleUploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Expected a multipart form",
			"error":   err.Error(),
		})
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No images were sent",
		})
	}

	files := make([]services.FileUpload, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			log.Printf("Error reading uploaded file %q: %v", fh.Filename, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not read uploaded file",
				"error":   err.Error(),
			})
		}
		files = append(files, services.FileUpload{Filename: fh.Filename, Data: data})
	}

	draft, results, err := h.editor.Upload(c.UserContext(), c.Params("id"), c.FormValue("alt_text"), files)
	var uploadErr *services.UploadError
	switch {
	case errors.As(err, &uploadErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Error uploading images",
			"error":   uploadErr.Error(),
			"results": results,
			"draft":   draft,
		})
	case err != nil:
		return respondError(c, err, "Error uploading images")
	}
	return c.JSON(fiber.Map{
		"message": "Images uploaded successfully",
		"results": results,
		"draft":   draft,
	})
}

// HandleRemoveImage removes the image at the given position.
func (h *DraftHandler) HandleRemoveImage(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image index",
			"error":   err.Error(),
		})
	}
	draft, err := h.editor.RemoveImage(c.Params("id"), index)
	if err != nil {
		return respondError(c, err, "Could not remove image")
	}
	return c.JSON(draft)
}

// HandleSubmitDraft validates the product form and saves it with the
// draft's images.
func (h *DraftHandler) HandleSubmitDraft(c *fiber.Ctx) error {
	var form models.ProductForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing product form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	draft, err := h.editor.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not load editor")
	}

	product, err := h.editor.Submit(c.UserContext(), draft.ID, form)
	if err != nil {
		return respondError(c, err, "Error saving product")
	}

	if draft.ProductID == "" {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Product created successfully",
			"product": product,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
