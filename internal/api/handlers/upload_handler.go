package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"receipt-insights-backend/domain"
	"receipt-insights-backend/pkg/upload"
)

type (
	UploadHandler interface {
		CreateUploadURL(c *fiber.Ctx) error
	}

	uploadHandler struct {
		uploadService upload.UploadService
		validator     *validator.Validate
	}
)

func NewUploadHandler(uploadService upload.UploadService, validator *validator.Validate) UploadHandler {
	return &uploadHandler{
		uploadService: uploadService,
		validator:     validator,
	}
}

// CreateUploadURL keeps the exact {uploadUrl, filename} / {error} contract
// the uploader frontend expects, so it does not use the response envelope.
func (h *uploadHandler) CreateUploadURL(c *fiber.Ctx) error {
	req := new(domain.UploadURLRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	res, err := h.uploadService.CreateUploadURL(c.Context(), *req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(res)
}
