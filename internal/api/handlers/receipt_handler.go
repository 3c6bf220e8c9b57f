package handlers

import (
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"receipt-insights-backend/domain"
	"receipt-insights-backend/internal/api/presenters"
	"receipt-insights-backend/pkg/receipt"
)

type (
	ReceiptHandler interface {
		ProcessS3Event(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) ProcessS3Event(c *fiber.Ctx) error {
	event := new(domain.S3Event)

	if err := c.BodyParser(event); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(event); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvalidEvent, domain.ErrEmptyEventRecords)
	}

	record := event.Records[0]
	bucket := record.S3.Bucket.Name

	// Object keys arrive URL-encoded in S3 notifications.
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvalidEvent, err)
	}

	res, err := h.receiptService.ProcessObject(c.Context(), bucket, key)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessProcessReceipt)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "0"))
	if err != nil || days < 0 {
		days = 0
	}

	receipts, err := h.receiptService.ListReceipts(c.Context(), days)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, domain.ReceiptListResponse{
		Receipts: receipts,
		Count:    len(receipts),
		Days:     days,
	}, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}
