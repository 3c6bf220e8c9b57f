package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receipt-insights-backend/domain"
	"receipt-insights-backend/entities"
)

type fakeReceiptService struct {
	bucket string
	key    string
	res    domain.ProcessReceiptResponse
	err    error
}

func (f *fakeReceiptService) ProcessObject(_ context.Context, bucket string, key string) (domain.ProcessReceiptResponse, error) {
	f.bucket = bucket
	f.key = key
	return f.res, f.err
}

func (f *fakeReceiptService) ListReceipts(context.Context, int) ([]entities.Receipt, error) {
	return nil, f.err
}

func newWebhookApp(service *fakeReceiptService) *fiber.App {
	app := fiber.New()
	handler := NewReceiptHandler(service, validator.New())
	app.Post("/webhook/s3-events", handler.ProcessS3Event)
	return app
}

func TestProcessS3EventDecodesObjectKey(t *testing.T) {
	service := &fakeReceiptService{res: domain.ProcessReceiptResponse{ReceiptID: "r-1"}}
	app := newWebhookApp(service)

	payload := `{"Records":[{"s3":{"bucket":{"name":"my-bucket"},"object":{"key":"receipts/my+photo%201.jpg"}}}]}`
	req := httptest.NewRequest("POST", "/webhook/s3-events", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "my-bucket", service.bucket)
	assert.Equal(t, "receipts/my photo 1.jpg", service.key)
}

func TestProcessS3EventMalformedBody(t *testing.T) {
	app := newWebhookApp(&fakeReceiptService{})

	req := httptest.NewRequest("POST", "/webhook/s3-events", strings.NewReader("{oops"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProcessS3EventEmptyRecords(t *testing.T) {
	app := newWebhookApp(&fakeReceiptService{})

	req := httptest.NewRequest("POST", "/webhook/s3-events", strings.NewReader(`{"Records":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), domain.ErrEmptyEventRecords.Error())
}

func TestProcessS3EventPipelineFailure(t *testing.T) {
	app := newWebhookApp(&fakeReceiptService{err: domain.ErrExtractionFailed})

	payload := `{"Records":[{"s3":{"bucket":{"name":"b"},"object":{"key":"k"}}}]}`
	req := httptest.NewRequest("POST", "/webhook/s3-events", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
