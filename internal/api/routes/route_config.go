package routes

import (
	"github.com/gofiber/fiber/v2"

	"receipt-insights-backend/internal/api/handlers"
	"receipt-insights-backend/internal/middleware"
	"receipt-insights-backend/pkg/jwt"
)

type Config struct {
	App            *fiber.App
	UploadHandler  handlers.UploadHandler
	ReceiptHandler handlers.ReceiptHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Uploads()
	c.Receipts()
	c.GuestRoute()
}

func (c *Config) Uploads() {
	c.App.Post("/api/v1/uploads", c.UploadHandler.CreateUploadURL)
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))
	receipts.Get("", c.ReceiptHandler.GetReceipts)

	// Object-storage notification target; the pipeline runs synchronously.
	c.App.Post("/webhook/s3-events", c.ReceiptHandler.ProcessS3Event)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}
