package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"receipt-insights-backend/internal/api/handlers"
	"receipt-insights-backend/internal/api/routes"
	"receipt-insights-backend/internal/middleware"
	"receipt-insights-backend/internal/utils"
	"receipt-insights-backend/internal/utils/mailing"
	"receipt-insights-backend/internal/utils/storage"
	"receipt-insights-backend/pkg/analytics"
	"receipt-insights-backend/pkg/extractor"
	"receipt-insights-backend/pkg/insight"
	"receipt-insights-backend/pkg/jwt"
	"receipt-insights-backend/pkg/notifier"
	"receipt-insights-backend/pkg/receipt"
	"receipt-insights-backend/pkg/upload"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// AWS clients
	ctx := context.Background()
	awsConfig, err := NewAWSConfig(ctx, utils.GetConfig("AWS_S3_REGION"))
	if err != nil {
		return nil, err
	}

	s3 := storage.NewAwsS3(awsConfig, utils.GetConfig("AWS_S3_BUCKET"))
	textractClient := textract.NewFromConfig(awsConfig)
	bedrockClient := bedrockruntime.NewFromConfig(awsConfig)

	// Repository
	var receiptRepository receipt.ReceiptRepository
	if utils.GetConfig("STORE_BACKEND") == "postgres" {
		receiptRepository = receipt.NewReceiptPostgresRepository(db)
	} else {
		dynamoClient := dynamodb.NewFromConfig(awsConfig)
		receiptRepository = receipt.NewReceiptDynamoRepository(dynamoClient, utils.GetConfig("TABLE_NAME"))
	}

	// Mailer
	var mailer notifier.Mailer
	if utils.GetConfig("MAIL_PROVIDER") == "smtp" {
		mailer = mailing.NewSMTPMailer()
	} else {
		sesRegion := utils.GetConfig("SES_REGION")
		sesClient := ses.NewFromConfig(awsConfig, func(o *ses.Options) {
			o.Region = sesRegion
		})
		mailer = notifier.NewSESMailer(sesClient, utils.GetConfig("SES_FROM"), utils.GetConfig("SES_TO"))
	}

	historyDays, err := strconv.Atoi(utils.GetConfig("HISTORY_WINDOW_DAYS"))
	if err != nil || historyDays <= 0 {
		historyDays = 30
	}

	// Service
	jwtService := jwt.NewJWTService()
	uploadService := upload.NewUploadService(s3)
	extractorService := extractor.NewExtractorService(textractClient)
	analyticsService := analytics.NewAnalyticsService()
	insightService := insight.NewInsightService(bedrockClient, utils.GetConfig("BEDROCK_MODEL_ID"))
	notifierService := notifier.NewNotifierService(mailer)
	receiptService := receipt.NewReceiptService(
		extractorService,
		receiptRepository,
		analyticsService,
		insightService,
		notifierService,
		s3,
		historyDays,
	)

	// Handler
	uploadHandler := handlers.NewUploadHandler(uploadService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UploadHandler:  uploadHandler,
		ReceiptHandler: receiptHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
