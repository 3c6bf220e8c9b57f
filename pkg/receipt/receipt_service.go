package receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"receipt-insights-backend/domain"
	"receipt-insights-backend/entities"
	"receipt-insights-backend/internal/utils/storage"
	"receipt-insights-backend/pkg/analytics"
	"receipt-insights-backend/pkg/extractor"
	"receipt-insights-backend/pkg/insight"
	"receipt-insights-backend/pkg/notifier"
)

type (
	ReceiptService interface {
		ProcessObject(ctx context.Context, bucket string, key string) (domain.ProcessReceiptResponse, error)
		ListReceipts(ctx context.Context, days int) ([]entities.Receipt, error)
	}

	receiptService struct {
		extractor   extractor.ExtractorService
		repository  ReceiptRepository
		analytics   analytics.AnalyticsService
		insight     insight.InsightService
		notifier    notifier.NotifierService
		s3          storage.AwsS3
		historyDays int
		now         func() time.Time
	}
)

func NewReceiptService(
	extractorService extractor.ExtractorService,
	repository ReceiptRepository,
	analyticsService analytics.AnalyticsService,
	insightService insight.InsightService,
	notifierService notifier.NotifierService,
	s3 storage.AwsS3,
	historyDays int,
) ReceiptService {
	return &receiptService{
		extractor:   extractorService,
		repository:  repository,
		analytics:   analyticsService,
		insight:     insightService,
		notifier:    notifierService,
		s3:          s3,
		historyDays: historyDays,
		now:         time.Now,
	}
}

// ProcessObject runs the whole pipeline for one uploaded image. Extraction
// and storage failures are fatal; history, analytics, insight, and
// notification degrade without aborting, and each stage's outcome is
// reported in the response.
func (s *receiptService) ProcessObject(ctx context.Context, bucket string, key string) (domain.ProcessReceiptResponse, error) {
	log.Infof("processing receipt from %s/%s", bucket, key)

	if err := s.s3.ObjectExists(ctx, bucket, key); err != nil {
		return domain.ProcessReceiptResponse{}, fmt.Errorf("%w: %v", domain.ErrObjectNotFound, err)
	}

	receipt, err := s.extractor.ExtractReceipt(ctx, bucket, key)
	if err != nil {
		return domain.ProcessReceiptResponse{}, err
	}

	applyStoreDefaults(receipt, s.now())
	if err := s.repository.Save(ctx, receipt); err != nil {
		return domain.ProcessReceiptResponse{}, fmt.Errorf("%w: %v", domain.ErrStoreReceipt, err)
	}
	log.Infof("receipt stored: %s", receipt.ID)

	stages := domain.PipelineStages{
		History:      domain.StageOK,
		Analytics:    domain.StageOK,
		Insight:      domain.StageOK,
		Notification: domain.StageOK,
	}

	// Spending history is best-effort; its absence only thins the analytics.
	history, err := s.repository.History(ctx, s.historyDays)
	if err != nil {
		log.Errorf("failed to retrieve spending history: %v", err)
		history = []entities.Receipt{}
		stages.History = domain.StageDegraded
	}
	log.Infof("found %d receipts in last %d days", len(history), s.historyDays)

	analyticsResult, err := s.analytics.Calculate(*receipt, history)
	if err != nil {
		log.Errorf("analytics degraded: %v", err)
		stages.Analytics = domain.StageDegraded
	}

	insights, err := s.insight.GenerateInsights(ctx, *receipt, analyticsResult)
	if err != nil {
		stages.Insight = domain.StageDegraded
	}

	if err := s.notifier.SendReceiptProcessed(ctx, *receipt, insights); err != nil {
		log.Errorf("failed to send notification: %v", err)
		stages.Notification = domain.StageDegraded
	}

	return domain.ProcessReceiptResponse{
		ReceiptID:    receipt.ID,
		Vendor:       receipt.Vendor,
		Total:        receipt.Total,
		HistoryCount: len(history),
		Stages:       stages,
	}, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, days int) ([]entities.Receipt, error) {
	if days <= 0 {
		days = s.historyDays
	}
	return s.repository.History(ctx, days)
}

// applyStoreDefaults fills persisted defaults and stamps the write time.
func applyStoreDefaults(receipt *entities.Receipt, now time.Time) {
	for i := range receipt.Items {
		if receipt.Items[i].Name == "" {
			receipt.Items[i].Name = "Unknown Item"
		}
		if receipt.Items[i].Price == "" {
			receipt.Items[i].Price = "0.00"
		}
		if receipt.Items[i].Quantity == "" {
			receipt.Items[i].Quantity = "1"
		}
	}
	receipt.StoredAt = now
}
