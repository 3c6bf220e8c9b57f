package domain

import (
	"errors"

	"receipt-insights-backend/entities"
)

var (
	MessageSuccessProcessReceipt = "receipt processed successfully"
	MessageSuccessGetReceipts    = "receipts retrieved successfully"

	MessageFailedProcessReceipt = "failed to process receipt"
	MessageFailedGetReceipts    = "failed to retrieve receipts"
	MessageFailedInvalidEvent   = "invalid storage event payload"

	ErrEmptyEventRecords = errors.New("storage event contains no records")
	ErrObjectNotFound    = errors.New("uploaded object not found")
	ErrExtractionFailed  = errors.New("expense analysis failed")
	ErrStoreReceipt      = errors.New("failed to store receipt")
)

type (
	// S3Event mirrors the S3 notification payload delivered to the webhook.
	S3Event struct {
		Records []S3EventRecord `json:"Records" validate:"required,min=1"`
	}

	S3EventRecord struct {
		S3 struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	}

	VendorStats struct {
		Count   int     `json:"count"`
		Average float64 `json:"average"`
		Min     float64 `json:"min"`
		Max     float64 `json:"max"`
	}

	ItemComparison struct {
		Item         string  `json:"item"`
		CurrentPrice float64 `json:"current_price"`
		CheaperAt    string  `json:"cheaper_at"`
		CheaperPrice float64 `json:"cheaper_price"`
		Savings      float64 `json:"savings"`
	}

	// SpendingAnalytics is derived per pipeline run and never persisted.
	SpendingAnalytics struct {
		CurrentTotal    float64                `json:"current_total"`
		CurrentVendor   string                 `json:"current_vendor"`
		TotalReceipts   int                    `json:"total_receipts"`
		VendorStats     map[string]VendorStats `json:"vendor_stats"`
		ItemComparisons []ItemComparison       `json:"item_comparisons"`
		OverallAverage  float64                `json:"overall_average"`
	}

	PipelineStages struct {
		History      StageStatus `json:"history"`
		Analytics    StageStatus `json:"analytics"`
		Insight      StageStatus `json:"insight"`
		Notification StageStatus `json:"notification"`
	}

	ProcessReceiptResponse struct {
		ReceiptID    string         `json:"receipt_id"`
		Vendor       string         `json:"vendor"`
		Total        string         `json:"total"`
		HistoryCount int            `json:"history_count"`
		Stages       PipelineStages `json:"stages"`
	}

	ReceiptListResponse struct {
		Receipts []entities.Receipt `json:"receipts"`
		Count    int                `json:"count"`
		Days     int                `json:"days"`
	}
)
