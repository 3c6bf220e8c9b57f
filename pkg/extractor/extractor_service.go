package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/google/uuid"

	"receipt-insights-backend/domain"
	"receipt-insights-backend/entities"
)

type (
	// ExpenseAnalyzer is the slice of the Textract client the extractor uses.
	ExpenseAnalyzer interface {
		AnalyzeExpense(ctx context.Context, params *textract.AnalyzeExpenseInput, optFns ...func(*textract.Options)) (*textract.AnalyzeExpenseOutput, error)
	}

	ExtractorService interface {
		ExtractReceipt(ctx context.Context, bucket string, key string) (*entities.Receipt, error)
	}

	extractorService struct {
		analyzer ExpenseAnalyzer
		now      func() time.Time
	}
)

func NewExtractorService(analyzer ExpenseAnalyzer) ExtractorService {
	return &extractorService{
		analyzer: analyzer,
		now:      time.Now,
	}
}

// ExtractReceipt runs expense analysis on a stored image and normalizes the
// result. A failed analysis call is fatal; a successful call with no
// structured document yields a receipt with all defaults.
func (s *extractorService) ExtractReceipt(ctx context.Context, bucket string, key string) (*entities.Receipt, error) {
	out, err := s.analyzer.AnalyzeExpense(ctx, &textract.AnalyzeExpenseInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	receipt := &entities.Receipt{
		ID:         uuid.New().String(),
		Date:       s.now().Format("2006-01-02"),
		Vendor:     "Unknown",
		Total:      "0.00",
		Items:      []entities.LineItem{},
		SourcePath: fmt.Sprintf("s3://%s/%s", bucket, key),
	}

	if len(out.ExpenseDocuments) == 0 {
		return receipt, nil
	}

	doc := out.ExpenseDocuments[0]

	// Later occurrences of a summary field overwrite earlier ones.
	for _, field := range doc.SummaryFields {
		fieldType := expenseFieldType(field)
		value := expenseFieldValue(field)

		switch fieldType {
		case "TOTAL":
			receipt.Total = value
		case "INVOICE_RECEIPT_DATE":
			receipt.Date = value
		case "VENDOR_NAME":
			receipt.Vendor = value
		}
	}

	for _, group := range doc.LineItemGroups {
		for _, lineItem := range group.LineItems {
			var item entities.LineItem

			for _, field := range lineItem.LineItemExpenseFields {
				value := expenseFieldValue(field)

				switch expenseFieldType(field) {
				case "ITEM":
					item.Name = value
				case "PRICE":
					item.Price = value
				case "QUANTITY":
					item.Quantity = value
				}
			}

			// An item without a detected name is discarded entirely, even
			// when a price or quantity was found.
			if item.Name != "" {
				receipt.Items = append(receipt.Items, item)
			}
		}
	}

	return receipt, nil
}

func expenseFieldType(field types.ExpenseField) string {
	if field.Type == nil {
		return ""
	}
	return aws.ToString(field.Type.Text)
}

func expenseFieldValue(field types.ExpenseField) string {
	if field.ValueDetection == nil {
		return ""
	}
	return aws.ToString(field.ValueDetection.Text)
}
