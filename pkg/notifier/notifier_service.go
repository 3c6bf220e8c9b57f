package notifier

import (
	"context"
	"fmt"
	"strings"

	"receipt-insights-backend/entities"
	"receipt-insights-backend/pkg/analytics"
)

const maxSubjectVendorLen = 50

type (
	// Mailer dispatches one rendered message. SES and SMTP implementations
	// exist; the pipeline treats any send failure as non-fatal.
	Mailer interface {
		Send(ctx context.Context, subject string, htmlBody string) error
	}

	NotifierService interface {
		SendReceiptProcessed(ctx context.Context, receipt entities.Receipt, insights string) error
	}

	notifierService struct {
		mailer Mailer
	}
)

func NewNotifierService(mailer Mailer) NotifierService {
	return &notifierService{mailer: mailer}
}

func (s *notifierService) SendReceiptProcessed(ctx context.Context, receipt entities.Receipt, insights string) error {
	subject := BuildSubject(receipt)
	body := BuildHTMLBody(receipt, insights)
	return s.mailer.Send(ctx, subject, body)
}

// BuildSubject normalizes and truncates the vendor name for the subject
// line; the body keeps the full name.
func BuildSubject(receipt entities.Receipt) string {
	vendor := analytics.NormalizeVendor(receipt.Vendor)
	if len(vendor) > maxSubjectVendorLen {
		vendor = vendor[:47] + "..."
	}
	return fmt.Sprintf("Receipt Processed: %s - $%s", vendor, receipt.Total)
}

func BuildHTMLBody(receipt entities.Receipt, insights string) string {
	vendorClean := analytics.NormalizeVendor(receipt.Vendor)

	var itemsHTML strings.Builder
	for _, item := range receipt.Items {
		name := item.Name
		if name == "" {
			name = "Unknown Item"
		}
		price := item.Price
		if price == "" {
			price = "N/A"
		}
		quantity := item.Quantity
		if quantity == "" {
			quantity = "1"
		}
		itemsHTML.WriteString(fmt.Sprintf("<li>%s - $%s x %s</li>", name, price, quantity))
	}
	if itemsHTML.Len() == 0 {
		itemsHTML.WriteString("<li>No items detected</li>")
	}

	insightsHTML := ""
	if insights != "" {
		insightsHTML = fmt.Sprintf(`
        <div style="background-color: #f0f9ff; border-left: 4px solid #3b82f6; padding: 15px; margin: 20px 0;">
            <h3 style="color: #1e40af; margin-top: 0;">💡 Spending Insights</h3>
            <div style="color: #1e3a8a; line-height: 1.6;">
                %s
            </div>
        </div>
        `, strings.ReplaceAll(insights, "\n", "<br>"))
	}

	return fmt.Sprintf(`
    <html>
    <head>
        <style>
            body { font-family: Arial, sans-serif; color: #333; }
            .header { background-color: #3b82f6; color: white; padding: 20px; border-radius: 8px; }
            .summary { background-color: #f9fafb; padding: 15px; border-radius: 8px; margin: 20px 0; }
            .amount { font-size: 24px; font-weight: bold; color: #059669; }
        </style>
    </head>
    <body>
        <div class="header">
            <h2 style="margin: 0;">Receipt Processed!</h2>
            <p style="margin: 5px 0 0 0; opacity: 0.9;">%s - %s</p>
        </div>

        %s

        <div class="summary">
            <p><strong>Total:</strong> <span class="amount">$%s</span></p>
            <p><strong>Vendor:</strong> %s</p>
            <p><strong>Receipt ID:</strong> %s</p>
        </div>

        <h3>Items Purchased:</h3>
        <ul>
            %s
        </ul>

        <p style="color: #6b7280; font-size: 12px; margin-top: 30px;">
            Receipt stored securely in your account.
        </p>
    </body>
    </html>
    `, vendorClean, receipt.Date, insightsHTML, receipt.Total, receipt.Vendor, receipt.ID, itemsHTML.String())
}
