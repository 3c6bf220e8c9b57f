package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/gofiber/fiber/v2/log"

	"receipt-insights-backend/domain"
	"receipt-insights-backend/entities"
)

// FallbackInsight is returned whenever text generation fails; insights are
// enrichment, never a blocking requirement.
const FallbackInsight = "Unable to generate insights at this time. Check your spending history in the AWS console."

const maxInsightTokens = 500

type (
	// ModelInvoker is the slice of the Bedrock runtime client this service uses.
	ModelInvoker interface {
		InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
	}

	InsightService interface {
		GenerateInsights(ctx context.Context, receipt entities.Receipt, analytics domain.SpendingAnalytics) (string, error)
	}

	insightService struct {
		invoker ModelInvoker
		modelID string
	}

	anthropicMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	anthropicRequest struct {
		AnthropicVersion string             `json:"anthropic_version"`
		MaxTokens        int                `json:"max_tokens"`
		Messages         []anthropicMessage `json:"messages"`
	}

	anthropicResponse struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
)

func NewInsightService(invoker ModelInvoker, modelID string) InsightService {
	return &insightService{
		invoker: invoker,
		modelID: modelID,
	}
}

// GenerateInsights builds a deterministic prompt and invokes the model once.
// On any failure the returned text is the fixed fallback and the error is
// reported so the caller can mark the stage degraded.
func (s *insightService) GenerateInsights(ctx context.Context, receipt entities.Receipt, analytics domain.SpendingAnalytics) (string, error) {
	prompt := BuildPrompt(receipt, analytics)

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        maxInsightTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return FallbackInsight, err
	}

	out, err := s.invoker.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(s.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		log.Errorf("insight generation failed: %v", err)
		return FallbackInsight, err
	}

	var res anthropicResponse
	if err := json.Unmarshal(out.Body, &res); err != nil {
		log.Errorf("insight response unreadable: %v", err)
		return FallbackInsight, err
	}
	if len(res.Content) == 0 {
		err := fmt.Errorf("insight response contained no content")
		log.Error(err)
		return FallbackInsight, err
	}

	return res.Content[0].Text, nil
}

// BuildPrompt embeds the receipt and analytics into the analyst prompt. The
// output is deterministic for a given receipt and analytics value.
func BuildPrompt(receipt entities.Receipt, analytics domain.SpendingAnalytics) string {
	items, _ := json.MarshalIndent(receipt.Items, "", "  ")
	comparisons, _ := json.MarshalIndent(analytics.ItemComparisons, "", "  ")
	vendorAverage := analytics.VendorStats[analytics.CurrentVendor].Average

	return fmt.Sprintf(`You are a personal grocery spending analyst. Analyze this receipt and provide helpful, actionable insights.

Current Receipt:
- Vendor: %s
- Total: $%s
- Date: %s
- Items: %s

Historical Analytics:
- Total past receipts (last 30 days): %d
- Overall average spend: $%.2f
- Current vendor average: $%.2f

Item Price Comparisons:
%s

Provide 3-4 bullet points with:
1. A quick reaction to this purchase (over/under budget, good/bad timing)
2. Store comparison insights if available
3. Specific item-level savings opportunities
4. One actionable tip for next time

Be encouraging but honest. Use emojis sparingly. Keep it concise and friendly.`,
		receipt.Vendor,
		receipt.Total,
		receipt.Date,
		items,
		analytics.TotalReceipts,
		analytics.OverallAverage,
		vendorAverage,
		comparisons,
	)
}
