package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"receipt-insights-backend/domain"
	"receipt-insights-backend/entities"
)

type (
	// AnalyticsService is a pure computation over the current receipt and the
	// trailing spending history. It never reaches out to anything.
	AnalyticsService interface {
		Calculate(current entities.Receipt, history []entities.Receipt) (domain.SpendingAnalytics, error)
	}

	analyticsService struct{}

	pricePoint struct {
		price  float64
		vendor string
	}
)

func NewAnalyticsService() AnalyticsService {
	return &analyticsService{}
}

// Calculate never lets a failure escape: on any error the zero analytics
// value is returned alongside the error so the caller can mark the stage
// degraded and keep going.
func (s *analyticsService) Calculate(current entities.Receipt, history []entities.Receipt) (result domain.SpendingAnalytics, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.SpendingAnalytics{}
			err = fmt.Errorf("analytics computation failed: %v", r)
		}
	}()

	currentVendor := NormalizeVendor(current.Vendor)
	currentTotal, ok := parseDecimal(current.Total)
	if !ok {
		return domain.SpendingAnalytics{}, fmt.Errorf("unparseable current total %q", current.Total)
	}

	vendorTotals := make(map[string][]float64)
	itemPrices := make(map[string][]pricePoint)

	var historySum float64
	var historyParsed int
	for _, receipt := range history {
		vendor := NormalizeVendor(receipt.Vendor)
		total, ok := parseDecimal(receipt.Total)
		if ok {
			vendorTotals[vendor] = append(vendorTotals[vendor], total)
			historySum += total
			historyParsed++
		}

		for _, item := range receipt.Items {
			price, ok := parseDecimal(item.Price)
			if !ok {
				continue
			}
			name := strings.ToUpper(item.Name)
			itemPrices[name] = append(itemPrices[name], pricePoint{price: price, vendor: vendor})
		}
	}

	result = domain.SpendingAnalytics{
		CurrentTotal:    currentTotal,
		CurrentVendor:   currentVendor,
		TotalReceipts:   len(history),
		VendorStats:     make(map[string]domain.VendorStats),
		ItemComparisons: []domain.ItemComparison{},
	}
	if historyParsed > 0 {
		result.OverallAverage = historySum / float64(historyParsed)
	}

	for vendor, totals := range vendorTotals {
		stats := domain.VendorStats{
			Count: len(totals),
			Min:   totals[0],
			Max:   totals[0],
		}
		var sum float64
		for _, t := range totals {
			sum += t
			if t < stats.Min {
				stats.Min = t
			}
			if t > stats.Max {
				stats.Max = t
			}
		}
		stats.Average = sum / float64(len(totals))
		result.VendorStats[vendor] = stats
	}

	for _, item := range current.Items {
		historical, seen := itemPrices[strings.ToUpper(item.Name)]
		if !seen {
			continue
		}
		currentPrice, ok := parseDecimal(item.Price)
		if !ok {
			continue
		}

		// Cheapest strictly-cheaper occurrence at a different vendor; ties
		// resolve to the first encountered.
		var cheapest *pricePoint
		for i := range historical {
			h := historical[i]
			if h.price >= currentPrice || h.vendor == currentVendor {
				continue
			}
			if cheapest == nil || h.price < cheapest.price {
				cheapest = &historical[i]
			}
		}

		if cheapest != nil {
			result.ItemComparisons = append(result.ItemComparisons, domain.ItemComparison{
				Item:         item.Name,
				CurrentPrice: currentPrice,
				CheaperAt:    cheapest.vendor,
				CheaperPrice: cheapest.price,
				Savings:      currentPrice - cheapest.price,
			})
		}
	}

	return result, nil
}

// NormalizeVendor collapses whitespace runs so OCR artifacts do not split
// one vendor into several grouping keys.
func NormalizeVendor(vendor string) string {
	return strings.Join(strings.Fields(vendor), " ")
}

// parseDecimal makes the skip-on-failure policy explicit: callers drop the
// price point when ok is false instead of aborting.
func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
