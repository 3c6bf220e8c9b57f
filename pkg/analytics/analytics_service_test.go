package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receipt-insights-backend/entities"
)

func TestCalculateEmptyHistory(t *testing.T) {
	service := NewAnalyticsService()

	current := entities.Receipt{
		Vendor: "Acme Mart",
		Total:  "12.50",
		Items:  []entities.LineItem{{Name: "Milk", Price: "3.00"}},
	}

	result, err := service.Calculate(current, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.OverallAverage)
	assert.Empty(t, result.VendorStats)
	assert.Empty(t, result.ItemComparisons)
	assert.Equal(t, 0, result.TotalReceipts)
	assert.Equal(t, 12.50, result.CurrentTotal)
	assert.Equal(t, "Acme Mart", result.CurrentVendor)
}

func TestCalculateCheaperVendorComparison(t *testing.T) {
	service := NewAnalyticsService()

	history := []entities.Receipt{
		{
			Vendor: "Acme Mart",
			Total:  "10.00",
			Items:  []entities.LineItem{{Name: "MILK", Price: "2.50"}},
		},
		{
			Vendor: "Best Foods",
			Total:  "8.00",
			Items:  []entities.LineItem{{Name: "Milk", Price: "2.00"}},
		},
	}
	current := entities.Receipt{
		Vendor: "Acme Mart",
		Total:  "12.50",
		Items:  []entities.LineItem{{Name: "Milk", Price: "3.00"}},
	}

	result, err := service.Calculate(current, history)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalReceipts)
	assert.InDelta(t, 9.0, result.OverallAverage, 1e-9)

	require.Len(t, result.ItemComparisons, 1)
	comparison := result.ItemComparisons[0]
	assert.Equal(t, "Milk", comparison.Item)
	assert.Equal(t, 3.00, comparison.CurrentPrice)
	// The same-vendor 2.50 price must not win even though it is cheaper.
	assert.Equal(t, "Best Foods", comparison.CheaperAt)
	assert.Equal(t, 2.00, comparison.CheaperPrice)
	assert.InDelta(t, 1.00, comparison.Savings, 1e-9)
}

func TestCalculateVendorStats(t *testing.T) {
	service := NewAnalyticsService()

	history := []entities.Receipt{
		{Vendor: "Acme Mart", Total: "10.00"},
		{Vendor: "Acme  Mart", Total: "20.00"},
		{Vendor: "Best Foods", Total: "5.00"},
	}
	current := entities.Receipt{Vendor: "Acme\nMart", Total: "12.50"}

	result, err := service.Calculate(current, history)
	require.NoError(t, err)

	// Whitespace variants collapse to one grouping key.
	assert.Equal(t, "Acme Mart", result.CurrentVendor)
	require.Contains(t, result.VendorStats, "Acme Mart")

	stats := result.VendorStats["Acme Mart"]
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 15.0, stats.Average, 1e-9)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 20.0, stats.Max)

	assert.Equal(t, 1, result.VendorStats["Best Foods"].Count)
}

func TestCalculateSkipsUnparseablePrices(t *testing.T) {
	service := NewAnalyticsService()

	history := []entities.Receipt{
		{
			Vendor: "Best Foods",
			Total:  "not-a-number",
			Items: []entities.LineItem{
				{Name: "Milk", Price: "$2.00"},
				{Name: "Milk", Price: "2.10"},
			},
		},
		{Vendor: "Corner Shop", Total: "6.00"},
	}
	current := entities.Receipt{
		Vendor: "Acme Mart",
		Total:  "12.50",
		Items:  []entities.LineItem{{Name: "Milk", Price: "3.00"}},
	}

	result, err := service.Calculate(current, history)
	require.NoError(t, err)

	// The malformed total drops out of the average; the receipt still counts.
	assert.Equal(t, 2, result.TotalReceipts)
	assert.InDelta(t, 6.0, result.OverallAverage, 1e-9)
	assert.NotContains(t, result.VendorStats, "Best Foods")

	// The "$2.00" point is excluded, the 2.10 point survives.
	require.Len(t, result.ItemComparisons, 1)
	assert.Equal(t, 2.10, result.ItemComparisons[0].CheaperPrice)
}

func TestCalculateUnparseableCurrentTotal(t *testing.T) {
	service := NewAnalyticsService()

	current := entities.Receipt{Vendor: "Acme Mart", Total: "abc"}
	result, err := service.Calculate(current, []entities.Receipt{{Vendor: "Best Foods", Total: "5.00"}})

	require.Error(t, err)
	assert.Equal(t, 0.0, result.OverallAverage)
	assert.Empty(t, result.VendorStats)
}

func TestCalculateUnparseableCurrentItemPrice(t *testing.T) {
	service := NewAnalyticsService()

	history := []entities.Receipt{
		{Vendor: "Best Foods", Total: "5.00", Items: []entities.LineItem{{Name: "Milk", Price: "1.00"}}},
	}
	current := entities.Receipt{
		Vendor: "Acme Mart",
		Total:  "12.50",
		Items:  []entities.LineItem{{Name: "Milk", Price: "n/a"}},
	}

	result, err := service.Calculate(current, history)
	require.NoError(t, err)
	assert.Empty(t, result.ItemComparisons)
}

func TestCalculateSavingsAlwaysPositive(t *testing.T) {
	service := NewAnalyticsService()

	history := []entities.Receipt{
		{Vendor: "Best Foods", Total: "5.00", Items: []entities.LineItem{{Name: "Milk", Price: "3.00"}}},
		{Vendor: "Corner Shop", Total: "5.00", Items: []entities.LineItem{{Name: "Milk", Price: "2.80"}}},
	}
	current := entities.Receipt{
		Vendor: "Acme Mart",
		Total:  "12.50",
		Items:  []entities.LineItem{{Name: "Milk", Price: "3.00"}},
	}

	result, err := service.Calculate(current, history)
	require.NoError(t, err)

	// The equal 3.00 price is not strictly cheaper.
	require.Len(t, result.ItemComparisons, 1)
	assert.Equal(t, "Corner Shop", result.ItemComparisons[0].CheaperAt)
	assert.Greater(t, result.ItemComparisons[0].Savings, 0.0)
}

func TestNormalizeVendor(t *testing.T) {
	cases := map[string]string{
		"Acme Mart":        "Acme Mart",
		"Acme   Mart":      "Acme Mart",
		"Acme\nMart":       "Acme Mart",
		"  Acme\t Mart  ":  "Acme Mart",
		"Acme \n\t  Mart ": "Acme Mart",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeVendor(input))
	}
}

func TestParseDecimal(t *testing.T) {
	v, ok := parseDecimal(" 12.50 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = parseDecimal("$12.50")
	assert.False(t, ok)

	_, ok = parseDecimal("")
	assert.False(t, ok)
}
