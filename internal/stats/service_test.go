package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instock_back_end/internal/models"
)

type fakeSource struct {
	items []models.StatItem
	err   error
}

func (f fakeSource) FetchStatsData(_ context.Context, _ string) ([]models.StatItem, error) {
	return f.items, f.err
}

func fixedClock() time.Time { return suggestionsNow }

func TestGetStatsNoItemsIsValidEmptyResult(t *testing.T) {
	service := NewServiceWithClock(fakeSource{}, fixedClock)

	allStats, diags, err := service.GetStats(context.Background(), "business-123")

	require.NoError(t, err)
	require.Empty(t, diags)
	require.NotNil(t, allStats)
	assert.Len(t, allStats.OverallPerformance, 7)
	for reason, value := range allStats.OverallPerformance {
		assert.Zero(t, value, "raison %s", reason)
	}
	assert.Empty(t, allStats.CategoryBreakdown)
	assert.Empty(t, allStats.SalesByMonth)
	assert.Empty(t, allStats.DeductionsByMonth)
	assert.Equal(t, NoSuggestionsMessage, allStats.Suggestions.Message)
}

func TestGetStatsSourceFailureIsAnError(t *testing.T) {
	boom := errors.New("scylla indisponible")
	service := NewServiceWithClock(fakeSource{err: boom}, fixedClock)

	allStats, diags, err := service.GetStats(context.Background(), "business-123")

	// Un échec du magasin de données n'est jamais confondu avec "pas de données"
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, allStats)
	assert.Empty(t, diags)
}

func TestGetStatsAssemblesAggregatesAndSuggestions(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{
				saleDaysAgo(10, -6),
				saleDaysAgo(2, -3),
				{AmountChanged: -2, ReasonForChange: ReasonDamaged, DateTimeAdded: suggestionsNow.AddDate(0, 0, -1).Format(time.RFC3339)},
			},
		},
		{
			SKU: "BKM-FOX-GRN", Name: "Forest Fox", Category: "Bookmarks", Stock: "12",
			StockUpdates: []models.StockUpdate{saleDaysAgo(20, -1)},
		},
	}
	service := NewServiceWithClock(fakeSource{items: items}, fixedClock)

	allStats, diags, err := service.GetStats(context.Background(), "business-123")

	require.NoError(t, err)
	require.Empty(t, diags)
	require.NotNil(t, allStats)

	assert.Equal(t, 10, allStats.OverallPerformance[ReasonSale])
	assert.Equal(t, 2, allStats.OverallPerformance[ReasonDamaged])
	assert.Equal(t, 9, allStats.CategoryBreakdown["Cards"][ReasonSale])
	assert.Equal(t, 2, allStats.DeductionsByMonth[suggestionsNow.Year()][monthKey(suggestionsNow.AddDate(0, 0, -1))])

	require.NotNil(t, allStats.Suggestions.BestSellingItem)
	assert.Equal(t, "CRD-CKT-RLB", allStats.Suggestions.BestSellingItem.SKU)
	require.NotNil(t, allStats.Suggestions.WorstSellingItem)
	assert.Equal(t, "BKM-FOX-GRN", allStats.Suggestions.WorstSellingItem.SKU)
	assert.Empty(t, allStats.Suggestions.Message)
}

func TestGetStatsCollectsDiagnostics(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{
				{AmountChanged: -3, ReasonForChange: ReasonSale, DateTimeAdded: "hier"},
				saleDaysAgo(2, -4),
			},
		},
	}
	service := NewServiceWithClock(fakeSource{items: items}, fixedClock)

	allStats, diags, err := service.GetStats(context.Background(), "business-123")

	require.NoError(t, err)
	require.NotNil(t, allStats)
	// L'évènement illisible apparaît deux fois : une par passe de calcul
	assert.Len(t, diags, 2)
	assert.Equal(t, 4, allStats.OverallPerformance[ReasonSale])
}
