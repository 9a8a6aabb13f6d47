package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instock_back_end/internal/models"
)

var suggestionsNow = time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)

func saleDaysAgo(days, amount int) models.StockUpdate {
	return models.StockUpdate{
		AmountChanged:   amount,
		ReasonForChange: ReasonSale,
		DateTimeAdded:   suggestionsNow.AddDate(0, 0, -days).Format(time.RFC3339),
	}
}

func TestComputeSuggestionsEmptyInput(t *testing.T) {
	sugg, diags := ComputeSuggestions(nil, suggestionsNow)

	require.Empty(t, diags)
	assert.Equal(t, NoSuggestionsMessage, sugg.Message)
	assert.Nil(t, sugg.BestSellingItem)
	assert.Nil(t, sugg.WorstSellingItem)
	assert.Nil(t, sugg.ItemToRestock)
	assert.Nil(t, sugg.LongestNoSales)
	assert.Nil(t, sugg.BestSellingCategory)
	assert.Nil(t, sugg.WorstSellingCategory)
	assert.Nil(t, sugg.MostReturnedItem)
}

func TestComputeSuggestionsOmittedWithoutSales(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{
				{AmountChanged: 20, ReasonForChange: ReasonRestocked, DateTimeAdded: suggestionsNow.Format(time.RFC3339)},
			},
		},
		{SKU: "BKM-FOX-GRN", Name: "Forest Fox", Category: "Bookmarks", Stock: "12"},
	}

	sugg, diags := ComputeSuggestions(items, suggestionsNow)

	require.Empty(t, diags)
	// Absent, jamais valorisé à zéro : l'absence signifie "données insuffisantes"
	assert.Nil(t, sugg.BestSellingItem)
	assert.Nil(t, sugg.WorstSellingItem)
	assert.Nil(t, sugg.BestSellingCategory)
	assert.Nil(t, sugg.WorstSellingCategory)
	assert.Nil(t, sugg.MostReturnedItem)
	assert.Nil(t, sugg.LongestNoSales)
	assert.Nil(t, sugg.ItemToRestock)
	assert.Empty(t, sugg.Message)
}

func TestComputeSuggestionsBestAndWorstSeller(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{saleDaysAgo(3, -9)},
		},
		{
			SKU: "BKM-FOX-GRN", Name: "Forest Fox", Category: "Bookmarks", Stock: "12",
			StockUpdates: []models.StockUpdate{saleDaysAgo(5, -2)},
		},
	}

	sugg, diags := ComputeSuggestions(items, suggestionsNow)

	require.Empty(t, diags)
	require.NotNil(t, sugg.BestSellingItem)
	assert.Equal(t, "CRD-CKT-RLB", sugg.BestSellingItem.SKU)
	assert.Equal(t, 9, sugg.BestSellingItem.Amount)
	require.NotNil(t, sugg.WorstSellingItem)
	assert.Equal(t, "BKM-FOX-GRN", sugg.WorstSellingItem.SKU)
	assert.Equal(t, 2, sugg.WorstSellingItem.Amount)
}

func TestComputeSuggestionsMostReturnedUsesReturnedLiteral(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{
				{AmountChanged: -2, ReasonForChange: ReasonReturned, DateTimeAdded: suggestionsNow.Format(time.RFC3339)},
			},
		},
		{
			SKU: "BKM-FOX-GRN", Name: "Forest Fox", Category: "Bookmarks", Stock: "12",
			StockUpdates: []models.StockUpdate{
				// "Return" et "Returned" sont deux littéraux distincts :
				// seul "Returned" alimente le volume de retours par article
				{AmountChanged: -8, ReasonForChange: ReasonReturn, DateTimeAdded: suggestionsNow.Format(time.RFC3339)},
			},
		},
	}

	sugg, diags := ComputeSuggestions(items, suggestionsNow)

	require.Empty(t, diags)
	require.NotNil(t, sugg.MostReturnedItem)
	assert.Equal(t, "CRD-CKT-RLB", sugg.MostReturnedItem.SKU)
	assert.Equal(t, 2, sugg.MostReturnedItem.Amount)
}

func TestComputeSuggestionsLongestNoSales(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{saleDaysAgo(12, -1)},
		},
		{
			SKU: "BKM-FOX-GRN", Name: "Forest Fox", Category: "Bookmarks", Stock: "12",
			StockUpdates: []models.StockUpdate{saleDaysAgo(4, -1)},
		},
	}

	sugg, diags := ComputeSuggestions(items, suggestionsNow)

	require.Empty(t, diags)
	require.NotNil(t, sugg.LongestNoSales)
	assert.Equal(t, "CRD-CKT-RLB", sugg.LongestNoSales.SKU)
	assert.Equal(t, 12, sugg.LongestNoSales.Days)
	assert.Equal(t, "12 days", sugg.LongestNoSales.Period)
}

func TestAverageDaysBetweenSales(t *testing.T) {
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		base,
		base.AddDate(0, 0, 10),
		base.AddDate(0, 0, 20),
		base.AddDate(0, 0, 25), // "now" synthétique
	}

	// (10 + 10 + 5) / 3 en division entière
	assert.Equal(t, 8, averageDaysBetweenSales(dates))
}

func TestCompareRatioKeysNumericIntervalDominates(t *testing.T) {
	// Comparaison numérique, pas lexicographique : "5:10" passe avant "12:3"
	assert.Negative(t, CompareRatioKeys("5:10", "12:3"))
	assert.Positive(t, CompareRatioKeys("12:3", "5:10"))
	// À intervalle égal, le stock départage en croissant
	assert.Negative(t, CompareRatioKeys("12:3", "12:40"))
	assert.Zero(t, CompareRatioKeys("7:7", "7:7"))
}

func TestComputeSuggestionsRestockRankingDeterminism(t *testing.T) {
	ranking := map[string]models.StatItem{
		"5:10":  {SKU: "A"},
		"12:3":  {SKU: "B"},
		"12:40": {SKU: "C"},
	}

	key, item, ok := lastRankedRatio(ranking)

	require.True(t, ok)
	assert.Equal(t, "12:40", key)
	assert.Equal(t, "C", item.SKU)
}

func TestComputeSuggestionsRestockRatioKey(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "4",
			StockUpdates: []models.StockUpdate{
				saleDaysAgo(25, -1),
				saleDaysAgo(15, -1),
				saleDaysAgo(5, -1),
			},
		},
	}

	sugg, diags := ComputeSuggestions(items, suggestionsNow)

	require.Empty(t, diags)
	require.NotNil(t, sugg.ItemToRestock)
	// Écarts triés avec "now" : 10, 10 et 5 jours → moyenne entière 8
	assert.Equal(t, "8:4", sugg.ItemToRestock.Ratio)
	assert.Equal(t, "CRD-CKT-RLB", sugg.ItemToRestock.SKU)
}

func TestComputeSuggestionsSingleSaleHasNoRestock(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "4",
			StockUpdates: []models.StockUpdate{saleDaysAgo(5, -1)},
		},
	}

	sugg, _ := ComputeSuggestions(items, suggestionsNow)

	// Une seule vente : un rythme de vente est incalculable
	assert.Nil(t, sugg.ItemToRestock)
	require.NotNil(t, sugg.LongestNoSales)
}

func TestComputeSuggestionsCategoryVolumeLastWriteWins(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{saleDaysAgo(3, -10)},
		},
		{
			SKU: "CRD-OWL-BLU", Name: "Blue Owl", Category: "Cards", Stock: "10",
			StockUpdates: []models.StockUpdate{saleDaysAgo(2, -3)},
		},
	}

	sugg, diags := ComputeSuggestions(items, suggestionsNow)

	require.Empty(t, diags)
	require.NotNil(t, sugg.BestSellingCategory)
	assert.Equal(t, "Cards", sugg.BestSellingCategory.Category)
	// Le volume de la catégorie est celui du dernier article traité, 3 et non
	// 13 : comportement conservé tel quel, un cumul donnerait 13
	assert.Equal(t, 3, sugg.BestSellingCategory.Amount)
}

func TestComputeSuggestionsBestAndWorstCategory(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{saleDaysAgo(3, -9)},
		},
		{
			SKU: "BKM-FOX-GRN", Name: "Forest Fox", Category: "Bookmarks", Stock: "12",
			StockUpdates: []models.StockUpdate{saleDaysAgo(5, -2)},
		},
	}

	sugg, diags := ComputeSuggestions(items, suggestionsNow)

	require.Empty(t, diags)
	require.NotNil(t, sugg.BestSellingCategory)
	assert.Equal(t, "Cards", sugg.BestSellingCategory.Category)
	assert.Equal(t, 9, sugg.BestSellingCategory.Amount)
	require.NotNil(t, sugg.WorstSellingCategory)
	assert.Equal(t, "Bookmarks", sugg.WorstSellingCategory.Category)
	assert.Equal(t, 2, sugg.WorstSellingCategory.Amount)
}

func TestComputeSuggestionsMalformedDateCollected(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{
				{AmountChanged: -5, ReasonForChange: ReasonSale, DateTimeAdded: "03/15/2024"},
				saleDaysAgo(2, -4),
			},
		},
	}

	sugg, diags := ComputeSuggestions(items, suggestionsNow)

	require.Len(t, diags, 1)
	assert.Equal(t, "CRD-CKT-RLB", diags[0].ItemSKU)
	require.NotNil(t, sugg.BestSellingItem)
	// L'évènement illisible ne contribue pas au volume de ventes
	assert.Equal(t, 4, sugg.BestSellingItem.Amount)
}
