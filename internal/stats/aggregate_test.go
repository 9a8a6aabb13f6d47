package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instock_back_end/internal/models"
)

func eventAt(year int, month time.Month, day int, reason string, amount int) models.StockUpdate {
	return models.StockUpdate{
		AmountChanged:   amount,
		ReasonForChange: reason,
		DateTimeAdded:   time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}
}

func TestComputeAggregatesNoEvents(t *testing.T) {
	items := []models.StatItem{
		{SKU: "CRD-CKT-RLB", Name: "Birthday Cockatoo", Category: "Cards", Stock: "43"},
		{SKU: "BKM-FOX-GRN", Name: "Forest Fox", Category: "Bookmarks", Stock: "12"},
	}

	agg, diags := ComputeAggregates(items)

	require.Empty(t, diags)
	require.Len(t, agg.OverallPerformance, 7)
	for _, reason := range []string{"Sale", "Order", "Return", "Giveaway", "Damaged", "Restocked", "Lost"} {
		value, ok := agg.OverallPerformance[reason]
		assert.True(t, ok, "raison %s absente", reason)
		assert.Zero(t, value)
	}
	assert.Empty(t, agg.CategoryBreakdown)
	assert.Empty(t, agg.SalesByMonth)
	assert.Empty(t, agg.DeductionsByMonth)
}

func TestComputeAggregatesTotalsConservation(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Category: "Cards", Stock: "43",
			StockUpdates: []models.StockUpdate{
				eventAt(2024, time.January, 5, ReasonSale, -3),
				eventAt(2024, time.January, 9, ReasonSale, -2),
				eventAt(2024, time.February, 1, ReasonRestocked, 20),
			},
		},
		{
			SKU: "CRD-OWL-BLU", Category: "Cards", Stock: "10",
			StockUpdates: []models.StockUpdate{
				eventAt(2024, time.January, 12, ReasonSale, -4),
				eventAt(2024, time.March, 2, ReasonLost, -1),
			},
		},
		{
			SKU: "BKM-FOX-GRN", Category: "Bookmarks", Stock: "12",
			StockUpdates: []models.StockUpdate{
				eventAt(2024, time.January, 20, ReasonReturn, 2),
			},
		},
	}

	agg, diags := ComputeAggregates(items)

	require.Empty(t, diags)
	// Totaux globaux : somme des montants absolus par raison exacte
	assert.Equal(t, 9, agg.OverallPerformance[ReasonSale])
	assert.Equal(t, 20, agg.OverallPerformance[ReasonRestocked])
	assert.Equal(t, 1, agg.OverallPerformance[ReasonLost])
	assert.Equal(t, 2, agg.OverallPerformance[ReasonReturn])

	// Ventilation par catégorie : les articles d'une même catégorie s'additionnent
	require.Contains(t, agg.CategoryBreakdown, "Cards")
	require.Contains(t, agg.CategoryBreakdown, "Bookmarks")
	assert.Equal(t, 9, agg.CategoryBreakdown["Cards"][ReasonSale])
	assert.Equal(t, 20, agg.CategoryBreakdown["Cards"][ReasonRestocked])
	assert.Equal(t, 1, agg.CategoryBreakdown["Cards"][ReasonLost])
	assert.Equal(t, 2, agg.CategoryBreakdown["Bookmarks"][ReasonReturn])
	assert.Zero(t, agg.CategoryBreakdown["Bookmarks"][ReasonSale])

	// Chaque catégorie est pré-remplie avec les sept raisons fixes
	assert.Len(t, agg.CategoryBreakdown["Bookmarks"], 7)
}

func TestComputeAggregatesSaleMonthRouting(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Category: "Cards",
			StockUpdates: []models.StockUpdate{
				eventAt(2024, time.March, 15, ReasonSale, -7),
			},
		},
	}

	agg, diags := ComputeAggregates(items)

	require.Empty(t, diags)
	require.Contains(t, agg.SalesByMonth, 2024)
	assert.Equal(t, 7, agg.SalesByMonth[2024]["Mar"])
	// Une vente ne va jamais dans les déductions, même avec un montant négatif
	assert.Empty(t, agg.DeductionsByMonth)
}

func TestComputeAggregatesDeductionDoubleCondition(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Category: "Cards",
			StockUpdates: []models.StockUpdate{
				eventAt(2024, time.June, 1, ReasonDamaged, -4),
				// Montant positif : compté dans les totaux mais pas en déduction
				eventAt(2024, time.June, 2, ReasonDamaged, 4),
				// Order négatif : exclu des déductions par sa raison
				eventAt(2024, time.June, 3, ReasonOrder, -5),
			},
		},
	}

	agg, diags := ComputeAggregates(items)

	require.Empty(t, diags)
	require.Contains(t, agg.DeductionsByMonth, 2024)
	assert.Equal(t, 4, agg.DeductionsByMonth[2024]["Jun"])
	assert.Equal(t, 8, agg.OverallPerformance[ReasonDamaged])
	assert.Equal(t, 5, agg.OverallPerformance[ReasonOrder])
}

func TestComputeAggregatesUnknownReasonAddedDynamically(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Category: "Cards",
			StockUpdates: []models.StockUpdate{
				eventAt(2024, time.April, 10, "Sample", -2),
			},
		},
	}

	agg, _ := ComputeAggregates(items)

	assert.Equal(t, 2, agg.OverallPerformance["Sample"])
	assert.Equal(t, 2, agg.CategoryBreakdown["Cards"]["Sample"])
	assert.Len(t, agg.OverallPerformance, 8)
}

func TestComputeAggregatesMalformedDateSkipsSingleEvent(t *testing.T) {
	items := []models.StatItem{
		{
			SKU: "CRD-CKT-RLB", Category: "Cards",
			StockUpdates: []models.StockUpdate{
				{AmountChanged: -3, ReasonForChange: ReasonSale, DateTimeAdded: "pas-une-date"},
				eventAt(2024, time.May, 4, ReasonSale, -6),
			},
		},
	}

	agg, diags := ComputeAggregates(items)

	require.Len(t, diags, 1)
	assert.Equal(t, "CRD-CKT-RLB", diags[0].ItemSKU)
	assert.Equal(t, "pas-une-date", diags[0].RawDate)
	// Seul l'évènement illisible est perdu, le reste du calcul aboutit
	assert.Equal(t, 6, agg.OverallPerformance[ReasonSale])
	assert.Equal(t, 6, agg.SalesByMonth[2024]["May"])
}
