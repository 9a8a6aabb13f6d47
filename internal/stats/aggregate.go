package stats

import (
	"fmt"
	"time"

	"instock_back_end/internal/models"
)

// Codes raison des évènements de stock. L'ensemble est ouvert : tout autre
// libellé est accepté et agrégé dynamiquement.
const (
	ReasonSale      = "Sale"
	ReasonOrder     = "Order"
	ReasonReturn    = "Return"
	ReasonGiveaway  = "Giveaway"
	ReasonDamaged   = "Damaged"
	ReasonRestocked = "Restocked"
	ReasonLost      = "Lost"

	// Littéral distinct de "Return" : seul le volume de retours par article
	// l'utilise. Les deux chaînes coexistent dans les données historiques.
	ReasonReturned = "Returned"
)

var fixedReasons = []string{
	ReasonSale, ReasonOrder, ReasonReturn, ReasonGiveaway,
	ReasonDamaged, ReasonRestocked, ReasonLost,
}

func newReasonMap() map[string]int {
	m := make(map[string]int, len(fixedReasons))
	for _, reason := range fixedReasons {
		m[reason] = 0
	}
	return m
}

// EventError signale un évènement de stock illisible. Sa contribution est
// ignorée mais le calcul global continue et rend un résultat au mieux.
type EventError struct {
	ItemSKU string
	RawDate string
	Err     error
}

func (e EventError) Error() string {
	return fmt.Sprintf("article %s: évènement daté %q illisible: %v", e.ItemSKU, e.RawDate, e.Err)
}

// Aggregates regroupe les vues dérivées de l'historique de stock d'un commerce.
type Aggregates struct {
	OverallPerformance map[string]int
	CategoryBreakdown  map[string]map[string]int
	SalesByMonth       map[int]map[string]int
	DeductionsByMonth  map[int]map[string]int
}

func parseEventDate(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}

// monthKey retourne l'abréviation anglaise à trois lettres ("Jan", "Feb", ...)
func monthKey(t time.Time) string {
	return t.Month().String()[:3]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ComputeAggregates parcourt tous les évènements de stock et produit :
//   - OverallPerformance : total des montants absolus par code raison,
//     pré-rempli à zéro pour les sept raisons fixes ;
//   - CategoryBreakdown : même ventilation par catégorie, chaque catégorie
//     ajoutée à la première rencontre d'un article qui porte des évènements ;
//   - SalesByMonth : ventes (raison "Sale" uniquement) par année puis mois ;
//   - DeductionsByMonth : pertes par année puis mois, uniquement si la raison
//     n'est ni "Sale" ni "Order" ET que le montant signé brut est négatif.
func ComputeAggregates(items []models.StatItem) (Aggregates, []EventError) {
	agg := Aggregates{
		OverallPerformance: newReasonMap(),
		CategoryBreakdown:  make(map[string]map[string]int),
		SalesByMonth:       make(map[int]map[string]int),
		DeductionsByMonth:  make(map[int]map[string]int),
	}
	var diags []EventError

	for _, item := range items {
		if len(item.StockUpdates) == 0 {
			continue
		}

		categoryDict, ok := agg.CategoryBreakdown[item.Category]
		if !ok {
			categoryDict = newReasonMap()
			agg.CategoryBreakdown[item.Category] = categoryDict
		}

		for _, update := range item.StockUpdates {
			amount := abs(update.AmountChanged)
			signedAmount := update.AmountChanged

			dateAdded, err := parseEventDate(update.DateTimeAdded)
			if err != nil {
				diags = append(diags, EventError{ItemSKU: item.SKU, RawDate: update.DateTimeAdded, Err: err})
				continue
			}
			year := dateAdded.Year()
			month := monthKey(dateAdded)

			agg.OverallPerformance[update.ReasonForChange] += amount
			categoryDict[update.ReasonForChange] += amount

			if update.ReasonForChange == ReasonSale {
				yearDict, ok := agg.SalesByMonth[year]
				if !ok {
					yearDict = make(map[string]int)
					agg.SalesByMonth[year] = yearDict
				}
				yearDict[month] += amount
			}

			if update.ReasonForChange != ReasonSale && update.ReasonForChange != ReasonOrder && signedAmount < 0 {
				yearDict, ok := agg.DeductionsByMonth[year]
				if !ok {
					yearDict = make(map[string]int)
					agg.DeductionsByMonth[year] = yearDict
				}
				yearDict[month] += amount
			}
		}
	}

	return agg, diags
}
