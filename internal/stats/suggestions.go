package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"instock_back_end/internal/models"
)

// NoSuggestionsMessage est la sentinelle renvoyée quand aucune donnée ne
// permet de calculer des suggestions. Les consommateurs doivent la traiter
// comme "pas encore de données", jamais comme une erreur.
const NoSuggestionsMessage = "No Stats Suggestions"

func NoSuggestions() models.Suggestions {
	return models.Suggestions{Message: NoSuggestionsMessage}
}

// ComputeSuggestions dérive les suggestions classées (meilleures/pires ventes,
// retours, réassort, période sans vente) des mêmes projections d'articles que
// l'agrégateur. now est injecté pour des calculs de délais reproductibles.
//
// Chaque suggestion est omise quand son classement est vide ou que la valeur
// gagnante n'est pas strictement positive : l'absence signifie "données
// insuffisantes", pas zéro.
func ComputeSuggestions(items []models.StatItem, now time.Time) (models.Suggestions, []EventError) {
	if len(items) == 0 {
		return NoSuggestions(), nil
	}

	var diags []EventError

	itemSales := make(map[int]models.StatItem)
	itemReturns := make(map[int]models.StatItem)
	timeNoSales := make(map[int]models.StatItem)
	categorySales := make(map[string]int)
	salesStockRatio := make(map[string]models.StatItem)
	var categoryOrder []string // ordre de première rencontre, pour un classement stable

	for _, item := range items {
		sales := 0
		returns := 0
		catSales := 0
		var saleDates []time.Time
		var mostRecentSale time.Time

		for _, update := range item.StockUpdates {
			amount := abs(update.AmountChanged)

			dateAdded, err := parseEventDate(update.DateTimeAdded)
			if err != nil {
				diags = append(diags, EventError{ItemSKU: item.SKU, RawDate: update.DateTimeAdded, Err: err})
				continue
			}

			if update.ReasonForChange == ReasonSale {
				sales += amount
				catSales += amount
				saleDates = append(saleDates, dateAdded)
				if dateAdded.After(mostRecentSale) {
					mostRecentSale = dateAdded
				}
			}
			if update.ReasonForChange == ReasonReturned {
				returns += amount
			}
		}

		if !mostRecentSale.IsZero() {
			timeNoSales[wholeDaysBetween(mostRecentSale, now)] = item

			// Il faut au moins deux ventes pour estimer un rythme de vente
			if len(saleDates) > 1 {
				saleDates = append(saleDates, now)
				interval := averageDaysBetweenSales(saleDates)
				salesStockRatio[strconv.Itoa(interval)+":"+item.Stock] = item
			}
		}

		itemSales[sales] = item
		itemReturns[returns] = item
		if _, seen := categorySales[item.Category]; !seen {
			categoryOrder = append(categoryOrder, item.Category)
		}
		// Dernière écriture gagnante quand une catégorie revient sur plusieurs articles
		categorySales[item.Category] = catSales
	}

	var sugg models.Suggestions

	if amount, item, ok := maxRanked(itemSales); ok && amount > 0 {
		sugg.BestSellingItem = itemSuggestion(item, amount)
	}
	if amount, item, ok := minRanked(itemSales); ok && amount > 0 {
		sugg.WorstSellingItem = itemSuggestion(item, amount)
	}
	if amount, item, ok := maxRanked(itemReturns); ok && amount > 0 {
		sugg.MostReturnedItem = itemSuggestion(item, amount)
	}
	if days, item, ok := maxRanked(timeNoSales); ok && days > 0 {
		sugg.LongestNoSales = &models.NoSaleSuggestion{
			SKU:      item.SKU,
			Name:     item.Name,
			Category: item.Category,
			Days:     days,
			Period:   fmt.Sprintf("%d days", days),
		}
	}

	sort.SliceStable(categoryOrder, func(i, j int) bool {
		return categorySales[categoryOrder[i]] > categorySales[categoryOrder[j]]
	})
	if len(categoryOrder) > 0 {
		best := categoryOrder[0]
		worst := categoryOrder[len(categoryOrder)-1]
		if categorySales[best] > 0 {
			sugg.BestSellingCategory = &models.CategorySuggestion{Category: best, Amount: categorySales[best]}
		}
		if categorySales[worst] > 0 {
			sugg.WorstSellingCategory = &models.CategorySuggestion{Category: worst, Amount: categorySales[worst]}
		}
	}

	if key, item, ok := lastRankedRatio(salesStockRatio); ok {
		sugg.ItemToRestock = &models.RestockSuggestion{
			SKU:      item.SKU,
			Name:     item.Name,
			Category: item.Category,
			Ratio:    key,
		}
	}

	return sugg, diags
}

func itemSuggestion(item models.StatItem, amount int) *models.ItemSuggestion {
	return &models.ItemSuggestion{
		SKU:      item.SKU,
		Name:     item.Name,
		Category: item.Category,
		Amount:   amount,
	}
}

func maxRanked(ranking map[int]models.StatItem) (int, models.StatItem, bool) {
	var (
		found bool
		top   int
		item  models.StatItem
	)
	for value, candidate := range ranking {
		if !found || value > top {
			top, item, found = value, candidate, true
		}
	}
	return top, item, found
}

func minRanked(ranking map[int]models.StatItem) (int, models.StatItem, bool) {
	var (
		found  bool
		lowest int
		item   models.StatItem
	)
	for value, candidate := range ranking {
		if !found || value < lowest {
			lowest, item, found = value, candidate, true
		}
	}
	return lowest, item, found
}

// lastRankedRatio retourne la dernière entrée du classement "intervalle:stock",
// c'est-à-dire la plus grande selon CompareRatioKeys.
func lastRankedRatio(ranking map[string]models.StatItem) (string, models.StatItem, bool) {
	var (
		found bool
		top   string
		item  models.StatItem
	)
	for key, candidate := range ranking {
		if !found || CompareRatioKeys(key, top) > 0 {
			top, item, found = key, candidate, true
		}
	}
	return top, item, found
}

// CompareRatioKeys ordonne deux clés de réassort "intervalle:stock". Les deux
// composantes sont comparées numériquement : l'intervalle moyen entre ventes
// domine, le niveau de stock départage, tous deux croissants.
func CompareRatioKeys(a, b string) int {
	aInterval, aStock := splitRatioKey(a)
	bInterval, bStock := splitRatioKey(b)
	if aInterval != bInterval {
		return aInterval - bInterval
	}
	return aStock - bStock
}

func splitRatioKey(key string) (interval, stock int) {
	parts := strings.SplitN(key, ":", 2)
	interval, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		stock, _ = strconv.Atoi(parts[1])
	}
	return interval, stock
}

// wholeDaysBetween retourne le nombre de jours entiers entre deux dates,
// tronqué vers zéro.
func wholeDaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// averageDaysBetweenSales trie les dates de vente puis fait la moyenne entière
// des écarts en jours entiers entre dates consécutives.
func averageDaysBetweenSales(saleDates []time.Time) int {
	sorted := make([]time.Time, len(saleDates))
	copy(sorted, saleDates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	totalDays := 0
	for i := 0; i < len(sorted)-1; i++ {
		totalDays += wholeDaysBetween(sorted[i], sorted[i+1])
	}
	return totalDays / (len(sorted) - 1)
}
