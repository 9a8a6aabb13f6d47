package models

// StatItem est la projection d'un article utilisée uniquement par le moteur
// de statistiques : matérialisée à chaque requête, jamais persistée.
type StatItem struct {
	SKU          string        `json:"sku"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Stock        string        `json:"stock"` // niveau de stock encodé en texte
	StockUpdates []StockUpdate `json:"stockUpdates"`
}

type ItemSuggestion struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Amount   int    `json:"amount"`
}

type CategorySuggestion struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
}

type RestockSuggestion struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Ratio    string `json:"ratio"` // "jours moyens entre ventes:stock"
}

type NoSaleSuggestion struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Days     int    `json:"days"`
	Period   string `json:"period"` // "N days"
}

// Suggestions : chaque champ est optionnel, absent quand les données ne
// permettent pas de le calculer. Message porte la sentinelle "aucune donnée".
type Suggestions struct {
	BestSellingItem      *ItemSuggestion     `json:"bestSellingItem,omitempty"`
	WorstSellingItem     *ItemSuggestion     `json:"worstSellingItem,omitempty"`
	ItemToRestock        *RestockSuggestion  `json:"itemToRestock,omitempty"`
	LongestNoSales       *NoSaleSuggestion   `json:"longestNoSales,omitempty"`
	BestSellingCategory  *CategorySuggestion `json:"bestSellingCategory,omitempty"`
	WorstSellingCategory *CategorySuggestion `json:"worstSellingCategory,omitempty"`
	MostReturnedItem     *ItemSuggestion     `json:"mostReturnedItem,omitempty"`
	Message              string              `json:"message,omitempty"`
}

type AllStats struct {
	OverallPerformance map[string]int            `json:"overallPerformance"`
	CategoryBreakdown  map[string]map[string]int `json:"categoryBreakdown"`
	SalesByMonth       map[int]map[string]int    `json:"salesByMonth"`
	DeductionsByMonth  map[int]map[string]int    `json:"deductionsByMonth"`
	Suggestions        Suggestions               `json:"suggestions"`
}
