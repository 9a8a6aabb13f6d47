package stats

import (
	"context"
	"fmt"
	"strconv"

	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
)

// ScyllaSource matérialise les projections StatItem depuis ScyllaDB :
// un scan des articles du commerce puis l'historique complet de chaque
// article, dans l'ordre d'enregistrement.
type ScyllaSource struct{}

func (ScyllaSource) FetchStatsData(ctx context.Context, businessID string) ([]models.StatItem, error) {
	session, err := database.GetBusinessesSession()
	if err != nil {
		return nil, fmt.Errorf("connexion ScyllaDB: %w", err)
	}

	iter := session.Query(
		`SELECT sku, name, category, stock FROM items WHERE business_id = ?`,
		businessID,
	).WithContext(ctx).Iter()

	items := []models.StatItem{}
	var sku, name, category string
	var stock int
	for iter.Scan(&sku, &name, &category, &stock) {
		items = append(items, models.StatItem{
			SKU:      sku,
			Name:     name,
			Category: category,
			Stock:    strconv.Itoa(stock),
		})
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scan des articles: %w", err)
	}

	for i := range items {
		updates, err := fetchStockUpdates(ctx, businessID, items[i].SKU)
		if err != nil {
			return nil, err
		}
		items[i].StockUpdates = updates
	}

	return items, nil
}

func fetchStockUpdates(ctx context.Context, businessID, itemSKU string) ([]models.StockUpdate, error) {
	session, err := database.GetBusinessesSession()
	if err != nil {
		return nil, fmt.Errorf("connexion ScyllaDB: %w", err)
	}

	iter := session.Query(
		`SELECT amount_changed, reason_for_change, date_time_added
		 FROM stock_updates WHERE business_id = ? AND item_sku = ?`,
		businessID, itemSKU,
	).WithContext(ctx).Iter()

	var updates []models.StockUpdate
	var update models.StockUpdate
	for iter.Scan(&update.AmountChanged, &update.ReasonForChange, &update.DateTimeAdded) {
		updates = append(updates, update)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("historique de stock de %s: %w", itemSKU, err)
	}

	return updates, nil
}
