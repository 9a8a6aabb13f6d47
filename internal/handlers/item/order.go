package item

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"instock_back_end/internal/cache"
	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
	"instock_back_end/internal/stats"
)

// CreateOrder enregistre une commande de réapprovisionnement : une ligne
// de commande plus un évènement de stock "Order" qui crédite l'article.
func CreateOrder(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")

	var input struct {
		AmountOrdered int `json:"amountOrdered"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.AmountOrdered <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amountOrdered doit être positif"})
		return
	}

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var name string
	var currentStock int
	if err := session.Query("SELECT name, stock FROM items WHERE business_id = ? AND sku = ?",
		businessID, sku).Scan(&name, &currentStock); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable"})
		return
	}

	order := models.ItemOrder{
		OrderID:       gocql.TimeUUID(),
		BusinessID:    businessID,
		ItemSKU:       sku,
		AmountOrdered: input.AmountOrdered,
		DateTimeAdded: time.Now().UTC(),
	}

	err = session.Query(`INSERT INTO item_orders (business_id, order_id, item_sku, amount_ordered, date_time_added)
		VALUES (?, ?, ?, ?, ?)`,
		order.BusinessID, order.OrderID, order.ItemSKU, order.AmountOrdered, order.DateTimeAdded).Exec()
	if err != nil {
		log.Println("❌ Erreur insertion commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	event := models.StockUpdate{
		AmountChanged:   input.AmountOrdered,
		ReasonForChange: stats.ReasonOrder,
		DateTimeAdded:   order.DateTimeAdded.Format(time.RFC3339),
	}
	err = session.Query(`INSERT INTO stock_updates (business_id, item_sku, event_id, amount_changed, reason_for_change, date_time_added)
		VALUES (?, ?, ?, ?, ?, ?)`,
		businessID, sku, gocql.TimeUUID(), event.AmountChanged, event.ReasonForChange, event.DateTimeAdded).Exec()
	if err != nil {
		log.Println("❌ Erreur insertion évènement Order:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	newStock := currentStock + input.AmountOrdered
	if err := session.Query("UPDATE items SET stock = ? WHERE business_id = ? AND sku = ?",
		newStock, businessID, sku).Exec(); err != nil {
		log.Println("❌ Erreur mise à jour du stock:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	ctx := c.Request.Context()
	cache.InvalidateStatsCache(ctx, businessID)
	publishStockEvent(ctx, businessID, sku, newStock, event)

	log.Println("📦 Commande créée:", sku, "x", input.AmountOrdered)
	c.JSON(http.StatusCreated, gin.H{"order": order, "stock": newStock})
}

// ListOrders retourne les commandes de réapprovisionnement du commerce
func ListOrders(c *gin.Context) {
	businessID := c.Param("businessId")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	iter := session.Query(`SELECT order_id, item_sku, amount_ordered, date_time_added
		FROM item_orders WHERE business_id = ?`, businessID).Iter()

	orders := []models.ItemOrder{}
	var order models.ItemOrder
	for iter.Scan(&order.OrderID, &order.ItemSKU, &order.AmountOrdered, &order.DateTimeAdded) {
		order.BusinessID = businessID
		orders = append(orders, order)
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
