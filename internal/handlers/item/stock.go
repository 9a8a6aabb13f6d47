package item

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"instock_back_end/internal/cache"
	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
	"instock_back_end/internal/stats"
	"instock_back_end/internal/utils"
)

// Paliers de ventes cumulées déclenchant un jalon
var milestoneThresholds = []int{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

const defaultLowStockThreshold = 5

// CreateStockUpdate enregistre un évènement de stock immuable, met à
// jour le stock courant, publie l'évènement sur Redis et invalide le
// cache de statistiques.
func CreateStockUpdate(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")

	var input struct {
		AmountChanged   int    `json:"amountChanged"`
		ReasonForChange string `json:"reasonForChange"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.ReasonForChange == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amountChanged et reasonForChange requis"})
		return
	}

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var itemName string
	var currentStock int
	err = session.Query("SELECT name, stock FROM items WHERE business_id = ? AND sku = ?",
		businessID, sku).Scan(&itemName, &currentStock)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable"})
		return
	}

	newStock := currentStock + input.AmountChanged
	if newStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock insuffisant pour ce mouvement"})
		return
	}

	event := models.StockUpdate{
		AmountChanged:   input.AmountChanged,
		ReasonForChange: input.ReasonForChange,
		DateTimeAdded:   time.Now().UTC().Format(time.RFC3339),
	}

	err = session.Query(`INSERT INTO stock_updates (business_id, item_sku, event_id, amount_changed, reason_for_change, date_time_added)
		VALUES (?, ?, ?, ?, ?, ?)`,
		businessID, sku, gocql.TimeUUID(), event.AmountChanged, event.ReasonForChange, event.DateTimeAdded).Exec()
	if err != nil {
		log.Println("❌ Erreur insertion évènement de stock:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	err = session.Query("UPDATE items SET stock = ? WHERE business_id = ? AND sku = ?",
		newStock, businessID, sku).Exec()
	if err != nil {
		log.Println("❌ Erreur mise à jour du stock:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	ctx := c.Request.Context()
	cache.InvalidateStatsCache(ctx, businessID)
	publishStockEvent(ctx, businessID, sku, newStock, event)

	if event.ReasonForChange == stats.ReasonSale {
		checkMilestones(session, businessID, sku, itemName, event.AmountChanged)
	}

	if newStock <= lowStockThreshold() {
		go notifyLowStock(c.GetString("email"), itemName, newStock)
	}

	c.JSON(http.StatusCreated, gin.H{
		"stockUpdate": event,
		"stock":       newStock,
	})
}

// ListStockUpdates retourne l'historique de stock d'un article, du plus
// récent au plus ancien.
func ListStockUpdates(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	iter := session.Query(`SELECT amount_changed, reason_for_change, date_time_added
		FROM stock_updates WHERE business_id = ? AND item_sku = ?`, businessID, sku).Iter()

	updates := []models.StockUpdate{}
	var update models.StockUpdate
	for iter.Scan(&update.AmountChanged, &update.ReasonForChange, &update.DateTimeAdded) {
		updates = append(updates, update)
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture historique de stock:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stockUpdates": updates})
}

// publishStockEvent pousse l'évènement sur le canal Redis du commerce
// pour les clients WebSocket connectés.
func publishStockEvent(ctx context.Context, businessID, sku string, newStock int, event models.StockUpdate) {
	payload, err := json.Marshal(gin.H{
		"sku":         sku,
		"stock":       newStock,
		"stockUpdate": event,
	})
	if err != nil {
		return
	}

	if err := database.Redis.Publish(ctx, "stock:"+businessID, payload).Err(); err != nil {
		log.Println("⚠️ Erreur publication Redis:", err)
	}
}

// checkMilestones crée un jalon si les ventes cumulées de l'article
// viennent de franchir un palier.
func checkMilestones(session *gocql.Session, businessID, sku, itemName string, saleAmount int) {
	iter := session.Query(`SELECT amount_changed, reason_for_change
		FROM stock_updates WHERE business_id = ? AND item_sku = ?`, businessID, sku).Iter()

	totalSales := 0
	var amount int
	var reason string
	for iter.Scan(&amount, &reason) {
		if reason == stats.ReasonSale {
			if amount < 0 {
				amount = -amount
			}
			totalSales += amount
		}
	}
	if err := iter.Close(); err != nil {
		log.Println("⚠️ Erreur calcul des ventes cumulées:", err)
		return
	}

	if saleAmount < 0 {
		saleAmount = -saleAmount
	}
	previousTotal := totalSales - saleAmount

	var imageFilename string
	session.Query("SELECT image_filename FROM items WHERE business_id = ? AND sku = ?",
		businessID, sku).Scan(&imageFilename)

	for _, threshold := range milestoneThresholds {
		if previousTotal < threshold && totalSales >= threshold {
			err := session.Query(`INSERT INTO milestones (business_id, milestone_id, item_sku, item_name, image_filename, total_sales, date_time, display_milestone)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				businessID, gocql.TimeUUID(), sku, itemName, imageFilename,
				threshold, time.Now().UTC(), true).Exec()
			if err != nil {
				log.Println("⚠️ Erreur création jalon:", err)
				continue
			}
			log.Printf("🏆 Jalon atteint: %s a dépassé %d ventes", itemName, threshold)
		}
	}
}

func lowStockThreshold() int {
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if threshold, err := strconv.Atoi(v); err == nil {
			return threshold
		}
	}
	return defaultLowStockThreshold
}

func notifyLowStock(email, itemName string, stock int) {
	if email == "" {
		return
	}
	if err := utils.SendLowStockAlertEmail(email, itemName, stock); err != nil {
		log.Println("⚠️ Erreur envoi alerte stock faible:", err)
	}
}
