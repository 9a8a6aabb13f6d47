package item

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
)

// CreateConnection lie un article à son équivalent sur une plateforme
// externe (Shopify, Amazon...). Le nom de plateforme est normalisé en
// minuscules.
func CreateConnection(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")

	var input struct {
		PlatformName    string `json:"platformName"`
		PlatformItemSKU string `json:"platformItemSku"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.PlatformName == "" || input.PlatformItemSKU == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "platformName et platformItemSku requis"})
		return
	}

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var name string
	if err := session.Query("SELECT name FROM items WHERE business_id = ? AND sku = ?",
		businessID, sku).Scan(&name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable"})
		return
	}

	connection := models.ItemConnection{
		BusinessID:      businessID,
		ItemSKU:         sku,
		PlatformName:    strings.ToLower(input.PlatformName),
		PlatformItemSKU: input.PlatformItemSKU,
	}

	err = session.Query(`INSERT INTO item_connections (business_id, item_sku, platform_name, platform_item_sku)
		VALUES (?, ?, ?, ?)`,
		connection.BusinessID, connection.ItemSKU, connection.PlatformName, connection.PlatformItemSKU).Exec()
	if err != nil {
		log.Println("❌ Erreur insertion connexion plateforme:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"connection": connection})
}

// ListConnections retourne les connexions plateforme d'un article
func ListConnections(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	iter := session.Query(`SELECT platform_name, platform_item_sku
		FROM item_connections WHERE business_id = ? AND item_sku = ?`, businessID, sku).Iter()

	connections := []models.ItemConnection{}
	var connection models.ItemConnection
	for iter.Scan(&connection.PlatformName, &connection.PlatformItemSKU) {
		connection.BusinessID = businessID
		connection.ItemSKU = sku
		connections = append(connections, connection)
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture connexions:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": connections})
}

// DeleteConnection supprime la connexion d'un article à une plateforme
func DeleteConnection(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")
	platform := strings.ToLower(c.Param("platform"))

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	err = session.Query(`DELETE FROM item_connections WHERE business_id = ? AND item_sku = ? AND platform_name = ?`,
		businessID, sku, platform).Exec()
	if err != nil {
		log.Println("❌ Erreur suppression connexion:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connexion supprimée"})
}
