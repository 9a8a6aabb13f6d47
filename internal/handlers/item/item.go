package item

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
	"instock_back_end/internal/services"
	"instock_back_end/internal/utils"
)

const signedURLDuration = 15 * time.Minute

// List retourne tous les articles du commerce, avec URL signée pour
// chaque image.
func List(c *gin.Context) {
	businessID := c.Param("businessId")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	iter := session.Query(`SELECT sku, name, category, stock, image_filename
		FROM items WHERE business_id = ?`, businessID).Iter()

	items := []models.Item{}
	var item models.Item
	for iter.Scan(&item.SKU, &item.Name, &item.Category, &item.Stock, &item.ImageFilename) {
		item.BusinessID = businessID
		if item.ImageFilename != "" {
			signedURL, err := services.GenerateSignedURL(c.Request.Context(),
				database.ItemImagesBucket, item.ImageFilename, signedURLDuration)
			if err == nil {
				item.ImageURL = signedURL
			}
		}
		items = append(items, item)
		item = models.Item{}
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture items:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create ajoute un article. La requête est multipart : champs texte +
// image facultative, poussée vers MinIO puis indexée dans Elastic.
func Create(c *gin.Context) {
	businessID := c.Param("businessId")

	sku := c.PostForm("sku")
	name := c.PostForm("name")
	category := c.PostForm("category")
	stockStr := c.PostForm("stock")

	if sku == "" || name == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku, name et category requis"})
		return
	}

	stock := 0
	if stockStr != "" {
		parsed, err := strconv.Atoi(stockStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock invalide"})
			return
		}
		stock = parsed
	}

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// SKU et nom sont choisis par le commerçant, uniques au commerce
	var existing string
	err = session.Query("SELECT sku FROM items WHERE business_id = ? AND sku = ?",
		businessID, sku).Scan(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un article existe déjà avec ce SKU"})
		return
	}

	iter := session.Query("SELECT name FROM items WHERE business_id = ?", businessID).Iter()
	var existingName string
	for iter.Scan(&existingName) {
		if strings.EqualFold(existingName, name) {
			iter.Close()
			c.JSON(http.StatusConflict, gin.H{"error": "Un article existe déjà avec ce nom"})
			return
		}
	}
	iter.Close()

	imageFilename := ""
	if file, err := c.FormFile("image"); err == nil {
		if !utils.ValidateImageContentType(file.Header.Get("Content-Type")) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Format d'image non supporté"})
			return
		}
		imageFilename, err = services.UploadFile(c.Request.Context(), database.ItemImagesBucket, file)
		if err != nil {
			log.Println("❌ Erreur upload image:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
			return
		}
	}

	err = session.Query(`INSERT INTO items (business_id, sku, name, category, stock, image_filename)
		VALUES (?, ?, ?, ?, ?, ?)`,
		businessID, sku, name, category, stock, imageFilename).Exec()
	if err != nil {
		log.Println("❌ Erreur insertion article:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	item := models.Item{
		SKU:           sku,
		BusinessID:    businessID,
		Name:          name,
		Category:      category,
		Stock:         stock,
		ImageFilename: imageFilename,
	}

	services.IndexItem(item)

	log.Println("✅ Article créé:", name, "(", sku, ")")
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Get retourne un article par SKU
func Get(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var item models.Item
	item.SKU = sku
	item.BusinessID = businessID
	err = session.Query(`SELECT name, category, stock, image_filename
		FROM items WHERE business_id = ? AND sku = ?`, businessID, sku).Scan(
		&item.Name, &item.Category, &item.Stock, &item.ImageFilename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable"})
		return
	}

	if item.ImageFilename != "" {
		signedURL, err := services.GenerateSignedURL(c.Request.Context(),
			database.ItemImagesBucket, item.ImageFilename, signedURLDuration)
		if err == nil {
			item.ImageURL = signedURL
		}
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Delete supprime un article, son image et son document Elastic.
// L'historique de stock est conservé pour les statistiques passées.
func Delete(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var imageFilename string
	err = session.Query("SELECT image_filename FROM items WHERE business_id = ? AND sku = ?",
		businessID, sku).Scan(&imageFilename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable"})
		return
	}

	if err := session.Query("DELETE FROM items WHERE business_id = ? AND sku = ?",
		businessID, sku).Exec(); err != nil {
		log.Println("❌ Erreur suppression article:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if imageFilename != "" {
		if err := services.RemoveFile(c.Request.Context(), database.ItemImagesBucket, imageFilename); err != nil {
			log.Println("⚠️ Erreur suppression image:", err)
		}
	}
	services.RemoveItemFromIndex(businessID, sku)

	log.Println("🗑️ Article supprimé:", sku)
	c.JSON(http.StatusOK, gin.H{"message": "Article supprimé"})
}

// Categories retourne les catégories distinctes du commerce
func Categories(c *gin.Context) {
	businessID := c.Param("businessId")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	iter := session.Query("SELECT category FROM items WHERE business_id = ?", businessID).Iter()

	seen := make(map[string]bool)
	categories := []string{}
	var category string
	for iter.Scan(&category) {
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture catégories:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
