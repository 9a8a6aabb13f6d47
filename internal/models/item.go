package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Item struct {
	SKU           string `json:"sku"`
	BusinessID    string `json:"businessId"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Stock         int    `json:"stock"`
	ImageFilename string `json:"imageFilename,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

// StockUpdate est un évènement de stock immuable : une fois enregistré il
// n'est jamais modifié ni supprimé.
type StockUpdate struct {
	AmountChanged   int    `json:"amountChanged"`
	ReasonForChange string `json:"reasonForChange"`
	DateTimeAdded   string `json:"dateTimeAdded"` // RFC 3339
}

type ItemOrder struct {
	OrderID       gocql.UUID `json:"orderId"`
	BusinessID    string     `json:"businessId"`
	ItemSKU       string     `json:"itemSku"`
	AmountOrdered int        `json:"amountOrdered"`
	DateTimeAdded time.Time  `json:"dateTimeAdded"`
}

type ItemConnection struct {
	BusinessID      string `json:"businessId"`
	ItemSKU         string `json:"itemSku"`
	PlatformName    string `json:"platformName"`
	PlatformItemSKU string `json:"platformItemSku"`
}
