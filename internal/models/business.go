package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Business struct {
	ID          gocql.UUID `json:"businessId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     string     `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
}
