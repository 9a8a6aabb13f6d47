package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Milestone struct {
	MilestoneID      gocql.UUID `json:"milestoneId"`
	BusinessID       string     `json:"businessId"`
	ItemSKU          string     `json:"itemSku"`
	ItemName         string     `json:"itemName"`
	ImageFilename    string     `json:"-"`
	ImageURL         string     `json:"imageUrl,omitempty"`
	TotalSales       int        `json:"totalSales"`
	DateTime         time.Time  `json:"dateTime"`
	DisplayMilestone bool       `json:"displayMilestone"`
}
