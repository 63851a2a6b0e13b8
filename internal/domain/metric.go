package domain

import (
	"time"

	"github.com/google/uuid"
)

// Metric é uma linha de telemetria (clique de compra, visualização).
type Metric struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type        string    `gorm:"size:40;index"`
	ProductID   string    `gorm:"size:64;index"`
	ProductName string    `gorm:"size:180"`
	URL         string    `gorm:"size:255"`
	CreatedAt   time.Time
}

const (
	MetricClick    = "whatsapp_click"
	MetricPageView = "page_view"
)
