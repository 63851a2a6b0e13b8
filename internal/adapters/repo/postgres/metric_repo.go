package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalogozap/internal/domain"
)

// MetricRepo grava eventos de telemetria. Os chamadores engolem
// qualquer erro daqui; o fluxo principal nunca depende da gravação.
type MetricRepo struct{ db *gorm.DB }

func NewMetricRepo(db *gorm.DB) *MetricRepo { return &MetricRepo{db: db} }

func (r *MetricRepo) RecordClick(ctx context.Context, ev domain.ClickEvent) error {
	m := domain.Metric{
		ID:          uuid.New(),
		Type:        domain.MetricClick,
		ProductID:   ev.ProductID,
		ProductName: ev.ProductName,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *MetricRepo) RecordPageView(ctx context.Context, url string) error {
	m := domain.Metric{
		ID:   uuid.New(),
		Type: domain.MetricPageView,
		URL:  url,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}
