package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catalogozap/internal/domain"
)

// CatalogRepo lê produtos e configuração do document store. Só
// leitura: este core nunca muta o catálogo de origem.
type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// FetchCatalog devolve os produtos ativos em ordem de catálogo (nome)
// e o registro único de configuração. Config ausente cai no padrão;
// erro de leitura de produtos sobe para o chamador decidir o fallback.
func (r *CatalogRepo) FetchCatalog(ctx context.Context) ([]domain.Product, domain.Config, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name asc").
		Find(&products).Error; err != nil {
		return nil, domain.DefaultConfig(), fmt.Errorf("buscar produtos: %w", err)
	}

	cfg := domain.DefaultConfig()
	var rec domain.Config
	err := r.db.WithContext(ctx).First(&rec, "id = ?", domain.ConfigID).Error
	switch {
	case err == nil:
		cfg = rec
	case errors.Is(err, gorm.ErrRecordNotFound):
		// sem registro: mantém o padrão
	default:
		return nil, domain.DefaultConfig(), fmt.Errorf("buscar config: %w", err)
	}
	return products, cfg, nil
}
