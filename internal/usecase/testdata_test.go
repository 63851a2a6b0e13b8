package usecase

import (
	"context"

	"catalogozap/internal/domain"
)

type fakeCatalogRepo struct {
	products []domain.Product
	cfg      domain.Config
	err      error
}

func (f *fakeCatalogRepo) FetchCatalog(ctx context.Context) ([]domain.Product, domain.Config, error) {
	if f.err != nil {
		return nil, domain.DefaultConfig(), f.err
	}
	return f.products, f.cfg, nil
}

type memCartStore struct {
	items   []domain.CartItem
	saves   int
	saveErr error
	loadErr error
}

func (m *memCartStore) Load() ([]domain.CartItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items, nil
}

func (m *memCartStore) Save(items []domain.CartItem) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.items = append([]domain.CartItem{}, items...)
	return nil
}

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Tenis Runner", Brand: "A", Category: "Tenis", Kind: domain.KindShoe, PricePix: 100, PriceCard: 110, Sizes: []string{"40", "41"}, Active: true},
		{ID: "2", Name: "Camisa Basica", Brand: "B", Category: "Camisa", Kind: domain.KindClothing, PricePix: 50, PriceCard: 55, Sizes: []string{"M"}, Active: true},
		{ID: "3", Name: "Tenis Street", Brand: "B", Category: "Tenis", Kind: domain.KindShoe, PricePix: 200, PriceCard: 220, Sizes: []string{"41", "42"}, Active: true},
		{ID: "4", Name: "Boné Liso", Brand: "A", Category: "", PricePix: 30, PriceCard: 33, Sizes: []string{"U"}, Active: true},
	}
}

func loadedStore(products []domain.Product, cfg domain.Config) *CatalogStore {
	cfg.ID = domain.ConfigID
	s := NewCatalogStore(&fakeCatalogRepo{products: products, cfg: cfg})
	s.Load(context.Background())
	return s
}
