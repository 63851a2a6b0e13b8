package app

import (
	"context"
	"net/http"
	"os"

	"gorm.io/gorm"

	"catalogozap/internal/adapters/httpserver"
	"catalogozap/internal/adapters/repo/postgres"
	"catalogozap/internal/adapters/storage/localfs"
	"catalogozap/internal/domain"
	"catalogozap/internal/usecase"
)

type App struct {
	DB      *gorm.DB
	Store   *usecase.CatalogStore
	Cart    *usecase.CartAggregator
	Metrics domain.MetricRepo
}

// NewApp liga adaptadores e usecases. db pode ser nil: a aplicação
// sobe mesmo assim com config padrão e catálogo vazio.
func NewApp(db *gorm.DB) (*App, error) {
	var catalogRepo domain.CatalogRepo
	var metricRepo domain.MetricRepo
	if db != nil {
		catalogRepo = postgres.NewCatalogRepo(db)
		metricRepo = postgres.NewMetricRepo(db)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	_ = os.MkdirAll(dataDir, 0o755)
	cartStore := localfs.New(dataDir)

	app := &App{
		DB:      db,
		Store:   usecase.NewCatalogStore(catalogRepo),
		Cart:    usecase.NewCartAggregator(cartStore),
		Metrics: metricRepo,
	}
	return app, nil
}

// LoadCatalog popula o snapshot da sessão. Único ponto assíncrono do
// core; falha cai no fallback dentro do store.
func (a *App) LoadCatalog(ctx context.Context) {
	a.Store.Load(ctx)
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Store, a.Cart, a.Metrics)
}

// MigrateAndSeed prepara o schema do document store e semeia o
// registro de config e alguns produtos quando o banco está vazio.
func (a *App) MigrateAndSeed() error {
	if a.DB == nil {
		return nil
	}
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.Config{}, &domain.Metric{},
	); err != nil {
		return err
	}

	var cfgCount int64
	if err := a.DB.Model(&domain.Config{}).Count(&cfgCount).Error; err != nil {
		return err
	}
	if cfgCount == 0 {
		cfg := domain.DefaultConfig()
		if err := a.DB.Create(&cfg).Error; err != nil {
			return err
		}
	}

	var prodCount int64
	if err := a.DB.Model(&domain.Product{}).Count(&prodCount).Error; err != nil {
		return err
	}
	if prodCount == 0 {
		seedProducts(a.DB)
	}
	return nil
}

func seedProducts(db *gorm.DB) {
	prods := []domain.Product{
		{ID: "tenis-runner-42", Name: "Tênis Runner", Brand: "Nike", Category: "Tenis", Kind: domain.KindShoe, PricePix: 299.90, PriceCard: 329.90, Sizes: []string{"39", "40", "41", "42"}, Active: true},
		{ID: "tenis-street-pro", Name: "Tênis Street Pro", Brand: "Adidas", Category: "Tenis", Kind: domain.KindShoe, PricePix: 349.90, PriceCard: 379.90, Sizes: []string{"40", "41", "42", "43"}, Active: true},
		{ID: "camisa-classica", Name: "Camisa Clássica", Brand: "Lacoste", Category: "Camisa", Kind: domain.KindClothing, PricePix: 189.90, PriceCard: 199.90, Sizes: []string{"P", "M", "G", "GG"}, Active: true},
		{ID: "calca-jeans-slim", Name: "Calça Jeans Slim", Brand: "Levis", Category: "Calca", Kind: domain.KindPants, PricePix: 249.90, PriceCard: 269.90, Sizes: []string{"38", "40", "42"}, Active: true},
	}
	for _, p := range prods {
		db.Create(&p)
	}
}
