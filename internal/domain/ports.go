package domain

import "context"

// CatalogRepo é a fonte externa de catálogo (document store). Devolve
// apenas produtos ativos, já ordenados, e o registro de configuração.
type CatalogRepo interface {
	FetchCatalog(ctx context.Context) ([]Product, Config, error)
}

// CartStore é o armazenamento local durável do carrinho. Leitura ou
// gravação podem falhar sem derrubar o fluxo: o chamador decide o
// fallback.
type CartStore interface {
	Load() ([]CartItem, error)
	Save(items []CartItem) error
}

// ClickEvent é a métrica registrada quando o visitante abre o canal de
// mensagem a partir de um produto.
type ClickEvent struct {
	ProductID   string
	ProductName string
}

// MetricRepo recebe eventos de telemetria. Falhas são engolidas pelos
// chamadores; nenhum erro aqui afeta o fluxo principal.
type MetricRepo interface {
	RecordClick(ctx context.Context, ev ClickEvent) error
	RecordPageView(ctx context.Context, url string) error
}
