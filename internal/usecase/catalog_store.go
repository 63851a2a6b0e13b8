package usecase

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"catalogozap/internal/domain"
)

// CatalogStore guarda o snapshot imutável de produtos e configuração
// da sessão. É populado uma única vez via Load; depois disso só expõe
// consultas derivadas, sem tocar a fonte.
type CatalogStore struct {
	repo domain.CatalogRepo

	products []domain.Product
	config   domain.Config
	loaded   bool
}

func NewCatalogStore(repo domain.CatalogRepo) *CatalogStore {
	return &CatalogStore{repo: repo, config: domain.DefaultConfig()}
}

// Load busca produtos e config na fonte externa. Falha nunca sobe ao
// chamador: o store fica com a config padrão e catálogo vazio.
func (s *CatalogStore) Load(ctx context.Context) {
	if s.repo == nil {
		log.Warn().Msg("catálogo sem fonte configurada, usando padrão")
		s.products = nil
		s.config = domain.DefaultConfig()
		s.loaded = true
		return
	}
	products, cfg, err := s.repo.FetchCatalog(ctx)
	if err != nil {
		log.Error().Err(err).Msg("falha ao carregar catálogo, usando padrão")
		s.products = nil
		s.config = domain.DefaultConfig()
		s.loaded = true
		return
	}
	s.products = products
	s.config = cfg
	s.loaded = true
	log.Info().Int("produtos", len(products)).Str("loja", cfg.ShopName).Msg("catálogo carregado")
}

func (s *CatalogStore) Loaded() bool { return s.loaded }

// Products devolve uma cópia do snapshot em ordem de catálogo. Sizes
// também é copiado: mutar o retorno nunca alcança o snapshot.
func (s *CatalogStore) Products() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	for i := range out {
		out[i].Sizes = append([]string{}, out[i].Sizes...)
	}
	return out
}

func (s *CatalogStore) Config() domain.Config { return s.config }

// DistinctBrands devolve as marcas do snapshot, sem repetição,
// ordenadas alfabeticamente.
func (s *CatalogStore) DistinctBrands() []string {
	seen := map[string]struct{}{}
	brands := []string{}
	for _, p := range s.products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands
}

// DistinctCategories devolve as categorias do snapshot, sem repetição,
// ordenadas alfabeticamente. Produtos sem categoria não entram.
func (s *CatalogStore) DistinctCategories() []string {
	seen := map[string]struct{}{}
	cats := []string{}
	for _, p := range s.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats
}

// Ordem canônica de tamanhos de letra. Tamanhos fora da tabela vão
// depois, na ordem em que aparecem no catálogo.
var sizeOrder = map[string]int{
	"PP": 0, "P": 1, "M": 2, "G": 3, "GG": 4, "XG": 5,
}

// DistinctSizes devolve todos os tamanhos oferecidos no snapshot.
func (s *CatalogStore) DistinctSizes() []string {
	seen := map[string]struct{}{}
	known := []string{}
	unknown := []string{}
	for _, p := range s.products {
		for _, t := range p.Sizes {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			if _, ok := sizeOrder[t]; ok {
				known = append(known, t)
			} else {
				unknown = append(unknown, t)
			}
		}
	}
	sort.Slice(known, func(i, j int) bool { return sizeOrder[known[i]] < sizeOrder[known[j]] })
	return append(known, unknown...)
}

// FindProduct localiza um produto do snapshot pelo id. Como em
// Products, o retorno não compartilha Sizes com o snapshot.
func (s *CatalogStore) FindProduct(id string) (domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			p.Sizes = append([]string{}, p.Sizes...)
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}
