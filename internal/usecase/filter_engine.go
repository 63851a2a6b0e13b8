package usecase

import (
	"strings"

	"catalogozap/internal/domain"
)

// FacetKind nomeia uma dimensão de filtro.
type FacetKind string

const (
	FacetCategory FacetKind = "categoria"
	FacetBrand    FacetKind = "marca"
	FacetSize     FacetKind = "tamanho"
)

// FilterState são as quatro seleções independentes de filtro. Conjunto
// vazio = sem restrição naquela dimensão.
type FilterState struct {
	Query      string
	Categories map[string]struct{}
	Brands     map[string]struct{}
	Sizes      map[string]struct{}
}

func NewFilterState() FilterState {
	return FilterState{
		Categories: map[string]struct{}{},
		Brands:     map[string]struct{}{},
		Sizes:      map[string]struct{}{},
	}
}

func (f FilterState) set(kind FacetKind) map[string]struct{} {
	switch kind {
	case FacetCategory:
		return f.Categories
	case FacetBrand:
		return f.Brands
	case FacetSize:
		return f.Sizes
	}
	return nil
}

// Empty informa se nenhum facet está ativo.
func (f FilterState) Empty() bool {
	return f.Query == "" && len(f.Categories) == 0 && len(f.Brands) == 0 && len(f.Sizes) == 0
}

// FilterEngine mantém o estado de filtros sobre um snapshot do
// catálogo. Cada mutação recomputa a visão filtrada. Só computação em
// memória: nada de rede ou storage, seguro de chamar a cada tecla.
type FilterEngine struct {
	store    *CatalogStore
	state    FilterState
	filtered []domain.Product
}

func NewFilterEngine(store *CatalogStore) *FilterEngine {
	e := &FilterEngine{store: store, state: NewFilterState()}
	e.refresh()
	return e
}

// SetQuery substitui o termo de busca livre.
func (e *FilterEngine) SetQuery(text string) {
	e.state.Query = text
	e.refresh()
}

// SetFacet liga ou desliga um valor no conjunto do facet dado.
func (e *FilterEngine) SetFacet(kind FacetKind, value string, enabled bool) {
	set := e.state.set(kind)
	if set == nil || value == "" {
		return
	}
	if enabled {
		set[value] = struct{}{}
	} else {
		delete(set, value)
	}
	e.refresh()
}

// Clear zera os quatro facets sem recarregar o catálogo.
func (e *FilterEngine) Clear() {
	e.state = NewFilterState()
	e.refresh()
}

func (e *FilterEngine) State() FilterState { return e.state }

func (e *FilterEngine) refresh() {
	e.filtered = ApplyFilter(e.state, e.store.Products())
}

// Apply devolve a sequência filtrada corrente, preservando a ordem do
// catálogo, e a contagem.
func (e *FilterEngine) Apply() ([]domain.Product, int) {
	out := make([]domain.Product, len(e.filtered))
	copy(out, e.filtered)
	return out, len(out)
}

// ApplyFilter é o match puro: AND entre facets, OR dentro de cada um.
// A busca livre compara substring case-folded contra nome, marca e
// categoria.
func ApplyFilter(f FilterState, products []domain.Product) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := []domain.Product{}
	for _, p := range products {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if len(f.Categories) > 0 {
			if p.Category == "" {
				continue
			}
			if _, ok := f.Categories[p.Category]; !ok {
				continue
			}
		}
		if len(f.Brands) > 0 {
			if _, ok := f.Brands[p.Brand]; !ok {
				continue
			}
		}
		if len(f.Sizes) > 0 && !anySizeIn(p.Sizes, f.Sizes) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		(p.Category != "" && strings.Contains(strings.ToLower(p.Category), query))
}

func anySizeIn(sizes []string, set map[string]struct{}) bool {
	for _, s := range sizes {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
