package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogozap/internal/domain"
)

func ids(products []domain.Product) []string {
	out := []string{}
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterEngine_Apply(t *testing.T) {
	store := loadedStore(sampleCatalog(), domain.DefaultConfig())

	t.Run("sem filtros devolve o catálogo inteiro", func(t *testing.T) {
		eng := NewFilterEngine(store)
		out, total := eng.Apply()
		assert.Equal(t, 4, total)
		assert.Equal(t, []string{"1", "2", "3", "4"}, ids(out))
	})

	t.Run("marca restringe, depois tamanho zera", func(t *testing.T) {
		eng := NewFilterEngine(store)
		eng.SetFacet(FacetBrand, "A", true)
		out, _ := eng.Apply()
		assert.Equal(t, []string{"1", "4"}, ids(out))

		// A não tem tamanho M: conjunção entre facets
		eng.SetFacet(FacetSize, "M", true)
		out, total := eng.Apply()
		assert.Empty(t, out)
		assert.Zero(t, total)
	})

	t.Run("OR dentro do facet", func(t *testing.T) {
		eng := NewFilterEngine(store)
		eng.SetFacet(FacetBrand, "A", true)
		eng.SetFacet(FacetBrand, "B", true)
		out, _ := eng.Apply()
		assert.Len(t, out, 4)
	})

	t.Run("busca livre case-folded sobre nome, marca e categoria", func(t *testing.T) {
		eng := NewFilterEngine(store)
		eng.SetQuery("TENIS")
		out, _ := eng.Apply()
		assert.Equal(t, []string{"1", "3"}, ids(out))

		eng.SetQuery("camisa")
		out, _ = eng.Apply()
		assert.Equal(t, []string{"2"}, ids(out))
	})

	t.Run("categoria ignora produtos sem categoria", func(t *testing.T) {
		eng := NewFilterEngine(store)
		eng.SetFacet(FacetCategory, "Tenis", true)
		out, _ := eng.Apply()
		assert.Equal(t, []string{"1", "3"}, ids(out))
	})

	t.Run("desligar o facet devolve o valor ao conjunto", func(t *testing.T) {
		eng := NewFilterEngine(store)
		eng.SetFacet(FacetBrand, "A", true)
		eng.SetFacet(FacetBrand, "A", false)
		out, _ := eng.Apply()
		assert.Len(t, out, 4)
	})

	t.Run("clear zera os quatro facets", func(t *testing.T) {
		eng := NewFilterEngine(store)
		eng.SetQuery("tenis")
		eng.SetFacet(FacetBrand, "A", true)
		eng.SetFacet(FacetSize, "40", true)
		eng.SetFacet(FacetCategory, "Tenis", true)
		eng.Clear()
		assert.True(t, eng.State().Empty())
		out, _ := eng.Apply()
		assert.Len(t, out, 4)
	})
}

func TestApplyFilter_Properties(t *testing.T) {
	catalog := sampleCatalog()
	state := NewFilterState()
	state.Query = "tenis"
	state.Sizes["41"] = struct{}{}

	t.Run("idempotente", func(t *testing.T) {
		once := ApplyFilter(state, catalog)
		twice := ApplyFilter(state, once)
		assert.Equal(t, once, twice)
	})

	t.Run("preserva a ordem do catálogo", func(t *testing.T) {
		out := ApplyFilter(state, catalog)
		require.NotEmpty(t, out)
		last := -1
		pos := map[string]int{}
		for i, p := range catalog {
			pos[p.ID] = i
		}
		for _, p := range out {
			assert.Greater(t, pos[p.ID], last)
			last = pos[p.ID]
		}
	})

	t.Run("conjuntivo: quem saiu falha em algum facet", func(t *testing.T) {
		out := ApplyFilter(state, catalog)
		in := map[string]struct{}{}
		for _, p := range out {
			in[p.ID] = struct{}{}
			assert.True(t, p.HasSize("41"))
		}
		for _, p := range catalog {
			if _, ok := in[p.ID]; ok {
				continue
			}
			assert.False(t, matchesQuery(p, "tenis") && anySizeIn(p.Sizes, state.Sizes))
		}
	})
}
