package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogozap/internal/adapters/storage/localfs"
	"catalogozap/internal/domain"
	"catalogozap/internal/usecase"
)

type stubCatalogRepo struct {
	products []domain.Product
	cfg      domain.Config
}

func (s *stubCatalogRepo) FetchCatalog(ctx context.Context) ([]domain.Product, domain.Config, error) {
	return s.products, s.cfg, nil
}

type stubMetricRepo struct{ clicks chan domain.ClickEvent }

func (s *stubMetricRepo) RecordClick(ctx context.Context, ev domain.ClickEvent) error {
	s.clicks <- ev
	return nil
}

func (s *stubMetricRepo) RecordPageView(ctx context.Context, url string) error { return nil }

func newTestServer(t *testing.T) (http.Handler, *stubMetricRepo) {
	t.Helper()
	products := []domain.Product{
		{ID: "1", Name: "Tenis Runner", Brand: "A", Category: "Tenis", PricePix: 100, PriceCard: 110, Sizes: []string{"40", "41"}, Active: true},
		{ID: "2", Name: "Camisa Basica", Brand: "B", Category: "Camisa", PricePix: 50, PriceCard: 55, Sizes: []string{"M"}, Active: true},
	}
	cfg := domain.DefaultConfig()
	cfg.FacebookPixel = "FB-123"
	cfg.GoogleTag = "GTM-XYZ"
	cfg.CourierFee = 12
	store := usecase.NewCatalogStore(&stubCatalogRepo{products: products, cfg: cfg})
	store.Load(context.Background())

	cart := usecase.NewCartAggregator(localfs.New(t.TempDir()))
	metrics := &stubMetricRepo{clicks: make(chan domain.ClickEvent, 1)}
	return New(store, cart, metrics), metrics
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, h http.Handler, path string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCatalogEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	t.Run("catálogo inteiro em seções", func(t *testing.T) {
		body := getJSON(t, h, "/api/catalogo")
		assert.Equal(t, "Catálogo", body["loja"])
		assert.Equal(t, float64(2), body["total"])
		assert.Len(t, body["secoes"], 2)
	})

	t.Run("facets por query param", func(t *testing.T) {
		body := getJSON(t, h, "/api/produtos?marca=A")
		assert.Equal(t, float64(1), body["total"])

		body = getJSON(t, h, "/api/produtos?marca=A&tamanho=M")
		assert.Equal(t, float64(0), body["total"])
	})

	t.Run("seção ativa", func(t *testing.T) {
		body := getJSON(t, h, "/api/catalogo?secao=Camisa")
		secoes := body["secoes"].([]any)
		require.Len(t, secoes, 1)
	})

	t.Run("rastreadores e taxa de entrega acompanham o catálogo", func(t *testing.T) {
		body := getJSON(t, h, "/api/catalogo")
		assert.Equal(t, float64(12), body["taxaMotoboy"])
		rast := body["rastreadores"].(map[string]any)
		assert.Equal(t, "FB-123", rast["pixelFacebook"])
		assert.Equal(t, "GTM-XYZ", rast["gtmGoogle"])
	})

	t.Run("vocabulários de filtro", func(t *testing.T) {
		body := getJSON(t, h, "/api/filtros")
		assert.ElementsMatch(t, []any{"A", "B"}, body["marcas"])
		assert.ElementsMatch(t, []any{"M", "40", "41"}, body["tamanhos"])
	})
}

func TestCartEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	add := url.Values{"produtoId": {"1"}, "tamanho": {"40"}, "pagamento": {"pix"}}

	t.Run("adicionar exige tamanho", func(t *testing.T) {
		w := postForm(h, "/cart", url.Values{"produtoId": {"1"}})
		assert.Equal(t, 422, w.Code)
	})

	t.Run("adicionar e consultar", func(t *testing.T) {
		w := postForm(h, "/cart", add)
		require.Equal(t, 200, w.Code)
		w = postForm(h, "/cart", add)
		require.Equal(t, 200, w.Code)

		body := getJSON(t, h, "/cart")
		itens := body["itens"].([]any)
		require.Len(t, itens, 1)
		resumo := body["resumo"].(map[string]any)
		assert.Equal(t, float64(2), resumo["totalItens"])
		assert.Equal(t, float64(200), resumo["valorTotal"])
	})

	t.Run("update, remove e clear", func(t *testing.T) {
		upd := url.Values{"produtoId": {"1"}, "tamanho": {"40"}, "pagamento": {"pix"}, "qty": {"99"}}
		w := postForm(h, "/cart/update", upd)
		require.Equal(t, 200, w.Code)
		body := getJSON(t, h, "/cart")
		assert.Equal(t, float64(10), body["resumo"].(map[string]any)["totalItens"])

		w = postForm(h, "/cart/clear", url.Values{})
		require.Equal(t, 200, w.Code)
		body = getJSON(t, h, "/cart")
		assert.Equal(t, float64(0), body["resumo"].(map[string]any)["totalItens"])
	})

	t.Run("produto inexistente é 404", func(t *testing.T) {
		w := postForm(h, "/cart", url.Values{"produtoId": {"zzz"}, "tamanho": {"40"}})
		assert.Equal(t, 404, w.Code)
	})
}

func TestBuyNow(t *testing.T) {
	h, metrics := newTestServer(t)

	t.Run("compõe mensagem, registra clique e devolve a URL", func(t *testing.T) {
		form := url.Values{"produtoId": {"1"}, "tamanho": {"41"}, "pagamento": {"cartao"}}
		w := postForm(h, "/comprar", form)
		require.Equal(t, 200, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, strings.HasPrefix(body["url"], "https://wa.me/5511999999999?text="))
		assert.Contains(t, body["mensagem"], "Tenis Runner")
		assert.Contains(t, body["mensagem"], "Cartão")
		assert.Contains(t, body["mensagem"], "110,00")

		select {
		case ev := <-metrics.clicks:
			assert.Equal(t, "1", ev.ProductID)
		case <-time.After(time.Second):
			t.Fatal("clique não registrado")
		}
	})

	t.Run("sem tamanho aborta sem compor", func(t *testing.T) {
		w := postForm(h, "/comprar", url.Values{"produtoId": {"1"}})
		assert.Equal(t, 422, w.Code)
	})

	t.Run("navegação direta recebe redirect", func(t *testing.T) {
		form := url.Values{"produtoId": {"1"}, "tamanho": {"40"}}
		req := httptest.NewRequest(http.MethodPost, "/comprar", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, 302, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "wa.me")
		<-metrics.clicks
	})
}

func TestCartWhatsApp(t *testing.T) {
	h, _ := newTestServer(t)

	t.Run("carrinho vazio não envia", func(t *testing.T) {
		w := postForm(h, "/cart/whatsapp", url.Values{})
		assert.Equal(t, 422, w.Code)
	})

	t.Run("carrinho com itens compõe a listagem", func(t *testing.T) {
		postForm(h, "/cart", url.Values{"produtoId": {"1"}, "tamanho": {"40"}, "pagamento": {"pix"}})
		postForm(h, "/cart", url.Values{"produtoId": {"2"}, "tamanho": {"M"}, "pagamento": {"cartao"}})

		w := postForm(h, "/cart/whatsapp", url.Values{})
		require.Equal(t, 200, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body["mensagem"], "*ITENS DO CARRINHO:*")
		assert.Contains(t, body["mensagem"], "*TOTAL: R$ 155,00*")
	})
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)
	body := getJSON(t, h, "/healthz")
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["catalogo"])
}
