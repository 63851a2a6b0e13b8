package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"catalogozap/internal/domain"
	"catalogozap/internal/usecase"
)

// Server é o adaptador de apresentação: traduz HTTP para os usecases e
// devolve JSON. Nenhuma regra de negócio vive aqui.
type Server struct {
	mux     *http.ServeMux
	store   *usecase.CatalogStore
	cart    *usecase.CartAggregator
	metrics domain.MetricRepo
}

func New(store *usecase.CatalogStore, cart *usecase.CartAggregator, metrics domain.MetricRepo) http.Handler {
	s := &Server{mux: http.NewServeMux(), store: store, cart: cart, metrics: metrics}

	// resumo do carrinho republicado a cada mutação (badge/total)
	cart.OnChange(func(sum usecase.CartSummary) {
		log.Debug().Int("itens", sum.TotalItems).Float64("total", sum.TotalValue).Msg("carrinho atualizado")
	})

	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/api/catalogo", s.handleCatalog)
	s.mux.HandleFunc("/api/produtos", s.handleProducts)
	s.mux.HandleFunc("/api/filtros", s.handleFacets)

	s.mux.HandleFunc("/cart", s.handleCart)
	s.mux.HandleFunc("/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/cart/clear", s.handleCartClear)
	s.mux.HandleFunc("/cart/whatsapp", s.handleCartWhatsApp)

	s.mux.HandleFunc("/comprar", s.handleBuyNow)

	s.mux.HandleFunc("/admin/export/xlsx", s.handleExportXLSX)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{"status": "ok", "catalogo": s.store.Loaded()})
}

// engineFromQuery monta o estado de filtros a partir dos parâmetros da
// URL: q, categoria, marca e tamanho (repetíveis).
func (s *Server) engineFromQuery(r *http.Request) *usecase.FilterEngine {
	qv := r.URL.Query()
	eng := usecase.NewFilterEngine(s.store)
	eng.SetQuery(qv.Get("q"))
	for _, v := range qv["categoria"] {
		eng.SetFacet(usecase.FacetCategory, v, true)
	}
	for _, v := range qv["marca"] {
		eng.SetFacet(usecase.FacetBrand, v, true)
	}
	for _, v := range qv["tamanho"] {
		eng.SetFacet(usecase.FacetSize, v, true)
	}
	return eng
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	active := r.URL.Query().Get("secao")
	if active == "" {
		active = usecase.AllCategories
	}
	filtered, total := s.engineFromQuery(r).Apply()
	cfg := s.store.Config()
	sections := usecase.BuildSections(filtered, active, cfg)

	if s.metrics != nil {
		go func(url string) {
			if err := s.metrics.RecordPageView(context.Background(), url); err != nil {
				log.Debug().Err(err).Msg("métrica de visualização descartada")
			}
		}(r.URL.String())
	}

	// os rastreadores vão para a página junto com o catálogo; a taxa
	// de entrega é exibida no resumo do carrinho
	writeJSON(w, 200, map[string]any{
		"loja":        cfg.ShopName,
		"total":       total,
		"secoes":      sections,
		"taxaMotoboy": cfg.CourierFee,
		"rastreadores": map[string]string{
			"pixelFacebook": cfg.FacebookPixel,
			"gtmGoogle":     cfg.GoogleTag,
		},
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	filtered, total := s.engineFromQuery(r).Apply()
	writeJSON(w, 200, map[string]any{"total": total, "produtos": filtered})
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	cfg := s.store.Config()
	cats := cfg.MenuCategories
	if len(cats) == 0 {
		cats = s.store.DistinctCategories()
	}
	writeJSON(w, 200, map[string]any{
		"categorias": cats,
		"marcas":     s.store.DistinctBrands(),
		"tamanhos":   s.store.DistinctSizes(),
	})
}

// selection extrai (produto, tamanho, pagamento) do form. Pagamento
// vazio assume pix, o default do seletor do card.
func (s *Server) selection(r *http.Request) (domain.Product, string, domain.PaymentMethod, error) {
	if err := r.ParseForm(); err != nil {
		return domain.Product{}, "", "", fmt.Errorf("form: %w", err)
	}
	id := r.FormValue("produtoId")
	p, err := s.store.FindProduct(id)
	if err != nil {
		return domain.Product{}, "", "", err
	}
	payment := domain.PaymentMethod(r.FormValue("pagamento"))
	if payment == "" {
		payment = domain.PaymentPix
	}
	return p, r.FormValue("tamanho"), payment, nil
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, map[string]any{
			"itens":  s.cart.Items(),
			"resumo": s.cart.Summary(),
		})
	case http.MethodPost:
		p, size, payment, err := s.selection(r)
		if err != nil {
			writeSelectionError(w, err)
			return
		}
		if err := s.cart.AddItem(p, size, payment); err != nil {
			writeSelectionError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"status": "ok", "resumo": s.cart.Summary()})
	default:
		http.Error(w, "method", 405)
	}
}

func cartKeyFromForm(r *http.Request) (domain.CartKey, error) {
	if err := r.ParseForm(); err != nil {
		return domain.CartKey{}, err
	}
	return domain.CartKey{
		ProductID: r.FormValue("produtoId"),
		Size:      r.FormValue("tamanho"),
		Payment:   domain.PaymentMethod(r.FormValue("pagamento")),
	}, nil
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	key, err := cartKeyFromForm(r)
	if err != nil {
		http.Error(w, "form", 400)
		return
	}
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		http.Error(w, "qty", 400)
		return
	}
	s.cart.UpdateQuantity(key, qty)
	writeJSON(w, 200, map[string]any{"status": "ok", "resumo": s.cart.Summary()})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	key, err := cartKeyFromForm(r)
	if err != nil {
		http.Error(w, "form", 400)
		return
	}
	s.cart.RemoveItem(key)
	writeJSON(w, 200, map[string]any{"status": "ok", "resumo": s.cart.Summary()})
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	s.cart.Clear()
	writeJSON(w, 200, map[string]any{"status": "ok", "resumo": s.cart.Summary()})
}

// handleBuyNow é o caminho "comprar agora": compõe a mensagem do item,
// registra o clique (fire-and-forget) e entrega a URL do canal.
func (s *Server) handleBuyNow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	p, size, payment, err := s.selection(r)
	if err != nil {
		writeSelectionError(w, err)
		return
	}
	cfg := s.store.Config()
	msg, err := usecase.ComposeBuyNow(p, size, payment, cfg)
	if err != nil {
		writeSelectionError(w, err)
		return
	}
	s.recordClick(p)
	s.deliver(w, r, usecase.WhatsAppURL(cfg.WhatsApp, msg), msg)
}

func (s *Server) handleCartWhatsApp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	cfg := s.store.Config()
	msg := usecase.ComposeCart(s.cart.Items(), s.cart.TotalValue(), cfg.MessageTemplate)
	if msg == "" {
		writeJSON(w, 422, map[string]any{"erro": "carrinho vazio"})
		return
	}
	s.deliver(w, r, usecase.WhatsAppURL(cfg.WhatsApp, msg), msg)
}

// deliver devolve a URL composta: JSON para chamadas fetch, redirect
// para navegação direta.
func (s *Server) deliver(w http.ResponseWriter, r *http.Request, url, msg string) {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") || r.Header.Get("X-Requested-With") == "fetch" {
		writeJSON(w, 200, map[string]any{"url": url, "mensagem": msg})
		return
	}
	http.Redirect(w, r, url, 302)
}

func (s *Server) recordClick(p domain.Product) {
	if s.metrics == nil {
		return
	}
	go func() {
		ev := domain.ClickEvent{ProductID: p.ID, ProductName: p.Name}
		if err := s.metrics.RecordClick(context.Background(), ev); err != nil {
			log.Debug().Err(err).Str("produto", p.ID).Msg("métrica de clique descartada")
		}
	}()
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	f := excelize.NewFile()
	sheet := "Produtos"
	_ = f.SetSheetName("Sheet1", sheet)
	headers := []string{"ID", "Nome", "Marca", "Categoria", "Preço PIX", "Preço Cartão", "Tamanhos", "Ativo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range s.store.Products() {
		values := []any{p.ID, p.Name, p.Brand, p.Category, p.PricePix, p.PriceCard, strings.Join(p.Sizes, ","), p.Active}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="produtos.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("exportar xlsx")
	}
}

// writeSelectionError mapeia erros de validação e de capacidade para
// os códigos HTTP correspondentes.
func writeSelectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, 404, map[string]any{"erro": "produto não encontrado"})
	case errors.Is(err, domain.ErrCartFull):
		writeJSON(w, 409, map[string]any{"erro": err.Error()})
	case errors.Is(err, domain.ErrSizeRequired),
		errors.Is(err, domain.ErrSizeUnavailable),
		errors.Is(err, domain.ErrInvalidPayment):
		writeJSON(w, 422, map[string]any{"erro": err.Error()})
	default:
		http.Error(w, "form", 400)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
