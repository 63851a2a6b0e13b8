package usecase

import (
	"fmt"
	"strings"

	"catalogozap/internal/domain"
)

const (
	// AllCategories é o sentinela de seção ativa "mostrar tudo".
	AllCategories = "todas"
	// Uncategorized é o balde de produtos sem categoria.
	Uncategorized = "Sem categoria"
)

// PaymentOption é uma opção do seletor de pagamento do card.
type PaymentOption struct {
	Value   domain.PaymentMethod `json:"valor"`
	Label   string               `json:"rotulo"`
	Price   string               `json:"preco"`
	Default bool                 `json:"padrao"`
}

// ProductCard é a unidade renderizável de produto: preços formatados,
// seletor de tamanho (sem default) e de pagamento (default pix).
type ProductCard struct {
	ID           string          `json:"id"`
	Name         string          `json:"nome"`
	Brand        string          `json:"marca"`
	ImageURL     string          `json:"imagemUrl"`
	PricePix     string          `json:"precoPix"`
	PriceCard    string          `json:"precoCartao"`
	Installments string          `json:"parcelas,omitempty"`
	Sizes        []string        `json:"tamanhos"`
	Payments     []PaymentOption `json:"pagamentos"`
}

// Section é um bloco de catálogo de uma categoria.
type Section struct {
	Category string        `json:"categoria"`
	Products []ProductCard `json:"produtos"`
}

// BuildSections agrupa a sequência filtrada por categoria e devolve as
// seções na ordem de exibição. A re-filtragem substitui a saída por
// inteiro; não há diff incremental.
//
// Ordem das seções: Config.MenuCategories restrito às categorias
// presentes; se o menu estiver vazio, ordem de primeira aparição na
// sequência filtrada.
func BuildSections(products []domain.Product, active string, cfg domain.Config) []Section {
	groups := map[string][]domain.Product{}
	order := []string{}
	for _, p := range products {
		cat := p.Category
		if cat == "" {
			cat = Uncategorized
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], p)
	}

	if len(cfg.MenuCategories) > 0 {
		menu := []string{}
		inMenu := map[string]struct{}{}
		for _, cat := range cfg.MenuCategories {
			if _, ok := groups[cat]; ok {
				menu = append(menu, cat)
				inMenu[cat] = struct{}{}
			}
		}
		// categorias fora do menu mantêm a ordem de aparição, no fim
		for _, cat := range order {
			if _, ok := inMenu[cat]; !ok {
				menu = append(menu, cat)
			}
		}
		order = menu
	}

	sections := []Section{}
	for _, cat := range order {
		if active != "" && active != AllCategories && cat != active {
			continue
		}
		cards := make([]ProductCard, 0, len(groups[cat]))
		for _, p := range groups[cat] {
			cards = append(cards, BuildCard(p, cfg))
		}
		sections = append(sections, Section{Category: cat, Products: cards})
	}
	return sections
}

// BuildCard monta a visão renderizável de um produto.
func BuildCard(p domain.Product, cfg domain.Config) ProductCard {
	card := ProductCard{
		ID:        p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		ImageURL:  p.ImageURL,
		PricePix:  FormatPrice(p.PricePix),
		PriceCard: FormatPrice(p.PriceCard),
		Sizes:     append([]string{}, p.Sizes...),
		Payments: []PaymentOption{
			{Value: domain.PaymentPix, Label: domain.PaymentPix.Label(), Price: FormatPrice(p.PricePix), Default: true},
			{Value: domain.PaymentCard, Label: domain.PaymentCard.Label(), Price: FormatPrice(p.PriceCard)},
		},
	}
	if cfg.Installments > 1 {
		card.Installments = fmt.Sprintf("ou %dx sem juros", cfg.Installments)
	}
	return card
}

// ValidateSelection aplica a regra dos botões do card: comprar ou
// adicionar ao carrinho exige tamanho selecionado e oferecido pelo
// produto, e uma forma de pagamento conhecida. Nada é mutado em caso
// de erro.
func ValidateSelection(p domain.Product, size string, payment domain.PaymentMethod) error {
	if strings.TrimSpace(size) == "" || len(p.Sizes) == 0 {
		return domain.ErrSizeRequired
	}
	if !p.HasSize(size) {
		return domain.ErrSizeUnavailable
	}
	if !payment.Valid() {
		return domain.ErrInvalidPayment
	}
	return nil
}
