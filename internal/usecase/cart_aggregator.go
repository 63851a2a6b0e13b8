package usecase

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"catalogozap/internal/domain"
)

// CartSummary é o resumo republicado para a UI após cada mutação.
type CartSummary struct {
	TotalItems int     `json:"totalItens"`
	TotalValue float64 `json:"valorTotal"`
	Lines      int     `json:"linhas"`
}

// CartAggregator mantém as linhas do carrinho, no máximo uma por chave
// (produto, tamanho, pagamento). Toda mutação persiste o carrinho
// inteiro no store local e notifica o hook de UI antes de devolver. O
// mutex serializa as mutações: handlers HTTP rodam em goroutines
// concorrentes e cada mutação precisa completar, persistência incluída,
// antes da próxima.
type CartAggregator struct {
	mu       sync.Mutex
	store    domain.CartStore
	items    []domain.CartItem
	onChange func(CartSummary)
}

func NewCartAggregator(store domain.CartStore) *CartAggregator {
	c := &CartAggregator{store: store}
	c.load()
	return c
}

// OnChange registra o hook chamado após cada mutação (badge, total,
// lista). Um hook nil desliga a notificação.
func (c *CartAggregator) OnChange(fn func(CartSummary)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// load recarrega o carrinho persistido. Blob ausente, ilegível ou
// corrompido vira carrinho vazio, nunca erro.
func (c *CartAggregator) load() {
	if c.store == nil {
		return
	}
	items, err := c.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("falha ao carregar carrinho, iniciando vazio")
		c.items = nil
		return
	}
	c.items = items
}

func (c *CartAggregator) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.items); err != nil {
		// segue só em memória nesta sessão
		log.Warn().Err(err).Msg("falha ao persistir carrinho")
	}
}

// publish persiste e notifica; chamado com o mutex já tomado.
func (c *CartAggregator) publish() {
	c.persist()
	if c.onChange != nil {
		c.onChange(c.summary())
	}
}

func (c *CartAggregator) find(key domain.CartKey) int {
	for i := range c.items {
		if c.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// AddItem insere quantidade 1 para a chave, ou incrementa a linha já
// existente. Valida a seleção do card e o limite de linhas distintas;
// rejeição não muta nada.
func (c *CartAggregator) AddItem(p domain.Product, size string, payment domain.PaymentMethod) error {
	if err := ValidateSelection(p, size, payment); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := domain.CartKey{ProductID: p.ID, Size: size, Payment: payment}
	if i := c.find(key); i >= 0 {
		c.items[i].Quantity = clampQty(c.items[i].Quantity + 1)
		c.publish()
		return nil
	}
	if len(c.items) >= domain.MaxCartKeys {
		return domain.ErrCartFull
	}
	c.items = append(c.items, domain.CartItem{
		ProductID: p.ID,
		Size:      size,
		Payment:   payment,
		Name:      p.Name,
		Brand:     p.Brand,
		Image:     p.ImageURL,
		UnitPrice: payment.PriceFor(p),
		Quantity:  1,
		AddedAt:   time.Now().UnixMilli(),
	})
	c.publish()
	return nil
}

// UpdateQuantity fixa a quantidade da linha. Quantidade <= 0 remove a
// linha; acima do teto, satura em 10.
func (c *CartAggregator) UpdateQuantity(key domain.CartKey, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.find(key)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	} else {
		c.items[i].Quantity = clampQty(qty)
	}
	c.publish()
}

func (c *CartAggregator) RemoveItem(key domain.CartKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.find(key)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.publish()
}

func (c *CartAggregator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.publish()
}

// Items devolve as linhas em ordem de inserção.
func (c *CartAggregator) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems soma as quantidades de todas as linhas.
func (c *CartAggregator) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// TotalValue soma preço unitário vezes quantidade.
func (c *CartAggregator) TotalValue() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

func (c *CartAggregator) Summary() CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary()
}

// summary lê os totais; chamado com o mutex já tomado.
func (c *CartAggregator) summary() CartSummary {
	items := 0
	value := 0.0
	for _, it := range c.items {
		items += it.Quantity
		value += it.Subtotal()
	}
	return CartSummary{TotalItems: items, TotalValue: value, Lines: len(c.items)}
}

func clampQty(q int) int {
	if q < 1 {
		return 1
	}
	if q > domain.MaxItemQty {
		return domain.MaxItemQty
	}
	return q
}
