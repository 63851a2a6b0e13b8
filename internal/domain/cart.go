package domain

// CartKey identifica uma linha do carrinho: produto + tamanho + forma
// de pagamento. No máximo uma linha existe por chave.
type CartKey struct {
	ProductID string
	Size      string
	Payment   PaymentMethod
}

const (
	// MaxCartKeys limita o número de linhas distintas no carrinho.
	MaxCartKeys = 50
	// MaxItemQty limita a quantidade por linha.
	MaxItemQty = 10
)

// CartItem é uma linha do carrinho com campos denormalizados para
// exibição. As tags JSON definem o formato persistido no store local.
type CartItem struct {
	ProductID string        `json:"productId"`
	Size      string        `json:"variantLabel"`
	Payment   PaymentMethod `json:"paymentMethod"`
	Name      string        `json:"name"`
	Brand     string        `json:"brand"`
	Image     string        `json:"image"`
	UnitPrice float64       `json:"unitPrice"`
	Quantity  int           `json:"quantity"`
	AddedAt   int64         `json:"insertedAtEpochMs"`
}

func (it CartItem) Key() CartKey {
	return CartKey{ProductID: it.ProductID, Size: it.Size, Payment: it.Payment}
}

// Subtotal é preço unitário vezes quantidade.
func (it CartItem) Subtotal() float64 {
	return it.UnitPrice * float64(it.Quantity)
}
