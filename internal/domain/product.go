package domain

import (
	"time"
)

// Kind define o domínio de tamanhos do produto (numeração de calçado,
// letras de roupa, numeração de calça).
type Kind string

const (
	KindShoe     Kind = "calcado"
	KindClothing Kind = "roupa"
	KindPants    Kind = "calca"
)

type Product struct {
	ID        string   `gorm:"primaryKey;size:64" json:"id"`
	Name      string   `gorm:"size:180" json:"nome"`
	Brand     string   `gorm:"size:100;index" json:"marca"`
	Category  string   `gorm:"size:100;index" json:"categoria"`
	Kind      Kind     `gorm:"type:varchar(20)" json:"tipo"`
	PricePix  float64  `gorm:"type:decimal(12,2)" json:"precoPix"`
	PriceCard float64  `gorm:"type:decimal(12,2)" json:"precoCartao"`
	Sizes     []string `gorm:"type:jsonb;serializer:json" json:"tamanhos"`
	ImageURL  string   `gorm:"size:255" json:"imagemUrl"`
	Active    bool     `gorm:"default:true;index" json:"ativo"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HasSize informa se o produto oferece o tamanho dado.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCard PaymentMethod = "cartao"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentPix || m == PaymentCard
}

// Label devolve o rótulo exibido na mensagem do pedido.
func (m PaymentMethod) Label() string {
	if m == PaymentCard {
		return "Cartão"
	}
	return "PIX"
}

// PriceFor devolve o preço do produto na forma de pagamento escolhida.
func (m PaymentMethod) PriceFor(p Product) float64 {
	if m == PaymentCard {
		return p.PriceCard
	}
	return p.PricePix
}
