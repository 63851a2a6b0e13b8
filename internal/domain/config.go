package domain

// Config é o registro único de configuração da loja. Carregado uma vez
// por sessão; imutável depois do load.
type Config struct {
	ID              string   `gorm:"primaryKey;size:40" json:"-"`
	ShopName        string   `gorm:"size:140" json:"nomeLoja"`
	WhatsApp        string   `gorm:"size:20" json:"whatsapp"`
	MessageTemplate string   `gorm:"type:text" json:"mensagemPadrao"`
	MenuCategories  []string `gorm:"type:jsonb;serializer:json" json:"menuCategorias"`
	Installments    int      `gorm:"default:1" json:"parcelasSemJuros"`
	CourierFee      float64  `gorm:"type:decimal(12,2);default:0" json:"taxaMotoboy"`
	FacebookPixel   string   `gorm:"size:60" json:"pixelFacebook"`
	GoogleTag       string   `gorm:"size:60" json:"gtmGoogle"`
}

func (Config) TableName() string { return "config" }

// ConfigID é a chave do registro único de configuração.
const ConfigID = "loja"

// DefaultConfig é o fallback usado quando a leitura remota falha ou o
// registro não existe.
func DefaultConfig() Config {
	return Config{
		ID:              ConfigID,
		ShopName:        "Catálogo",
		WhatsApp:        "5511999999999",
		MessageTemplate: "Olá! Gostaria de fazer um pedido:\n\n*Produto:* {produto}\n*Marca:* {marca}\n*Tamanho:* {tamanho}\n*Pagamento:* {pagamento}\n*Valor:* R$ {valor}",
		MenuCategories:  []string{},
		Installments:    1,
	}
}
