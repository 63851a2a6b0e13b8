package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"catalogozap/internal/domain"
)

// Placeholders reconhecidos no template de mensagem da loja.
var placeholders = []string{"{produto}", "{marca}", "{tamanho}", "{pagamento}", "{valor}"}

// FormatPrice formata um preço com duas casas e vírgula decimal
// (199.9 -> "199,90").
func FormatPrice(v float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.2f", v), ".", ",")
}

// ComposeSingle substitui os placeholders nomeados do template para o
// caminho "comprar agora". Placeholders desconhecidos ficam como
// estão, sem erro.
func ComposeSingle(p domain.Product, size string, payment domain.PaymentMethod, template string) string {
	r := strings.NewReplacer(
		"{produto}", p.Name,
		"{marca}", p.Brand,
		"{tamanho}", size,
		"{pagamento}", payment.Label(),
		"{valor}", FormatPrice(payment.PriceFor(p)),
	)
	return r.Replace(template)
}

// ComposeCart monta a mensagem do pedido com todas as linhas do
// carrinho. Carrinho vazio devolve ""; o chamador não deve enviar.
//
// Um template com placeholders por item serve ao caminho de item
// único, não a uma listagem; nesse caso o cabeçalho cai no texto
// padrão.
func ComposeCart(items []domain.CartItem, total float64, template string) string {
	if len(items) == 0 {
		return ""
	}
	header := strings.TrimSpace(template)
	if header == "" || hasPlaceholders(header) {
		header = "Olá! Gostaria de fazer um pedido:"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n*ITENS DO CARRINHO:*\n\n")
	for i, it := range items {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, it.Name)
		fmt.Fprintf(&b, "   Marca: %s\n", it.Brand)
		fmt.Fprintf(&b, "   Tamanho: %s\n", it.Size)
		fmt.Fprintf(&b, "   Pagamento: %s\n", it.Payment.Label())
		fmt.Fprintf(&b, "   Quantidade: %d\n", it.Quantity)
		fmt.Fprintf(&b, "   Valor: R$ %s\n", FormatPrice(it.UnitPrice))
		fmt.Fprintf(&b, "   Subtotal: R$ %s\n\n", FormatPrice(it.Subtotal()))
	}
	fmt.Fprintf(&b, "*TOTAL: R$ %s*\n\n", FormatPrice(total))
	b.WriteString("Aguardo confirmação!")
	return b.String()
}

func hasPlaceholders(s string) bool {
	for _, ph := range placeholders {
		if strings.Contains(s, ph) {
			return true
		}
	}
	return false
}

// ComposeBuyNow valida a seleção do card e devolve a mensagem do
// caminho direto de compra.
func ComposeBuyNow(p domain.Product, size string, payment domain.PaymentMethod, cfg domain.Config) (string, error) {
	if err := ValidateSelection(p, size, payment); err != nil {
		return "", err
	}
	return ComposeSingle(p, size, payment, cfg.MessageTemplate), nil
}

// WhatsAppURL monta a URL do canal externo de mensagem com o texto já
// codificado.
func WhatsAppURL(contact, message string) string {
	return "https://wa.me/" + contact + "?text=" + url.QueryEscape(message)
}
