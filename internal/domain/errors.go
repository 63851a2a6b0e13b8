package domain

import "errors"

var (
	ErrNotFound = errors.New("registro não encontrado")

	// ErrSizeRequired: comprar/adicionar exige um tamanho selecionado.
	ErrSizeRequired = errors.New("selecione um tamanho")
	// ErrSizeUnavailable: o produto não oferece o tamanho pedido.
	ErrSizeUnavailable = errors.New("tamanho indisponível para o produto")
	// ErrCartFull: limite de linhas distintas do carrinho atingido.
	ErrCartFull = errors.New("limite de itens no carrinho atingido")
	// ErrInvalidPayment: forma de pagamento desconhecida.
	ErrInvalidPayment = errors.New("forma de pagamento inválida")
)
