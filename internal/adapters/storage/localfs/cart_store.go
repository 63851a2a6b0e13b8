package localfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"catalogozap/internal/domain"
)

// cartFile é a chave fixa do carrinho no store local.
const cartFile = "cart.json"

// CartStore persiste o carrinho inteiro como um arquivo JSON dentro do
// diretório de dados. Blob ausente ou corrompido vira carrinho vazio.
type CartStore struct{ dir string }

func New(dir string) *CartStore { return &CartStore{dir: dir} }

func (s *CartStore) path() string { return filepath.Join(s.dir, cartFile) }

func (s *CartStore) Load() ([]domain.CartItem, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("ler carrinho: %w", err)
	}
	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Str("arquivo", s.path()).Msg("carrinho corrompido, descartando")
		return nil, nil
	}
	return items, nil
}

// Save grava o carrinho com escrita atômica (tmp + rename).
func (s *CartStore) Save(items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serializar carrinho: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("criar diretório: %w", err)
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("gravar carrinho: %w", err)
	}
	return os.Rename(tmp, s.path())
}
