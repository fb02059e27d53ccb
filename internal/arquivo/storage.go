package arquivo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrChaveInvalida indica uma chave de objeto fora do diretório de storage.
var ErrChaveInvalida = errors.New("chave de objeto inválida")

// Storage é o armazenamento de objetos local. Cada arquivo recebe uma chave
// opaca (uuid + extensão original); os metadados ficam no banco.
type Storage struct {
	Dir string
}

// NewStorage garante o diretório e devolve o storage.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de storage: %w", err)
	}
	return &Storage{Dir: dir}, nil
}

// NovaChave gera a chave de objeto para um novo upload.
func (s *Storage) NovaChave(nomeOriginal string) string {
	ext := strings.ToLower(filepath.Ext(nomeOriginal))
	return uuid.NewString() + ext
}

// Resolver transforma a chave no caminho do arquivo, recusando chaves que
// escapem do diretório de storage.
func (s *Storage) Resolver(chave string) (string, error) {
	if chave == "" || strings.Contains(chave, "/") || strings.Contains(chave, "\\") || strings.Contains(chave, "..") {
		return "", ErrChaveInvalida
	}
	return filepath.Join(s.Dir, chave), nil
}

// Gravar escreve o conteúdo do objeto.
func (s *Storage) Gravar(chave string, dados []byte) error {
	caminho, err := s.Resolver(chave)
	if err != nil {
		return err
	}
	if err := os.WriteFile(caminho, dados, 0o644); err != nil {
		return fmt.Errorf("gravar objeto: %w", err)
	}
	return nil
}

// Ler devolve o conteúdo do objeto.
func (s *Storage) Ler(chave string) ([]byte, error) {
	caminho, err := s.Resolver(chave)
	if err != nil {
		return nil, err
	}
	dados, err := os.ReadFile(caminho)
	if err != nil {
		return nil, fmt.Errorf("ler objeto: %w", err)
	}
	return dados, nil
}

// Remover apaga o objeto; ausência não é erro.
func (s *Storage) Remover(chave string) error {
	caminho, err := s.Resolver(chave)
	if err != nil {
		return err
	}
	if err := os.Remove(caminho); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remover objeto: %w", err)
	}
	return nil
}
