package arquivo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNovaChavePreservaExtensao(t *testing.T) {
	s := novoStorage(t)

	chave := s.NovaChave("Planta Baixa.PDF")
	assert.True(t, strings.HasSuffix(chave, ".pdf"), "chave: %s", chave)
	assert.NotContains(t, chave, " ")

	outra := s.NovaChave("Planta Baixa.PDF")
	assert.NotEqual(t, chave, outra, "chaves devem ser únicas")
}

func TestResolverRecusaChavesFora(t *testing.T) {
	s := novoStorage(t)

	for _, chave := range []string{"", "../segredo", "a/b.png", `a\b.png`, "..", "x..y"} {
		_, err := s.Resolver(chave)
		assert.ErrorIs(t, err, ErrChaveInvalida, "chave %q deveria ser recusada", chave)
	}
}

func TestGravarLerRemover(t *testing.T) {
	s := novoStorage(t)
	chave := s.NovaChave("foto.jpg")
	conteudo := []byte("bytes da foto")

	require.NoError(t, s.Gravar(chave, conteudo))

	lido, err := s.Ler(chave)
	require.NoError(t, err)
	assert.Equal(t, conteudo, lido)

	require.NoError(t, s.Remover(chave))
	_, err = s.Ler(chave)
	assert.Error(t, err)

	// Remover de novo não é erro.
	assert.NoError(t, s.Remover(chave))
}
