package projeto

import (
	"encoding/json"
	"testing"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAplicarMergeParcial(t *testing.T) {
	p := models.Projeto{
		Nome:      "Fachada loja centro",
		ClienteID: 7,
		Descricao: "Vidro laminado",
		Valor:     decimal.RequireFromString("5000.00"),
		Tipo:      "instalacao",
		Status:    models.ProjetoStatusAprovado,
		Data:      "2024-05-01",
	}

	var dto atualizarProjetoDTO
	require.NoError(t, json.Unmarshal([]byte(`{"nome":"  Fachada loja matriz  ","valor":"6500.00"}`), &dto))
	dto.aplicar(&p)

	assert.Equal(t, "Fachada loja matriz", p.Nome, "nome aplicado sem espaços")
	assert.True(t, p.Valor.Equal(decimal.RequireFromString("6500.00")))

	// Campos ausentes do JSON permanecem intactos.
	assert.Equal(t, uint(7), p.ClienteID)
	assert.Equal(t, "Vidro laminado", p.Descricao)
	assert.Equal(t, models.ProjetoStatusAprovado, p.Status)
	assert.Equal(t, "2024-05-01", p.Data)
}

func TestAplicarVazioNaoAlteraNada(t *testing.T) {
	original := models.Projeto{
		Nome:   "Guarda-corpo sacada",
		Valor:  decimal.RequireFromString("1200.00"),
		Status: models.ProjetoStatusExecucao,
	}
	p := original

	var dto atualizarProjetoDTO
	require.NoError(t, json.Unmarshal([]byte(`{}`), &dto))
	dto.aplicar(&p)

	assert.Equal(t, original.Nome, p.Nome)
	assert.True(t, original.Valor.Equal(p.Valor))
	assert.Equal(t, original.Status, p.Status)
}
