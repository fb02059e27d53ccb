package relatorio

import (
	"testing"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDentroDoPeriodo(t *testing.T) {
	assert.True(t, dentroDoPeriodo("2024-03-15", "", ""))
	assert.True(t, dentroDoPeriodo("2024-03-15", "2024-03-01", "2024-03-31"))
	assert.True(t, dentroDoPeriodo("2024-03-01", "2024-03-01", ""))
	assert.True(t, dentroDoPeriodo("2024-03-31", "", "2024-03-31"))
	assert.False(t, dentroDoPeriodo("2024-02-28", "2024-03-01", ""))
	assert.False(t, dentroDoPeriodo("2024-04-01", "", "2024-03-31"))
}

func TestGerarRelatorioProjeto(t *testing.T) {
	p := &models.Projeto{
		Nome:   "Espelhos academia",
		Valor:  decimal.RequireFromString("3000.00"),
		Status: models.ProjetoStatusExecucao,
		Data:   "2024-03-01",
	}
	c := &models.Cliente{Nome: "Academia Corpo em Forma"}
	transacoes := []models.Transacao{
		{Tipo: models.TransacaoReceita, Descricao: "Entrada", Valor: decimal.RequireFromString("1500.00"), Data: "2024-03-05"},
		{Tipo: models.TransacaoDespesa, Descricao: "Espelho 4mm", Valor: decimal.RequireFromString("800.00"), Data: "2024-03-10"},
		{Tipo: models.TransacaoReceita, Descricao: "Fora do período", Valor: decimal.RequireFromString("999.00"), Data: "2024-05-01"},
	}

	pdf, err := GerarRelatorioProjeto(p, c, transacoes, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
