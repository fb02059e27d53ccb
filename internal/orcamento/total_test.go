package orcamento

import (
	"testing"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func orcamentoExemplo(desconto string) *models.Orcamento {
	return &models.Orcamento{
		Titulo:   "Box e espelhos - apto 302",
		Desconto: dec(desconto),
		Itens: []models.ItemOrcamento{
			{Descricao: "Box de vidro temperado 8mm", Quantidade: dec("2"), PrecoUnit: dec("850.00")},
			{Descricao: "Espelho lapidado 4mm", Quantidade: dec("1.5"), PrecoUnit: dec("320.00")},
		},
	}
}

func TestSubtotal(t *testing.T) {
	o := orcamentoExemplo("0")
	assert.True(t, o.Subtotal().Equal(dec("2180.00")), "subtotal: %s", o.Subtotal())
}

func TestTotalSemDesconto(t *testing.T) {
	o := orcamentoExemplo("0")
	assert.True(t, o.Total().Equal(dec("2180.00")), "total: %s", o.Total())
}

func TestTotalComDescontoPercentual(t *testing.T) {
	o := orcamentoExemplo("10")
	assert.True(t, o.Total().Equal(dec("1962.00")), "total: %s", o.Total())
}

func TestTotalArredondaDuasCasas(t *testing.T) {
	o := &models.Orcamento{
		Desconto: dec("7.5"),
		Itens: []models.ItemOrcamento{
			{Descricao: "Porta de correr", Quantidade: dec("1"), PrecoUnit: dec("999.99")},
		},
	}
	// 999.99 * 0.925 = 924.99075 → 924.99
	assert.True(t, o.Total().Equal(dec("924.99")), "total: %s", o.Total())
}

func TestTotalComDescontoTotal(t *testing.T) {
	o := orcamentoExemplo("100")
	assert.True(t, o.Total().IsZero(), "total: %s", o.Total())
}

func TestTotalSemItens(t *testing.T) {
	o := &models.Orcamento{Desconto: dec("10")}
	assert.True(t, o.Subtotal().IsZero())
	assert.True(t, o.Total().IsZero())
}
