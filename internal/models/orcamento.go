package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Orcamento é um orçamento enviado a um cliente, com itens e desconto
// percentual sobre o subtotal.
type Orcamento struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ClienteID uint            `gorm:"not null;index" json:"clienteId"`
	Titulo    string          `gorm:"size:255;not null" json:"titulo"`
	Descricao string          `json:"descricao"`
	Desconto  decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"desconto"` // percentual 0-100
	Data      string          `gorm:"size:10" json:"data"`

	Itens []ItemOrcamento `gorm:"foreignKey:OrcamentoID;constraint:OnDelete:CASCADE" json:"itens"`
}

// ItemOrcamento é uma linha do orçamento (ex.: "Box de vidro temperado 8mm").
type ItemOrcamento struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrcamentoID uint            `gorm:"not null;index" json:"orcamentoId"`
	Descricao   string          `gorm:"not null" json:"descricao"`
	Quantidade  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"quantidade"`
	PrecoUnit   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"precoUnitario"`
}

// Subtotal soma quantidade × preço unitário de todos os itens.
func (o *Orcamento) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.Itens {
		subtotal = subtotal.Add(item.Quantidade.Mul(item.PrecoUnit))
	}
	return subtotal
}

// Total aplica o desconto percentual sobre o subtotal, arredondado a 2 casas.
func (o *Orcamento) Total() decimal.Decimal {
	subtotal := o.Subtotal()
	if o.Desconto.IsZero() {
		return subtotal.Round(2)
	}
	fator := decimal.NewFromInt(1).Sub(o.Desconto.Div(decimal.NewFromInt(100)))
	return subtotal.Mul(fator).Round(2)
}
