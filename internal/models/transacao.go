package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transação financeira.
const (
	TransacaoReceita = "receita"
	TransacaoDespesa = "despesa"
)

// Transacao é um lançamento financeiro de um projeto. Depois de criada, só
// descrição, valor e data podem ser editados; tipo e projeto são fixos.
type Transacao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ProjetoID uint            `gorm:"not null;index" json:"projetoId"`
	Tipo      string          `gorm:"size:20;not null" json:"tipo"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	Data      string          `gorm:"size:10" json:"data"`

	Arquivos []ArquivoTransacao `gorm:"foreignKey:TransacaoID;constraint:OnDelete:CASCADE" json:"arquivos,omitempty"`
}

// TipoTransacaoValido informa se o tipo é receita ou despesa.
func TipoTransacaoValido(t string) bool {
	return t == TransacaoReceita || t == TransacaoDespesa
}
