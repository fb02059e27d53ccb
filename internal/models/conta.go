package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos e status de contas a pagar/receber.
const (
	ContaReceber = "receber"
	ContaPagar   = "pagar"

	ContaPendente = "pendente"
	ContaPago     = "pago"
)

// Conta é um título a pagar ou a receber. Contas podem ser avulsas
// (projetoId nulo, ex.: despesas fixas da empresa) ou vinculadas a um
// projeto.
//
// A conta sintética "Saldo a receber" de um projeto é criada e mantida
// exclusivamente pelo motor de reconciliação: no máximo uma conta
// tipo=receber por projeto com saldo em aberto, com valor igual ao valor
// contratado menos as receitas lançadas. Quando o saldo zera, a conta é
// marcada como paga, nunca removida.
type Conta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Tipo       string          `gorm:"size:20;not null;index" json:"tipo"`
	Descricao  string          `json:"descricao"`
	Valor      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	Vencimento string          `gorm:"size:10" json:"vencimento"`
	Status     string          `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	ProjetoID  *uint           `gorm:"index" json:"projetoId"`
	Data       string          `gorm:"size:10" json:"data"`
}

// TipoContaValido informa se o tipo é receber ou pagar.
func TipoContaValido(t string) bool {
	return t == ContaReceber || t == ContaPagar
}

// StatusContaValido informa se o status é pendente ou pago.
func StatusContaValido(s string) bool {
	return s == ContaPendente || s == ContaPago
}
