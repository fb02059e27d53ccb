package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status possíveis de um projeto. O status é alterado de forma independente
// do estado financeiro: não há vínculo entre "finalizado" e quitação.
const (
	ProjetoStatusOrcamento  = "orcamento"
	ProjetoStatusAprovado   = "aprovado"
	ProjetoStatusExecucao   = "execucao"
	ProjetoStatusFinalizado = "finalizado"
	ProjetoStatusCancelado  = "cancelado"
)

// ProjetoTipoAdministrativo marca projetos internos, que são vinculados ao
// cliente administrativo singleton quando criados sem cliente.
const ProjetoTipoAdministrativo = "administrativo"

// Projeto é um serviço contratado (instalação de vidros, espelhos, box...).
// O valor contratado alimenta a sincronização da conta "Saldo a receber".
type Projeto struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome      string          `gorm:"size:255;not null" json:"nome"`
	ClienteID uint            `gorm:"not null;index" json:"clienteId"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	Tipo      string          `gorm:"size:50" json:"tipo"`
	Status    string          `gorm:"size:50;not null;default:'orcamento'" json:"status"`

	// Datas no formato "YYYY-MM-DD"; comparações são lexicográficas.
	Data string `gorm:"size:10" json:"data"`

	Transacoes []Transacao       `gorm:"foreignKey:ProjetoID;constraint:OnDelete:CASCADE" json:"transacoes,omitempty"`
	Arquivos   []ArquivoProjeto  `gorm:"foreignKey:ProjetoID;constraint:OnDelete:CASCADE" json:"arquivos,omitempty"`

	// Contas não são removidas junto com o projeto; ficam com projetoId nulo.
	Contas []Conta `gorm:"foreignKey:ProjetoID;constraint:OnDelete:SET NULL" json:"contas,omitempty"`
}

// StatusProjetoValido informa se o status é um dos aceitos.
func StatusProjetoValido(s string) bool {
	switch s {
	case ProjetoStatusOrcamento, ProjetoStatusAprovado, ProjetoStatusExecucao,
		ProjetoStatusFinalizado, ProjetoStatusCancelado:
		return true
	}
	return false
}
