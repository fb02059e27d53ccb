package models

import "time"

// ArquivoProjeto guarda os metadados de um anexo de projeto. O conteúdo fica
// no armazenamento de objetos; Caminho é a chave opaca para recuperá-lo.
type ArquivoProjeto struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ProjetoID   uint   `gorm:"not null;index" json:"projetoId"`
	Nome        string `gorm:"not null" json:"nome"`
	Caminho     string `gorm:"not null;uniqueIndex" json:"caminho"`
	Tamanho     int64  `json:"tamanho"`
	ContentType string `gorm:"size:255" json:"contentType"`
}

// ArquivoTransacao guarda os metadados de um comprovante de transação.
type ArquivoTransacao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	TransacaoID uint   `gorm:"not null;index" json:"transacaoId"`
	Nome        string `gorm:"not null" json:"nome"`
	Caminho     string `gorm:"not null;uniqueIndex" json:"caminho"`
	Tamanho     int64  `json:"tamanho"`
	ContentType string `gorm:"size:255" json:"contentType"`
}
