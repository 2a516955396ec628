// Package clients manages client records for the office.
package clients

import "time"

// Cliente represents a client of the engineering office.
type Cliente struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Documento string    `json:"documento"`
	Email     string    `json:"email,omitempty"`
	Telefone  string    `json:"telefone,omitempty"`
	Endereco  string    `json:"endereco,omitempty"`
	Cidade    string    `json:"cidade,omitempty"`
	UF        string    `json:"uf,omitempty"`
	CEP       string    `json:"cep,omitempty"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"criadoEm"`
	UpdatedAt time.Time `json:"atualizadoEm"`
}
