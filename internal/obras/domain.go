// Package obras manages works (contracts) tied to clients.
package obras

import "time"

// Work statuses.
const (
	StatusPlanejada   = "planejada"
	StatusEmAndamento = "em_andamento"
	StatusConcluida   = "concluida"
	StatusCancelada   = "cancelada"
)

// Obra represents a contracted work.
type Obra struct {
	ID           int64      `json:"id"`
	ClienteID    int64      `json:"clienteId"`
	Nome         string     `json:"nome"`
	Endereco     string     `json:"endereco,omitempty"`
	Status       string     `json:"status"`
	Orcamento    float64    `json:"orcamento"`
	DataInicio   *time.Time `json:"dataInicio,omitempty"`
	DataPrevisao *time.Time `json:"dataPrevisao,omitempty"`
	CreatedAt    time.Time  `json:"criadoEm"`
	UpdatedAt    time.Time  `json:"atualizadoEm"`
}

// validTransitions encodes the allowed status changes. Cancelada and
// concluida are terminal.
var validTransitions = map[string][]string{
	StatusPlanejada:   {StatusEmAndamento, StatusCancelada},
	StatusEmAndamento: {StatusConcluida, StatusCancelada},
}

// CanTransition reports whether a work may move between statuses.
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
