// Package finance manages financial transactions (receitas and
// despesas) and derives summary metrics from them.
package finance

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Transaction types.
const (
	TipoReceita = "receita"
	TipoDespesa = "despesa"
)

// Transaction statuses. Anything other than pago counts as pending.
const (
	StatusPago     = "pago"
	StatusPendente = "pendente"
)

// Valor is a monetary amount tolerant to malformed input. JSON
// numbers, quoted numbers (with comma or dot decimals), null and
// garbage all decode without error; anything unparsable becomes zero.
type Valor float64

// UnmarshalJSON implements json.Unmarshaler.
func (v *Valor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*v = Valor(number)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
		if parsed, err := strconv.ParseFloat(text, 64); err == nil {
			*v = Valor(parsed)
			return nil
		}
	}
	*v = 0
	return nil
}

// Transaction is a single financial movement.
type Transaction struct {
	ID        int64     `json:"id"`
	ObraID    *int64    `json:"obraId,omitempty"`
	Descricao string    `json:"descricao"`
	Tipo      string    `json:"tipo"`
	Status    string    `json:"status"`
	Valor     Valor     `json:"valor"`
	Data      time.Time `json:"data"`
	CreatedAt time.Time `json:"criadoEm"`
	UpdatedAt time.Time `json:"atualizadoEm"`
}

// Metrics is the derived financial summary. Recomputed from scratch
// on every invocation; never persisted.
type Metrics struct {
	TotalCount     int     `json:"total"`
	RecPaga        float64 `json:"recPaga"`
	RecPendente    float64 `json:"recPendente"`
	DespPaga       float64 `json:"despPaga"`
	DespPendente   float64 `json:"despPendente"`
	SaldoRealizado float64 `json:"saldoRealizado"`
	SaldoPrevisto  float64 `json:"saldoPrevisto"`
}
