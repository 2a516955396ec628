package finance

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(nil)
	if m != (Metrics{}) {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
}

func TestAggregateBuckets(t *testing.T) {
	transactions := []Transaction{
		{Tipo: TipoReceita, Status: StatusPago, Valor: 100},
		{Tipo: TipoReceita, Status: StatusPendente, Valor: 50},
		{Tipo: TipoDespesa, Status: StatusPago, Valor: 30},
		{Tipo: TipoDespesa, Status: StatusPendente, Valor: 40},
	}

	m := Aggregate(transactions)
	if m.TotalCount != 4 {
		t.Fatalf("expected 4 transactions counted, got %d", m.TotalCount)
	}
	if m.RecPaga != 100 || m.RecPendente != 50 || m.DespPaga != 30 || m.DespPendente != 40 {
		t.Fatalf("unexpected buckets: %+v", m)
	}
	if m.SaldoRealizado != 70 {
		t.Fatalf("expected saldo realizado 70, got %v", m.SaldoRealizado)
	}
	if m.SaldoPrevisto != 80 {
		t.Fatalf("expected saldo previsto 80, got %v", m.SaldoPrevisto)
	}
}

func TestAggregateNonPagoCountsAsPending(t *testing.T) {
	m := Aggregate([]Transaction{
		{Tipo: TipoReceita, Status: "agendado", Valor: 25},
		{Tipo: TipoReceita, Status: "", Valor: 25},
	})
	if m.RecPendente != 50 || m.RecPaga != 0 {
		t.Fatalf("statuses other than pago must bucket as pending: %+v", m)
	}
}

func TestAggregateUnknownTipoCountsOnly(t *testing.T) {
	m := Aggregate([]Transaction{
		{Tipo: "transferencia", Status: StatusPago, Valor: 999},
		{Tipo: TipoReceita, Status: StatusPago, Valor: 10},
	})
	if m.TotalCount != 2 {
		t.Fatalf("expected both counted, got %d", m.TotalCount)
	}
	if m.RecPaga != 10 || m.RecPendente != 0 || m.DespPaga != 0 || m.DespPendente != 0 {
		t.Fatalf("unknown type must not enter any bucket: %+v", m)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	transactions := []Transaction{
		{Tipo: TipoReceita, Status: StatusPago, Valor: 100},
		{Tipo: TipoReceita, Status: StatusPendente, Valor: 50},
		{Tipo: TipoDespesa, Status: StatusPago, Valor: 30},
		{Tipo: TipoDespesa, Status: StatusPendente, Valor: 40},
		{Tipo: "outro", Status: StatusPago, Valor: 7},
	}
	want := Aggregate(transactions)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]Transaction, len(transactions))
		copy(shuffled, transactions)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Aggregate(shuffled); got != want {
			t.Fatalf("order changed the result: %+v vs %+v", got, want)
		}
	}
}

func TestValorTolerantDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want Valor
	}{
		{`{"valor": 12.5}`, 12.5},
		{`{"valor": "12.5"}`, 12.5},
		{`{"valor": "12,5"}`, 12.5},
		{`{"valor": null}`, 0},
		{`{"valor": "abc"}`, 0},
		{`{"valor": true}`, 0},
		{`{}`, 0},
	}
	for _, tc := range cases {
		var tx Transaction
		if err := json.Unmarshal([]byte(tc.in), &tx); err != nil {
			t.Fatalf("decoding %s must not error: %v", tc.in, err)
		}
		if tx.Valor != tc.want {
			t.Fatalf("decoding %s: expected %v, got %v", tc.in, tc.want, tx.Valor)
		}
	}
}
