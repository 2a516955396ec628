package finance

// Aggregate folds a transaction list into summary metrics. Pure and
// order independent: the buckets are plain sums. A transaction whose
// type is neither receita nor despesa contributes to TotalCount only.
func Aggregate(transactions []Transaction) Metrics {
	var m Metrics
	for _, t := range transactions {
		m.TotalCount++
		amount := float64(t.Valor)
		paid := t.Status == StatusPago
		switch t.Tipo {
		case TipoReceita:
			if paid {
				m.RecPaga += amount
			} else {
				m.RecPendente += amount
			}
		case TipoDespesa:
			if paid {
				m.DespPaga += amount
			} else {
				m.DespPendente += amount
			}
		}
	}
	m.SaldoRealizado = m.RecPaga - m.DespPaga
	m.SaldoPrevisto = (m.RecPaga + m.RecPendente) - (m.DespPaga + m.DespPendente)
	return m
}
