package finance

import "testing"

func TestFormatBRL(t *testing.T) {
	cases := map[float64]string{
		0:         "R$ 0,00",
		1234.5:    "R$ 1.234,50",
		-99.9:     "R$ -99,90",
		1000000:   "R$ 1.000.000,00",
		0.0549999: "R$ 0,05",
	}
	for in, want := range cases {
		if got := FormatBRL(in); got != want {
			t.Fatalf("FormatBRL(%v): expected %q, got %q", in, want, got)
		}
	}
}
