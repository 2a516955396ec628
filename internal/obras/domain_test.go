package obras

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPlanejada, StatusEmAndamento},
		{StatusPlanejada, StatusCancelada},
		{StatusEmAndamento, StatusConcluida},
		{StatusEmAndamento, StatusCancelada},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{StatusPlanejada, StatusConcluida},
		{StatusConcluida, StatusEmAndamento},
		{StatusCancelada, StatusPlanejada},
		{StatusConcluida, StatusCancelada},
		{StatusEmAndamento, StatusPlanejada},
		{"", StatusEmAndamento},
	}
	for _, pair := range denied {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be denied", pair[0], pair[1])
		}
	}
}
