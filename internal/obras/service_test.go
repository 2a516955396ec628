package obras

import (
	"context"
	"testing"
)

type stubRepository struct {
	obras    map[int64]Obra
	statuses []string
}

func newStubRepository(obras ...Obra) *stubRepository {
	s := &stubRepository{obras: map[int64]Obra{}}
	for _, o := range obras {
		s.obras[o.ID] = o
	}
	return s
}

func (s *stubRepository) List(ctx context.Context, clienteID *int64) ([]Obra, error) {
	return nil, nil
}

func (s *stubRepository) Get(ctx context.Context, id int64) (*Obra, error) {
	o, ok := s.obras[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s *stubRepository) Create(ctx context.Context, o *Obra) (int64, error) {
	id := int64(len(s.obras) + 1)
	s.obras[id] = *o
	return id, nil
}

func (s *stubRepository) Update(ctx context.Context, o *Obra) error { return nil }

func (s *stubRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	o := s.obras[id]
	o.Status = status
	s.obras[id] = o
	s.statuses = append(s.statuses, status)
	return nil
}

func (s *stubRepository) Delete(ctx context.Context, id int64) error { return nil }

func TestCreateForcesPlanejada(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), nil, Obra{
		ClienteID: 1,
		Nome:      "Reforma galpão",
		Status:    StatusConcluida,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != StatusPlanejada {
		t.Fatalf("new work must start planejada, got %s", created.Status)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newStubRepository(), nil, nil)
	ctx := context.Background()

	cases := map[string]Obra{
		"empty nome":         {ClienteID: 1},
		"missing cliente":    {Nome: "Obra"},
		"negative orcamento": {ClienteID: 1, Nome: "Obra", Orcamento: -1},
	}
	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(ctx, nil, o); err != ErrInvalidInput {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestChangeStatus(t *testing.T) {
	repo := newStubRepository(Obra{ID: 1, Status: StatusPlanejada})
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	if err := svc.ChangeStatus(ctx, nil, 1, StatusEmAndamento); err != nil {
		t.Fatalf("change status: %v", err)
	}
	if err := svc.ChangeStatus(ctx, nil, 1, StatusConcluida); err != nil {
		t.Fatalf("change status: %v", err)
	}

	if err := svc.ChangeStatus(ctx, nil, 1, StatusEmAndamento); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition from terminal state, got %v", err)
	}

	if err := svc.ChangeStatus(ctx, nil, 99, StatusEmAndamento); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
