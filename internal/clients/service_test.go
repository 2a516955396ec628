package clients

import (
	"context"
	"testing"
)

type stubRepository struct {
	created []Cliente
	updated []Cliente
}

func (s *stubRepository) List(ctx context.Context, onlyActive bool) ([]Cliente, error) {
	return nil, nil
}

func (s *stubRepository) Get(ctx context.Context, id int64) (*Cliente, error) {
	return nil, ErrNotFound
}

func (s *stubRepository) Create(ctx context.Context, c *Cliente) (int64, error) {
	s.created = append(s.created, *c)
	return int64(len(s.created)), nil
}

func (s *stubRepository) Update(ctx context.Context, c *Cliente) error {
	s.updated = append(s.updated, *c)
	return nil
}

func (s *stubRepository) Delete(ctx context.Context, id int64) error { return nil }

func TestCreateNormalizesInput(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), nil, Cliente{
		Nome:      "  Construtora Silva  ",
		Documento: " 12345678000190 ",
		UF:        "sp",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Nome != "Construtora Silva" {
		t.Fatalf("expected trimmed nome, got %q", created.Nome)
	}
	if created.Documento != "12345678000190" {
		t.Fatalf("expected trimmed documento, got %q", created.Documento)
	}
	if created.UF != "SP" {
		t.Fatalf("expected uppercase UF, got %q", created.UF)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewService(&stubRepository{}, nil, nil)
	ctx := context.Background()

	cases := map[string]Cliente{
		"empty nome":      {Documento: "123"},
		"empty documento": {Nome: "Cliente"},
		"bad uf":          {Nome: "Cliente", Documento: "123", UF: "SAO"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(ctx, nil, c); err != ErrInvalidInput {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
