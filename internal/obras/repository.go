package obras

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the work does not exist.
var ErrNotFound = errors.New("obras: obra não encontrada")

// Repository abstracts work persistence.
type Repository interface {
	List(ctx context.Context, clienteID *int64) ([]Obra, error)
	Get(ctx context.Context, id int64) (*Obra, error)
	Create(ctx context.Context, o *Obra) (int64, error)
	Update(ctx context.Context, o *Obra) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const obraColumns = "id, cliente_id, nome, endereco, status, orcamento, data_inicio, data_previsao, created_at, updated_at"

func (r *pgRepository) List(ctx context.Context, clienteID *int64) ([]Obra, error) {
	query := "SELECT " + obraColumns + " FROM obras"
	args := []any{}
	if clienteID != nil {
		query += " WHERE cliente_id = $1"
		args = append(args, *clienteID)
	}
	query += " ORDER BY created_at DESC"
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var obras []Obra
	for rows.Next() {
		o, err := scanObra(rows)
		if err != nil {
			return nil, err
		}
		obras = append(obras, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return obras, nil
}

func (r *pgRepository) Get(ctx context.Context, id int64) (*Obra, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+obraColumns+" FROM obras WHERE id = $1", id)
	o, err := scanObra(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *pgRepository) Create(ctx context.Context, o *Obra) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO obras (cliente_id, nome, endereco, status, orcamento, data_inicio, data_previsao)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		o.ClienteID, o.Nome, o.Endereco, o.Status, o.Orcamento, o.DataInicio, o.DataPrevisao).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *pgRepository) Update(ctx context.Context, o *Obra) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE obras
		 SET nome = $2, endereco = $3, orcamento = $4, data_inicio = $5, data_previsao = $6, updated_at = NOW()
		 WHERE id = $1`,
		o.ID, o.Nome, o.Endereco, o.Orcamento, o.DataInicio, o.DataPrevisao)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE obras SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM obras WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanObra(row pgx.Row) (Obra, error) {
	var o Obra
	if err := row.Scan(&o.ID, &o.ClienteID, &o.Nome, &o.Endereco, &o.Status, &o.Orcamento, &o.DataInicio, &o.DataPrevisao, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return Obra{}, err
	}
	return o, nil
}
