package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel repository errors.
var (
	ErrNotFound  = errors.New("clients: cliente não encontrado")
	ErrDuplicate = errors.New("clients: documento já cadastrado")
)

const uniqueViolation = "23505"

// Repository abstracts client persistence.
type Repository interface {
	List(ctx context.Context, onlyActive bool) ([]Cliente, error)
	Get(ctx context.Context, id int64) (*Cliente, error)
	Create(ctx context.Context, c *Cliente) (int64, error)
	Update(ctx context.Context, c *Cliente) error
	Delete(ctx context.Context, id int64) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const clienteColumns = "id, nome, documento, email, telefone, endereco, cidade, uf, cep, ativo, created_at, updated_at"

func (r *pgRepository) List(ctx context.Context, onlyActive bool) ([]Cliente, error) {
	query := "SELECT " + clienteColumns + " FROM clientes"
	if onlyActive {
		query += " WHERE ativo"
	}
	query += " ORDER BY nome"
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var clientes []Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, err
		}
		clientes = append(clientes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clientes, nil
}

func (r *pgRepository) Get(ctx context.Context, id int64) (*Cliente, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+clienteColumns+" FROM clientes WHERE id = $1", id)
	c, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *pgRepository) Create(ctx context.Context, c *Cliente) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO clientes (nome, documento, email, telefone, endereco, cidade, uf, cep, ativo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		c.Nome, c.Documento, c.Email, c.Telefone, c.Endereco, c.Cidade, c.UF, c.CEP, c.Ativo).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

func (r *pgRepository) Update(ctx context.Context, c *Cliente) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clientes
		 SET nome = $2, documento = $3, email = $4, telefone = $5, endereco = $6, cidade = $7, uf = $8, cep = $9, ativo = $10, updated_at = NOW()
		 WHERE id = $1`,
		c.ID, c.Nome, c.Documento, c.Email, c.Telefone, c.Endereco, c.Cidade, c.UF, c.CEP, c.Ativo)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func scanCliente(row pgx.Row) (Cliente, error) {
	var c Cliente
	if err := row.Scan(&c.ID, &c.Nome, &c.Documento, &c.Email, &c.Telefone, &c.Endereco, &c.Cidade, &c.UF, &c.CEP, &c.Ativo, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Cliente{}, err
	}
	return c, nil
}
