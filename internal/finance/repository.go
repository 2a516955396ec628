package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the transaction does not exist.
var ErrNotFound = errors.New("finance: transação não encontrada")

// Filter narrows transaction listings.
type Filter struct {
	ObraID *int64
	Tipo   string
	Status string
	De     *time.Time
	Ate    *time.Time
	Limit  int
	Offset int
}

// Repository abstracts transaction persistence.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Transaction, error)
	Get(ctx context.Context, id int64) (*Transaction, error)
	Create(ctx context.Context, t *Transaction) (int64, error)
	Update(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id int64) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const transactionColumns = "id, obra_id, descricao, tipo, status, valor, data, created_at, updated_at"

func (r *pgRepository) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM financial_transactions WHERE 1=1"
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.ObraID != nil {
		query += " AND obra_id = " + arg(*filter.ObraID)
	}
	if filter.Tipo != "" {
		query += " AND tipo = " + arg(filter.Tipo)
	}
	if filter.Status != "" {
		query += " AND status = " + arg(filter.Status)
	}
	if filter.De != nil {
		query += " AND data >= " + arg(*filter.De)
	}
	if filter.Ate != nil {
		query += " AND data <= " + arg(*filter.Ate)
	}
	query += " ORDER BY data DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transactions []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *pgRepository) Get(ctx context.Context, id int64) (*Transaction, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+transactionColumns+" FROM financial_transactions WHERE id = $1", id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *pgRepository) Create(ctx context.Context, t *Transaction) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO financial_transactions (obra_id, descricao, tipo, status, valor, data)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		t.ObraID, t.Descricao, t.Tipo, t.Status, float64(t.Valor), t.Data).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *pgRepository) Update(ctx context.Context, t *Transaction) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE financial_transactions
		 SET obra_id = $2, descricao = $3, tipo = $4, status = $5, valor = $6, data = $7, updated_at = NOW()
		 WHERE id = $1`,
		t.ID, t.ObraID, t.Descricao, t.Tipo, t.Status, float64(t.Valor), t.Data)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	var valor float64
	if err := row.Scan(&t.ID, &t.ObraID, &t.Descricao, &t.Tipo, &t.Status, &valor, &t.Data, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Transaction{}, err
	}
	t.Valor = Valor(valor)
	return t, nil
}
