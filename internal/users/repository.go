package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alicerce-gestao/alicerce/internal/authz"
)

// Sentinel repository errors.
var (
	ErrNotFound  = errors.New("users: usuário não encontrado")
	ErrDuplicate = errors.New("users: login já cadastrado")
)

const uniqueViolation = "23505"

// Repository abstracts user and grant persistence.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	Create(ctx context.Context, u *User) (int64, error)
	SetActive(ctx context.Context, id int64, active bool) error
	SetRole(ctx context.Context, id int64, role authz.Role) error
	Grants(ctx context.Context, userID int64) (authz.RawGrants, error)
	SaveGrants(ctx context.Context, userID int64, grants authz.RawGrants) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const userColumns = "id, login, nome, email, password_hash, role, is_active, created_at, updated_at"

func (r *pgRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+userColumns+" FROM usuarios ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *pgRepository) Get(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM usuarios WHERE id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *pgRepository) FindByLogin(ctx context.Context, login string) (*User, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM usuarios WHERE login = $1", login)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *pgRepository) Create(ctx context.Context, u *User) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO usuarios (login, nome, email, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		u.Login, u.Nome, u.Email, u.PasswordHash, u.Role, u.IsActive).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *pgRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE usuarios SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) SetRole(ctx context.Context, id int64, role authz.Role) error {
	tag, err := r.pool.Exec(ctx, `UPDATE usuarios SET role = $2, updated_at = NOW() WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Grants loads the raw per-resource grant record. Each row stores
// nullable action columns so absent stays distinct from false.
func (r *pgRepository) Grants(ctx context.Context, userID int64) (authz.RawGrants, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT recurso, pode_ver, pode_criar, pode_editar, pode_excluir
		 FROM permissoes WHERE usuario_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	grants := authz.RawGrants{}
	for rows.Next() {
		var resource string
		var raw authz.RawActions
		if err := rows.Scan(&resource, &raw.View, &raw.Create, &raw.Edit, &raw.Delete); err != nil {
			return nil, err
		}
		grants[authz.Resource(resource)] = raw
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grants, nil
}

// SaveGrants replaces the grant record for a user.
func (r *pgRepository) SaveGrants(ctx context.Context, userID int64, grants authz.RawGrants) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM permissoes WHERE usuario_id = $1`, userID); err != nil {
		return err
	}
	for resource, raw := range grants {
		if _, err := tx.Exec(ctx,
			`INSERT INTO permissoes (usuario_id, recurso, pode_ver, pode_criar, pode_editar, pode_excluir)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, string(resource), raw.View, raw.Create, raw.Edit, raw.Delete); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Login, &u.Nome, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}
