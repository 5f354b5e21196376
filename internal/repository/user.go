package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lumehq/lume-api/internal/database"
	"github.com/lumehq/lume-api/internal/models"
)

const userColumns = `u.id, u.email, u.name, u.password_hash, u.created_at, u.updated_at,
		COALESCE(array_agg(ur.role ORDER BY ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}') AS roles`

type UserRepository struct {
	q database.Querier
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// WithTx returns a copy of the repository bound to an open transaction.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *UserRepository) Find(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.q.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id
	`, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt, &user.Roles,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.q.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		WHERE u.email = $1
		GROUP BY u.id
	`, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt, &user.Roles,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Search(ctx context.Context, query string, pageSize int) ([]models.User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		WHERE u.email ILIKE $1 OR u.name ILIKE $1
		GROUP BY u.id
		ORDER BY u.created_at DESC
		LIMIT $2
	`, "%"+query+"%", pageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *UserRepository) Create(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	var user models.User
	err := r.q.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at, updated_at
	`, email, name, passwordHash).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update applies the non-nil base-record fields and reports whether a row
// was touched. An empty update succeeds without a query.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, in models.UserUpdate) (bool, error) {
	if in.IsZero() {
		return true, nil
	}

	set := "updated_at = NOW()"
	args := []any{id}
	if in.Email != nil {
		args = append(args, *in.Email)
		set += fmt.Sprintf(", email = $%d", len(args))
	}
	if in.Name != nil {
		args = append(args, *in.Name)
		set += fmt.Sprintf(", name = $%d", len(args))
	}

	tag, err := r.q.Exec(ctx, `UPDATE users SET `+set+` WHERE id = $1`, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) Destroy(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AssignRoles adds roles to the user's role set. Already-held roles are
// left in place.
func (r *UserRepository) AssignRoles(ctx context.Context, id uuid.UUID, roles ...string) error {
	if len(roles) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (user_id, role) DO NOTHING
	`, id, roles)
	return err
}

func (r *UserRepository) UnassignAllRoles(ctx context.Context, id uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id)
	return err
}

func (r *UserRepository) LeaveAllTeams(ctx context.Context, id uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM team_members WHERE user_id = $1`, id)
	return err
}

func scanUsers(rows pgx.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Name, &user.PasswordHash,
			&user.CreatedAt, &user.UpdatedAt, &user.Roles,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
