package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumehq/lume-api/internal/database"
	"github.com/lumehq/lume-api/internal/models"
)

func setupUserRepository(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewUserRepository(db), mock
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at", "roles"})
}

func TestUserRepository_Find(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := userRows().
		AddRow(userID, "test@example.com", "Test User", "hash", now, now, []string{models.RoleAdmin, models.RoleMember})
	mock.ExpectQuery(`SELECT .+ FROM users u LEFT JOIN user_roles ur .+ WHERE u.id`).
		WithArgs(userID).
		WillReturnRows(rows)

	user, err := repo.Find(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, []string{models.RoleAdmin, models.RoleMember}, user.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Find_NotFound(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM users u LEFT JOIN user_roles ur .+ WHERE u.id`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Find(ctx, userID)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()
	email := "find@example.com"
	now := time.Now()

	rows := userRows().
		AddRow(userID, email, "Test User", "hash", now, now, []string{})
	mock.ExpectQuery(`SELECT .+ FROM users u LEFT JOIN user_roles ur .+ WHERE u.email`).
		WithArgs(email).
		WillReturnRows(rows)

	user, err := repo.FindByEmail(ctx, email)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Empty(t, user.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_All(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	now := time.Now()

	rows := userRows().
		AddRow(uuid.New(), "a@example.com", "A", "hash", now, now, []string{models.RoleMember}).
		AddRow(uuid.New(), "b@example.com", "B", "hash", now, now, []string{})
	mock.ExpectQuery(`SELECT .+ FROM users u LEFT JOIN user_roles ur`).
		WillReturnRows(rows)

	users, err := repo.All(ctx)

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Search(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	now := time.Now()

	rows := userRows().
		AddRow(uuid.New(), "match@example.com", "Match", "hash", now, now, []string{models.RoleMember})
	mock.ExpectQuery(`SELECT .+ FROM users u .+ WHERE u.email ILIKE .+ OR u.name ILIKE .+ LIMIT`).
		WithArgs("%match%", 10).
		WillReturnRows(rows)

	users, err := repo.Search(ctx, "match", 10)

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "match@example.com", users[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow(userID, "new@example.com", "New User", "hash", now, now)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("new@example.com", "New User", "hash").
		WillReturnRows(rows)

	user, err := repo.Create(ctx, "new@example.com", "New User", "hash")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NameAndEmail(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()
	email := "renamed@example.com"
	name := "Renamed"

	mock.ExpectExec(`UPDATE users SET updated_at = NOW\(\), email = \$2, name = \$3 WHERE id = \$1`).
		WithArgs(userID, email, name).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.Update(ctx, userID, models.UserUpdate{Email: &email, Name: &name})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_Empty(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()

	// No base fields to change: succeeds without touching the database.
	ok, err := repo.Update(ctx, uuid.New(), models.UserUpdate{})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()
	name := "Renamed"

	mock.ExpectExec(`UPDATE users SET updated_at = NOW\(\), name = \$2 WHERE id = \$1`).
		WithArgs(userID, name).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.Update(ctx, userID, models.UserUpdate{Name: &name})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Destroy(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	ok, err := repo.Destroy(ctx, userID)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AssignRoles(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`INSERT INTO user_roles .+ ON CONFLICT .+ DO NOTHING`).
		WithArgs(userID, []string{models.RoleAdmin, models.RoleMember}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	err := repo.AssignRoles(ctx, userID, models.RoleAdmin, models.RoleMember)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AssignRoles_None(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()

	err := repo.AssignRoles(ctx, uuid.New())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UnassignAllRoles(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM user_roles WHERE user_id`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	err := repo.UnassignAllRoles(ctx, userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_LeaveAllTeams(t *testing.T) {
	repo, mock := setupUserRepository(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM team_members WHERE user_id`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	err := repo.LeaveAllTeams(ctx, userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
