package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumehq/lume-api/internal/cache"
	"github.com/lumehq/lume-api/internal/database"
	"github.com/lumehq/lume-api/internal/models"
	"github.com/lumehq/lume-api/internal/repository"
)

const defaultPageSize = 25

// Mailer delivers transactional mail for the profile lifecycle.
type Mailer interface {
	SendNewProfile(to, name, password string) error
}

// ProfileUpdate is the structured payload accepted by Update. Meta, when
// present, must carry a truthy terms_and_cond entry. Roles, when present,
// replaces the user's entire role set.
type ProfileUpdate struct {
	models.UserUpdate
	Meta  map[string]any
	Roles []string
}

// InviteInput describes a member to invite.
type InviteInput struct {
	Email string
	Name  string
	Role  string
}

// ProfileService orchestrates user, metadata and role persistence as atomic
// units and triggers email delivery once persistence has committed.
type ProfileService struct {
	db       *database.DB
	users    *repository.UserRepository
	meta     *repository.UserMetaRepository
	mailer   Mailer
	views    *cache.Views[models.User]
	logger   *slog.Logger
	pageSize int
}

func NewProfileService(db *database.DB, mailer Mailer, views *cache.Views[models.User], logger *slog.Logger, pageSize int) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &ProfileService{
		db:       db,
		users:    repository.NewUserRepository(db),
		meta:     repository.NewUserMetaRepository(db),
		mailer:   mailer,
		views:    views,
		logger:   logger,
		pageSize: pageSize,
	}
}

func (s *ProfileService) All(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

func (s *ProfileService) Find(ctx context.Context, id uuid.UUID) (*models.User, error) {
	key := userViewKey(id)
	if user, ok := s.views.Get(ctx, key); ok {
		return user, nil
	}

	user, err := s.users.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.views.Set(ctx, key, user)
	return user, nil
}

func (s *ProfileService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// Search runs a free-text query over name and email. A non-positive
// pageSize falls back to the configured default.
func (s *ProfileService) Search(ctx context.Context, query string, pageSize int) ([]models.User, error) {
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	return s.users.Search(ctx, query, pageSize)
}

// Create finishes the profile of an already-persisted user: it ensures a
// metadata record exists and assigns role, atomically. The plaintext
// password is used only for the welcome email, which is sent after the
// transaction commits; a delivery failure is logged and never undoes
// persistence.
func (s *ProfileService) Create(ctx context.Context, user *models.User, password, role string, sendEmail bool) (*models.User, error) {
	if role == "" {
		role = models.RoleMember
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, s.failure(ctx, "create", ErrProfileCreationFailed, err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.meta.WithTx(tx).FindByUserID(ctx, user.ID); err != nil {
		return nil, s.failure(ctx, "create", ErrProfileCreationFailed, err)
	}

	if err := s.users.WithTx(tx).AssignRoles(ctx, user.ID, role); err != nil {
		return nil, s.failure(ctx, "create", ErrProfileCreationFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.failure(ctx, "create", ErrProfileCreationFailed, err)
	}

	s.views.Delete(ctx, userViewKey(user.ID))

	if sendEmail {
		if err := s.mailer.SendNewProfile(user.Email, user.Name, password); err != nil {
			s.logger.Error("new profile email delivery failed", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

// Update applies a profile update in one transaction: metadata first, then
// the base record, then a full role replacement when roles are supplied.
// The result is true only when both the metadata and user updates touched
// a record.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, inputs ProfileUpdate) (bool, error) {
	if inputs.Meta != nil && !termsAccepted(inputs.Meta) {
		return false, ErrTermsNotAccepted
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return false, s.failure(ctx, "update", ErrProfileUpdateFailed, err)
	}
	defer tx.Rollback(ctx)

	metaResult := true
	if inputs.Meta != nil {
		metaResult, err = s.meta.WithTx(tx).Update(ctx, userID, inputs.Meta)
		if err != nil {
			return false, s.failure(ctx, "update", ErrProfileUpdateFailed, err)
		}
	}

	users := s.users.WithTx(tx)
	userResult, err := users.Update(ctx, userID, inputs.UserUpdate)
	if err != nil {
		return false, s.failure(ctx, "update", ErrProfileUpdateFailed, err)
	}

	if len(inputs.Roles) > 0 {
		if err := users.UnassignAllRoles(ctx, userID); err != nil {
			return false, s.failure(ctx, "update", ErrProfileUpdateFailed, err)
		}
		if err := users.AssignRoles(ctx, userID, inputs.Roles...); err != nil {
			return false, s.failure(ctx, "update", ErrProfileUpdateFailed, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, s.failure(ctx, "update", ErrProfileUpdateFailed, err)
	}

	s.views.Delete(ctx, userViewKey(userID))

	return metaResult && userResult, nil
}

// Invite creates a user record with a bcrypt-hashed one-time password and
// delegates to Create, which emails the plaintext to the new member. The
// plaintext is never persisted.
func (s *ProfileService) Invite(ctx context.Context, info InviteInput) (*models.User, error) {
	password, err := GenerateOneTimePassword()
	if err != nil {
		return nil, s.failure(ctx, "invite", ErrProfileCreationFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, s.failure(ctx, "invite", ErrProfileCreationFailed, err)
	}

	user, err := s.users.Create(ctx, info.Email, info.Name, string(hash))
	if err != nil {
		return nil, s.failure(ctx, "invite", ErrProfileCreationFailed, err)
	}

	return s.Create(ctx, user, password, info.Role, true)
}

// Destroy removes a profile in one transaction: role assignments, team
// memberships, metadata, then the user record. The result is true only
// when both the metadata and user records existed.
func (s *ProfileService) Destroy(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return false, s.failure(ctx, "destroy", ErrProfileDeletionFailed, err)
	}
	defer tx.Rollback(ctx)

	users := s.users.WithTx(tx)

	if err := users.UnassignAllRoles(ctx, id); err != nil {
		return false, s.failure(ctx, "destroy", ErrProfileDeletionFailed, err)
	}
	if err := users.LeaveAllTeams(ctx, id); err != nil {
		return false, s.failure(ctx, "destroy", ErrProfileDeletionFailed, err)
	}

	metaResult, err := s.meta.WithTx(tx).Destroy(ctx, id)
	if err != nil {
		return false, s.failure(ctx, "destroy", ErrProfileDeletionFailed, err)
	}

	userResult, err := users.Destroy(ctx, id)
	if err != nil {
		return false, s.failure(ctx, "destroy", ErrProfileDeletionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, s.failure(ctx, "destroy", ErrProfileDeletionFailed, err)
	}

	s.views.Delete(ctx, userViewKey(id))

	return metaResult && userResult, nil
}

// failure logs the internal cause, then returns the user-safe sentinel with
// the cause preserved for errors.Unwrap.
func (s *ProfileService) failure(ctx context.Context, op string, sentinel, cause error) error {
	s.logger.ErrorContext(ctx, "profile operation failed", "op", op, "error", cause)
	return &profileError{sentinel: sentinel, cause: cause}
}

func userViewKey(id uuid.UUID) string {
	return "user:view:" + id.String()
}

// termsAccepted reports whether the metadata payload carries a truthy
// terms_and_cond entry.
func termsAccepted(meta map[string]any) bool {
	switch v := meta[models.TermsKey].(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "0" && v != "false"
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}
