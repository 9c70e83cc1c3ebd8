package users

import (
	"context"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/bonevet/inventory/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, u NewUser) (int64, error)
	Deactivate(ctx context.Context, id int64) error
	UpdateName(ctx context.Context, id int64, name string) error
	CredentialHash(ctx context.Context, id int64) (string, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// AuditPort records user management actions.
type AuditPort interface {
	Record(ctx context.Context, entry shared.AuditEntry) error
}

// Service handles user management business logic.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// FindByID returns one user.
func (s *Service) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateUser hashes the password and stores the account.
func (s *Service) CreateUser(ctx context.Context, actorID int64, name, email, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateUser(ctx, NewUser{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		return 0, err
	}
	s.recordAudit(ctx, actorID, "user.create", id, map[string]any{"email": email})
	return id, nil
}

// Deactivate disables an account without deleting it.
func (s *Service) Deactivate(ctx context.Context, actorID, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "user.deactivate", id, nil)
	return nil
}

// Rename updates the display name on the user's own profile.
func (s *Service) Rename(ctx context.Context, id int64, name string) error {
	if err := s.repo.UpdateName(ctx, id, name); err != nil {
		return err
	}
	s.recordAudit(ctx, id, "user.rename", id, map[string]any{"name": name})
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, id int64, current, next string) error {
	hash, err := s.repo.CredentialHash(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)); err != nil {
		return shared.ErrInvalidCredentials
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, string(newHash)); err != nil {
		return err
	}
	s.recordAudit(ctx, id, "user.password_change", id, nil)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Entity:   "user",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
}
