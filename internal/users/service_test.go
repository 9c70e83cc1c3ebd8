package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bonevet/inventory/internal/shared"
)

type memoryRepo struct {
	users  map[int64]User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]User)}
}

func (r *memoryRepo) ListUsers(ctx context.Context) ([]User, error) {
	var all []User
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (r *memoryRepo) CreateUser(ctx context.Context, u NewUser) (int64, error) {
	r.nextID++
	r.users[r.nextID] = User{
		ID: r.nextID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
		IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	return r.nextID, nil
}

func (r *memoryRepo) Deactivate(ctx context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.IsActive = false
	r.users[id] = u
	return nil
}

func (r *memoryRepo) UpdateName(ctx context.Context, id int64, name string) error {
	u, ok := r.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.Name = name
	r.users[id] = u
	return nil
}

func (r *memoryRepo) CredentialHash(ctx context.Context, id int64) (string, error) {
	u, ok := r.users[id]
	if !ok {
		return "", shared.ErrNotFound
	}
	return u.PasswordHash, nil
}

func (r *memoryRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, 1, "Drita", "drita@bonevet.org", "supersecret")
	require.NoError(t, err)

	u, err := svc.FindByID(ctx, id)
	require.NoError(t, err)
	require.True(t, u.IsActive)
	require.NotEqual(t, "supersecret", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("supersecret")))
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, 1, "Drita", "drita@bonevet.org", "oldpassword")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, id, "wrongpassword", "newpassword1")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, id, "oldpassword", "newpassword1"))

	hash, err := repo.CredentialHash(ctx, id)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword1")))
}

func TestDeactivate(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, 1, "Drita", "drita@bonevet.org", "supersecret")
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, 1, id))
	u, err := svc.FindByID(ctx, id)
	require.NoError(t, err)
	require.False(t, u.IsActive)

	require.ErrorIs(t, svc.Deactivate(ctx, 1, 99), shared.ErrNotFound)
}

func TestRename(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, 1, "Drita", "drita@bonevet.org", "supersecret")
	require.NoError(t, err)

	require.NoError(t, svc.Rename(ctx, id, "Drita K."))
	u, err := svc.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Drita K.", u.Name)
}
