package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"volleytrack/training-app/internal/domain"
	"volleytrack/training-app/internal/repository"
	"volleytrack/training-app/internal/service"
)

type mockUserRepo struct {
	createFn     func(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if m.createFn == nil {
		return primitive.NewObjectID(), nil
	}
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if m.getByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByIDFn(ctx, id)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := service.NewAuthService(&mockUserRepo{}, "test-secret", 0)

	_, err := svc.Register(context.Background(), "Mika", "mika@example.com", "aaaaaaaa", domain.RolePlayer)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPasswordTooWeak)

	var weak *service.WeakPasswordError
	require.ErrorAs(t, err, &weak)
	assert.NotEmpty(t, weak.Strength.Suggestions)
}

func TestRegisterHashesAndStripsPassword(t *testing.T) {
	var stored *domain.User
	repo := &mockUserRepo{createFn: func(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
		stored = user
		return primitive.NewObjectID(), nil
	}}

	svc := service.NewAuthService(repo, "test-secret", 0)
	user, err := svc.Register(context.Background(), "Mika", "mika@example.com", "Tr0ub4dor&3", domain.RolePlayer)
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Tr0ub4dor&3")))
	assert.Empty(t, user.PasswordHash) // never returned to callers
	assert.Equal(t, domain.RolePlayer, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{Email: email}, nil
	}}

	svc := service.NewAuthService(repo, "test-secret", 0)
	_, err := svc.Register(context.Background(), "Mika", "mika@example.com", "Tr0ub4dor&3", domain.RolePlayer)
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Tr0ub4dor&3"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &domain.User{
		ID:           primitive.NewObjectID(),
		Email:        "mika@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	repo := &mockUserRepo{getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
		if email != account.Email {
			return nil, repository.ErrNotFound
		}
		clone := *account
		return &clone, nil
	}}

	svc := service.NewAuthService(repo, "test-secret", 0)

	t.Run("valid credentials", func(t *testing.T) {
		token, user, err := svc.Login(context.Background(), account.Email, "Tr0ub4dor&3")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), account.Email, "wrong-password")
		assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "Tr0ub4dor&3")
		assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	})
}
