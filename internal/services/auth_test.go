package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func newAuthService(store *fakeStore) domain.AuthService {
	return NewAuthService(store.users, fakeHasher{}, fakeIssuer{}, time.Hour, time.Second)
}

func TestSignUp(t *testing.T) {
	t.Run("normalizes email and stores the hash", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthService(store)

		user, err := svc.SignUp(context.Background(), "  Alice@Example.COM ", "longenough", " Alice ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "salt:longenough", user.PasswordHash)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthService(store)

		_, err := svc.SignUp(context.Background(), "not-an-email", "longenough", "Alice")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects short password", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthService(store)

		_, err := svc.SignUp(context.Background(), "alice@example.com", "short", "Alice")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthService(store)

		_, err := svc.SignUp(context.Background(), "alice@example.com", "longenough", "Alice")
		require.NoError(t, err)
		_, err = svc.SignUp(context.Background(), "alice@example.com", "longenough", "Impostor")
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestLogin(t *testing.T) {
	seed := func() *fakeStore {
		store := newFakeStore()
		svc := newAuthService(store)
		_, err := svc.SignUp(context.Background(), "alice@example.com", "longenough", "Alice")
		if err != nil {
			t.Fatalf("seed user: %v", err)
		}
		return store
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		store := seed()
		svc := newAuthService(store)

		token, user, err := svc.Login(context.Background(), "Alice@Example.com", "longenough")
		require.NoError(t, err)
		assert.Equal(t, "token-for-"+user.ID, token)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		store := seed()
		svc := newAuthService(store)

		_, _, err := svc.Login(context.Background(), "alice@example.com", "wrongpassword")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unknown email folds into unauthenticated", func(t *testing.T) {
		store := seed()
		svc := newAuthService(store)

		_, _, err := svc.Login(context.Background(), "nobody@example.com", "longenough")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
