package account

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/examportal/backend/internal/auth"
	"github.com/examportal/backend/internal/db"
)

func newTestService(t *testing.T) (*Service, *auth.TokenService) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })

	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewService(NewSQLStore(dbh), tokens, bcrypt.MinCost), tokens
}

func TestRegister(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	firstToken, _, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Other Alice", "alice@example.com", "different")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// the first registration's token is unaffected
	_, err = tokens.Verify(firstToken)
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, "Bob", "bob@example.com", "secret99")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "bob@example.com", "secret99")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "Bob", user.Name)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Bob", "bob@example.com", "secret99")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "bob@example.com", "nope")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret99")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}
