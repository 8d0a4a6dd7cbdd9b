package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifequest/platform/internal/domain"
)

func newTestJWTManager() *JWTManager {
	return NewJWTManager("test-secret-key", 24*time.Hour)
}

func TestGenerateAndParse(t *testing.T) {
	mgr := newTestJWTManager()
	user := &domain.User{ID: uuid.New(), Role: domain.RoleUser}

	token, err := mgr.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, userID, err := mgr.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestAdminRoleSurvivesRoundTrip(t *testing.T) {
	mgr := newTestJWTManager()
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	token, err := mgr.Generate(admin)
	require.NoError(t, err)

	claims, _, err := mgr.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestInvalidSecretRejected(t *testing.T) {
	mgr1 := NewJWTManager("secret-1", 24*time.Hour)
	mgr2 := NewJWTManager("secret-2", 24*time.Hour)

	token, err := mgr1.Generate(&domain.User{ID: uuid.New(), Role: domain.RoleUser})
	require.NoError(t, err)

	_, _, err = mgr2.Parse(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	mgr := NewJWTManager("secret", 1*time.Millisecond)

	token, err := mgr.Generate(&domain.User{ID: uuid.New(), Role: domain.RoleUser})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, _, err = mgr.Parse(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	mgr := newTestJWTManager()
	_, _, err := mgr.Parse("not-a-token")
	require.Error(t, err)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
