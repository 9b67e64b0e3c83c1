package service

import (
	"fmt"
	"sync"
	"testing"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) AuthService {
	return NewAuthService(repository.NewUserRepo(db), db)
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	alice, err := svc.Register("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, alice.Role)

	bob, err := svc.Register("bob", "secret123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, bob.Role)
}

func TestRegisterConcurrentFirstUsersSingleAdmin(t *testing.T) {
	db := newTestDB(t)
	// sqlite allows one writer at a time; cap the pool so concurrent
	// transactions queue instead of failing with lock errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	svc := newAuthService(db)

	const racers = 5
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Register(fmt.Sprintf("user%d", i), "secret123")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	var admins int64
	require.NoError(t, db.Model(&model.User{}).
		Where("role = ?", model.RoleAdmin).
		Count(&admins).Error)
	assert.EqualValues(t, 1, admins, "exactly one of the simultaneous registrations gets admin")
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("alice", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register("alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Register("alice", "otherpass")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register("alice", "abc")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLoginGenericFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register("alice", "secret123")
	require.NoError(t, err)

	// Unknown user and wrong password are indistinguishable.
	_, unknownErr := svc.Login("nobody", "secret123")
	_, wrongPassErr := svc.Login("alice", "wrongpass")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register("alice", "secret123")
	require.NoError(t, err)

	resp, err := svc.Login("alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
}
