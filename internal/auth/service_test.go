package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinebook/internal/shared/config"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeAuthStore keeps users and reset tokens in memory.
type fakeAuthStore struct {
	users  map[string]*users.User // by email
	resets map[string]*PasswordReset
	now    time.Time

	failPasswordWrite bool
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{
		users:  make(map[string]*users.User),
		resets: make(map[string]*PasswordReset),
		now:    time.Now(),
	}
}

func (f *fakeAuthStore) CreateUser(ctx context.Context, user *users.User) error {
	user.ID = uuid.New()
	f.users[user.Email] = user
	return nil
}

func (f *fakeAuthStore) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeAuthStore) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	for _, u := range f.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeAuthStore) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	for _, u := range f.users {
		if u.ID.String() == userID {
			u.Password = hashedPassword
			return nil
		}
	}
	return ErrUserNotFound
}

func (f *fakeAuthStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeAuthStore) CreatePasswordReset(ctx context.Context, reset *PasswordReset) error {
	reset.ID = uuid.New()
	f.resets[reset.Token] = reset
	return nil
}

func (f *fakeAuthStore) GetPasswordResetByToken(ctx context.Context, token string) (*PasswordReset, error) {
	r, ok := f.resets[token]
	if !ok || !r.Usable(f.now) {
		return nil, ErrInvalidResetToken
	}
	return r, nil
}

// ConsumeResetAndUpdatePassword mirrors the real transaction: either the
// token burn and the password write both land, or neither does.
func (f *fakeAuthStore) ConsumeResetAndUpdatePassword(ctx context.Context, resetID string, email string, hashedPassword string) error {
	var reset *PasswordReset
	for _, r := range f.resets {
		if r.ID.String() == resetID {
			reset = r
			break
		}
	}
	if reset == nil || reset.Used {
		return ErrInvalidResetToken
	}

	u, ok := f.users[email]
	if !ok {
		return ErrUserNotFound
	}
	if f.failPasswordWrite {
		return errors.New("write failed")
	}

	reset.Used = true
	u.Password = hashedPassword
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.JWTExpiresIn = 15 * time.Minute
	cfg.JWT.RefreshExpiresIn = 7 * 24 * time.Hour
	cfg.Booking.ResetTokenTTL = time.Hour
	return cfg
}

func newAuthFixture(t *testing.T) (Service, *fakeAuthStore) {
	t.Helper()
	store := newFakeAuthStore()
	return NewService(store, testConfig()), store
}

func registerUser(t *testing.T, svc Service, email string) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	svc, store := newAuthFixture(t)

	resp := registerUser(t, svc, "user@example.com")
	assert.Equal(t, "USER", resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The stored password is hashed, never plaintext.
	stored := store.users["user@example.com"]
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))

	login, err := svc.Login(context.Background(), &LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email and bad password are indistinguishable")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	registerUser(t, svc, "dup@example.com")
	_, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Other", LastName: "User", Email: "dup@example.com", Password: "password456",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp := registerUser(t, svc, "refresh@example.com")

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token cannot be used as a refresh token.
	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenClaims(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp := registerUser(t, svc, "claims@example.com")

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "claims@example.com", claims.Email)
}

func TestRequestPasswordResetDoesNotLeakAccounts(t *testing.T) {
	svc, store := newAuthFixture(t)
	registerUser(t, svc, "known@example.com")

	known, err := svc.RequestPasswordReset(context.Background(), "known@example.com")
	require.NoError(t, err)

	unknown, err := svc.RequestPasswordReset(context.Background(), "unknown@example.com")
	require.NoError(t, err)

	// Byte-identical responses either way.
	assert.Equal(t, known, unknown)

	// But only the known address got a token.
	assert.Len(t, store.resets, 1)
	for _, r := range store.resets {
		assert.Equal(t, "known@example.com", r.Email)
		assert.False(t, r.Used)
		assert.WithinDuration(t, time.Now().Add(time.Hour), r.ExpiresAt, 5*time.Second)
	}
}

func TestResetPasswordHappyPath(t *testing.T) {
	svc, store := newAuthFixture(t)
	registerUser(t, svc, "reset@example.com")

	_, err := svc.RequestPasswordReset(context.Background(), "reset@example.com")
	require.NoError(t, err)

	var token string
	for tok := range store.resets {
		token = tok
	}

	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{Token: token, NewPassword: "newpassword1"})
	require.NoError(t, err)

	// Old password no longer works, the new one does.
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "reset@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "reset@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestResetPasswordFailedWriteKeepsTokenUsable(t *testing.T) {
	svc, store := newAuthFixture(t)
	registerUser(t, svc, "reset@example.com")

	_, err := svc.RequestPasswordReset(context.Background(), "reset@example.com")
	require.NoError(t, err)

	var token string
	for tok := range store.resets {
		token = tok
	}

	// A failure while rewriting the password must roll the token burn back.
	store.failPasswordWrite = true
	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{Token: token, NewPassword: "newpassword1"})
	require.Error(t, err)
	assert.False(t, store.resets[token].Used, "token must survive a failed password write")

	// The retry with the same token succeeds.
	store.failPasswordWrite = false
	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{Token: token, NewPassword: "newpassword1"})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "reset@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestResetPasswordTokenIsSingleUse(t *testing.T) {
	svc, store := newAuthFixture(t)
	registerUser(t, svc, "once@example.com")

	_, err := svc.RequestPasswordReset(context.Background(), "once@example.com")
	require.NoError(t, err)

	var token string
	for tok := range store.resets {
		token = tok
	}

	require.NoError(t, svc.ResetPassword(context.Background(), &ResetPasswordRequest{Token: token, NewPassword: "first-new-pw"}))

	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{Token: token, NewPassword: "second-new-pw"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// The first reset stands.
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "once@example.com", Password: "first-new-pw"})
	assert.NoError(t, err)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, store := newAuthFixture(t)
	registerUser(t, svc, "late@example.com")

	_, err := svc.RequestPasswordReset(context.Background(), "late@example.com")
	require.NoError(t, err)

	// Push the clock past the one-hour window.
	store.now = store.now.Add(2 * time.Hour)

	var token string
	for tok := range store.resets {
		token = tok
	}

	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{Token: token, NewPassword: "too-late-pw"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordBogusToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.ResetPassword(context.Background(), &ResetPasswordRequest{Token: "deadbeef", NewPassword: "whatever1"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	resp := registerUser(t, svc, "change@example.com")

	err := svc.ChangePassword(context.Background(), resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newpassword1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "password123", NewPassword: "newpassword1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "change@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
}
