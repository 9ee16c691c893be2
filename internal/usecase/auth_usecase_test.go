package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *RefreshTokenRepoMock) Revoke(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *RefreshTokenRepoMock) DeleteByID(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

// passAllValidator keeps validation out of the usecase tests.
type passAllValidator struct{}

func (passAllValidator) ValidateRegister(ctx context.Context, username, email, password string) error {
	return nil
}
func (passAllValidator) ValidateLogin(ctx context.Context, email, password string) error { return nil }
func (passAllValidator) ValidateRefresh(ctx context.Context, refreshToken, userAgent string) error {
	return nil
}

func newAuthFixture() (*usecase.AuthUsecase, *UserRepoMock, *RefreshTokenRepoMock) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	cfg := config.Config{JWTSecret: "test-secret"}
	uc := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, passAllValidator{})
	return uc, userRepo, rtRepo
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAuthRegister_StoresHashNotPlaintext(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		if u.PasswordHash == "secret-password" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-password")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 42
	}).Return(nil)

	out, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.User.ID)
	assert.Equal(t, "dana", out.User.Username)
	userRepo.AssertExpectations(t)
}

func TestAuthRegister_DuplicateIsConflict(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	userRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, usecase.ErrConflict)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	userRepo.On("FindByEmail", mock.Anything, "dana@example.com").Return(&model.User{
		ID:           42,
		Email:        "dana@example.com",
		PasswordHash: hashPassword(t, "right-password"),
		IsActive:     true,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "dana@example.com",
		Password: "wrong-password",
	}, "ua")

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestAuthLogin_InactiveAccount(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	userRepo.On("FindByEmail", mock.Anything, "dana@example.com").Return(&model.User{
		ID:           42,
		PasswordHash: hashPassword(t, "secret-password"),
		IsActive:     false,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "dana@example.com",
		Password: "secret-password",
	}, "ua")

	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestAuthLogin_IssuesTokenPairWithoutRoleClaim(t *testing.T) {
	uc, userRepo, rtRepo := newAuthFixture()

	userRepo.On("FindByEmail", mock.Anything, "dana@example.com").Return(&model.User{
		ID:           42,
		Username:     "dana",
		Email:        "dana@example.com",
		PasswordHash: hashPassword(t, "secret-password"),
		TokenVersion: 3,
		IsActive:     true,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	var storedHash string
	rtRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		storedHash = rt.TokenHash
		return rt.UserID == 42 && rt.TokenHash != "" && rt.ExpiresAt.After(time.Now())
	})).Return(nil)

	res, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "dana@example.com",
		Password: "secret-password",
	}, "ua")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.RefreshTokenPlain)
	// only the hash is persisted
	assert.NotEqual(t, res.RefreshTokenPlain, storedHash)

	token, err := jwt.Parse(res.Body.Token.AccessToken, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, float64(3), claims["tv"])
	// roles live in the group directory, never in the token
	_, hasRole := claims["role"]
	assert.False(t, hasRole)
}

func TestAuthRefresh_RotatesToken(t *testing.T) {
	uc, userRepo, rtRepo := newAuthFixture()

	rtRepo.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    42,
		UserAgent: "ua",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	userRepo.On("FindByID", mock.Anything, int64(42)).Return(&model.User{ID: 42, IsActive: true}, nil)
	rtRepo.On("MarkUsed", mock.Anything, "rt-1").Return(nil)
	rtRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		return rt.ID != "rt-1" && rt.UserID == 42
	})).Return(nil)

	res, err := uc.Refresh(context.Background(), "old-plain-token", "ua")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.RefreshTokenPlain)
	assert.NotEqual(t, "old-plain-token", res.RefreshTokenPlain)
	rtRepo.AssertExpectations(t)
}

func TestAuthRefresh_ReplayDropsAllSessions(t *testing.T) {
	uc, _, rtRepo := newAuthFixture()

	used := time.Now().Add(-time.Minute)
	rtRepo.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    42,
		UsedAt:    &used,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	rtRepo.On("DeleteAllByUserID", mock.Anything, int64(42)).Return(nil)

	_, err := uc.Refresh(context.Background(), "replayed-token", "ua")

	assert.ErrorIs(t, err, usecase.ErrSecurityIncident)
	rtRepo.AssertCalled(t, "DeleteAllByUserID", mock.Anything, int64(42))
}

func TestAuthRefresh_UserAgentMismatchDropsAllSessions(t *testing.T) {
	uc, _, rtRepo := newAuthFixture()

	rtRepo.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    42,
		UserAgent: "original-ua",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	rtRepo.On("DeleteAllByUserID", mock.Anything, int64(42)).Return(nil)

	_, err := uc.Refresh(context.Background(), "plain-token", "different-ua")

	assert.ErrorIs(t, err, usecase.ErrSecurityIncident)
}

func TestAuthRefresh_ExpiredTokenIsDeleted(t *testing.T) {
	uc, _, rtRepo := newAuthFixture()

	rtRepo.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    42,
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	rtRepo.On("DeleteByID", mock.Anything, "rt-1").Return(nil)

	_, err := uc.Refresh(context.Background(), "plain-token", "ua")

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	rtRepo.AssertCalled(t, "DeleteByID", mock.Anything, "rt-1")
}

func TestAuthLogout_DeletesSession(t *testing.T) {
	uc, _, rtRepo := newAuthFixture()

	rtRepo.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{ID: "rt-1", UserID: 42}, nil)
	rtRepo.On("DeleteByID", mock.Anything, "rt-1").Return(nil)

	out, err := uc.Logout(context.Background(), "plain-token")

	assert.NoError(t, err)
	assert.Equal(t, "successfully logged out", out.Message)
	rtRepo.AssertExpectations(t)
}
