package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_storage "job-board-api/internal/mocks"
	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testJWTSecret  = "test-secret"
	testJWTExpiry  = time.Hour
	testRefreshTTL = 7 * 24 * time.Hour
)

func setupUserServiceTest(t *testing.T) (context.Context, services.UserService, *mock_storage.MockUserRepository, *mock_storage.MockSessionStore, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_storage.NewMockUserRepository(ctrl)
	mockSessions := mock_storage.NewMockSessionStore(ctrl)
	userService := services.NewUserService(mockRepo, mockSessions, testJWTSecret, testJWTExpiry, testRefreshTTL)
	ctx := context.Background()
	return ctx, userService, mockRepo, mockSessions, ctrl
}

func TestUserService_Register_Success(t *testing.T) {
	ctx, svc, mockRepo, _, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	req := &dto.CreateUserRequest{
		Name:     "Jordan Blake",
		Email:    "jordan@example.com",
		Password: "supersecret",
		Role:     models.RoleCandidate,
	}
	expected := &models.User{ID: uuid.New(), Name: req.Name, Email: req.Email, Role: models.RoleCandidate}

	mockRepo.EXPECT().Create(ctx, req).Return(expected, nil).Times(1)

	user, err := svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, expected, user)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	ctx, svc, mockRepo, _, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	req := &dto.CreateUserRequest{
		Name:     "Jordan Blake",
		Email:    "jordan@example.com",
		Password: "supersecret",
		Role:     models.RoleCandidate,
	}

	mockRepo.EXPECT().Create(ctx, req).Return(nil, storage.ErrDuplicateEmail).Times(1)

	_, err := svc.Register(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrConflict))
	assert.Contains(t, err.Error(), "email is already registered")
}

func TestUserService_Login_Success(t *testing.T) {
	ctx, svc, mockRepo, mockSessions, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	password := "supersecret"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Email:        "jordan@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCandidate,
	}
	req := &dto.LoginRequest{Email: user.Email, Password: password}

	mockRepo.EXPECT().GetByEmail(ctx, &dto.GetUserByEmailRequest{Email: user.Email}).Return(user, nil).Times(1)
	mockSessions.EXPECT().Save(ctx, gomock.Any(), user.ID, testRefreshTTL).Return(nil).Times(1)

	loggedIn, access, refresh, err := svc.Login(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, user, loggedIn)
	assert.NotEmpty(t, refresh)

	// The access token must be a valid HS256 JWT carrying the user ID.
	parsed, err := jwt.ParseWithClaims(access, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	ctx, svc, mockRepo, _, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "jordan@example.com", PasswordHash: string(hash)}
	req := &dto.LoginRequest{Email: user.Email, Password: "wrongpassword"}

	mockRepo.EXPECT().GetByEmail(ctx, &dto.GetUserByEmailRequest{Email: user.Email}).Return(user, nil).Times(1)

	_, _, _, err = svc.Login(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	ctx, svc, mockRepo, _, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	req := &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"}

	mockRepo.EXPECT().GetByEmail(ctx, &dto.GetUserByEmailRequest{Email: req.Email}).Return(nil, storage.ErrNotFound).Times(1)

	_, _, _, err := svc.Login(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
}

func TestUserService_Refresh_RotatesToken(t *testing.T) {
	ctx, svc, _, mockSessions, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	userID := uuid.New()
	oldToken := uuid.NewString()
	req := &dto.RefreshRequest{RefreshToken: oldToken}

	mockSessions.EXPECT().Get(ctx, oldToken).Return(userID, nil).Times(1)
	mockSessions.EXPECT().Delete(ctx, oldToken).Return(nil).Times(1)
	mockSessions.EXPECT().Save(ctx, gomock.Any(), userID, testRefreshTTL).Return(nil).Times(1)

	access, refresh, err := svc.Refresh(ctx, req)

	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, oldToken, refresh)
}

func TestUserService_Refresh_UnknownToken(t *testing.T) {
	ctx, svc, _, mockSessions, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	req := &dto.RefreshRequest{RefreshToken: "expired-or-bogus"}

	mockSessions.EXPECT().Get(ctx, req.RefreshToken).Return(uuid.Nil, storage.ErrNotFound).Times(1)

	_, _, err := svc.Refresh(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
}

func TestUserService_Logout_DeletesToken(t *testing.T) {
	ctx, svc, _, mockSessions, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	req := &dto.LogoutRequest{RefreshToken: uuid.NewString()}

	mockSessions.EXPECT().Delete(ctx, req.RefreshToken).Return(nil).Times(1)

	err := svc.Logout(ctx, req)

	require.NoError(t, err)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	ctx, svc, mockRepo, _, ctrl := setupUserServiceTest(t)
	defer ctrl.Finish()

	req := &dto.GetUserByIDRequest{ID: uuid.New()}

	mockRepo.EXPECT().GetByID(ctx, req).Return(nil, storage.ErrNotFound).Times(1)

	_, err := svc.GetByID(ctx, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}
