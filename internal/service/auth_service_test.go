package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/internal/core/ports/mocks"
	"fundraiser-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authServiceMocks struct {
	userRepo   *mocks.MockUserRepository
	hashSvc    *mocks.MockHashService
	tokenSvc   *mocks.MockTokenService
	otpStore   *mocks.MockOTPStore
	resetStore *mocks.MockOTPStore
	sessions   *mocks.MockSessionStore
	mailer     *mocks.MockMailer
}

func setupAuthService(t *testing.T) (*AuthService, authServiceMocks) {
	ctrl := gomock.NewController(t)
	m := authServiceMocks{
		userRepo:   mocks.NewMockUserRepository(ctrl),
		hashSvc:    mocks.NewMockHashService(ctrl),
		tokenSvc:   mocks.NewMockTokenService(ctrl),
		otpStore:   mocks.NewMockOTPStore(ctrl),
		resetStore: mocks.NewMockOTPStore(ctrl),
		sessions:   mocks.NewMockSessionStore(ctrl),
		mailer:     mocks.NewMockMailer(ctrl),
	}

	svc := NewAuthService(m.userRepo, m.hashSvc, m.tokenSvc, m.otpStore, m.resetStore, m.sessions, m.mailer, zerolog.Nop())
	return svc, m
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	req := ports.RegisterRequest{
		Email:     "ada@example.com",
		Password:  "StrongP@ss123",
		FirstName: "Ada",
		LastName:  "Obi",
	}

	// Expect: duplicate check
	m.userRepo.EXPECT().GetByEmail(ctx, req.Email).Return(nil, nil)
	// Expect: hash password
	m.hashSvc.EXPECT().Hash(req.Password).Return("$argon2id$hashed", nil)
	// Expect: create user
	m.userRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	// Expect: store and deliver OTP
	m.otpStore.EXPECT().Store(ctx, req.Email, gomock.Any(), 10*time.Minute).Return(nil)
	m.mailer.EXPECT().SendOTP(req.Email, gomock.Any()).Return(nil)

	user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "$argon2id$hashed", user.PasswordHash)
	assert.False(t, user.EmailVerified)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	existing := &domain.User{Email: "ada@example.com"}
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(existing, nil)

	user, err := svc.Register(ctx, ports.RegisterRequest{Email: "ada@example.com", Password: "pw"})
	assert.Nil(t, user)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_004", appErr.Code)
}

func TestAuthService_Register_DuplicateRace(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(nil, nil)
	m.hashSvc.EXPECT().Hash("pw").Return("$argon2id$hashed", nil)
	// Concurrent registration wins the insert; the constraint reports it.
	m.userRepo.EXPECT().Create(ctx, gomock.Any()).Return(ports.ErrUniqueViolation)

	_, err := svc.Register(ctx, ports.RegisterRequest{Email: "ada@example.com", Password: "pw"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_004", appErr.Code)
}

func TestAuthService_Register_MailFailureDoesNotFail(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(nil, nil)
	m.hashSvc.EXPECT().Hash("pw").Return("$argon2id$hashed", nil)
	m.userRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	m.otpStore.EXPECT().Store(ctx, "ada@example.com", gomock.Any(), 10*time.Minute).Return(nil)
	m.mailer.EXPECT().SendOTP("ada@example.com", gomock.Any()).Return(errors.New("smtp down"))

	user, err := svc.Register(ctx, ports.RegisterRequest{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, user)
}

func TestAuthService_VerifyEmail_Success(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "ada@example.com"}

	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.otpStore.EXPECT().Consume(ctx, "ada@example.com", "123456").Return(true, nil)
	m.userRepo.EXPECT().MarkEmailVerified(ctx, userID).Return(nil)

	err := svc.VerifyEmail(ctx, "ada@example.com", "123456")
	require.NoError(t, err)
}

func TestAuthService_VerifyEmail_AlreadyVerified(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com", EmailVerified: true}
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)

	// Idempotent: no OTP consumed, no error.
	err := svc.VerifyEmail(ctx, "ada@example.com", "123456")
	require.NoError(t, err)
}

func TestAuthService_VerifyEmail_WrongCode(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com"}
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.otpStore.EXPECT().Consume(ctx, "ada@example.com", "000000").Return(false, nil)

	err := svc.VerifyEmail(ctx, "ada@example.com", "000000")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_003", appErr.Code)
}

func TestAuthService_VerifyEmail_UserNotFound(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	m.userRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, nil)

	err := svc.VerifyEmail(ctx, "ghost@example.com", "123456")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "RES_001", appErr.Code)
}

func TestAuthService_ResendOTP_Success(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com"}

	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.otpStore.EXPECT().Store(ctx, "ada@example.com", gomock.Any(), 10*time.Minute).Return(nil)
	m.mailer.EXPECT().SendOTP("ada@example.com", gomock.Any()).Return(nil)

	err := svc.ResendOTP(ctx, "ada@example.com")
	require.NoError(t, err)
}

func TestAuthService_ResendOTP_UserNotFound(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	m.userRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, nil)

	err := svc.ResendOTP(ctx, "ghost@example.com")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "RES_001", appErr.Code)
}

func TestAuthService_ResendOTP_AlreadyVerified(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com", EmailVerified: true}
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)

	// No code issued, no mail sent.
	err := svc.ResendOTP(ctx, "ada@example.com")
	require.NoError(t, err)
}

func TestAuthService_ResendOTP_MailFailureFails(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com"}

	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.otpStore.EXPECT().Store(ctx, "ada@example.com", gomock.Any(), 10*time.Minute).Return(nil)
	m.mailer.EXPECT().SendOTP("ada@example.com", gomock.Any()).Return(errors.New("smtp down"))

	// A resend exists only to deliver mail, so delivery failure surfaces.
	err := svc.ResendOTP(ctx, "ada@example.com")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &domain.User{
		ID:            userID,
		Email:         "ada@example.com",
		PasswordHash:  "$argon2id$hashed",
		EmailVerified: true,
	}
	expiry := time.Now().Add(24 * time.Hour)

	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.hashSvc.EXPECT().Verify("correct_password", "$argon2id$hashed").Return(true, nil)
	m.tokenSvc.EXPECT().Generate(userID, "ada@example.com").Return("jwt_token_here", expiry, nil)

	token, expiresAt, err := svc.Login(ctx, "ada@example.com", "correct_password")
	require.NoError(t, err)
	assert.Equal(t, "jwt_token_here", token)
	assert.Equal(t, expiry, expiresAt)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	m.userRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, nil)

	_, _, err := svc.Login(ctx, "ghost@example.com", "password")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_001", appErr.Code)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: "$argon2id$hashed", EmailVerified: true}
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.hashSvc.EXPECT().Verify("wrong_password", "$argon2id$hashed").Return(false, nil)

	_, _, err := svc.Login(ctx, "ada@example.com", "wrong_password")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_001", appErr.Code)
}

func TestAuthService_Login_EmailNotVerified(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: "$argon2id$hashed"}
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.hashSvc.EXPECT().Verify("correct_password", "$argon2id$hashed").Return(true, nil)

	_, _, err := svc.Login(ctx, "ada@example.com", "correct_password")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_005", appErr.Code)
}

func TestAuthService_Logout_Success(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	expiresAt := time.Now().Add(2 * time.Hour)

	m.tokenSvc.EXPECT().Validate("good-token").Return(&ports.TokenClaims{
		UserID:    userID,
		Email:     "ada@example.com",
		ExpiresAt: expiresAt,
	}, nil)
	m.sessions.EXPECT().Revoke(ctx, "good-token", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, ttl time.Duration) error {
			// Revocation outlives the token by at most scheduling slack.
			assert.InDelta(t, (2 * time.Hour).Seconds(), ttl.Seconds(), 5)
			return nil
		})

	err := svc.Logout(ctx, "good-token")
	require.NoError(t, err)
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	m.tokenSvc.EXPECT().Validate("garbage").Return(nil, errors.New("bad token"))

	err := svc.Logout(ctx, "garbage")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_002", appErr.Code)
}

func TestAuthService_RequestPasswordReset_KnownEmail(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com", EmailVerified: true}

	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.resetStore.EXPECT().Store(ctx, "ada@example.com", gomock.Any(), 15*time.Minute).Return(nil)
	m.mailer.EXPECT().SendPasswordReset("ada@example.com", gomock.Any()).Return(nil)

	err := svc.RequestPasswordReset(ctx, "ada@example.com")
	require.NoError(t, err)
}

func TestAuthService_RequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	// Same outcome as a known address so callers cannot enumerate accounts.
	m.userRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, nil)

	err := svc.RequestPasswordReset(ctx, "ghost@example.com")
	require.NoError(t, err)
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "ada@example.com", EmailVerified: true}

	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.resetStore.EXPECT().Consume(ctx, "ada@example.com", "123456").Return(true, nil)
	m.hashSvc.EXPECT().Hash("NewStr0ngP@ss").Return("$argon2id$newhash", nil)
	m.userRepo.EXPECT().UpdatePassword(ctx, userID, "$argon2id$newhash").Return(nil)

	err := svc.ResetPassword(ctx, "ada@example.com", "123456", "NewStr0ngP@ss")
	require.NoError(t, err)
}

func TestAuthService_ResetPassword_WrongCode(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com"}
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	m.resetStore.EXPECT().Consume(ctx, "ada@example.com", "000000").Return(false, nil)

	err := svc.ResetPassword(ctx, "ada@example.com", "000000", "NewStr0ngP@ss")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_003", appErr.Code)
}

func TestAuthService_ResetPassword_UnknownEmail(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	m.userRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, nil)

	// Indistinguishable from a wrong code.
	err := svc.ResetPassword(ctx, "ghost@example.com", "123456", "NewStr0ngP@ss")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_003", appErr.Code)
}

func TestAuthService_ResetPassword_VerificationCodeRejected(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com"}
	m.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(user, nil)
	// Only the reset store is consulted; an email verification code in
	// the other store cannot reset a password.
	m.resetStore.EXPECT().Consume(ctx, "ada@example.com", "654321").Return(false, nil)

	err := svc.ResetPassword(ctx, "ada@example.com", "654321", "NewStr0ngP@ss")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_003", appErr.Code)
}

func TestAuthService_Profile_Success(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "ada@example.com", FirstName: "Ada", LastName: "Obi", EmailVerified: true}

	m.userRepo.EXPECT().GetByID(ctx, userID).Return(user, nil)

	got, err := svc.Profile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestAuthService_Profile_NotFound(t *testing.T) {
	svc, m := setupAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	m.userRepo.EXPECT().GetByID(ctx, userID).Return(nil, nil)

	_, err := svc.Profile(ctx, userID)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "RES_001", appErr.Code)
}

func TestGenerateOTP_SixDigits(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
