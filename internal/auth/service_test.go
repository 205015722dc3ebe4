package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kinmelhq/kinmel-backend/internal/users"
	pkgAuth "github.com/kinmelhq/kinmel-backend/pkg/auth"
	"github.com/kinmelhq/kinmel-backend/pkg/config"
	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
	"github.com/kinmelhq/kinmel-backend/pkg/enums"
	pkgerrors "github.com/kinmelhq/kinmel-backend/pkg/errors"
	"github.com/kinmelhq/kinmel-backend/pkg/security"
)

type stubUserRepo struct {
	createFn      func(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	return s.createFn(ctx, dto)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findByEmailFn(ctx, email)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "kinmel-test",
		ExpirationMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "Buyer@Example.com",
		Password:  "hunter22",
		FirstName: "Asha",
		LastName:  "Shrestha",
		Gender:    "female",
		DOB:       "1994-03-21",
		Role:      "buyer",
	}
}

func TestRegisterNormalizesAndPersists(t *testing.T) {
	var captured users.CreateUserDTO
	repo := &stubUserRepo{
		createFn: func(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
			captured = dto
			return &models.User{
				ID:        uuid.New(),
				Email:     dto.Email,
				FirstName: dto.FirstName,
				LastName:  dto.LastName,
				Gender:    dto.Gender,
				DOB:       dto.DOB,
				Role:      dto.Role,
			}, nil
		},
	}

	svc := newTestService(t, repo)
	user, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	require.NotNil(t, user)

	require.Equal(t, "buyer@example.com", captured.Email)
	require.Equal(t, enums.RoleBuyer, captured.Role)
	require.Equal(t, enums.GenderFemale, captured.Gender)
	require.NotEqual(t, "hunter22", captured.PasswordHash)

	ok, err := security.VerifyPassword("hunter22", captured.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := &stubUserRepo{
		createFn: func(context.Context, users.CreateUserDTO) (*models.User, error) {
			return nil, errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
		},
	}

	svc := newTestService(t, repo)
	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestRegisterRejectsBadEnums(t *testing.T) {
	repo := &stubUserRepo{
		createFn: func(context.Context, users.CreateUserDTO) (*models.User, error) {
			t.Fatal("create should not be reached")
			return nil, nil
		},
	}
	svc := newTestService(t, repo)

	bad := validRegisterRequest()
	bad.Role = "admin"
	_, err := svc.Register(context.Background(), bad)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	bad = validRegisterRequest()
	bad.Gender = "other"
	_, err = svc.Register(context.Background(), bad)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	bad = validRegisterRequest()
	bad.DOB = "21/03/1994"
	_, err = svc.Register(context.Background(), bad)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoginMintsParsableToken(t *testing.T) {
	hash, err := security.HashPassword("hunter22", testPasswordConfig())
	require.NoError(t, err)

	userID := uuid.New()
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			require.Equal(t, "buyer@example.com", email)
			return &models.User{
				ID:           userID,
				Email:        email,
				PasswordHash: hash,
				Role:         enums.RoleBuyer,
			}, nil
		},
	}

	svc := newTestService(t, repo)
	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    " Buyer@Example.com ",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, enums.RoleBuyer, claims.Role)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	hash, err := security.HashPassword("hunter22", testPasswordConfig())
	require.NoError(t, err)

	repo := &stubUserRepo{
		findByEmailFn: func(context.Context, string) (*models.User, error) {
			return &models.User{
				ID:           uuid.New(),
				PasswordHash: hash,
				Role:         enums.RoleBuyer,
			}, nil
		},
	}

	svc := newTestService(t, repo)
	_, err = svc.Login(context.Background(), LoginRequest{Email: "buyer@example.com", Password: "nope"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	repo := &stubUserRepo{
		findByEmailFn: func(context.Context, string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := newTestService(t, repo)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}
