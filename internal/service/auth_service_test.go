package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"auralearn/internal/config"
	"auralearn/internal/domain"
	"auralearn/internal/dto"
	"auralearn/internal/util"
	"auralearn/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret-key-for-auth-service",
			AccessTokenTTL: time.Hour,
		},
	}
}

func newTestAuthService(t *testing.T, repo domain.UserRepository) AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, testAuthConfig())
	assert.NoError(t, err)
	return svc
}

func hashedUser(t *testing.T, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return domain.NewUser(util.NewULID(), "Test User", email, string(hash), role)
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWT.SecretKey = ""
	_, err := NewAuthService(new(MockUserRepository), cfg)
	assert.Error(t, err)
}

func TestSignup_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestAuthService(t, mockRepo)

	var created *domain.User
	mockRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
		}).
		Return(nil).Once()

	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:            "Ann Lee",
		Email:           " Ann@X.com ",
		Password:        "Abc12345!",
		ConfirmPassword: "Abc12345!",
		Role:            "teacher",
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	mockRepo.AssertExpectations(t)

	// Email is stored normalized and the password never is.
	assert.Equal(t, "ann@x.com", created.Email)
	assert.NotEqual(t, "Abc12345!", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Abc12345!")))

	// The session view carries no credential material.
	assert.Equal(t, created.ID, resp.Session.ID)
	assert.Equal(t, "ann@x.com", resp.Session.Email)
	assert.Equal(t, "teacher", resp.Session.Role)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestSignup_ValidationFailuresSkipStore(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestAuthService(t, mockRepo)

	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:            "A",
		Email:           "not-an-email",
		Password:        "weak",
		ConfirmPassword: "different",
		Role:            "admin",
	})

	assert.Nil(t, resp)
	var validationErrs domain.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))
	assert.Len(t, validationErrs, 5)
	mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestAuthService(t, mockRepo)

	mockRepo.On("CreateUser", mock.Anything, mock.Anything).
		Return(domain.NewDuplicateEmailError("ann@x.com")).Once()

	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:            "Ann Lee",
		Email:           "ann@x.com",
		Password:        "Abc12345!",
		ConfirmPassword: "Abc12345!",
		Role:            "student",
	})

	assert.Nil(t, resp)
	var validationErrs domain.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))
	assert.Len(t, validationErrs, 1)
	assert.Equal(t, "email", validationErrs[0].Field)
	assert.Equal(t, domain.CodeEmailAlreadyRegistered, validationErrs[0].Code)
	mockRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestAuthService(t, mockRepo)

	user := hashedUser(t, "ann@x.com", "Abc12345!", domain.RoleStudent)
	mockRepo.On("GetUserByEmail", mock.Anything, "ann@x.com").Return(user, nil).Once()

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    " Ann@X.com ", // normalized before lookup
		Password: "Abc12345!",
		Role:     "student",
	})

	assert.NoError(t, err)
	assert.Equal(t, user.ID, resp.Session.ID)
	assert.NotEmpty(t, resp.AccessToken)
	mockRepo.AssertExpectations(t)
}

func TestLogin_AccountNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestAuthService(t, mockRepo)

	mockRepo.On("GetUserByEmail", mock.Anything, "ghost@x.com").Return(nil, nil).Once()

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@x.com",
		Password: "whatever",
		Role:     "teacher",
	})

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeAccountNotFound, domainErr.Code)
	assert.Contains(t, domainErr.Message, "ghost@x.com")
	mockRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestAuthService(t, mockRepo)

	// Wrong role AND wrong password: the password check comes first.
	user := hashedUser(t, "ann@x.com", "Abc12345!", domain.RoleTeacher)
	mockRepo.On("GetUserByEmail", mock.Anything, "ann@x.com").Return(user, nil).Once()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ann@x.com",
		Password: "Wrong1234!",
		Role:     "student",
	})

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidCredentials, domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestLogin_RoleMismatch(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestAuthService(t, mockRepo)

	user := hashedUser(t, "ann@x.com", "Abc12345!", domain.RoleTeacher)
	mockRepo.On("GetUserByEmail", mock.Anything, "ann@x.com").Return(user, nil).Once()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ann@x.com",
		Password: "Abc12345!",
		Role:     "student",
	})

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeRoleMismatch, domainErr.Code)
	// The message names the account's actual role for the UI.
	assert.Contains(t, domainErr.Message, "teacher")
	mockRepo.AssertExpectations(t)
}

func TestCreateAndValidateJWT(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))
	ctx := context.Background()

	token, err := svc.CreateJWT(ctx, "user-123", time.Hour, "access")
	assert.NoError(t, err)

	claims, err := svc.ValidateJWT(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateJWT_Expired(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))
	ctx := context.Background()

	token, err := svc.CreateJWT(ctx, "user-123", -time.Minute, "access")
	assert.NoError(t, err)

	_, err = svc.ValidateJWT(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	other, err := NewAuthService(new(MockUserRepository), &config.Config{
		JWT: config.JWTConfig{SecretKey: "a-different-secret", AccessTokenTTL: time.Hour},
	})
	assert.NoError(t, err)

	ctx := context.Background()
	token, err := other.CreateJWT(ctx, "user-123", time.Hour, "access")
	assert.NoError(t, err)

	_, err = svc.ValidateJWT(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestPasswordStrength_Delegates(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	resp := svc.PasswordStrength("Password1!")
	assert.Equal(t, validation.StrengthStrong, resp.Strength)
	assert.Equal(t, 5, resp.SatisfiedChecks)
}
