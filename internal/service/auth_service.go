package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auralearn/internal/config"
	"auralearn/internal/domain"
	"auralearn/internal/dto"
	"auralearn/internal/logger"
	"auralearn/internal/util"
	"auralearn/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeAccess = "access"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations.
type AuthService interface {
	// Signup validates the request, creates the account and logs the
	// new user in. Field failures come back as domain.ValidationErrors.
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)

	// Login verifies the credentials in order: account existence,
	// password, role.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)

	// PasswordStrength scores a candidate password for UI guidance.
	PasswordStrength(password string) dto.PasswordStrengthResponse

	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error)
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	validator *validation.Validator
	appConfig *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) == 0 {
		return nil, errors.New("jwt secret key for auth service is not configured")
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		validator: validation.NewValidator(),
		appConfig: appConfig,
	}, nil
}

func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	appLogger := logger.Get()

	// All per-field checks run before the store-level duplicate check.
	if errs := s.validator.ValidateSignupRequest(req); len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := domain.NewUser(util.NewULID(), req.Name, req.Email, string(hash), domain.Role(req.Role))
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeDuplicateEmail {
			return nil, domain.ValidationErrors{
				domain.NewFieldError("email", domain.CodeEmailAlreadyRegistered, "this email is already registered"),
			}
		}
		return nil, domain.NewInternalError("failed to create user", err)
	}

	appLogger.Info("New account created",
		zap.String("userID", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role.String()))

	return s.buildAuthResponse(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	appLogger := logger.Get()

	if errs := s.validator.ValidateLoginRequest(req); len(errs) > 0 {
		return nil, errs
	}

	email := domain.NormalizeEmail(req.Email)

	// Existence is checked before the password, before the role: a
	// caller must never learn "wrong role" for a nonexistent account.
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up account", err)
	}
	if user == nil {
		return nil, domain.NewAccountNotFoundError(email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		appLogger.Warn("Login rejected: wrong password", zap.String("email", email))
		return nil, domain.NewInvalidCredentialsError()
	}

	if domain.Role(req.Role) != user.Role {
		appLogger.Warn("Login rejected: role mismatch",
			zap.String("email", email),
			zap.String("requested_role", req.Role),
			zap.String("actual_role", user.Role.String()))
		return nil, domain.NewRoleMismatchError(user.Role)
	}

	appLogger.Info("User logged in", zap.String("userID", user.ID), zap.String("email", user.Email))
	return s.buildAuthResponse(ctx, user)
}

func (s *authServiceImpl) PasswordStrength(password string) dto.PasswordStrengthResponse {
	return s.validator.PasswordStrength(password)
}

// buildAuthResponse derives the secret-free session and issues the
// access token.
func (s *authServiceImpl) buildAuthResponse(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	accessToken, err := s.CreateJWT(ctx, user.ID, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("failed to create access token", err)
	}
	return &dto.AuthResponse{
		Session:     NewSessionResponse(user),
		AccessToken: accessToken,
	}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error) {
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

// NewSessionResponse projects a user record into its session view,
// omitting the credential hash.
func NewSessionResponse(user *domain.User) dto.SessionResponse {
	return dto.SessionResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}
