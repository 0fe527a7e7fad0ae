// Package app реализует бизнес-логику сервиса заметок.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"studynotes/internal/domain/entities"
	"studynotes/internal/domain/services"
	"studynotes/internal/ports/api"
	"studynotes/internal/ports/repositories"
	svc "studynotes/internal/ports/services"
	"studynotes/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	msgStartRegistration  = "starting user registration"
	msgInvalidEmailFormat = "invalid email format"
	msgEmptyName          = "empty name provided"
	msgPasswordTooShort   = "password is too short"
	msgEmailExists        = "user with this email already exists"
	msgUserRegistered     = "user registered successfully"
	msgTokenIssued        = "access token issued"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent email"
	msgInvalidPassword    = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateToken     = "failed to generate access token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidatingEmail    = "validating email"
	errCtxValidatingName     = "validating name"
	errCtxValidatingPassword = "validating password"
	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxGeneratingToken    = "generating token"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя и выдает ему токен доступа.
func (a *AuthUseCaseImpl) Register(ctx context.Context, name, email, password string) (*services.AuthToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if name == "" {
		log.Debug(ctx, msgEmptyName)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
	}
	if len(password) < services.MinPasswordLength {
		log.Debug(ctx, msgPasswordTooShort)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.Int64("userID", createdUser.ID))

	authToken, err := a.issueToken(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.Int64("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Info(ctx, msgTokenIssued, zap.Int64("userID", createdUser.ID))
	return authToken, nil
}

// Login аутентифицирует пользователя по email и паролю.
// Отсутствие пользователя и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.AuthToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPassword, zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("userID", user.ID))

	authToken, err := a.issueToken(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	return authToken, nil
}

// Вспомогательная функция для выдачи токена доступа.
func (a *AuthUseCaseImpl) issueToken(ctx context.Context, user *entities.User) (*services.AuthToken, error) {
	token, expiresAt, err := a.tokenSvc.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	return &services.AuthToken{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Валидация email.
func validateEmail(email string) error {
	if email == "" || !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}
