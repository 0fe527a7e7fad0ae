package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studynotes/internal/domain/entities"
	domainsvc "studynotes/internal/domain/services"
	"studynotes/internal/ports/api"
	"studynotes/internal/ports/repositories"
	svc "studynotes/internal/ports/services"
	"studynotes/pkg/logger"
)

const (
	methodGetProfile    = "GetProfile"
	methodUpdateProfile = "UpdateProfile"

	msgRequestingProfile  = "requesting user profile"
	msgProfileRetrieved   = "user profile successfully retrieved"
	msgUpdatingProfile    = "updating user profile"
	msgProfileUpdated     = "user profile updated"
	msgErrFindingUserByID = "failed to find user by ID"
	msgErrUpdatingUser    = "failed to update user"
	msgErrRehashPassword  = "failed to hash new password"

	errCtxFetchingProfile   = "fetching user profile"
	errCtxUpdatingProfile   = "updating user profile"
	errCtxRehashingPassword = "hashing new password"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
func NewUserUseCase(userRepo repositories.UserRepository, passwordSvc svc.PasswordService) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// GetProfile получает профиль пользователя по ID.
func (u *UserUseCaseImpl) GetProfile(ctx context.Context, userID int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.Int64("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	log.Info(ctx, msgProfileRetrieved)
	return user, nil
}

// UpdateProfile накладывает переданные поля на профиль пользователя.
// Новый пароль повторно хэшируется перед сохранением.
func (u *UserUseCaseImpl) UpdateProfile(ctx context.Context, userID int64, input api.UpdateProfileInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateProfile), zap.Int64("userID", userID))
	log.Debug(ctx, msgUpdatingProfile)

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingProfile, err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		if len(*input.Password) < domainsvc.MinPasswordLength {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
		}
		hash, err := u.passwordSvc.Hash(ctx, *input.Password)
		if err != nil {
			log.Error(ctx, msgErrRehashPassword, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxRehashingPassword, err)
		}
		user.PasswordHash = hash
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrUpdatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingProfile, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return updated, nil
}
