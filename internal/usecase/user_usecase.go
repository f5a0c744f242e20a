package usecase

import (
	"context"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/pkg/errors"
	"otodeal/pkg/logger"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

type UpdateProfileInput struct {
	Username  string
	Phone     string
	Bio       string
	FullName  string
	City      string
	AvatarURL string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers is an admin operation; role and status narrow the result.
func (uc *UserUseCase) ListUsers(ctx context.Context, role, status string, page, pageSize int) ([]*entity.User, int64, error) {
	filter := map[string]interface{}{}
	if role != "" {
		filter["role"] = role
	}
	if status != "" {
		filter["status"] = status
	}

	offset := (page - 1) * pageSize
	return uc.userRepo.List(ctx, filter, pageSize, offset)
}

func (uc *UserUseCase) SetRole(ctx context.Context, userID, role string) (*entity.User, error) {
	switch role {
	case entity.RoleBuyer, entity.RoleSeller, entity.RoleAdmin:
	default:
		return nil, errors.BadRequest("Invalid role", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User %s role set to %s", userID, role)
	return user, nil
}

func (uc *UserUseCase) SetStatus(ctx context.Context, userID, status string) (*entity.User, error) {
	switch status {
	case entity.UserStatusActive, entity.UserStatusSuspended:
	default:
		return nil, errors.BadRequest("Invalid status", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User %s status set to %s", userID, status)
	return user, nil
}
