package usecase

import (
	"context"
	"time"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/pkg/errors"
	"otodeal/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	auth     AuthProvider
}

func NewAuthUseCase(userRepo repository.UserRepository, auth AuthProvider) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		auth:     auth,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	Phone    string
	Role     string
}

type AuthResult struct {
	User         *entity.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	// Admins are provisioned out of band, never through registration.
	role := input.Role
	switch role {
	case "":
		role = entity.RoleBuyer
	case entity.RoleBuyer, entity.RoleSeller:
	default:
		return nil, errors.BadRequest("Role must be buyer or seller", nil)
	}

	uid, err := uc.auth.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Phone:     input.Phone,
		Role:      role,
		Status:    entity.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if delErr := uc.auth.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Failed to roll back auth user %s: %v", uid, delErr)
		}
		return nil, errors.Internal("Failed to create user record", err)
	}

	signIn, err := uc.auth.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	logger.Info("Registered user %s as %s", uid, role)
	return &AuthResult{
		User:         user,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	signIn, err := uc.auth.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	user, err := uc.userRepo.GetByID(ctx, signIn.LocalID)
	if err != nil {
		return nil, errors.Internal("Failed to load user profile", err)
	}
	if user.Status == entity.UserStatusSuspended {
		return nil, errors.Forbidden("Account suspended", nil)
	}

	return &AuthResult{
		User:         user,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
	}, nil
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := uc.auth.SignInWithEmailPassword(ctx, user.Email, currentPassword); err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	if err := uc.auth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}
	return nil
}
