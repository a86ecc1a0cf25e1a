package usecase

import (
	"context"
	"errors"
	"fmt"

	"blog-api/pkg/jwt"
	"blog-api/pkg/logger"
	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email    string
	Username string
	FullName string
	Password string
}

type UpdateUserInput struct {
	Email    *string
	Username *string
	FullName *string
	Password *string
}

type ProfileInput struct {
	Image     *string
	FullName  *string
	Bio       *string
	About     *string
	Author    *bool
	Country   *string
	Github    *string
	Instagram *string
}

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
	GetProfile(ctx context.Context, userID string) (*entity.Profile, *entity.User, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*entity.Profile, *entity.User, error)
}

type userUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, string, error) {
	local, err := models.EmailLocalPart(input.Email)
	if err != nil {
		return nil, "", ErrInvalidEmail
	}

	if err := uc.checkEmail(ctx, input.Email, ""); err != nil {
		return nil, "", err
	}

	username := input.Username
	if username == "" {
		username = local
	}
	if err := uc.checkUsername(ctx, username, ""); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:        input.Email,
		Username:     username,
		FullName:     input.FullName,
		PasswordHash: string(hashedPassword),
	}
	profile := &entity.Profile{}

	if err := uc.userRepo.Create(ctx, user, profile); err != nil {
		uc.logger.Error("Failed to create user %s: %v", input.Email, err)
		return nil, "", storeError(err, ErrAlreadyExists)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, profile.Role())
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	uc.logger.Info("User registered: %s", user.ID)
	return user, token, nil
}

func (uc *userUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(storeError(err, nil), ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	role := entity.RoleUser
	if profile, err := uc.userRepo.GetProfile(ctx, user.ID); err == nil {
		role = profile.Role()
	}

	token, err := uc.jwtService.GenerateToken(user.ID, role)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	return user, token, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return user, nil
}

func (uc *userUseCase) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, nil)
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := models.EmailLocalPart(*input.Email); err != nil {
			return nil, ErrInvalidEmail
		}
		if err := uc.checkEmail(ctx, *input.Email, id); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}

	if input.Username != nil && *input.Username != user.Username {
		if *input.Username != "" {
			if err := uc.checkUsername(ctx, *input.Username, id); err != nil {
				return nil, err
			}
		}
		user.Username = *input.Username
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			uc.logger.Error("Failed to hash password: %v", err)
			return nil, fmt.Errorf("failed to update password")
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update user %s: %v", id, err)
		return nil, storeError(err, ErrAlreadyExists)
	}
	return user, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id string) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return storeError(err, nil)
	}
	uc.logger.Info("User deleted: %s", id)
	return nil
}

func (uc *userUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, *entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, storeError(err, nil)
	}
	profile, err := uc.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, storeError(err, nil)
	}
	return profile, user, nil
}

func (uc *userUseCase) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*entity.Profile, *entity.User, error) {
	profile, user, err := uc.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	assign(&profile.Image, input.Image)
	assign(&profile.FullName, input.FullName)
	assign(&profile.Bio, input.Bio)
	assign(&profile.About, input.About)
	assign(&profile.Country, input.Country)
	assign(&profile.Github, input.Github)
	assign(&profile.Instagram, input.Instagram)
	if input.Author != nil {
		profile.Author = *input.Author
	}

	if err := uc.userRepo.UpdateProfile(ctx, profile); err != nil {
		uc.logger.Error("Failed to update profile of %s: %v", userID, err)
		return nil, nil, storeError(err, ErrAlreadyExists)
	}
	return profile, user, nil
}

func (uc *userUseCase) checkEmail(ctx context.Context, email, excludeID string) error {
	taken, err := uc.userRepo.EmailExists(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

func (uc *userUseCase) checkUsername(ctx context.Context, username, excludeID string) error {
	taken, err := uc.userRepo.UsernameExists(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	return nil
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
