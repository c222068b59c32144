package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dananglover/internal/cache"
	"dananglover/internal/models"
	"dananglover/internal/repository"
	"dananglover/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID    uint
	Name      string
	AvatarURL string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

// Signup registers a new account. A blank name falls back to the part of
// the email before the @.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	} else if err := validation.ValidateName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, models.NewConflictError("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// Login verifies credentials. Both unknown email and wrong password come
// back as the same unauthorized error so accounts cannot be probed.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, models.NewInternalError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func resetTokenKey(token string) string {
	return fmt.Sprintf("password-reset:%s", token)
}

// CreatePasswordResetToken mints a single-use token for the account.
// Unknown emails return an empty token with no error so callers can answer
// identically either way.
func (s *UserService) CreatePasswordResetToken(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", models.NewInternalError(err)
	}

	client := cache.GetClient()
	if client == nil {
		return "", models.NewInternalError(errors.New("password reset requires Redis"))
	}

	token := uuid.NewString()
	if err := client.Set(ctx, resetTokenKey(token), user.ID, resetTokenTTL).Err(); err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// ResetPassword consumes the token and sets the new password.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return models.NewValidationError("Reset token is required")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	client := cache.GetClient()
	if client == nil {
		return models.NewInternalError(errors.New("password reset requires Redis"))
	}

	userID, err := client.GetDel(ctx, resetTokenKey(token)).Uint64()
	if err != nil {
		return models.NewUnauthorizedError("Invalid or expired reset token")
	}

	user, err := s.GetUserByID(ctx, uint(userID))
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
