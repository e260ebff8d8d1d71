package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// UserService owns profile reads and self-service updates.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetByID(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type ProfileUpdate struct {
	Email     string
	FirstName string
	LastName  string
	IsSeller  bool
}

// UpdateProfile replaces the profile fields and may switch the role
// between buyer and seller. An admin keeps the admin role regardless
// of the seller flag.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*domain.User, error) {
	if update.Email == "" || update.FirstName == "" || update.LastName == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Email = update.Email
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.DisplayName = fmt.Sprintf("%s %s", update.FirstName, update.LastName)
	if !user.Role.IsAdmin() {
		if update.IsSeller {
			user.Role = domain.RoleSeller
		} else {
			user.Role = domain.RoleBuyer
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Uint("userID", userID).Str("role", string(user.Role)).Msg("profile updated")
	return user, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashed)
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, user)
}
