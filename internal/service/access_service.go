package service

import (
	"context"
	"errors"

	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Capability is an independently checked authorization flag. Seller
// and Admin are not a hierarchy: each operation names the flags it
// accepts.
type Capability string

const (
	CapabilitySeller Capability = "seller"
	CapabilityAdmin  Capability = "admin"
)

// AccessService resolves a caller's role and enforces per-operation
// capability predicates.
type AccessService struct {
	userRepo repository.UserRepository
}

func NewAccessService(userRepo repository.UserRepository) *AccessService {
	return &AccessService{userRepo: userRepo}
}

// Require loads the principal and passes when its role matches any of
// the given capabilities. An unknown principal is a caller error, not
// a server fault, so it maps to ErrForbidden rather than an internal
// failure.
func (s *AccessService) Require(ctx context.Context, userID uint, caps ...Capability) (*domain.User, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, c := range caps {
		switch c {
		case CapabilitySeller:
			if user.Role.IsSeller() {
				return user, nil
			}
		case CapabilityAdmin:
			if user.Role.IsAdmin() {
				return user, nil
			}
		}
	}

	log.Warn().Uint("userID", userID).Str("role", string(user.Role)).Msg("access denied")
	return nil, domain.ErrForbidden
}

// RequireBuyer passes only for principals holding neither the Seller
// nor the Admin capability.
func (s *AccessService) RequireBuyer(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CanManageCatalog() {
		log.Warn().Uint("userID", userID).Msg("buyer-only operation denied")
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// Identify loads the principal without any capability predicate.
func (s *AccessService) Identify(ctx context.Context, userID uint) (*domain.User, error) {
	return s.load(ctx, userID)
}

func (s *AccessService) load(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	return user, nil
}
