package service

import (
	"github.com/florimart/florimart/internal/cache"
	"github.com/florimart/florimart/internal/config"
	"github.com/florimart/florimart/internal/repository"
)

type Services struct {
	Token  *TokenService
	Auth   *AuthService
	Access *AccessService
	Order  *OrderService
	Flower *FlowerService
	User   *UserService
	Admin  *AdminService
}

func NewServices(repos *repository.Repositories, tokenStore *cache.TokenStore, cfg *config.Config) *Services {
	tokens := NewTokenService(tokenStore, cfg)
	return &Services{
		Token:  tokens,
		Auth:   NewAuthService(repos.User, tokens),
		Access: NewAccessService(repos.User),
		Order:  NewOrderService(repos.Order, repos.Flower, repos.User),
		Flower: NewFlowerService(repos.Flower, repos.Catalog),
		User:   NewUserService(repos.User),
		Admin:  NewAdminService(repos.User),
	}
}
