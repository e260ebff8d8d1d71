package repository

import (
	"context"

	"github.com/florimart/florimart/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*domain.User, error)
}

// FlowerFilter narrows catalog listings. Zero values mean "no filter".
type FlowerFilter struct {
	ID        uint
	Name      string
	TypeID    uint
	SeasonID  uint
	UsageID   uint
	CountryID uint
	MinPrice  float64
	MaxPrice  float64
	SellerID  uint
}

type FlowerRepository interface {
	Create(ctx context.Context, flower *domain.Flower) error
	GetByID(ctx context.Context, id uint) (*domain.Flower, error)
	Update(ctx context.Context, flower *domain.Flower) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter FlowerFilter, limit, offset int) ([]*domain.Flower, error)

	AttachSeller(ctx context.Context, flowerID, sellerID uint) error
	SellerIDs(ctx context.Context, flowerID uint) ([]uint, error)
	// FirstSellerID returns the first seller attributed to the flower,
	// or nil when the flower has no attribution.
	FirstSellerID(ctx context.Context, flowerID uint) (*uint, error)
}

type CatalogRepository interface {
	CreateType(ctx context.Context, t *domain.FlowerType) error
	ListTypes(ctx context.Context) ([]*domain.FlowerType, error)
	DeleteType(ctx context.Context, id uint) error

	CreateSeason(ctx context.Context, s *domain.FloweringSeason) error
	ListSeasons(ctx context.Context) ([]*domain.FloweringSeason, error)
	DeleteSeason(ctx context.Context, id uint) error

	CreateUsage(ctx context.Context, u *domain.FlowerUsage) error
	ListUsages(ctx context.Context) ([]*domain.FlowerUsage, error)
	DeleteUsage(ctx context.Context, id uint) error

	CreateCountry(ctx context.Context, c *domain.Country) error
	ListCountries(ctx context.Context) ([]*domain.Country, error)
	DeleteCountry(ctx context.Context, id uint) error
}

type OrderRepository interface {
	// Create persists the order and its line items in one transaction.
	Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	ItemsByOrderID(ctx context.Context, orderID uint) ([]*domain.OrderItem, error)
	ListByBuyer(ctx context.Context, buyerID uint) ([]*domain.Order, error)
	// ListBySeller returns orders containing at least one line item
	// whose flower is attributed to the seller, deduplicated by order.
	ListBySeller(ctx context.Context, sellerID uint) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
}

type Repositories struct {
	User    UserRepository
	Flower  FlowerRepository
	Catalog CatalogRepository
	Order   OrderRepository
}
