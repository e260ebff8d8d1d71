package postgres

import (
	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Flower{},
		&domain.FlowerType{},
		&domain.FloweringSeason{},
		&domain.FlowerUsage{},
		&domain.Country{},
		&domain.SellerFlower{},
		&domain.Order{},
		&domain.OrderItem{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(db),
		Flower:  NewFlowerRepository(db),
		Catalog: NewCatalogRepository(db),
		Order:   NewOrderRepository(db),
	}
}
