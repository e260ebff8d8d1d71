package postgres

import (
	"context"
	"errors"

	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository"
	"gorm.io/gorm"
)

type flowerRepository struct {
	db *gorm.DB
}

func NewFlowerRepository(db *gorm.DB) *flowerRepository {
	return &flowerRepository{db: db}
}

func (r *flowerRepository) Create(ctx context.Context, flower *domain.Flower) error {
	return r.db.WithContext(ctx).Create(flower).Error
}

func (r *flowerRepository) GetByID(ctx context.Context, id uint) (*domain.Flower, error) {
	var flower domain.Flower
	err := r.db.WithContext(ctx).First(&flower, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &flower, nil
}

func (r *flowerRepository) Update(ctx context.Context, flower *domain.Flower) error {
	return r.db.WithContext(ctx).Save(flower).Error
}

func (r *flowerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.SellerFlower{}, "flower_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Flower{}, "id = ?", id).Error
	})
}

func (r *flowerRepository) List(ctx context.Context, filter repository.FlowerFilter, limit, offset int) ([]*domain.Flower, error) {
	query := r.db.WithContext(ctx).Model(&domain.Flower{})

	if filter.ID != 0 {
		query = query.Where("flowers.id = ?", filter.ID)
	}
	if filter.Name != "" {
		query = query.Where("flowers.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.TypeID != 0 {
		query = query.Where("flowers.type_id = ?", filter.TypeID)
	}
	if filter.SeasonID != 0 {
		query = query.Where("flowers.season_id = ?", filter.SeasonID)
	}
	if filter.UsageID != 0 {
		query = query.Where("flowers.usage_id = ?", filter.UsageID)
	}
	if filter.CountryID != 0 {
		query = query.Where("flowers.country_id = ?", filter.CountryID)
	}
	if filter.MinPrice != 0 {
		query = query.Where("flowers.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != 0 {
		query = query.Where("flowers.price <= ?", filter.MaxPrice)
	}
	if filter.SellerID != 0 {
		query = query.
			Joins("JOIN seller_flowers ON seller_flowers.flower_id = flowers.id").
			Where("seller_flowers.seller_id = ?", filter.SellerID)
	}

	var flowers []*domain.Flower
	err := query.Order("flowers.id ASC").Limit(limit).Offset(offset).Find(&flowers).Error
	if err != nil {
		return nil, err
	}
	return flowers, nil
}

func (r *flowerRepository) AttachSeller(ctx context.Context, flowerID, sellerID uint) error {
	return r.db.WithContext(ctx).Create(&domain.SellerFlower{
		SellerID: sellerID,
		FlowerID: flowerID,
	}).Error
}

func (r *flowerRepository) SellerIDs(ctx context.Context, flowerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&domain.SellerFlower{}).
		Where("flower_id = ?", flowerID).
		Order("seller_id ASC").
		Pluck("seller_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *flowerRepository) FirstSellerID(ctx context.Context, flowerID uint) (*uint, error) {
	var link domain.SellerFlower
	err := r.db.WithContext(ctx).
		Where("flower_id = ?", flowerID).
		Order("seller_id ASC").
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link.SellerID, nil
}
