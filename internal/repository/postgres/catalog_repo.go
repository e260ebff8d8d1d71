package postgres

import (
	"context"

	"github.com/florimart/florimart/internal/domain"
	"gorm.io/gorm"
)

// catalogRepository manages the flower lookup tables: types, seasons,
// usages and countries.
type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateType(ctx context.Context, t *domain.FlowerType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *catalogRepository) ListTypes(ctx context.Context) ([]*domain.FlowerType, error) {
	var types []*domain.FlowerType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *catalogRepository) DeleteType(ctx context.Context, id uint) error {
	return deleteByID[domain.FlowerType](ctx, r.db, id)
}

func (r *catalogRepository) CreateSeason(ctx context.Context, s *domain.FloweringSeason) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogRepository) ListSeasons(ctx context.Context) ([]*domain.FloweringSeason, error) {
	var seasons []*domain.FloweringSeason
	err := r.db.WithContext(ctx).Order("id ASC").Find(&seasons).Error
	if err != nil {
		return nil, err
	}
	return seasons, nil
}

func (r *catalogRepository) DeleteSeason(ctx context.Context, id uint) error {
	return deleteByID[domain.FloweringSeason](ctx, r.db, id)
}

func (r *catalogRepository) CreateUsage(ctx context.Context, u *domain.FlowerUsage) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *catalogRepository) ListUsages(ctx context.Context) ([]*domain.FlowerUsage, error) {
	var usages []*domain.FlowerUsage
	err := r.db.WithContext(ctx).Order("id ASC").Find(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}

func (r *catalogRepository) DeleteUsage(ctx context.Context, id uint) error {
	return deleteByID[domain.FlowerUsage](ctx, r.db, id)
}

func (r *catalogRepository) CreateCountry(ctx context.Context, c *domain.Country) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogRepository) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	var countries []*domain.Country
	err := r.db.WithContext(ctx).Order("id ASC").Find(&countries).Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *catalogRepository) DeleteCountry(ctx context.Context, id uint) error {
	return deleteByID[domain.Country](ctx, r.db, id)
}

// deleteByID deletes a lookup row and reports gorm.ErrRecordNotFound
// when nothing matched, so callers can surface a 404.
func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
