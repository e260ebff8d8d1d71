package service

import (
	"context"
	"errors"

	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const maxListLimit = 100

type FlowerService struct {
	flowerRepo  repository.FlowerRepository
	catalogRepo repository.CatalogRepository
}

func NewFlowerService(flowerRepo repository.FlowerRepository, catalogRepo repository.CatalogRepository) *FlowerService {
	return &FlowerService{
		flowerRepo:  flowerRepo,
		catalogRepo: catalogRepo,
	}
}

type FlowerInput struct {
	Name      string
	Variety   string
	Price     float64
	TypeID    uint
	SeasonID  uint
	UsageID   uint
	CountryID uint
}

// FlowerView is a catalog entry with its seller attributions.
type FlowerView struct {
	domain.Flower
	SellerIDs []uint `json:"sellerIds"`
}

// Create persists a flower and attributes it to the given seller.
func (s *FlowerService) Create(ctx context.Context, input FlowerInput, sellerID uint) (*domain.Flower, error) {
	if input.Name == "" {
		return nil, domain.ErrMissingFields
	}
	if input.Price <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	flower := &domain.Flower{
		Name:      input.Name,
		Variety:   input.Variety,
		Price:     input.Price,
		TypeID:    input.TypeID,
		SeasonID:  input.SeasonID,
		UsageID:   input.UsageID,
		CountryID: input.CountryID,
	}
	if err := s.flowerRepo.Create(ctx, flower); err != nil {
		return nil, err
	}
	if err := s.flowerRepo.AttachSeller(ctx, flower.ID, sellerID); err != nil {
		return nil, err
	}

	log.Info().Uint("flowerID", flower.ID).Uint("sellerID", sellerID).Msg("flower created")
	return flower, nil
}

type FlowerUpdate struct {
	Name      *string
	Variety   *string
	Price     *float64
	TypeID    *uint
	SeasonID  *uint
	UsageID   *uint
	CountryID *uint
}

func (s *FlowerService) Update(ctx context.Context, flowerID uint, update FlowerUpdate) (*domain.Flower, error) {
	flower, err := s.flowerRepo.GetByID(ctx, flowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFlowerNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		flower.Name = *update.Name
	}
	if update.Variety != nil {
		flower.Variety = *update.Variety
	}
	if update.Price != nil {
		if *update.Price <= 0 {
			return nil, domain.ErrInvalidPrice
		}
		flower.Price = *update.Price
	}
	if update.TypeID != nil {
		flower.TypeID = *update.TypeID
	}
	if update.SeasonID != nil {
		flower.SeasonID = *update.SeasonID
	}
	if update.UsageID != nil {
		flower.UsageID = *update.UsageID
	}
	if update.CountryID != nil {
		flower.CountryID = *update.CountryID
	}

	if err := s.flowerRepo.Update(ctx, flower); err != nil {
		return nil, err
	}
	return flower, nil
}

func (s *FlowerService) Delete(ctx context.Context, flowerID uint) error {
	if _, err := s.flowerRepo.GetByID(ctx, flowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFlowerNotFound
		}
		return err
	}
	return s.flowerRepo.Delete(ctx, flowerID)
}

// SellerIDs returns the flower's seller attributions.
func (s *FlowerService) SellerIDs(ctx context.Context, flowerID uint) ([]uint, error) {
	return s.flowerRepo.SellerIDs(ctx, flowerID)
}

// List applies the catalog filter, caps the page size and joins each
// flower to its seller attributions.
func (s *FlowerService) List(ctx context.Context, filter repository.FlowerFilter, limit, offset int) ([]*FlowerView, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	flowers, err := s.flowerRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]*FlowerView, 0, len(flowers))
	for _, flower := range flowers {
		sellerIDs, err := s.flowerRepo.SellerIDs(ctx, flower.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, &FlowerView{Flower: *flower, SellerIDs: sellerIDs})
	}
	return views, nil
}

// Lookup table management.

func (s *FlowerService) CreateType(ctx context.Context, name, description string) (*domain.FlowerType, error) {
	t := &domain.FlowerType{Name: name, Description: description}
	if err := s.catalogRepo.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *FlowerService) ListTypes(ctx context.Context) ([]*domain.FlowerType, error) {
	return s.catalogRepo.ListTypes(ctx)
}

func (s *FlowerService) DeleteType(ctx context.Context, id uint) error {
	return s.lookupErr(s.catalogRepo.DeleteType(ctx, id))
}

func (s *FlowerService) CreateSeason(ctx context.Context, name, description string) (*domain.FloweringSeason, error) {
	season := &domain.FloweringSeason{Name: name, Description: description}
	if err := s.catalogRepo.CreateSeason(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

func (s *FlowerService) ListSeasons(ctx context.Context) ([]*domain.FloweringSeason, error) {
	return s.catalogRepo.ListSeasons(ctx)
}

func (s *FlowerService) DeleteSeason(ctx context.Context, id uint) error {
	return s.lookupErr(s.catalogRepo.DeleteSeason(ctx, id))
}

func (s *FlowerService) CreateUsage(ctx context.Context, name, description string) (*domain.FlowerUsage, error) {
	usage := &domain.FlowerUsage{Name: name, Description: description}
	if err := s.catalogRepo.CreateUsage(ctx, usage); err != nil {
		return nil, err
	}
	return usage, nil
}

func (s *FlowerService) ListUsages(ctx context.Context) ([]*domain.FlowerUsage, error) {
	return s.catalogRepo.ListUsages(ctx)
}

func (s *FlowerService) DeleteUsage(ctx context.Context, id uint) error {
	return s.lookupErr(s.catalogRepo.DeleteUsage(ctx, id))
}

func (s *FlowerService) CreateCountry(ctx context.Context, name, code string) (*domain.Country, error) {
	country := &domain.Country{Name: name, Code: code}
	if err := s.catalogRepo.CreateCountry(ctx, country); err != nil {
		return nil, err
	}
	return country, nil
}

func (s *FlowerService) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	return s.catalogRepo.ListCountries(ctx)
}

func (s *FlowerService) DeleteCountry(ctx context.Context, id uint) error {
	return s.lookupErr(s.catalogRepo.DeleteCountry(ctx, id))
}

func (s *FlowerService) lookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrLookupNotFound
	}
	return err
}
