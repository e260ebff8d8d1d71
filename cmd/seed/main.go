// Command seed loads a development dataset: an admin account, the four
// lookup tables and a handful of flowers attributed to a demo seller.
// It is idempotent and safe to re-run against an existing database.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/florimart/florimart/internal/config"
	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository"
	"github.com/florimart/florimart/internal/repository/postgres"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	adminEmail    = flag.String("admin-email", "admin@florimart.dev", "admin account email")
	adminPassword = flag.String("admin-password", "admin-password", "admin account password")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	repos := postgres.NewRepositories(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := ensureUser(ctx, repos.User, *adminEmail, *adminPassword, "Ada", "Bloom", domain.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}
	seller, err := ensureUser(ctx, repos.User, "seller@florimart.dev", "seller-password", "Sam", "Petal", domain.RoleSeller)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed seller")
	}
	if _, err := ensureUser(ctx, repos.User, "buyer@florimart.dev", "buyer-password", "Beth", "Vase", domain.RoleBuyer); err != nil {
		log.Fatal().Err(err).Msg("failed to seed buyer")
	}

	if err := seedLookups(ctx, repos.Catalog); err != nil {
		log.Fatal().Err(err).Msg("failed to seed lookup tables")
	}
	if err := seedFlowers(ctx, repos.Flower, seller.ID); err != nil {
		log.Fatal().Err(err).Msg("failed to seed flowers")
	}

	log.Info().Uint("adminID", admin.ID).Uint("sellerID", seller.ID).Msg("seed complete")
}

func ensureUser(ctx context.Context, users repository.UserRepository, email, password, first, last string, role domain.Role) (*domain.User, error) {
	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		DisplayName:  first + " " + last,
		Role:         role,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func seedLookups(ctx context.Context, catalog repository.CatalogRepository) error {
	types, err := catalog.ListTypes(ctx)
	if err != nil {
		return err
	}
	if len(types) > 0 {
		return nil
	}

	for _, t := range []domain.FlowerType{
		{Name: "Rose", Description: "Woody perennial of the genus Rosa"},
		{Name: "Tulip", Description: "Spring-blooming bulbous perennial"},
		{Name: "Orchid", Description: "Diverse family of flowering plants"},
	} {
		t := t
		if err := catalog.CreateType(ctx, &t); err != nil {
			return err
		}
	}
	for _, s := range []domain.FloweringSeason{
		{Name: "Spring", Description: "March through May"},
		{Name: "Summer", Description: "June through August"},
		{Name: "Year-round", Description: "Greenhouse grown"},
	} {
		s := s
		if err := catalog.CreateSeason(ctx, &s); err != nil {
			return err
		}
	}
	for _, u := range []domain.FlowerUsage{
		{Name: "Bouquet", Description: "Cut flower arrangements"},
		{Name: "Garden", Description: "Outdoor planting"},
	} {
		u := u
		if err := catalog.CreateUsage(ctx, &u); err != nil {
			return err
		}
	}
	for _, c := range []domain.Country{
		{Name: "Netherlands", Code: "NL"},
		{Name: "Ecuador", Code: "EC"},
		{Name: "Kenya", Code: "KE"},
	} {
		c := c
		if err := catalog.CreateCountry(ctx, &c); err != nil {
			return err
		}
	}
	return nil
}

func seedFlowers(ctx context.Context, flowers repository.FlowerRepository, sellerID uint) error {
	existing, err := flowers.List(ctx, repository.FlowerFilter{}, 1, 0)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	demo := []domain.Flower{
		{Name: "Red Naomi", Variety: "Rose", Price: 2.50, TypeID: 1, SeasonID: 3, UsageID: 1, CountryID: 2},
		{Name: "Queen of Night", Variety: "Tulip", Price: 1.80, TypeID: 2, SeasonID: 1, UsageID: 1, CountryID: 1},
		{Name: "Phalaenopsis White", Variety: "Orchid", Price: 12.00, TypeID: 3, SeasonID: 3, UsageID: 2, CountryID: 3},
	}
	for _, f := range demo {
		f := f
		if err := flowers.Create(ctx, &f); err != nil {
			return err
		}
		if err := flowers.AttachSeller(ctx, f.ID, sellerID); err != nil {
			return err
		}
	}
	return nil
}
