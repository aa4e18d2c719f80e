package repository

import (
	"context"
	"errors"
	"time"

	"movie-catalogue/internal/database"
	"movie-catalogue/internal/models"

	"gorm.io/gorm"
)

type CountryRepository interface {
	Upsert(ctx context.Context, code, name string) (*models.Country, error)
	FindByCode(ctx context.Context, code string) (*models.Country, error)
	FindAll(ctx context.Context) ([]models.Country, error)
}

type countryRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewCountryRepository(db *database.Database) CountryRepository {
	return &countryRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *countryRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *countryRepository) Upsert(ctx context.Context, code, name string) (*models.Country, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var country models.Country
	err := r.db.WithContext(ctx).Where("country_code = ?", code).FirstOrCreate(&country, models.Country{
		Code: code,
		Name: name,
	}).Error
	if err != nil {
		return nil, err
	}

	if country.Name != name {
		country.Name = name
		if err := r.db.WithContext(ctx).Save(&country).Error; err != nil {
			return nil, err
		}
	}
	return &country, nil
}

func (r *countryRepository) FindByCode(ctx context.Context, code string) (*models.Country, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var country models.Country
	err := r.db.WithContext(ctx).Where("country_code = ?", code).First(&country).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) FindAll(ctx context.Context) ([]models.Country, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var countries []models.Country
	err := r.db.WithContext(ctx).Order("country_code").Find(&countries).Error
	return countries, err
}
