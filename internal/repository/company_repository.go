package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalogue/internal/database"
	"movie-catalogue/internal/models"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Upsert(ctx context.Context, name string) (*models.ProductionCompany, error)
	Rename(ctx context.Context, id uint, name string) error
	FindByName(ctx context.Context, name string) (*models.ProductionCompany, error)
	FindAll(ctx context.Context) ([]models.ProductionCompany, error)
}

type companyRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewCompanyRepository(db *database.Database) CompanyRepository {
	return &companyRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *companyRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *companyRepository) Upsert(ctx context.Context, name string) (*models.ProductionCompany, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if name == "" {
		return nil, fmt.Errorf("%w: company name must not be empty", models.ErrConstraintViolation)
	}

	var company models.ProductionCompany
	err := r.db.WithContext(ctx).Where("company_name = ?", name).FirstOrCreate(&company, models.ProductionCompany{
		Name: name,
	}).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Rename(ctx context.Context, id uint, name string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if name == "" {
		return fmt.Errorf("%w: company name must not be empty", models.ErrConstraintViolation)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.ProductionCompany
		if err := tx.First(&company, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: production company %d", models.ErrNotFound, id)
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.ProductionCompany{}).
			Where("company_name = ? AND company_id <> ?", name, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: company name %q already exists", models.ErrUniquenessViolation, name)
		}

		company.Name = name
		return tx.Save(&company).Error
	})
}

func (r *companyRepository) FindByName(ctx context.Context, name string) (*models.ProductionCompany, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var company models.ProductionCompany
	err := r.db.WithContext(ctx).Where("company_name = ?", name).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindAll(ctx context.Context) ([]models.ProductionCompany, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var companies []models.ProductionCompany
	err := r.db.WithContext(ctx).Order("company_name").Find(&companies).Error
	return companies, err
}
