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

type DirectorRepository interface {
	Upsert(ctx context.Context, name string) (*models.Director, error)
	FindByName(ctx context.Context, name string) (*models.Director, error)
	FindAll(ctx context.Context) ([]models.Director, error)
}

type directorRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewDirectorRepository(db *database.Database) DirectorRepository {
	return &directorRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *directorRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *directorRepository) Upsert(ctx context.Context, name string) (*models.Director, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if name == "" {
		return nil, fmt.Errorf("%w: director name must not be empty", models.ErrConstraintViolation)
	}

	var director models.Director
	err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&director, models.Director{
		Name: name,
	}).Error
	if err != nil {
		return nil, err
	}
	return &director, nil
}

func (r *directorRepository) FindByName(ctx context.Context, name string) (*models.Director, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var director models.Director
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&director).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &director, nil
}

func (r *directorRepository) FindAll(ctx context.Context) ([]models.Director, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var directors []models.Director
	err := r.db.WithContext(ctx).Order("name").Find(&directors).Error
	return directors, err
}
