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

type GenreRepository interface {
	Upsert(ctx context.Context, name string) (*models.Genre, error)
	Rename(ctx context.Context, id uint, name string) error
	FindByID(ctx context.Context, id uint) (*models.Genre, error)
	FindByName(ctx context.Context, name string) (*models.Genre, error)
	FindAll(ctx context.Context) ([]models.Genre, error)
}

type genreRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewGenreRepository(db *database.Database) GenreRepository {
	return &genreRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *genreRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Upsert returns the genre with the given name, creating it on first
// use. Genre names are unique, so repeated calls are idempotent.
func (r *genreRepository) Upsert(ctx context.Context, name string) (*models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if name == "" {
		return nil, fmt.Errorf("%w: genre name must not be empty", models.ErrConstraintViolation)
	}

	var genre models.Genre
	err := r.db.WithContext(ctx).Where("genre_name = ?", name).FirstOrCreate(&genre, models.Genre{
		Name: name,
	}).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// Rename changes a genre's name, rejecting names already held by a
// different genre.
func (r *genreRepository) Rename(ctx context.Context, id uint, name string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if name == "" {
		return fmt.Errorf("%w: genre name must not be empty", models.ErrConstraintViolation)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.First(&genre, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: genre %d", models.ErrNotFound, id)
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Genre{}).
			Where("genre_name = ? AND genre_id <> ?", name, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: genre name %q already exists", models.ErrUniquenessViolation, name)
		}

		genre.Name = name
		return tx.Save(&genre).Error
	})
}

func (r *genreRepository) FindByID(ctx context.Context, id uint) (*models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).First(&genre, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindByName(ctx context.Context, name string) (*models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).Where("genre_name = ?", name).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genres []models.Genre
	err := r.db.WithContext(ctx).Order("genre_name").Find(&genres).Error
	return genres, err
}
