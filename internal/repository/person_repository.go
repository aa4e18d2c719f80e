package repository

import (
	"context"
	"errors"
	"time"

	"movie-catalogue/internal/database"
	"movie-catalogue/internal/models"

	"gorm.io/gorm"
)

type PersonRepository interface {
	Upsert(ctx context.Context, name string, gender *int16) (*models.Person, error)
	FindByID(ctx context.Context, id uint) (*models.Person, error)
	FindByName(ctx context.Context, name string) (*models.Person, error)
	FindAll(ctx context.Context) ([]models.Person, error)
}

type personRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewPersonRepository(db *database.Database) PersonRepository {
	return &personRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *personRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Upsert returns the person with the given name, creating them on first
// use. A non-nil gender on a later call fills in a previously unknown
// gender but never overwrites a known one.
func (r *personRepository) Upsert(ctx context.Context, name string, gender *int16) (*models.Person, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	person := models.Person{Name: name, Gender: gender}
	if err := person.Validate(); err != nil {
		return nil, err
	}

	var existing models.Person
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Create(&person).Error; err != nil {
			return nil, err
		}
		return &person, nil
	}

	if existing.Gender == nil && gender != nil {
		existing.Gender = gender
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
	}
	return &existing, nil
}

func (r *personRepository) FindByID(ctx context.Context, id uint) (*models.Person, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var person models.Person
	err := r.db.WithContext(ctx).First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) FindByName(ctx context.Context, name string) (*models.Person, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var person models.Person
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) FindAll(ctx context.Context) ([]models.Person, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var persons []models.Person
	err := r.db.WithContext(ctx).Order("name").Find(&persons).Error
	return persons, err
}
