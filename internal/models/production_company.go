package models

import "time"

type ProductionCompany struct {
	ID        uint      `gorm:"primaryKey;column:company_id" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:company_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductionCompany) TableName() string {
	return "production_company"
}

type MovieProductionCompany struct {
	MovieID             int64 `gorm:"primaryKey;autoIncrement:false;column:movie_id" json:"movie_id"`
	ProductionCompanyID uint  `gorm:"primaryKey;autoIncrement:false;column:company_id" json:"company_id"`
}

func (MovieProductionCompany) TableName() string {
	return "movie_production_company"
}
