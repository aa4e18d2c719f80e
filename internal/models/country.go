package models

import "time"

type Country struct {
	Code      string    `gorm:"primaryKey;size:10;column:country_code" json:"code"` // ISO 3166-1 code (e.g., 'US', 'AT')
	Name      string    `gorm:"not null;column:country_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Country) TableName() string {
	return "country"
}

// ProductionCountry joins a movie to each country it was produced in.
type ProductionCountry struct {
	MovieID     int64  `gorm:"primaryKey;autoIncrement:false;column:movie_id" json:"movie_id"`
	CountryCode string `gorm:"primaryKey;size:10;column:country_code" json:"country_code"`
}

func (ProductionCountry) TableName() string {
	return "production_country"
}
