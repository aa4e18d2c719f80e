package models

// User carries no attributes beyond its externally assigned id; users are
// known to the catalogue only through the ratings they submit.
type User struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false;column:user_id" json:"id"`
}

func (User) TableName() string {
	return "user"
}
