package model

import (
	"time"

	"gorm.io/datatypes"
)

// PlaceModel mirrors the 'places' table. The linked amenity ids live in a
// JSON column rather than a join table.
type PlaceModel struct {
	ID              string                      `gorm:"type:varchar(60);primaryKey"`
	CityID          string                      `gorm:"type:varchar(60);not null;index"`
	UserID          string                      `gorm:"type:varchar(60);not null;index"`
	Name            string                      `gorm:"type:varchar(128);not null"`
	Description     string                      `gorm:"type:varchar(1024)"`
	NumberRooms     int                         `gorm:"not null;default:0"`
	NumberBathrooms int                         `gorm:"not null;default:0"`
	MaxGuest        int                         `gorm:"not null;default:0"`
	PricePerNight   int                         `gorm:"not null;default:0"`
	Latitude        float64                     `gorm:"not null;default:0"`
	Longitude       float64                     `gorm:"not null;default:0"`
	AmenityIDs      datatypes.JSONSlice[string] `gorm:"column:amenity_ids"`
	CreatedAt       time.Time                   `gorm:"precision:6;not null;autoCreateTime:false"`
	UpdatedAt       time.Time                   `gorm:"precision:6;not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (PlaceModel) TableName() string {
	return "places"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	PlaceID   string    `gorm:"type:varchar(60);not null;index"`
	UserID    string    `gorm:"type:varchar(60);not null;index"`
	Text      string    `gorm:"type:varchar(1024);not null"`
	CreatedAt time.Time `gorm:"precision:6;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"precision:6;not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// All returns one zero value of every table model, in migration order.
func All() []any {
	return []any{
		&StateModel{},
		&CityModel{},
		&AmenityModel{},
		&UserModel{},
		&PlaceModel{},
		&ReviewModel{},
	}
}
