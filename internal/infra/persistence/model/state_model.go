package model

import "time"

// StateModel mirrors the 'states' table.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type StateModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	Name      string    `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `gorm:"precision:6;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"precision:6;not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (StateModel) TableName() string {
	return "states"
}

// CityModel mirrors the 'cities' table. StateID is a plain column: no
// foreign key is declared, dangling references are allowed.
type CityModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	StateID   string    `gorm:"type:varchar(60);not null;index"`
	Name      string    `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `gorm:"precision:6;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"precision:6;not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (CityModel) TableName() string {
	return "cities"
}

// AmenityModel mirrors the 'amenities' table.
type AmenityModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	Name      string    `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `gorm:"precision:6;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"precision:6;not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (AmenityModel) TableName() string {
	return "amenities"
}
