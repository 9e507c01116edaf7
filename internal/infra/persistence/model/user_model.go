package model

import "time"

// UserModel mirrors the 'users' table. Password holds the bcrypt hash.
type UserModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	Email     string    `gorm:"type:varchar(128);not null"`
	Password  string    `gorm:"type:varchar(128);not null"`
	FirstName string    `gorm:"type:varchar(128)"`
	LastName  string    `gorm:"type:varchar(128)"`
	CreatedAt time.Time `gorm:"precision:6;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"precision:6;not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
