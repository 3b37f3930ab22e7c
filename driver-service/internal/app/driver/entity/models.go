package entity

import (
	"time"

	"github.com/google/uuid"
)

type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// Driver is a registered driver together with the cars they operate.
type Driver struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(32);not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Sex       Sex       `json:"sex" gorm:"type:varchar(10);not null"`
	Cars      []Car     `json:"cars" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Driver) TableName() string {
	return "drivers"
}

type Car struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	DriverID uuid.UUID `json:"driver_id" gorm:"type:uuid;not null;index"`
	Number   string    `json:"number" gorm:"type:varchar(20);not null;uniqueIndex"`
	Brand    string    `json:"brand" gorm:"type:varchar(100);not null"`
	Color    string    `json:"color" gorm:"type:varchar(50);not null"`
	Year     int       `json:"year" gorm:"not null"`
}

func (Car) TableName() string {
	return "cars"
}
