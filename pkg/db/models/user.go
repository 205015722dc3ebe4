package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kinmelhq/kinmel-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string       `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string       `gorm:"column:password_hash;not null"`
	FirstName    string       `gorm:"column:first_name;not null"`
	LastName     string       `gorm:"column:last_name;not null"`
	Gender       enums.Gender `gorm:"column:gender;not null"`
	DOB          time.Time    `gorm:"column:dob;not null"`
	Role         enums.Role   `gorm:"column:role;not null"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
