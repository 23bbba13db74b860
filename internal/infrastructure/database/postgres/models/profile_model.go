package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel represents the database model for Profile
type ProfileModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind                string     `gorm:"type:varchar(20);not null;default:'user'"`
	FullName            string     `gorm:"type:varchar(255);not null"`
	Email               string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role                string     `gorm:"type:varchar(50);not null;default:'viewer'"`
	PhoneNumber         *string    `gorm:"type:varchar(20)"`
	Department          *string    `gorm:"type:varchar(100)"`
	IsActive            bool       `gorm:"default:true;not null"`
	LastLoginAt         *time.Time `gorm:"type:timestamp"`
	ResetTokenHash      *string    `gorm:"type:varchar(64);index"`
	ResetTokenExpiresAt *time.Time `gorm:"type:timestamp"`
	CreatedAt           time.Time  `gorm:"not null"`
	UpdatedAt           time.Time  `gorm:"not null"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

// CredentialModel represents the database model for Credential
type CredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	ProfileID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ProfileKind  string    `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (CredentialModel) TableName() string {
	return "credentials"
}
