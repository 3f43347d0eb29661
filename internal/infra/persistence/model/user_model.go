// Package model holds the GORM persistence models mirroring the relational schema.
package model

import "time"

// UserModel mirrors the 'users' table. Username and email carry unique
// indexes; the application-level checks exist for friendly messages, the
// indexes close the race.
type UserModel struct {
	ID              uint   `gorm:"primaryKey"`
	Username        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email           string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    string `gorm:"type:varchar(255);not null"`
	Role            string `gorm:"type:varchar(20);not null;default:user"`
	Name            string `gorm:"type:varchar(100)"`
	Bio             string `gorm:"type:text"`
	IsEmailVerified bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// SessionModel mirrors the 'sessions' table. Only the SHA-256 hash of the
// cookie token is stored.
type SessionModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	TokenHash string `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// EmailVerificationTokenModel mirrors the 'email_verification_tokens' table.
type EmailVerificationTokenModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Token     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EmailVerificationTokenModel) TableName() string {
	return "email_verification_tokens"
}
