package entity

import (
	"time"
)

// User is a back-office account.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Email        string     `json:"email" gorm:"size:128;not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"size:128;not null"`
	PasswordHash string     `json:"-" gorm:"size:128;not null"`
	Role         string     `json:"role" gorm:"size:16;not null;default:viewer"`
	Status       string     `json:"status" gorm:"size:16;not null;default:active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// User roles
const (
	RoleAdmin   = "admin"
	RoleOfficer = "officer"
	RoleViewer  = "viewer"
)

// User status values
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
