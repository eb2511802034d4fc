package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Email           string     `json:"email" db:"email" example:"maria@example.com"`
	Password        string     `json:"-" db:"password"` // hashed password, excluded from JSON
	FirstName       string     `json:"firstName" db:"first_name" example:"Maria"`
	LastName        string     `json:"lastName" db:"last_name" example:"Souza"`
	Bio             string     `json:"bio,omitempty" db:"bio"`
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
