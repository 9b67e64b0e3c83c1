package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role codes as constants
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents an authenticated user in the system. The password is
// stored only as a bcrypt hash; there is no readable plaintext accessor.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username" validate:"required"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role      string    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
