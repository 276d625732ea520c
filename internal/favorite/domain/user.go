package domain

import (
	"context"
	"time"
)

// User is the account a favorite belongs to
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"-" gorm:"uniqueIndex;not null"` // Never expose email in JSON
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository is the user lookup capability the favorite service needs
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
}
