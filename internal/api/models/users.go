package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName string    `gorm:"size:150" json:"first_name,omitempty"`
	LastName  string    `gorm:"size:150" json:"last_name,omitempty"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	Role      string    `gorm:"default:'user';not null" json:"role"` // "user", "moderator" or "admin"
	// bcrypt hash of the last issued confirmation code, never serialized
	ConfirmationCode string    `gorm:"column:confirmation_code" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
