package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the read model for the directory endpoints; account writes
// happen through the identity module.
type User struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name"`
	Email       string    `gorm:"column:email"`
	PhoneNumber *string   `gorm:"column:phone_number"`
	Role        string    `gorm:"column:role"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
