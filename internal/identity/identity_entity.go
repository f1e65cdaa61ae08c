package identity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Email       string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Password    string    `gorm:"column:password;type:varchar(255);not null"`
	PhoneNumber *string   `gorm:"column:phone_number;type:varchar(50)"`
	Role        string    `gorm:"column:role;type:varchar(20);not null;default:'EMPLOYEE'"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
