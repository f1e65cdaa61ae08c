package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"column:name;type:varchar(255);not null"`
	Manufacturer  *string   `gorm:"column:mfr;type:varchar(255)"`
	SKU           *string   `gorm:"column:sku;type:varchar(100);index"`
	Price         float64   `gorm:"column:price;type:numeric(12,2);not null"`
	Rating        *int      `gorm:"column:rating"`
	StockQuantity int       `gorm:"column:stock_quantity;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}
