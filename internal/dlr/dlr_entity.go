package dlr

import (
	"time"

	"github.com/google/uuid"
)

type DLR struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	DLRNumber string    `gorm:"column:dlr_number;type:varchar(30);not null;uniqueIndex"`
	JobNumber string    `gorm:"column:job_number;type:varchar(50);not null;index"`
	Date      time.Time `gorm:"column:date;type:date;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`

	Customer   string   `gorm:"column:customer;type:varchar(255);not null;default:''"`
	Notes      *string  `gorm:"column:notes;type:text"`
	Status     string   `gorm:"column:status;type:varchar(20);not null;default:'DRAFT';index"`
	TotalHours float64  `gorm:"column:total_hours;type:numeric(6,2);not null;default:0"`
	Fuel       *float64 `gorm:"column:fuel;type:numeric(10,2)"`
	Hotel      *float64 `gorm:"column:hotel;type:numeric(10,2)"`
	Mileage    *float64 `gorm:"column:mileage;type:numeric(10,2)"`

	// Opaque pass-through payload; may itself be JSON text.
	OtherExpenses *string `gorm:"column:other_expenses;type:text"`

	FileURL   *string `gorm:"column:file_url;type:text"`
	SignedURL *string `gorm:"column:signed_url;type:text"`

	InvoiceID *uuid.UUID `gorm:"column:invoice_id;type:uuid"`
	PoID      *uuid.UUID `gorm:"column:po_id;type:uuid"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	User    *UserRef          `gorm:"foreignKey:UserID;references:ID"`
	Invoice *InvoiceRef       `gorm:"foreignKey:InvoiceID;references:ID"`
	Po      *PurchaseOrderRef `gorm:"foreignKey:PoID;references:ID"`
}

func (DLR) TableName() string {
	return "dlrs"
}

type UserRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
	Role string    `gorm:"column:role"`
}

func (UserRef) TableName() string {
	return "users"
}

type InvoiceRef struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceNumber string    `gorm:"column:invoice_number"`
}

func (InvoiceRef) TableName() string {
	return "invoices"
}

type PurchaseOrderRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PoNumber string    `gorm:"column:po_number"`
}

func (PurchaseOrderRef) TableName() string {
	return "purchase_orders"
}
