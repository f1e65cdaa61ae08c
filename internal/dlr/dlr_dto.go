package dlr

import (
	"encoding/json"

	"github.com/NicBab/x-tech-app-server/internal/shared/nullable"
)

type CreateDLRRequest struct {
	DLRNumber string `json:"dlrNumber"`
	JobNumber string `json:"jobNumber"`
	Date      string `json:"date"`
	UserID    string `json:"userId"`
	Customer  string `json:"customer"`
	Notes     *string `json:"notes"`
	Status    string  `json:"status"`

	TotalHours nullable.Number `json:"totalHours"`
	Fuel       nullable.Number `json:"fuel"`
	Hotel      nullable.Number `json:"hotel"`
	Mileage    nullable.Number `json:"mileage"`

	// Either a pre-serialized string or a structured value; stored as text.
	OtherExpenses json.RawMessage `json:"otherExpenses"`

	FileURL   *string `json:"fileUrl"`
	SignedURL *string `json:"signedUrl"`
	InvoiceID *string `json:"invoiceId"`
	PoID      *string `json:"poId"`
}

// UpdateDLRRequest is a partial patch: nil fields fall back to stored
// values, except notes/fileUrl/signedUrl which always take the payload
// value so clients can clear them.
type UpdateDLRRequest struct {
	JobNumber *string `json:"jobNumber"`
	Date      *string `json:"date"`
	Customer  *string `json:"customer"`
	Notes     *string `json:"notes"`
	Status    *string `json:"status"`

	TotalHours nullable.Number `json:"totalHours"`
	Fuel       nullable.Number `json:"fuel"`
	Hotel      nullable.Number `json:"hotel"`
	Mileage    nullable.Number `json:"mileage"`

	OtherExpenses json.RawMessage `json:"otherExpenses"`

	FileURL   *string `json:"fileUrl"`
	SignedURL *string `json:"signedUrl"`
	InvoiceID *string `json:"invoiceId"`
	PoID      *string `json:"poId"`
}

type ListFilter struct {
	Search string
	UserID string
	Role   string
	Status string
}

type DLRResponse struct {
	ID            string   `json:"id"`
	DLRNumber     string   `json:"dlrNumber"`
	JobNumber     string   `json:"jobNumber"`
	Date          string   `json:"date"`
	UserID        string   `json:"userId"`
	EmployeeName  string   `json:"employeeName,omitempty"`
	Customer      string   `json:"customer"`
	Notes         *string  `json:"notes"`
	Status        string   `json:"status"`
	TotalHours    float64  `json:"totalHours"`
	Fuel          *float64 `json:"fuel"`
	Hotel         *float64 `json:"hotel"`
	Mileage       *float64 `json:"mileage"`
	OtherExpenses *string  `json:"otherExpenses"`
	FileURL       *string  `json:"fileUrl"`
	SignedURL     *string  `json:"signedUrl"`
	InvoiceID     *string  `json:"invoiceId"`
	PoID          *string  `json:"poId"`
	InvoiceNumber string   `json:"invoiceNumber,omitempty"`
	PoNumber      string   `json:"poNumber,omitempty"`
}
