package timeentry

import "github.com/NicBab/x-tech-app-server/internal/shared/nullable"

type JobInput struct {
	JobNumber     string          `json:"jobNumber"`
	HoursWorked   nullable.Number `json:"hoursWorked"`
	Comments      *string         `json:"comments"`
	Mileage       nullable.Number `json:"mileage"`
	ExtraExpenses *string         `json:"extraExpenses"`
	StartTime     *string         `json:"startTime"`
	EndTime       *string         `json:"endTime"`
}

// UpsertRequest creates a new group, or edits an existing DRAFT when ID
// is present. Jobs is the complete replacement set, never a diff.
type UpsertRequest struct {
	ID             *string    `json:"id"`
	UserID         string     `json:"userId"`
	Date           string     `json:"date"`
	WeekEndingDate string     `json:"weekEndingDate"`
	Status         string     `json:"status"`
	Notes          *string    `json:"notes"`
	Jobs           []JobInput `json:"jobs"`
}

// ResubmitRequest replaces a SUBMITTED group wholesale; the status is
// implied and the returned id supersedes the old one.
type ResubmitRequest struct {
	UserID         string     `json:"userId"`
	Date           string     `json:"date"`
	WeekEndingDate string     `json:"weekEndingDate"`
	Notes          *string    `json:"notes"`
	Jobs           []JobInput `json:"jobs"`
}

type ListFilter struct {
	UserID string
	Role   string
	Status string
}

type JobResponse struct {
	ID            string   `json:"id"`
	JobNumber     string   `json:"jobNumber"`
	HoursWorked   float64  `json:"hoursWorked"`
	Comments      *string  `json:"comments"`
	Mileage       *float64 `json:"mileage"`
	ExtraExpenses *string  `json:"extraExpenses"`
	StartTime     *string  `json:"startTime"`
	EndTime       *string  `json:"endTime"`
}

type GroupResponse struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	EmployeeName   string        `json:"employeeName,omitempty"`
	Date           string        `json:"date"`
	WeekEndingDate string        `json:"weekEndingDate"`
	Status         string        `json:"status"`
	Notes          *string       `json:"notes"`
	Jobs           []JobResponse `json:"jobs"`
}
