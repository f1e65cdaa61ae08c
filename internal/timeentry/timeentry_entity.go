package timeentry

import (
	"time"

	"github.com/google/uuid"
)

type TimeEntryGroup struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Date           time.Time `gorm:"column:date;type:date;not null;index"`
	WeekEndingDate time.Time `gorm:"column:week_ending_date;type:date;not null;index"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:'DRAFT';index"`
	Notes          *string   `gorm:"column:notes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Jobs []TimeEntryJob `gorm:"foreignKey:GroupID;references:ID"`
	User *UserRef       `gorm:"foreignKey:UserID;references:ID"`
}

func (TimeEntryGroup) TableName() string {
	return "time_entry_groups"
}

// TimeEntryJob rows exist only as children of a group; every edit replaces
// the full set.
type TimeEntryJob struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupID uuid.UUID `gorm:"column:group_id;type:uuid;not null;index"`

	JobNumber     string   `gorm:"column:job_number;type:varchar(50);not null"`
	HoursWorked   float64  `gorm:"column:hours_worked;type:numeric(6,2);not null;default:0"`
	Comments      *string  `gorm:"column:comments;type:text"`
	Mileage       *float64 `gorm:"column:mileage;type:numeric(10,2)"`
	ExtraExpenses *string  `gorm:"column:extra_expenses;type:text"`
	StartTime     *string  `gorm:"column:start_time;type:varchar(20)"`
	EndTime       *string  `gorm:"column:end_time;type:varchar(20)"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (TimeEntryJob) TableName() string {
	return "time_entry_jobs"
}

type UserRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (UserRef) TableName() string {
	return "users"
}
