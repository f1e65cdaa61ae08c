package timeentry

import (
	"context"

	"github.com/NicBab/x-tech-app-server/internal/lifecycle"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// CreateGroup inserts the group row and any attached jobs.
	CreateGroup(ctx context.Context, g *TimeEntryGroup) error
	FindAll(ctx context.Context, filter ListFilter) ([]TimeEntryGroup, error)
	FindByID(ctx context.Context, id string) (*TimeEntryGroup, error)
	// UpdateDraftGroup persists g only while the stored row is still
	// DRAFT; the affected-row count exposes a racing submit.
	UpdateDraftGroup(ctx context.Context, g *TimeEntryGroup) (int64, error)
	UpdateStatus(ctx context.Context, id string, status lifecycle.Status) error
	DeleteGroup(ctx context.Context, id string) error
	DeleteJobsByGroup(ctx context.Context, groupID string) error
	CreateJobs(ctx context.Context, jobs []TimeEntryJob) error
	UserExists(ctx context.Context, userID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateGroup(ctx context.Context, g *TimeEntryGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]TimeEntryGroup, error) {
	db := r.db.WithContext(ctx).
		Preload("Jobs").
		Preload("User")

	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var rows []TimeEntryGroup
	err := db.Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntryGroup, error) {
	var g TimeEntryGroup
	err := r.db.WithContext(ctx).
		Preload("Jobs").
		Preload("User").
		First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) UpdateDraftGroup(ctx context.Context, g *TimeEntryGroup) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&TimeEntryGroup{}).
		Where("id = ?", g.ID).
		Where("status = ?", string(lifecycle.StatusDraft)).
		Select("user_id", "date", "week_ending_date", "status", "notes", "updated_at").
		Updates(g)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status lifecycle.Status) error {
	return r.db.WithContext(ctx).
		Model(&TimeEntryGroup{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *repository) DeleteGroup(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TimeEntryGroup{}, "id = ?", id).Error
}

func (r *repository) DeleteJobsByGroup(ctx context.Context, groupID string) error {
	return r.db.WithContext(ctx).Delete(&TimeEntryJob{}, "group_id = ?", groupID).Error
}

func (r *repository) CreateJobs(ctx context.Context, jobs []TimeEntryJob) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&jobs).Error
}

func (r *repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
