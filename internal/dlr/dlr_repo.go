package dlr

import (
	"context"

	"github.com/NicBab/x-tech-app-server/internal/lifecycle"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dlr_repo.go -destination=mock/dlr_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, d *DLR) error
	FindAll(ctx context.Context, filter ListFilter) ([]DLR, error)
	FindByID(ctx context.Context, id string) (*DLR, error)
	// UpdateDraft persists d only while the stored row is still DRAFT.
	// Returns the number of rows touched so callers can detect a racing
	// submit without an in-process lock.
	UpdateDraft(ctx context.Context, d *DLR) (int64, error)
	UpdateStatus(ctx context.Context, id string, status lifecycle.Status) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, d *DLR) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]DLR, error) {
	db := r.db.WithContext(ctx).
		Preload("User").
		Preload("Invoice").
		Preload("Po")

	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	} else if filter.Role == "admin" {
		// Drafts are private to their owner; the admin view only sees
		// records that have been submitted.
		db = db.Where("status <> ?", string(lifecycle.StatusDraft))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where(
			"dlr_number ILIKE ? OR job_number ILIKE ? OR customer ILIKE ? OR notes ILIKE ?",
			like, like, like, like,
		)
	}

	var rows []DLR
	err := db.Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*DLR, error) {
	var d DLR
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Invoice").
		Preload("Po").
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) UpdateDraft(ctx context.Context, d *DLR) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&DLR{}).
		Where("id = ?", d.ID).
		Where("status = ?", string(lifecycle.StatusDraft)).
		Select("*").
		Omit("id", "created_at").
		Updates(d)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status lifecycle.Status) error {
	return r.db.WithContext(ctx).
		Model(&DLR{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&DLR{}, "id = ?", id).Error
}

func (r *repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
