package timeentry

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/NicBab/x-tech-app-server/internal/events"
	"github.com/NicBab/x-tech-app-server/internal/lifecycle"
	"github.com/NicBab/x-tech-app-server/internal/messaging/kafka"
	"github.com/NicBab/x-tech-app-server/internal/shared/contextutil"
	timeentryerrors "github.com/NicBab/x-tech-app-server/internal/timeentry/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rules binds the shared lifecycle to the time-entry state set:
// DRAFT -> SUBMITTED.
var rules = lifecycle.Rules{Terminal: lifecycle.StatusSubmitted}

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]GroupResponse, error)
	GetByID(ctx context.Context, id string) (GroupResponse, error)
	// Upsert creates a new group or, when req.ID is set, edits an
	// existing DRAFT. The returned bool reports whether a row was created.
	Upsert(ctx context.Context, req UpsertRequest) (GroupResponse, bool, error)
	UpdateDraft(ctx context.Context, id string, req UpsertRequest) (GroupResponse, error)
	Submit(ctx context.Context, id string) (GroupResponse, error)
	Resubmit(ctx context.Context, id string, req ResubmitRequest) (GroupResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *gorm.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]GroupResponse, error) {
	if filter.Role == "admin" {
		filter.UserID = ""
	}
	if filter.Status != "" {
		filter.Status = string(rules.Normalize(filter.Status))
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list time entries failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (GroupResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupResponse{}, timeentryerrors.ErrGroupNotFound
		}
		return GroupResponse{}, err
	}
	return mapToResponse(*g), nil
}

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (GroupResponse, bool, error) {
	if err := validateRequired(req.UserID, req.Date, req.WeekEndingDate, req.Jobs); err != nil {
		return GroupResponse{}, false, err
	}

	if req.ID != nil && *req.ID != "" {
		resp, err := s.UpdateDraft(ctx, *req.ID, req)
		return resp, false, err
	}

	resp, err := s.create(ctx, req)
	return resp, true, err
}

func (s *service) create(ctx context.Context, req UpsertRequest) (GroupResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create time entry requested",
		zap.String("request_id", rid),
		zap.String("user_id", req.UserID),
		zap.String("status", req.Status),
		zap.Int("jobs", len(req.Jobs)),
	)

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return GroupResponse{}, timeentryerrors.ErrInvalidUserID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return GroupResponse{}, err
	}
	weekEnding, err := parseDate(req.WeekEndingDate)
	if err != nil {
		return GroupResponse{}, err
	}

	status := rules.Normalize(req.Status)

	g := &TimeEntryGroup{
		ID:             uuid.New(),
		UserID:         userID,
		Date:           date,
		WeekEndingDate: weekEnding,
		Status:         string(status),
		Notes:          req.Notes,
	}
	g.Jobs = buildJobs(g.ID, req.Jobs)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create time entry begin tx failed", zap.Error(tx.Error))
		return GroupResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.UserExists(ctx, req.UserID)
	if err != nil {
		return GroupResponse{}, err
	}
	if !exists {
		return GroupResponse{}, timeentryerrors.ErrUserNotFound
	}

	if err := qtx.CreateGroup(ctx, g); err != nil {
		s.logger.Error("create time entry persist failed", zap.Error(err))
		return GroupResponse{}, mapRepositoryError(err)
	}

	if rules.IsTerminal(status) {
		if err := s.enqueueSubmittedEvent(ctx, tx, g, rid); err != nil {
			return GroupResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create time entry commit failed", zap.Error(err))
		return GroupResponse{}, err
	}
	s.logger.Info("create time entry success",
		zap.String("group_id", g.ID.String()),
		zap.String("status", g.Status),
	)

	return mapToResponse(*g), nil
}

func (s *service) UpdateDraft(ctx context.Context, id string, req UpsertRequest) (GroupResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update time entry requested",
		zap.String("request_id", rid),
		zap.String("group_id", id),
		zap.Int("jobs", len(req.Jobs)),
	)

	if err := validateRequired(req.UserID, req.Date, req.WeekEndingDate, req.Jobs); err != nil {
		return GroupResponse{}, err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return GroupResponse{}, timeentryerrors.ErrInvalidUserID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return GroupResponse{}, err
	}
	weekEnding, err := parseDate(req.WeekEndingDate)
	if err != nil {
		return GroupResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("update time entry begin tx failed", zap.Error(tx.Error))
		return GroupResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	g, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupResponse{}, timeentryerrors.ErrGroupNotFound
		}
		return GroupResponse{}, err
	}
	if !rules.CanEdit(lifecycle.Status(g.Status)) {
		return GroupResponse{}, timeentryerrors.ErrNotDraft
	}

	status := rules.Normalize(req.Status)

	g.UserID = userID
	g.Date = date
	g.WeekEndingDate = weekEnding
	g.Status = string(status)
	g.Notes = req.Notes

	// Full child replacement: drop every existing job, then insert the
	// payload set. The guarded group update and both job statements share
	// one transaction so a failure rolls the whole edit back.
	if err := qtx.DeleteJobsByGroup(ctx, id); err != nil {
		s.logger.Error("update time entry delete jobs failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}

	affected, err := qtx.UpdateDraftGroup(ctx, g)
	if err != nil {
		s.logger.Error("update time entry persist failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}
	if affected == 0 {
		// Lost the race against a concurrent submit; roll back the child
		// delete and report the conflict.
		return GroupResponse{}, timeentryerrors.ErrNotDraft
	}

	g.Jobs = buildJobs(g.ID, req.Jobs)
	if err := qtx.CreateJobs(ctx, g.Jobs); err != nil {
		s.logger.Error("update time entry create jobs failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, mapRepositoryError(err)
	}

	if rules.IsTerminal(status) {
		if err := s.enqueueSubmittedEvent(ctx, tx, g, rid); err != nil {
			return GroupResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update time entry commit failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}
	s.logger.Info("update time entry success",
		zap.String("group_id", id),
		zap.String("status", g.Status),
		zap.Int("jobs", len(g.Jobs)),
	)

	return mapToResponse(*g), nil
}

func (s *service) Submit(ctx context.Context, id string) (GroupResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("submit time entry begin tx failed", zap.Error(tx.Error))
		return GroupResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	g, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupResponse{}, timeentryerrors.ErrGroupNotFound
		}
		return GroupResponse{}, err
	}

	// Submitting twice is a no-op, not an error.
	if rules.IsTerminal(lifecycle.Status(g.Status)) {
		return mapToResponse(*g), nil
	}

	// Submit flips the status only; the job rows are left untouched.
	if err := qtx.UpdateStatus(ctx, id, rules.Terminal); err != nil {
		s.logger.Error("submit time entry persist failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}
	g.Status = string(rules.Terminal)

	if err := s.enqueueSubmittedEvent(ctx, tx, g, rid); err != nil {
		return GroupResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("submit time entry commit failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}
	s.logger.Info("submit time entry success", zap.String("group_id", id))

	return mapToResponse(*g), nil
}

func (s *service) Resubmit(ctx context.Context, id string, req ResubmitRequest) (GroupResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("resubmit time entry requested",
		zap.String("request_id", rid),
		zap.String("group_id", id),
		zap.Int("jobs", len(req.Jobs)),
	)

	if err := validateRequired(req.UserID, req.Date, req.WeekEndingDate, req.Jobs); err != nil {
		return GroupResponse{}, err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return GroupResponse{}, timeentryerrors.ErrInvalidUserID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return GroupResponse{}, err
	}
	weekEnding, err := parseDate(req.WeekEndingDate)
	if err != nil {
		return GroupResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("resubmit time entry begin tx failed", zap.Error(tx.Error))
		return GroupResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupResponse{}, timeentryerrors.ErrGroupNotFound
		}
		return GroupResponse{}, err
	}
	if !rules.CanResubmit(lifecycle.Status(existing.Status)) {
		return GroupResponse{}, timeentryerrors.ErrNotSubmitted
	}

	// Destructive replace: the old aggregate is removed and a brand-new
	// SUBMITTED one takes its place under a fresh id. All four statements
	// commit or roll back together.
	if err := qtx.DeleteJobsByGroup(ctx, id); err != nil {
		s.logger.Error("resubmit time entry delete jobs failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}
	if err := qtx.DeleteGroup(ctx, id); err != nil {
		s.logger.Error("resubmit time entry delete group failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}

	replacement := &TimeEntryGroup{
		ID:             uuid.New(),
		UserID:         userID,
		Date:           date,
		WeekEndingDate: weekEnding,
		Status:         string(rules.Terminal),
		Notes:          req.Notes,
	}
	replacement.Jobs = buildJobs(replacement.ID, req.Jobs)

	if err := qtx.CreateGroup(ctx, replacement); err != nil {
		s.logger.Error("resubmit time entry create replacement failed",
			zap.String("old_group_id", id),
			zap.Error(err),
		)
		return GroupResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueResubmittedEvent(ctx, tx, id, replacement, rid); err != nil {
		return GroupResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("resubmit time entry commit failed", zap.String("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}
	s.logger.Info("resubmit time entry success",
		zap.String("old_group_id", id),
		zap.String("new_group_id", replacement.ID.String()),
	)

	return mapToResponse(*replacement), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	g, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return timeentryerrors.ErrGroupNotFound
		}
		return err
	}
	if !rules.CanDelete(lifecycle.Status(g.Status)) {
		return timeentryerrors.ErrNotDraft
	}

	if err := qtx.DeleteJobsByGroup(ctx, id); err != nil {
		s.logger.Error("delete time entry jobs failed", zap.String("group_id", id), zap.Error(err))
		return err
	}
	if err := qtx.DeleteGroup(ctx, id); err != nil {
		s.logger.Error("delete time entry group failed", zap.String("group_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}
	s.logger.Info("delete time entry success", zap.String("group_id", id))
	return nil
}

func (s *service) enqueueSubmittedEvent(ctx context.Context, tx *gorm.DB, g *TimeEntryGroup, requestID string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.TimeEntrySubmittedEvent{
		EventType:  "timeentry_submitted",
		GroupID:    g.ID.String(),
		UserID:     g.UserID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "time_entry_group",
		AggregateID:   g.ID.String(),
		EventType:     "timeentry_submitted",
		Topic:         events.TimeEntryLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueResubmittedEvent(ctx context.Context, tx *gorm.DB, oldID string, replacement *TimeEntryGroup, requestID string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.TimeEntryResubmittedEvent{
		EventType:  "timeentry_resubmitted",
		OldGroupID: oldID,
		ReplacedBy: replacement.ID.String(),
		UserID:     replacement.UserID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "time_entry_group",
		AggregateID:   replacement.ID.String(),
		EventType:     "timeentry_resubmitted",
		Topic:         events.TimeEntryLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validateRequired(userID, date, weekEndingDate string, jobs []JobInput) error {
	if userID == "" || date == "" || weekEndingDate == "" || jobs == nil {
		return timeentryerrors.ErrMissingRequiredFields
	}
	return nil
}

func buildJobs(groupID uuid.UUID, inputs []JobInput) []TimeEntryJob {
	jobs := make([]TimeEntryJob, len(inputs))
	for i, in := range inputs {
		hours := 0.0
		if in.HoursWorked.Valid {
			hours = in.HoursWorked.Value
		}
		jobs[i] = TimeEntryJob{
			ID:            uuid.New(),
			GroupID:       groupID,
			JobNumber:     in.JobNumber,
			HoursWorked:   hours,
			Comments:      in.Comments,
			Mileage:       in.Mileage.Ptr(),
			ExtraExpenses: in.ExtraExpenses,
			StartTime:     in.StartTime,
			EndTime:       in.EndTime,
		}
	}
	return jobs
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, timeentryerrors.ErrInvalidDateFormat
}

func mapToResponse(g TimeEntryGroup) GroupResponse {
	resp := GroupResponse{
		ID:             g.ID.String(),
		UserID:         g.UserID.String(),
		Date:           g.Date.Format("2006-01-02"),
		WeekEndingDate: g.WeekEndingDate.Format("2006-01-02"),
		Status:         g.Status,
		Notes:          g.Notes,
		Jobs:           make([]JobResponse, len(g.Jobs)),
	}
	if g.User != nil {
		resp.EmployeeName = g.User.Name
	}
	for i, j := range g.Jobs {
		resp.Jobs[i] = JobResponse{
			ID:            j.ID.String(),
			JobNumber:     j.JobNumber,
			HoursWorked:   j.HoursWorked,
			Comments:      j.Comments,
			Mileage:       j.Mileage,
			ExtraExpenses: j.ExtraExpenses,
			StartTime:     j.StartTime,
			EndTime:       j.EndTime,
		}
	}
	return resp
}

func mapToListResponse(rows []TimeEntryGroup) []GroupResponse {
	resp := make([]GroupResponse, len(rows))
	for i, g := range rows {
		resp[i] = mapToResponse(g)
	}
	return resp
}
