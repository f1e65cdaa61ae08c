package dlr

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	dlrerrors "github.com/NicBab/x-tech-app-server/internal/dlr/errors"
	"github.com/NicBab/x-tech-app-server/internal/events"
	"github.com/NicBab/x-tech-app-server/internal/lifecycle"
	"github.com/NicBab/x-tech-app-server/internal/messaging/kafka"
	"github.com/NicBab/x-tech-app-server/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rules binds the shared lifecycle to the DLR state set: DRAFT -> PENDING.
var rules = lifecycle.Rules{Terminal: lifecycle.StatusPending}

//go:generate mockgen -source=dlr_service.go -destination=mock/dlr_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]DLRResponse, error)
	GetByID(ctx context.Context, id string) (DLRResponse, error)
	Create(ctx context.Context, req CreateDLRRequest) (DLRResponse, error)
	Update(ctx context.Context, id string, req UpdateDLRRequest) (DLRResponse, error)
	Submit(ctx context.Context, id string) (DLRResponse, error)
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
	l := zap.L().Named("dlr.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dlr.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]DLRResponse, error) {
	if filter.Role != "admin" {
		if filter.UserID == "" {
			return nil, dlrerrors.ErrUserIDRequired
		}
	} else {
		// Admin listing is company-wide; a stray userId param is ignored.
		filter.UserID = ""
	}
	if filter.Status != "" {
		filter.Status = string(rules.Normalize(filter.Status))
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list dlrs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DLRResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DLRResponse{}, dlrerrors.ErrDLRNotFound
		}
		return DLRResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Create(ctx context.Context, req CreateDLRRequest) (DLRResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create dlr requested",
		zap.String("request_id", rid),
		zap.String("job_number", req.JobNumber),
		zap.String("user_id", req.UserID),
		zap.String("status", req.Status),
	)

	if req.JobNumber == "" || req.Date == "" || req.UserID == "" {
		return DLRResponse{}, dlrerrors.ErrMissingRequiredFields
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return DLRResponse{}, dlrerrors.ErrInvalidUserID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return DLRResponse{}, err
	}
	invoiceID, err := parseOptionalUUID(req.InvoiceID)
	if err != nil {
		return DLRResponse{}, dlrerrors.ErrInvalidRelationID
	}
	poID, err := parseOptionalUUID(req.PoID)
	if err != nil {
		return DLRResponse{}, dlrerrors.ErrInvalidRelationID
	}

	status := rules.Normalize(req.Status)

	otherExpenses, err := otherExpensesToText(req.OtherExpenses)
	if err != nil {
		return DLRResponse{}, err
	}

	d := &DLR{
		ID:            uuid.New(),
		DLRNumber:     strings.TrimSpace(req.DLRNumber),
		JobNumber:     req.JobNumber,
		Date:          date,
		UserID:        userID,
		Customer:      req.Customer,
		Notes:         req.Notes,
		Status:        string(status),
		TotalHours:    req.TotalHours.Value,
		Fuel:          req.Fuel.Ptr(),
		Hotel:         req.Hotel.Ptr(),
		Mileage:       req.Mileage.Ptr(),
		OtherExpenses: otherExpenses,
		FileURL:       req.FileURL,
		SignedURL:     req.SignedURL,
		InvoiceID:     invoiceID,
		PoID:          poID,
	}
	if d.DLRNumber == "" {
		d.DLRNumber = generateDLRNumber(date)
	}

	if rules.IsTerminal(status) {
		if err := validateSubmission(d); err != nil {
			return DLRResponse{}, err
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create dlr begin tx failed", zap.Error(tx.Error))
		return DLRResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Pre-check the owner so a bad userId surfaces as a 400 instead of a
	// foreign-key failure from the store.
	exists, err := qtx.UserExists(ctx, req.UserID)
	if err != nil {
		s.logger.Error("create dlr user check failed", zap.Error(err))
		return DLRResponse{}, mapRepositoryError(err)
	}
	if !exists {
		return DLRResponse{}, dlrerrors.ErrUserNotFound
	}

	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Error("create dlr persist failed", zap.Error(err))
		return DLRResponse{}, mapRepositoryError(err)
	}

	if rules.IsTerminal(status) {
		if err := s.enqueueSubmittedEvent(ctx, tx, d, rid); err != nil {
			return DLRResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create dlr commit failed", zap.Error(err))
		return DLRResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("create dlr success",
		zap.String("dlr_id", d.ID.String()),
		zap.String("dlr_number", d.DLRNumber),
		zap.String("status", d.Status),
	)

	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDLRRequest) (DLRResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update dlr requested",
		zap.String("request_id", rid),
		zap.String("dlr_id", id),
	)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("update dlr begin tx failed", zap.Error(tx.Error))
		return DLRResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DLRResponse{}, dlrerrors.ErrDLRNotFound
		}
		return DLRResponse{}, mapRepositoryError(err)
	}
	if !rules.CanEdit(lifecycle.Status(d.Status)) {
		return DLRResponse{}, dlrerrors.ErrNotDraft
	}

	if err := applyPatch(d, req); err != nil {
		return DLRResponse{}, err
	}

	becameTerminal := rules.IsTerminal(lifecycle.Status(d.Status))
	if becameTerminal {
		if err := validateSubmission(d); err != nil {
			return DLRResponse{}, err
		}
	}

	affected, err := qtx.UpdateDraft(ctx, d)
	if err != nil {
		s.logger.Error("update dlr persist failed", zap.String("dlr_id", id), zap.Error(err))
		return DLRResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		// A concurrent request submitted the draft between our read and
		// this guarded write.
		return DLRResponse{}, dlrerrors.ErrNotDraft
	}

	if becameTerminal {
		if err := s.enqueueSubmittedEvent(ctx, tx, d, rid); err != nil {
			return DLRResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update dlr commit failed", zap.String("dlr_id", id), zap.Error(err))
		return DLRResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("update dlr success",
		zap.String("dlr_id", id),
		zap.String("status", d.Status),
	)

	return mapToResponse(*d), nil
}

func (s *service) Submit(ctx context.Context, id string) (DLRResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("submit dlr begin tx failed", zap.Error(tx.Error))
		return DLRResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DLRResponse{}, dlrerrors.ErrDLRNotFound
		}
		return DLRResponse{}, mapRepositoryError(err)
	}

	// Submitting twice is a no-op, not an error.
	if rules.IsTerminal(lifecycle.Status(d.Status)) {
		return mapToResponse(*d), nil
	}

	// The gate runs against stored values; the request body is ignored.
	if err := validateSubmission(d); err != nil {
		return DLRResponse{}, err
	}

	if err := qtx.UpdateStatus(ctx, id, rules.Terminal); err != nil {
		s.logger.Error("submit dlr persist failed", zap.String("dlr_id", id), zap.Error(err))
		return DLRResponse{}, mapRepositoryError(err)
	}
	d.Status = string(rules.Terminal)

	if err := s.enqueueSubmittedEvent(ctx, tx, d, rid); err != nil {
		return DLRResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("submit dlr commit failed", zap.String("dlr_id", id), zap.Error(err))
		return DLRResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("submit dlr success",
		zap.String("dlr_id", id),
		zap.String("dlr_number", d.DLRNumber),
	)

	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dlrerrors.ErrDLRNotFound
		}
		return mapRepositoryError(err)
	}
	if !rules.CanDelete(lifecycle.Status(d.Status)) {
		return dlrerrors.ErrNotDraft
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete dlr persist failed", zap.String("dlr_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("delete dlr success", zap.String("dlr_id", id))
	return nil
}

func (s *service) enqueueSubmittedEvent(ctx context.Context, tx *gorm.DB, d *DLR, requestID string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.DLRSubmittedEvent{
		EventType:  "dlr_submitted",
		DLRID:      d.ID.String(),
		DLRNumber:  d.DLRNumber,
		UserID:     d.UserID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "dlr",
		AggregateID:   d.ID.String(),
		EventType:     "dlr_submitted",
		Topic:         events.DLRLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("enqueue dlr submitted event failed",
			zap.String("dlr_id", d.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// validateSubmission is the gate a DLR must pass to leave DRAFT.
func validateSubmission(d *DLR) error {
	if strings.TrimSpace(d.Customer) == "" {
		return dlrerrors.ErrCustomerRequired
	}
	if d.TotalHours <= 0 {
		return dlrerrors.ErrTotalHoursRequired
	}
	return nil
}

func applyPatch(d *DLR, req UpdateDLRRequest) error {
	if req.JobNumber != nil {
		d.JobNumber = *req.JobNumber
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		d.Date = date
	}
	if req.Customer != nil {
		d.Customer = *req.Customer
	}
	if req.Status != nil {
		d.Status = string(rules.Normalize(*req.Status))
	}
	if req.TotalHours.Valid {
		d.TotalHours = req.TotalHours.Value
	}
	if req.Fuel.Valid {
		d.Fuel = req.Fuel.Ptr()
	}
	if req.Hotel.Valid {
		d.Hotel = req.Hotel.Ptr()
	}
	if req.Mileage.Valid {
		d.Mileage = req.Mileage.Ptr()
	}
	if req.OtherExpenses != nil {
		text, err := otherExpensesToText(req.OtherExpenses)
		if err != nil {
			return err
		}
		d.OtherExpenses = text
	}
	if req.InvoiceID != nil {
		id, err := parseOptionalUUID(req.InvoiceID)
		if err != nil {
			return dlrerrors.ErrInvalidRelationID
		}
		d.InvoiceID = id
	}
	if req.PoID != nil {
		id, err := parseOptionalUUID(req.PoID)
		if err != nil {
			return dlrerrors.ErrInvalidRelationID
		}
		d.PoID = id
	}

	// Notes and attachment references always take the payload value so an
	// absent field clears the column instead of preserving it.
	d.Notes = req.Notes
	d.FileURL = req.FileURL
	d.SignedURL = req.SignedURL

	return nil
}

const dlrNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateDLRNumber produces a human-readable number in the form
// DLR-YYYYMMDD-XXXX with a random 4-character suffix. Uniqueness is
// enforced by the store; a collision surfaces as a duplicate-number
// conflict.
func generateDLRNumber(date time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = dlrNumberCharset[int(b)%len(dlrNumberCharset)]
	}
	return fmt.Sprintf("DLR-%s-%s", date.Format("20060102"), string(buf))
}

// otherExpensesToText accepts either a pre-serialized JSON string or any
// structured value and stores it as opaque text.
func otherExpensesToText(raw json.RawMessage) (*string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, dlrerrors.ErrInvalidOtherExpenses
		}
		if s == "" {
			return nil, nil
		}
		return &s, nil
	}

	if !json.Valid(raw) {
		return nil, dlrerrors.ErrInvalidOtherExpenses
	}
	s := trimmed
	return &s, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, dlrerrors.ErrInvalidDateFormat
}

func parseOptionalUUID(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapToResponse(d DLR) DLRResponse {
	resp := DLRResponse{
		ID:            d.ID.String(),
		DLRNumber:     d.DLRNumber,
		JobNumber:     d.JobNumber,
		Date:          d.Date.Format("2006-01-02"),
		UserID:        d.UserID.String(),
		Customer:      d.Customer,
		Notes:         d.Notes,
		Status:        d.Status,
		TotalHours:    d.TotalHours,
		Fuel:          d.Fuel,
		Hotel:         d.Hotel,
		Mileage:       d.Mileage,
		OtherExpenses: d.OtherExpenses,
		FileURL:       d.FileURL,
		SignedURL:     d.SignedURL,
	}
	if d.User != nil {
		resp.EmployeeName = d.User.Name
	}
	if d.InvoiceID != nil {
		v := d.InvoiceID.String()
		resp.InvoiceID = &v
	}
	if d.PoID != nil {
		v := d.PoID.String()
		resp.PoID = &v
	}
	if d.Invoice != nil {
		resp.InvoiceNumber = d.Invoice.InvoiceNumber
	}
	if d.Po != nil {
		resp.PoNumber = d.Po.PoNumber
	}
	return resp
}

func mapToListResponse(rows []DLR) []DLRResponse {
	resp := make([]DLRResponse, len(rows))
	for i, d := range rows {
		resp[i] = mapToResponse(d)
	}
	return resp
}
