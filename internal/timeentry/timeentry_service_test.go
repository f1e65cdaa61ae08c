package timeentry_test

import (
	"context"
	"testing"

	"github.com/NicBab/x-tech-app-server/internal/lifecycle"
	"github.com/NicBab/x-tech-app-server/internal/shared/nullable"
	"github.com/NicBab/x-tech-app-server/internal/timeentry"
	timeentryerrors "github.com/NicBab/x-tech-app-server/internal/timeentry/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeTimeEntryRepository struct {
	withTxFn            func(tx *gorm.DB) timeentry.Repository
	createGroupFn       func(ctx context.Context, g *timeentry.TimeEntryGroup) error
	findAllFn           func(ctx context.Context, filter timeentry.ListFilter) ([]timeentry.TimeEntryGroup, error)
	findByIDFn          func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error)
	updateDraftGroupFn  func(ctx context.Context, g *timeentry.TimeEntryGroup) (int64, error)
	updateStatusFn      func(ctx context.Context, id string, status lifecycle.Status) error
	deleteGroupFn       func(ctx context.Context, id string) error
	deleteJobsByGroupFn func(ctx context.Context, groupID string) error
	createJobsFn        func(ctx context.Context, jobs []timeentry.TimeEntryJob) error
	userExistsFn        func(ctx context.Context, userID string) (bool, error)
}

func (f *fakeTimeEntryRepository) WithTx(tx *gorm.DB) timeentry.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimeEntryRepository) CreateGroup(ctx context.Context, g *timeentry.TimeEntryGroup) error {
	if f.createGroupFn != nil {
		return f.createGroupFn(ctx, g)
	}
	return nil
}

func (f *fakeTimeEntryRepository) FindAll(ctx context.Context, filter timeentry.ListFilter) ([]timeentry.TimeEntryGroup, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeTimeEntryRepository) FindByID(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimeEntryRepository) UpdateDraftGroup(ctx context.Context, g *timeentry.TimeEntryGroup) (int64, error) {
	if f.updateDraftGroupFn != nil {
		return f.updateDraftGroupFn(ctx, g)
	}
	return 1, nil
}

func (f *fakeTimeEntryRepository) UpdateStatus(ctx context.Context, id string, status lifecycle.Status) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeTimeEntryRepository) DeleteGroup(ctx context.Context, id string) error {
	if f.deleteGroupFn != nil {
		return f.deleteGroupFn(ctx, id)
	}
	return nil
}

func (f *fakeTimeEntryRepository) DeleteJobsByGroup(ctx context.Context, groupID string) error {
	if f.deleteJobsByGroupFn != nil {
		return f.deleteJobsByGroupFn(ctx, groupID)
	}
	return nil
}

func (f *fakeTimeEntryRepository) CreateJobs(ctx context.Context, jobs []timeentry.TimeEntryJob) error {
	if f.createJobsFn != nil {
		return f.createJobsFn(ctx, jobs)
	}
	return nil
}

func (f *fakeTimeEntryRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	if f.userExistsFn != nil {
		return f.userExistsFn(ctx, userID)
	}
	return true, nil
}

type timeEntryServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service timeentry.Service
	repo    *fakeTimeEntryRepository
}

func setupTimeEntryServiceTest(t *testing.T) *timeEntryServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeTimeEntryRepository{}
	svc := timeentry.NewService(gormDB, repo)

	return &timeEntryServiceDeps{
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validUpsert(userID uuid.UUID) timeentry.UpsertRequest {
	return timeentry.UpsertRequest{
		UserID:         userID.String(),
		Date:           "2026-02-09",
		WeekEndingDate: "2026-02-13",
		Jobs: []timeentry.JobInput{
			{JobNumber: "J-1001", HoursWorked: nullable.Number{Valid: true, Value: 6}},
			{JobNumber: "J-1002", HoursWorked: nullable.Number{Valid: true, Value: 2}},
		},
	}
}

func submittedGroup(userID uuid.UUID) *timeentry.TimeEntryGroup {
	g := &timeentry.TimeEntryGroup{
		ID:     uuid.New(),
		UserID: userID,
		Status: string(lifecycle.StatusSubmitted),
	}
	g.Jobs = []timeentry.TimeEntryJob{
		{ID: uuid.New(), GroupID: g.ID, JobNumber: "J-1001", HoursWorked: 8},
	}
	return g
}

func TestTimeEntryService_Upsert(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("create without id", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		var stored *timeentry.TimeEntryGroup
		deps.repo.createGroupFn = func(ctx context.Context, g *timeentry.TimeEntryGroup) error {
			stored = g
			return nil
		}

		resp, created, err := deps.service.Upsert(ctx, validUpsert(userID))

		assert.NoError(t, err)
		assert.True(t, created)
		assert.NotNil(t, stored)
		assert.Equal(t, string(lifecycle.StatusDraft), resp.Status)
		assert.Len(t, resp.Jobs, 2)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("edit when id present", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		existing := &timeentry.TimeEntryGroup{
			ID:     uuid.New(),
			UserID: userID,
			Status: string(lifecycle.StatusDraft),
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			assert.Equal(t, existing.ID.String(), id)
			return existing, nil
		}

		req := validUpsert(userID)
		id := existing.ID.String()
		req.ID = &id

		resp, created, err := deps.service.Upsert(ctx, req)

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID.String(), resp.ID)
	})

	t.Run("missing jobs", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)

		req := validUpsert(userID)
		req.Jobs = nil

		_, _, err := deps.service.Upsert(ctx, req)

		assert.ErrorIs(t, err, timeentryerrors.ErrMissingRequiredFields)
	})

	t.Run("hours default to zero when absent", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		var stored *timeentry.TimeEntryGroup
		deps.repo.createGroupFn = func(ctx context.Context, g *timeentry.TimeEntryGroup) error {
			stored = g
			return nil
		}

		req := validUpsert(userID)
		req.Jobs = []timeentry.JobInput{{JobNumber: "J-1003"}}

		_, _, err := deps.service.Upsert(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 0.0, stored.Jobs[0].HoursWorked)
		assert.Nil(t, stored.Jobs[0].Mileage)
	})
}

func TestTimeEntryService_UpdateDraft(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("replaces the full job set in one transaction", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		existing := &timeentry.TimeEntryGroup{
			ID:     uuid.New(),
			UserID: userID,
			Status: string(lifecycle.StatusDraft),
			Jobs: []timeentry.TimeEntryJob{
				{ID: uuid.New(), JobNumber: "OLD-1"},
				{ID: uuid.New(), JobNumber: "OLD-2"},
				{ID: uuid.New(), JobNumber: "OLD-3"},
			},
		}

		var deletedGroupID string
		var inserted []timeentry.TimeEntryJob
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return existing, nil
		}
		deps.repo.deleteJobsByGroupFn = func(ctx context.Context, groupID string) error {
			deletedGroupID = groupID
			return nil
		}
		deps.repo.createJobsFn = func(ctx context.Context, jobs []timeentry.TimeEntryJob) error {
			inserted = jobs
			return nil
		}

		resp, err := deps.service.UpdateDraft(ctx, existing.ID.String(), validUpsert(userID))

		assert.NoError(t, err)
		assert.Equal(t, existing.ID.String(), deletedGroupID)
		// The stored set is exactly the payload set, no survivors.
		assert.Len(t, inserted, 2)
		assert.Equal(t, "J-1001", inserted[0].JobNumber)
		assert.Equal(t, "J-1002", inserted[1].JobNumber)
		assert.Len(t, resp.Jobs, 2)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects submitted group", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return submittedGroup(userID), nil
		}

		_, err := deps.service.UpdateDraft(ctx, uuid.New().String(), validUpsert(userID))

		assert.ErrorIs(t, err, timeentryerrors.ErrNotDraft)
	})

	t.Run("racing submit rolls back the child delete", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		existing := &timeentry.TimeEntryGroup{
			ID:     uuid.New(),
			UserID: userID,
			Status: string(lifecycle.StatusDraft),
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return existing, nil
		}
		deps.repo.updateDraftGroupFn = func(ctx context.Context, g *timeentry.TimeEntryGroup) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.UpdateDraft(ctx, existing.ID.String(), validUpsert(userID))

		assert.ErrorIs(t, err, timeentryerrors.ErrNotDraft)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.UpdateDraft(ctx, uuid.New().String(), validUpsert(userID))

		assert.ErrorIs(t, err, timeentryerrors.ErrGroupNotFound)
	})
}

func TestTimeEntryService_Submit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("flips status and leaves jobs untouched", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		existing := &timeentry.TimeEntryGroup{
			ID:     uuid.New(),
			UserID: userID,
			Status: string(lifecycle.StatusDraft),
			Jobs: []timeentry.TimeEntryJob{
				{ID: uuid.New(), JobNumber: "J-1001", HoursWorked: 8},
			},
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return existing, nil
		}
		deps.repo.deleteJobsByGroupFn = func(ctx context.Context, groupID string) error {
			t.Fatal("submit must not touch the job rows")
			return nil
		}

		resp, err := deps.service.Submit(ctx, existing.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, string(lifecycle.StatusSubmitted), resp.Status)
		assert.Len(t, resp.Jobs, 1)
	})

	t.Run("idempotent when already submitted", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		existing := submittedGroup(userID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return existing, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, id string, status lifecycle.Status) error {
			t.Fatal("status must not be rewritten on a repeated submit")
			return nil
		}

		resp, err := deps.service.Submit(ctx, existing.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, existing.ID.String(), resp.ID)
		assert.Equal(t, string(lifecycle.StatusSubmitted), resp.Status)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Submit(ctx, uuid.New().String())

		assert.ErrorIs(t, err, timeentryerrors.ErrGroupNotFound)
	})
}

func TestTimeEntryService_Resubmit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	resubmitReq := func() timeentry.ResubmitRequest {
		return timeentry.ResubmitRequest{
			UserID:         userID.String(),
			Date:           "2026-02-09",
			WeekEndingDate: "2026-02-13",
			Jobs: []timeentry.JobInput{
				{JobNumber: "J-9001", HoursWorked: nullable.Number{Valid: true, Value: 4}},
			},
		}
	}

	t.Run("replaces the group under a new id", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		existing := submittedGroup(userID)
		var deletedJobsGroup, deletedGroup string
		var created *timeentry.TimeEntryGroup
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return existing, nil
		}
		deps.repo.deleteJobsByGroupFn = func(ctx context.Context, groupID string) error {
			deletedJobsGroup = groupID
			return nil
		}
		deps.repo.deleteGroupFn = func(ctx context.Context, id string) error {
			deletedGroup = id
			return nil
		}
		deps.repo.createGroupFn = func(ctx context.Context, g *timeentry.TimeEntryGroup) error {
			created = g
			return nil
		}

		resp, err := deps.service.Resubmit(ctx, existing.ID.String(), resubmitReq())

		assert.NoError(t, err)
		assert.Equal(t, existing.ID.String(), deletedJobsGroup)
		assert.Equal(t, existing.ID.String(), deletedGroup)
		assert.NotNil(t, created)
		// The caller must adopt the returned id; the old one is gone.
		assert.NotEqual(t, existing.ID.String(), resp.ID)
		assert.Equal(t, created.ID.String(), resp.ID)
		assert.Equal(t, string(lifecycle.StatusSubmitted), resp.Status)
		assert.Len(t, resp.Jobs, 1)
		assert.Equal(t, "J-9001", resp.Jobs[0].JobNumber)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects draft group", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		existing := submittedGroup(userID)
		existing.Status = string(lifecycle.StatusDraft)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return existing, nil
		}

		_, err := deps.service.Resubmit(ctx, existing.ID.String(), resubmitReq())

		assert.ErrorIs(t, err, timeentryerrors.ErrNotSubmitted)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Resubmit(ctx, uuid.New().String(), resubmitReq())

		assert.ErrorIs(t, err, timeentryerrors.ErrGroupNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)

		_, err := deps.service.Resubmit(ctx, uuid.New().String(), timeentry.ResubmitRequest{})

		assert.ErrorIs(t, err, timeentryerrors.ErrMissingRequiredFields)
	})
}

func TestTimeEntryService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("draft only", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return submittedGroup(userID), nil
		}

		err := deps.service.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, timeentryerrors.ErrNotDraft)
	})

	t.Run("removes group and jobs", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		existing := &timeentry.TimeEntryGroup{
			ID:     uuid.New(),
			UserID: userID,
			Status: string(lifecycle.StatusDraft),
		}
		jobsDeleted, groupDeleted := false, false
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntryGroup, error) {
			return existing, nil
		}
		deps.repo.deleteJobsByGroupFn = func(ctx context.Context, groupID string) error {
			jobsDeleted = true
			return nil
		}
		deps.repo.deleteGroupFn = func(ctx context.Context, id string) error {
			groupDeleted = true
			return nil
		}

		err := deps.service.Delete(ctx, existing.ID.String())

		assert.NoError(t, err)
		assert.True(t, jobsDeleted)
		assert.True(t, groupDeleted)
	})
}

func TestTimeEntryService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("admin ignores user filter", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)

		var seen timeentry.ListFilter
		deps.repo.findAllFn = func(ctx context.Context, filter timeentry.ListFilter) ([]timeentry.TimeEntryGroup, error) {
			seen = filter
			return nil, nil
		}

		_, err := deps.service.List(ctx, timeentry.ListFilter{Role: "admin", UserID: uuid.New().String()})

		assert.NoError(t, err)
		assert.Empty(t, seen.UserID)
	})

	t.Run("status filter is normalized", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)

		var seen timeentry.ListFilter
		deps.repo.findAllFn = func(ctx context.Context, filter timeentry.ListFilter) ([]timeentry.TimeEntryGroup, error) {
			seen = filter
			return nil, nil
		}

		_, err := deps.service.List(ctx, timeentry.ListFilter{UserID: uuid.New().String(), Status: "submitted"})

		assert.NoError(t, err)
		assert.Equal(t, string(lifecycle.StatusSubmitted), seen.Status)
	})
}
