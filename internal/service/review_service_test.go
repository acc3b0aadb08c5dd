package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/accreditation-service/internal/domain"
	"github.com/spec-kit/accreditation-service/internal/notification"
	"github.com/spec-kit/accreditation-service/internal/repository"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

// fakeRecordRepo is an in-memory stand-in for the Postgres repository,
// counting calls so tests can assert how many store writes a workflow made.
type fakeRecordRepo struct {
	records map[int64]*domain.AccreditationRecord
	nextID  int64

	createCalls       int
	listCalls         int
	updateStatusCalls int
	updateZoneCalls   int
	updateReviewCalls int

	lastReviewStatus domain.AccreditationStatus
	lastReviewZone   domain.Zone

	createErr error
	listErr   error
	updateErr error
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[int64]*domain.AccreditationRecord{}}
}

func (f *fakeRecordRepo) add(record domain.AccreditationRecord) *domain.AccreditationRecord {
	f.nextID++
	record.ID = f.nextID
	record.CreatedAt = time.Now()
	f.records[record.ID] = &record
	return &record
}

func (f *fakeRecordRepo) Create(ctx context.Context, record *domain.AccreditationRecord) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	record.ID = f.nextID
	record.CreatedAt = time.Now()
	stored := *record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id int64) (*domain.AccreditationRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *record
	return &copied, nil
}

func (f *fakeRecordRepo) ListWithFilter(ctx context.Context, filter repository.AccreditationFilter) ([]domain.AccreditationRecord, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := []domain.AccreditationRecord{}
	for _, record := range f.records {
		if filter.Area != nil && record.Area != *filter.Area {
			continue
		}
		if filter.Status != nil && record.Status != *filter.Status {
			continue
		}
		result = append(result, *record)
	}
	return result, nil
}

func (f *fakeRecordRepo) UpdateStatus(ctx context.Context, id int64, status domain.AccreditationStatus) (*domain.AccreditationRecord, error) {
	f.updateStatusCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.records[id].Status = status
	copied := *f.records[id]
	return &copied, nil
}

func (f *fakeRecordRepo) UpdateZone(ctx context.Context, id int64, zone *domain.Zone) (*domain.AccreditationRecord, error) {
	f.updateZoneCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.records[id].Zone = zone
	copied := *f.records[id]
	return &copied, nil
}

func (f *fakeRecordRepo) UpdateReview(ctx context.Context, id int64, status domain.AccreditationStatus, zone domain.Zone) (*domain.AccreditationRecord, error) {
	f.updateReviewCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.lastReviewStatus = status
	f.lastReviewZone = zone
	f.records[id].Status = status
	f.records[id].Zone = &zone
	copied := *f.records[id]
	return &copied, nil
}

type fakeMailer struct {
	calls []notification.ApprovalEmail
	err   error
}

func (f *fakeMailer) SendApprovalEmail(ctx context.Context, msg notification.ApprovalEmail) error {
	f.calls = append(f.calls, msg)
	return f.err
}

func newTestReviewService(repo *fakeRecordRepo, mailer *fakeMailer) *ReviewService {
	return NewReviewService(ReviewDependencies{
		RecordRepo: repo,
		Mailer:     mailer,
		Logger:     zap.NewNop(),
	})
}

func pendingRecord(zone *domain.Zone) domain.AccreditationRecord {
	org := "Hockey Daily"
	return domain.AccreditationRecord{
		Area: domain.AreaPress,
		Applicant: domain.Applicant{
			FirstName:    "Ana",
			LastName:     "Lee",
			IDDocument:   "P1234567",
			Email:        "ana@example.com",
			Organization: &org,
		},
		Status: domain.StatusPending,
		Zone:   zone,
	}
}

func TestApproveWithZoneMissingZone(t *testing.T) {
	repo := newFakeRecordRepo()
	mailer := &fakeMailer{}
	svc := newTestReviewService(repo, mailer)
	record := repo.add(pendingRecord(nil))

	_, err := svc.ApproveWithZone(context.Background(), record.ID)

	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	assert.Zero(t, repo.updateReviewCalls, "no update may be issued without a zone")
	assert.Zero(t, repo.updateStatusCalls)
	assert.Empty(t, mailer.calls)
}

func TestApproveWithZoneSuccess(t *testing.T) {
	repo := newFakeRecordRepo()
	mailer := &fakeMailer{}
	svc := newTestReviewService(repo, mailer)
	zone := domain.Zone7
	record := repo.add(pendingRecord(&zone))

	updated, err := svc.ApproveWithZone(context.Background(), record.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	require.NotNil(t, updated.Zone)
	assert.Equal(t, domain.Zone7, *updated.Zone)

	// exactly one update, re-asserting the zone alongside the status
	assert.Equal(t, 1, repo.updateReviewCalls)
	assert.Equal(t, domain.StatusApproved, repo.lastReviewStatus)
	assert.Equal(t, domain.Zone7, repo.lastReviewZone)

	require.Len(t, mailer.calls, 1)
	sent := mailer.calls[0]
	assert.Equal(t, "Ana", sent.FirstName)
	assert.Equal(t, "Lee", sent.LastName)
	assert.Equal(t, "ana@example.com", sent.RecipientEmail)
	assert.Equal(t, domain.AreaPress, sent.Area)
	require.NotNil(t, sent.Zone)
	assert.Equal(t, domain.Zone7, *sent.Zone)
}

func TestApproveWithZoneMailFailureKeepsApproval(t *testing.T) {
	repo := newFakeRecordRepo()
	mailer := &fakeMailer{err: errors.New("smtp on fire")}
	svc := newTestReviewService(repo, mailer)
	zone := domain.Zone2
	record := repo.add(pendingRecord(&zone))

	updated, err := svc.ApproveWithZone(context.Background(), record.ID)

	require.NoError(t, err, "notification failure must not surface to the reviewer")
	assert.Equal(t, domain.StatusApproved, updated.Status)
	assert.Equal(t, domain.StatusApproved, repo.records[record.ID].Status)
	assert.Len(t, mailer.calls, 1)
}

func TestApproveWithZoneUpdateFailureSkipsMail(t *testing.T) {
	repo := newFakeRecordRepo()
	repo.updateErr = errors.New("connection reset")
	mailer := &fakeMailer{}
	svc := newTestReviewService(repo, mailer)
	zone := domain.Zone1
	record := repo.add(pendingRecord(&zone))

	_, err := svc.ApproveWithZone(context.Background(), record.ID)

	require.Error(t, err)
	assert.Empty(t, mailer.calls, "mail must only follow a successful update")
	assert.Equal(t, domain.StatusPending, repo.records[record.ID].Status)
}

func TestSetStatusApprovedWithoutZone(t *testing.T) {
	// the direct transition deliberately skips the zone precondition; only
	// the approve workflow enforces it
	repo := newFakeRecordRepo()
	svc := newTestReviewService(repo, &fakeMailer{})
	record := repo.add(pendingRecord(nil))

	updated, err := svc.SetStatus(context.Background(), record.ID, domain.StatusApproved)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	assert.Nil(t, updated.Zone)
	assert.Equal(t, 1, repo.updateStatusCalls)
}

func TestSetStatusUnknownStatus(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := newTestReviewService(repo, &fakeMailer{})
	record := repo.add(pendingRecord(nil))

	_, err := svc.SetStatus(context.Background(), record.ID, domain.AccreditationStatus("archived"))

	require.Error(t, err)
	assert.Zero(t, repo.updateStatusCalls)
}

func TestSetZoneSetAndClear(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := newTestReviewService(repo, &fakeMailer{})
	record := repo.add(pendingRecord(nil))

	zone := domain.Zone5
	updated, err := svc.SetZone(context.Background(), record.ID, &zone)
	require.NoError(t, err)
	require.NotNil(t, updated.Zone)
	assert.Equal(t, domain.Zone5, *updated.Zone)

	updated, err = svc.SetZone(context.Background(), record.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.Zone)
	assert.Equal(t, 2, repo.updateZoneCalls)
}

func TestSetZoneUnknownZone(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := newTestReviewService(repo, &fakeMailer{})
	record := repo.add(pendingRecord(nil))

	bogus := domain.Zone("Zone 99")
	_, err := svc.SetZone(context.Background(), record.ID, &bogus)

	require.Error(t, err)
	assert.Zero(t, repo.updateZoneCalls)
}

func TestListStoreErrorSurfaced(t *testing.T) {
	repo := newFakeRecordRepo()
	repo.listErr = errors.New("relation does not exist")
	svc := newTestReviewService(repo, &fakeMailer{})

	_, err := svc.List(context.Background(), repository.AccreditationFilter{})

	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORE_ERROR", domainErr.Code)
	assert.Equal(t, "relation does not exist", domainErr.Message)
}

func searchFixture() []domain.AccreditationRecord {
	org := "Broadcast Co"
	return []domain.AccreditationRecord{
		{ID: 1, Applicant: domain.Applicant{FirstName: "Ana", LastName: "Lee", IDDocument: "P123", Email: "ana@example.com"}},
		{ID: 2, Applicant: domain.Applicant{FirstName: "Bruno", LastName: "Silva", IDDocument: "X987", Email: "bruno@tv.example", Organization: &org}},
		{ID: 3, Applicant: domain.Applicant{FirstName: "Carla", LastName: "Anand", IDDocument: "D555", Email: "carla@example.com"}},
	}
}

func TestSearchEmptyTermIsIdentity(t *testing.T) {
	records := searchFixture()

	assert.Equal(t, records, Search(records, ""))
	assert.Equal(t, records, Search(records, "   "))
}

func TestSearchIsIdempotent(t *testing.T) {
	records := searchFixture()

	once := Search(records, "an")
	twice := Search(once, "an")
	assert.Equal(t, once, twice)
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	records := searchFixture()

	// "an" matches Ana (1), Anand (3); case does not matter
	matched := Search(records, "AN")
	require.Len(t, matched, 2)
	assert.Equal(t, int64(1), matched[0].ID)
	assert.Equal(t, int64(3), matched[1].ID)
}

func TestSearchMatchesOrganizationAndDocument(t *testing.T) {
	records := searchFixture()

	byOrg := Search(records, "broadcast")
	require.Len(t, byOrg, 1)
	assert.Equal(t, int64(2), byOrg[0].ID)

	byDoc := Search(records, "x987")
	require.Len(t, byDoc, 1)
	assert.Equal(t, int64(2), byDoc[0].ID)
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	records := searchFixture()
	Search(records, "ana")

	assert.Equal(t, searchFixture(), records)
}
