package report

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainReport "plantops/internal/domain/report"
)

type fakeReportRepo struct {
	reports map[uuid.UUID]*domainReport.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*domainReport.Report)}
}

func (f *fakeReportRepo) Create(_ context.Context, r *domainReport.Report) error {
	r.ID = uuid.New()
	copied := *r
	f.reports[r.ID] = &copied
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, reportID uuid.UUID) (*domainReport.Report, error) {
	r, ok := f.reports[reportID]
	if !ok {
		return nil, domainReport.ErrReportNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReportRepo) List(_ context.Context, _ *domainReport.Filter) ([]*domainReport.Report, int64, error) {
	out := make([]*domainReport.Report, 0, len(f.reports))
	for _, r := range f.reports {
		copied := *r
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeReportRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.reports)), nil
}

func (f *fakeReportRepo) Update(_ context.Context, r *domainReport.Report) error {
	if _, ok := f.reports[r.ID]; !ok {
		return domainReport.ErrReportNotFound
	}
	copied := *r
	f.reports[r.ID] = &copied
	return nil
}

func (f *fakeReportRepo) Delete(_ context.Context, reportID uuid.UUID) error {
	if _, ok := f.reports[reportID]; !ok {
		return domainReport.ErrReportNotFound
	}
	delete(f.reports, reportID)
	return nil
}

type fakeFileStore struct {
	removed []string
}

func (f *fakeFileStore) Save(file *multipart.FileHeader, resource string, _ []string) (string, error) {
	return resource + "/" + file.Filename, nil
}

func (f *fakeFileStore) Remove(relPath string) error {
	f.removed = append(f.removed, relPath)
	return nil
}

func weekPeriod() (time.Time, time.Time) {
	end := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -7), end
}

func TestCreateReport(t *testing.T) {
	svc := NewService(newFakeReportRepo(), &fakeFileStore{})
	generatedBy := uuid.New()
	start, end := weekPeriod()

	resp, err := svc.Create(context.Background(), generatedBy, &CreateReportRequest{
		Title:       "Weekly production summary",
		Type:        "weekly",
		PeriodStart: start,
		PeriodEnd:   end,
	})
	require.NoError(t, err)
	assert.Equal(t, "weekly", resp.Type)
	assert.Equal(t, generatedBy, resp.GeneratedBy)
	assert.Nil(t, resp.FilePath)
}

func TestCreateReportInvertedPeriod(t *testing.T) {
	svc := NewService(newFakeReportRepo(), &fakeFileStore{})
	start, end := weekPeriod()

	_, err := svc.Create(context.Background(), uuid.New(), &CreateReportRequest{
		Title:       "Weekly production summary",
		Type:        "weekly",
		PeriodStart: end,
		PeriodEnd:   start,
	})
	assert.ErrorIs(t, err, domainReport.ErrInvalidPeriod)
}

func TestUpdateReportRevalidatesPeriod(t *testing.T) {
	svc := NewService(newFakeReportRepo(), &fakeFileStore{})
	start, end := weekPeriod()

	created, err := svc.Create(context.Background(), uuid.New(), &CreateReportRequest{
		Title:       "Weekly production summary",
		Type:        "weekly",
		PeriodStart: start,
		PeriodEnd:   end,
	})
	require.NoError(t, err)

	badEnd := start.AddDate(0, 0, -1)
	_, err = svc.Update(context.Background(), created.ID, &UpdateReportRequest{
		PeriodEnd: &badEnd,
	})
	assert.ErrorIs(t, err, domainReport.ErrInvalidPeriod)
}

func TestUploadFileReplacesPrevious(t *testing.T) {
	repo := newFakeReportRepo()
	files := &fakeFileStore{}
	svc := NewService(repo, files)
	start, end := weekPeriod()

	created, err := svc.Create(context.Background(), uuid.New(), &CreateReportRequest{
		Title:       "Weekly production summary",
		Type:        "weekly",
		PeriodStart: start,
		PeriodEnd:   end,
	})
	require.NoError(t, err)

	first, err := svc.UploadFile(context.Background(), created.ID, &multipart.FileHeader{Filename: "v1.pdf"})
	require.NoError(t, err)
	require.NotNil(t, first.FilePath)

	second, err := svc.UploadFile(context.Background(), created.ID, &multipart.FileHeader{Filename: "v2.pdf"})
	require.NoError(t, err)
	require.NotNil(t, second.FilePath)

	assert.NotEqual(t, *first.FilePath, *second.FilePath)
	assert.Contains(t, files.removed, *first.FilePath)
}

func TestDeleteReportRemovesFile(t *testing.T) {
	repo := newFakeReportRepo()
	files := &fakeFileStore{}
	svc := NewService(repo, files)
	start, end := weekPeriod()

	created, err := svc.Create(context.Background(), uuid.New(), &CreateReportRequest{
		Title:       "Weekly production summary",
		Type:        "weekly",
		PeriodStart: start,
		PeriodEnd:   end,
	})
	require.NoError(t, err)

	uploaded, err := svc.UploadFile(context.Background(), created.ID, &multipart.FileHeader{Filename: "final.pdf"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Contains(t, files.removed, *uploaded.FilePath)
	assert.Empty(t, repo.reports)
}
