package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Submission Repository
type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubmissionRepo) List(ctx context.Context, limit, offset int) ([]domain.Submission, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Submission), args.Int(1), args.Error(2)
}

func sampleSubmissions() []domain.Submission {
	return []domain.Submission{
		{
			ID:              "s1",
			Name:            "Ada Lovelace",
			Email:           "ada@example.com",
			Company:         "Analytical, Inc",
			Message:         "Line one\nline two",
			Urgency:         "high",
			Department:      "sales",
			AttachmentCount: 2,
			CreatedAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        "s2",
			Name:      "Grace Hopper",
			Email:     "grace@example.com",
			CreatedAt: time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestListSubmissions(t *testing.T) {
	repo := new(MockSubmissionRepo)
	uc := usecase.NewAdminUsecase(repo)
	ctx := context.Background()

	t.Run("Should clamp paging parameters", func(t *testing.T) {
		repo.On("List", mock.Anything, 20, 0).Return(sampleSubmissions(), 2, nil).Once()
		result, err := uc.ListSubmissions(ctx, 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("Should cap oversized page sizes", func(t *testing.T) {
		repo.On("List", mock.Anything, 100, 100).Return([]domain.Submission{}, 2, nil).Once()
		result, err := uc.ListSubmissions(ctx, 2, 500)
		assert.NoError(t, err)
		assert.Equal(t, 100, result.PageSize)
	})

	t.Run("Should fail when the archive is not configured", func(t *testing.T) {
		unconfigured := usecase.NewAdminUsecase(nil)
		_, err := unconfigured.ListSubmissions(ctx, 1, 20)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})
}

func TestExportSubmissions(t *testing.T) {
	repo := new(MockSubmissionRepo)
	uc := usecase.NewAdminUsecase(repo)
	ctx := context.Background()

	t.Run("Should produce an xlsx workbook by default", func(t *testing.T) {
		repo.On("List", mock.Anything, mock.Anything, 0).Return(sampleSubmissions(), 2, nil).Once()
		data, filename, contentType, err := uc.ExportSubmissions(ctx, "")
		assert.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.True(t, strings.HasSuffix(filename, ".xlsx"))
		assert.Contains(t, contentType, "spreadsheetml")
	})

	t.Run("Should produce CSV with escaped fields", func(t *testing.T) {
		repo.On("List", mock.Anything, mock.Anything, 0).Return(sampleSubmissions(), 2, nil).Once()
		data, filename, contentType, err := uc.ExportSubmissions(ctx, "csv")
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".csv"))
		assert.Equal(t, "text/csv", contentType)

		body := string(data)
		assert.Contains(t, body, "Ada Lovelace")
		// Comma and newline laden fields must be quoted
		assert.Contains(t, body, `"Analytical, Inc"`)
		assert.Contains(t, body, "\"Line one\nline two\"")
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, _, _, err := uc.ExportSubmissions(ctx, "pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported export format")
	})
}
