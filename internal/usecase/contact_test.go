package usecase_test

import (
	"context"
	"testing"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendContactMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject missing required fields without dispatching", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := usecase.NewContactUsecase(dispatcher, nil)

		err := uc.SendContactMessage(ctx, &domain.ContactRequest{Email: "ada@example.com"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a malformed email", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := usecase.NewContactUsecase(dispatcher, nil)

		err := uc.SendContactMessage(ctx, &domain.ContactRequest{
			Name: "Ada", Email: "nope", Message: "hi",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "valid email")
	})

	t.Run("Should dispatch with defaults and archive the record", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		repo := new(MockSubmissionRepo)
		uc := usecase.NewContactUsecase(dispatcher, repo)

		var captured *domain.SubmissionRequest
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(1).(*domain.SubmissionRequest)
		}).Return(nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		err := uc.SendContactMessage(ctx, &domain.ContactRequest{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Message: "I would like a demo.",
		})
		assert.NoError(t, err)
		assert.Equal(t, string(domain.UrgencyNormal), captured.Urgency)
		assert.Equal(t, string(domain.DepartmentGeneral), captured.Department)
		assert.False(t, captured.HasAttachments)
		repo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Should surface dispatch failures", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := usecase.NewContactUsecase(dispatcher, nil)
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		err := uc.SendContactMessage(ctx, &domain.ContactRequest{
			Name: "Ada", Email: "ada@example.com", Message: "hi",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "could not send your message")
	})
}
