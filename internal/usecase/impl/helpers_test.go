package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/errors"
	mockRepo "coderr/internal/mocks/repository"
	mockSvc "coderr/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serviceMocks bundles the repository mocks reachable through one transaction.
type serviceMocks struct {
	txManager  *mockRepo.MockTransactionManager
	factory    *mockRepo.MockRepositoryFactory
	userRepo   *mockRepo.MockUserRepository
	authRepo   *mockRepo.MockAuthRepository
	offerRepo  *mockRepo.MockOfferRepository
	orderRepo  *mockRepo.MockOrderRepository
	reviewRepo *mockRepo.MockReviewRepository
	store      *mockSvc.MockContentStore
	publisher  *mockSvc.MockEventPublisher
}

func newServiceMocks(t *testing.T) *serviceMocks {
	m := &serviceMocks{
		txManager:  mockRepo.NewMockTransactionManager(t),
		factory:    mockRepo.NewMockRepositoryFactory(t),
		userRepo:   mockRepo.NewMockUserRepository(t),
		authRepo:   mockRepo.NewMockAuthRepository(t),
		offerRepo:  mockRepo.NewMockOfferRepository(t),
		orderRepo:  mockRepo.NewMockOrderRepository(t),
		reviewRepo: mockRepo.NewMockReviewRepository(t),
		store:      mockSvc.NewMockContentStore(t),
		publisher:  mockSvc.NewMockEventPublisher(t),
	}

	m.factory.EXPECT().NewUserRepository().Return(m.userRepo).Maybe()
	m.factory.EXPECT().NewAuthRepository().Return(m.authRepo).Maybe()
	m.factory.EXPECT().NewOfferRepository().Return(m.offerRepo).Maybe()
	m.factory.EXPECT().NewOrderRepository().Return(m.orderRepo).Maybe()
	m.factory.EXPECT().NewReviewRepository().Return(m.reviewRepo).Maybe()

	m.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(m.factory)
		}).
		Maybe()

	return m
}

func customerCaller() policy.Caller {
	return policy.Caller{UserID: uuid.New(), Type: entity.ProfileTypeCustomer}
}

func businessCaller() policy.Caller {
	return policy.Caller{UserID: uuid.New(), Type: entity.ProfileTypeBusiness}
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()

	validationErr, ok := errors.AsType[*domainerrors.ValidationError](err)
	require.True(t, ok, "expected validation error, got %v", err)
	require.True(t, validationErr.HasField(field), "expected error on %s, got %v", field, validationErr.FieldErrors())
}
