package repository

import "context"

// TransactionManager runs usecase work atomically. fn's error is returned as
// is and rolls the transaction back.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewAuthRepository() AuthRepository
	NewOfferRepository() OfferRepository
	NewOrderRepository() OrderRepository
	NewReviewRepository() ReviewRepository
}
