// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"coderr/internal/domain/repository"
	"coderr/internal/errors"

	"gorm.io/gorm"
)

type transactionManager struct {
	db *gorm.DB
}

// NewTransactionManager returns the TransactionManager backed by db.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &transactionManager{db: db}
}

// Execute runs fn in one transaction. GORM rolls back when fn fails or panics
// and commits otherwise; a nested call becomes a savepoint.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txRepositories{tx: tx})

		return fnErr
	})
	if err == nil || fnErr != nil {
		// Errors of fn are domain errors and pass through untouched.
		return err
	}

	return errors.Wrap(err, "transaction failed")
}

// txRepositories hands out repositories bound to one transaction.
type txRepositories struct {
	tx *gorm.DB
}

func (r txRepositories) NewUserRepository() repository.UserRepository {
	return NewUserRepository(r.tx)
}

func (r txRepositories) NewAuthRepository() repository.AuthRepository {
	return NewAuthRepository(r.tx)
}

func (r txRepositories) NewOfferRepository() repository.OfferRepository {
	return NewOfferRepository(r.tx)
}

func (r txRepositories) NewOrderRepository() repository.OrderRepository {
	return NewOrderRepository(r.tx)
}

func (r txRepositories) NewReviewRepository() repository.ReviewRepository {
	return NewReviewRepository(r.tx)
}
