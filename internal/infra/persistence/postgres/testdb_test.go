package postgres

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteSchema mirrors the marketplace tables in a sqlite-friendly form.
//
//nolint:gochecknoglobals
var sqliteSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT,
		last_name TEXT,
		is_staff BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE profiles (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		file TEXT,
		uploaded_at DATETIME,
		location TEXT,
		tel TEXT,
		description TEXT,
		working_hours TEXT,
		created_at DATETIME
	);`,
	`CREATE TABLE user_authentications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME
	);`,
	`CREATE TABLE auth_tokens (
		user_id TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`,
	`CREATE TABLE offers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		image TEXT,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE offer_details (
		id TEXT PRIMARY KEY,
		offer_id TEXT NOT NULL,
		title TEXT NOT NULL,
		revisions INTEGER NOT NULL DEFAULT 0,
		delivery_time_in_days INTEGER NOT NULL DEFAULT 0,
		price NUMERIC NOT NULL,
		features TEXT NOT NULL,
		offer_type TEXT NOT NULL,
		UNIQUE (offer_id, offer_type)
	);`,
	`CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		customer_user_id TEXT NOT NULL,
		business_user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		revisions INTEGER NOT NULL,
		delivery_time_in_days INTEGER NOT NULL,
		price NUMERIC NOT NULL,
		features TEXT NOT NULL,
		offer_type TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		business_user_id TEXT NOT NULL,
		reviewer_id TEXT NOT NULL,
		rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (business_user_id, reviewer_id)
	);`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err, "open sqlite")

	// A single connection keeps every statement on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range sqliteSchema {
		require.NoError(t, db.Exec(stmt).Error, "create schema")
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, profileType entity.ProfileType) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: username,
		Profile:   &entity.Profile{Type: profileType},
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	require.NotEqual(t, uuid.Nil, user.ID)

	return user
}
