package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. (business_user_id, reviewer_id) is unique.
type ReviewModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_pair"`
	ReviewerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_pair"`
	Rating         int       `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Description    string    `gorm:"type:varchar(200)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"index"`

	BusinessUser *UserModel `gorm:"foreignKey:BusinessUserID;constraint:OnDelete:CASCADE"`
	Reviewer     *UserModel `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// All returns every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&ProfileModel{},
		&AuthenticationModel{},
		&AuthTokenModel{},
		&OfferModel{},
		&OfferDetailModel{},
		&OrderModel{},
		&ReviewModel{},
	}
}
