package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderModel mirrors the 'orders' table. The tier columns are copied from
// offer_details on creation and hold no reference back to it.
type OrderModel struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	CustomerUserID     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	BusinessUserID     uuid.UUID                   `gorm:"type:uuid;not null;index:idx_orders_business_status"`
	Title              string                      `gorm:"type:varchar(255);not null"`
	Revisions          int                         `gorm:"not null"`
	DeliveryTimeInDays int                         `gorm:"not null"`
	Price              decimal.Decimal             `gorm:"type:decimal(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"not null"`
	OfferType          string                      `gorm:"type:varchar(20);not null"`
	Status             string                      `gorm:"type:varchar(20);not null;index:idx_orders_business_status"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	CustomerUser *UserModel `gorm:"foreignKey:CustomerUserID;constraint:OnDelete:CASCADE"`
	BusinessUser *UserModel `gorm:"foreignKey:BusinessUserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
