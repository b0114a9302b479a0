package postgres

import (
	"context"
	"strings"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// offerAggregateJoin attaches the derived tier minima of every offer as table "agg".
const offerAggregateJoin = "LEFT JOIN (" +
	"SELECT offer_id, MIN(price) AS min_price, MIN(delivery_time_in_days) AS min_delivery_time " +
	"FROM offer_details GROUP BY offer_id" +
	") AS agg ON agg.offer_id = offers.id"

//nolint:gochecknoglobals
var offerOrderColumns = map[string]string{
	repository.OfferOrderUpdatedAt: "offers.updated_at",
	repository.OfferOrderMinPrice:  "agg.min_price",
}

// offerRepository implements the domain.OfferRepository interface.
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

// Create persists the offer and its details. Must run inside a transaction to stay atomic.
func (repo *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	if offer.ID == uuid.Nil {
		offer.ID = newID()
	}
	for _, detail := range offer.Details {
		if detail.ID == uuid.Nil {
			detail.ID = newID()
		}
		detail.OfferID = offer.ID
	}
	offerM := fromOfferDomain(offer)

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewValidationError("details", "Each offer_type may only appear once.")
		}
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrUserNotFound, "offer owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer")
	}

	offer.CreatedAt = offerM.CreatedAt
	offer.UpdatedAt = offerM.UpdatedAt

	return nil
}

// FindByID retrieves an offer with its details in tier order.
func (repo *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offerM model.OfferModel
	err := repo.db.WithContext(ctx).
		Preload("Details", orderDetails).
		Preload("User").
		Where("id = ?", id).
		First(&offerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	return toOfferDomain(&offerM), nil
}

// List filters and orders on the derived minima in SQL, then loads the page with details and owner.
func (repo *offerRepository) List(ctx context.Context, filter repository.OfferFilter) ([]*entity.Offer, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Joins(offerAggregateJoin)

	if filter.CreatorID != nil {
		query = query.Where("offers.user_id = ?", *filter.CreatorID)
	}
	if filter.MinPrice != nil {
		query = query.Where("agg.min_price >= CAST(? AS DECIMAL(10,2))", *filter.MinPrice)
	}
	if filter.MaxDeliveryTime != nil {
		query = query.Where("agg.min_delivery_time <= ?", *filter.MaxDeliveryTime)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			"LOWER(offers.title) LIKE ? ESCAPE '\\' OR LOWER(offers.description) LIKE ? ESCAPE '\\'",
			pattern, pattern,
		)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count offers")
	}

	var offers []*model.OfferModel
	err := paginate(query, filter.Page).
		Select("offers.*").
		Order(orderClause(filter.Ordering, offerOrderColumns, "offers.updated_at DESC")).
		Order("offers.id ASC").
		Preload("Details", orderDetails).
		Preload("User").
		Find(&offers).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list offers")
	}

	result := make([]*entity.Offer, 0, len(offers))
	for _, offerM := range offers {
		result = append(result, toOfferDomain(offerM))
	}

	return result, total, nil
}

// Update writes the offer's own columns and every supplied detail. Details are
// matched by id and never inserted or removed here.
func (repo *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	db := repo.db.WithContext(ctx)

	result := db.Model(&model.OfferModel{ID: offer.ID}).Updates(map[string]any{
		"title":       offer.Title,
		"image":       offer.Image,
		"description": offer.Description,
	})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	for _, detail := range offer.Details {
		result := db.Model(&model.OfferDetailModel{}).
			Where("id = ? AND offer_id = ?", detail.ID, offer.ID).
			Updates(map[string]any{
				"title":                 detail.Title,
				"revisions":             detail.Revisions,
				"delivery_time_in_days": detail.DeliveryTimeInDays,
				"price":                 detail.Price,
				"features":              datatypes.NewJSONSlice(nonNilFeatures(detail.Features)),
			})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update offer detail")
		}
		if result.RowsAffected == 0 {
			return repository.ErrOfferDetailNotFound
		}
	}

	var offerM model.OfferModel
	if err := db.Select("updated_at").Where("id = ?", offer.ID).First(&offerM).Error; err != nil {
		return errors.Wrap(err, "failed to reload offer")
	}
	offer.UpdatedAt = offerM.UpdatedAt

	return nil
}

// Delete removes the offer and its details.
func (repo *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("offer_id = ?", id).Delete(&model.OfferDetailModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete offer details")
	}

	result := db.Where("id = ?", id).Delete(&model.OfferModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// FindDetailByID retrieves a single detail and the owner of its offer.
func (repo *offerRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, uuid.UUID, error) {
	db := repo.db.WithContext(ctx)

	var detailM model.OfferDetailModel
	if err := db.Where("id = ?", id).First(&detailM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, repository.ErrOfferDetailNotFound
		}

		return nil, uuid.Nil, errors.Wrap(err, "failed to find offer detail")
	}

	var offerM model.OfferModel
	if err := db.Select("id", "user_id").Where("id = ?", detailM.OfferID).First(&offerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, repository.ErrOfferNotFound
		}

		return nil, uuid.Nil, errors.Wrap(err, "failed to find offer of detail")
	}

	return toOfferDetailDomain(&detailM), offerM.UserID, nil
}

// Count counts all offers.
func (repo *offerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.OfferModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count offers")
	}

	return count, nil
}

// orderDetails sorts preloaded details basic, standard, premium.
func orderDetails(db *gorm.DB) *gorm.DB {
	return db.Order("CASE offer_type WHEN 'basic' THEN 0 WHEN 'standard' THEN 1 WHEN 'premium' THEN 2 ELSE 3 END")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNilFeatures(features []string) []string {
	if features == nil {
		return []string{}
	}

	return features
}

// --- Mapper Functions ---

func toOfferDomain(data *model.OfferModel) *entity.Offer {
	if data == nil {
		return nil
	}

	details := make([]*entity.OfferDetail, 0, len(data.Details))
	for i := range data.Details {
		details = append(details, toOfferDetailDomain(&data.Details[i]))
	}

	return &entity.Offer{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Image:       data.Image,
		Description: data.Description,
		Details:     details,
		Owner:       toUserDomain(data.User),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOfferDomain(data *entity.Offer) *model.OfferModel {
	if data == nil {
		return nil
	}

	details := make([]model.OfferDetailModel, 0, len(data.Details))
	for _, detail := range data.Details {
		details = append(details, *fromOfferDetailDomain(detail))
	}

	return &model.OfferModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Image:       data.Image,
		Description: data.Description,
		Details:     details,
	}
}

func toOfferDetailDomain(data *model.OfferDetailModel) *entity.OfferDetail {
	if data == nil {
		return nil
	}

	return &entity.OfferDetail{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           nonNilFeatures(data.Features),
		OfferType:          entity.OfferType(data.OfferType),
	}
}

func fromOfferDetailDomain(data *entity.OfferDetail) *model.OfferDetailModel {
	if data == nil {
		return nil
	}

	return &model.OfferDetailModel{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           datatypes.NewJSONSlice(nonNilFeatures(data.Features)),
		OfferType:          data.OfferType.String(),
	}
}
