package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/constants"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const detailsField = "details"

// offerService implements the OfferUsecase interface.
type offerService struct {
	txManager repository.TransactionManager
	store     service.ContentStore
	logger    *slog.Logger
}

// OfferServiceParams holds dependencies for OfferService, injected by Fx.
type OfferServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Store     service.ContentStore
	Logger    *slog.Logger
}

// NewOfferService is the constructor for offerService.
func NewOfferService(params OfferServiceParams) usecase.OfferUsecase {
	return &offerService{
		txManager: params.TxManager,
		store:     params.Store,
		logger:    params.Logger,
	}
}

func (srv *offerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOffer persists an offer of the calling business user with all of its tiers.
func (srv *offerService) CreateOffer(ctx context.Context, caller policy.Caller, input *usecase.CreateOfferInput) (*entity.Offer, error) {
	srv.log(ctx).Info("Creating offer", slog.Any("userID", caller.UserID))

	if err := policy.Check(caller, policy.OfferCreate, uuid.Nil); err != nil {
		return nil, err
	}
	if err := validateNewOffer(input); err != nil {
		return nil, err
	}

	replacement, err := storeUpload(ctx, srv.store, srv.log(ctx), constants.StoragePrefixOffers, input.Image, "")
	if err != nil {
		return nil, err
	}

	offer := &entity.Offer{
		UserID:      caller.UserID,
		Title:       strings.TrimSpace(input.Title),
		Image:       replacement.newKey,
		Description: input.Description,
		Details:     make([]*entity.OfferDetail, 0, len(input.Details)),
	}
	for _, detail := range input.Details {
		offer.Details = append(offer.Details, &entity.OfferDetail{
			Title:              detail.Title,
			Revisions:          detail.Revisions,
			DeliveryTimeInDays: detail.DeliveryTimeInDays,
			Price:              detail.Price,
			Features:           append([]string{}, detail.Features...),
			OfferType:          detail.OfferType,
		})
	}

	var created *entity.Offer
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.NewOfferRepository()

		if err := offerRepo.Create(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to create offer")
		}

		reloaded, err := offerRepo.FindByID(ctx, offer.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload offer")
		}
		created = reloaded

		return nil
	})
	if err != nil {
		replacement.Rollback(ctx)
		srv.log(ctx).Error("Failed to create offer", slog.Any("userID", caller.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create offer")
	}

	srv.log(ctx).Debug("Offer created", slog.Any("offerID", created.ID))

	return created, nil
}

// ListOffers returns one page of offers matching filter.
func (srv *offerService) ListOffers(ctx context.Context, filter repository.OfferFilter) ([]*entity.Offer, int64, error) {
	var (
		offers []*entity.Offer
		total  int64
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		offers, total, err = repoFactory.NewOfferRepository().List(ctx, filter)

		return err
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list offers")
	}

	return offers, total, nil
}

// GetOffer retrieves an offer with all of its tiers.
func (srv *offerService) GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offer *entity.Offer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		offer, err = findOffer(ctx, repoFactory.NewOfferRepository(), id)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get offer")
	}

	return offer, nil
}

// UpdateOffer applies a partial update by the owner. Tiers are addressed by offer type and must exist.
func (srv *offerService) UpdateOffer(
	ctx context.Context,
	caller policy.Caller,
	id uuid.UUID,
	input *usecase.UpdateOfferInput,
) (*entity.Offer, error) {
	srv.log(ctx).Info("Updating offer", slog.Any("offerID", id))

	var (
		updated     *entity.Offer
		replacement *fileReplacement
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.NewOfferRepository()

		// 1. Find the offer and check ownership
		offer, err := findOffer(ctx, offerRepo, id)
		if err != nil {
			return err
		}
		if err := policy.Check(caller, policy.OfferUpdate, offer.UserID); err != nil {
			return err
		}

		// 2. Apply the patch
		if err := applyOfferPatch(offer, input); err != nil {
			return err
		}

		// 3. Store the new image
		replacement, err = storeUpload(ctx, srv.store, srv.log(ctx), constants.StoragePrefixOffers, input.Image, offer.Image)
		if err != nil {
			return err
		}
		if replacement.Replaced() {
			offer.Image = replacement.newKey
		}

		// 4. Save and reload
		if err := offerRepo.Update(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to update offer")
		}
		updated, err = offerRepo.FindByID(ctx, offer.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload offer")
		}

		return nil
	})
	if err != nil {
		replacement.Rollback(ctx)

		return nil, errors.Wrap(err, "failed to update offer")
	}
	replacement.Commit(ctx)

	return updated, nil
}

// DeleteOffer removes an offer of the caller with its tiers and image.
func (srv *offerService) DeleteOffer(ctx context.Context, caller policy.Caller, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting offer", slog.Any("offerID", id))

	var image string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.NewOfferRepository()

		offer, err := findOffer(ctx, offerRepo, id)
		if err != nil {
			return err
		}
		if err := policy.Check(caller, policy.OfferDelete, offer.UserID); err != nil {
			return err
		}

		if err := offerRepo.Delete(ctx, offer.ID); err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return domainerrors.ErrOfferNotFound
			}

			return errors.Wrap(err, "failed to delete offer")
		}
		image = offer.Image

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete offer")
	}

	deleteStoredFile(ctx, srv.store, srv.log(ctx), image)

	return nil
}

// GetOfferDetail retrieves a single tier.
func (srv *offerService) GetOfferDetail(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	var detail *entity.OfferDetail
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, _, err := repoFactory.NewOfferRepository().FindDetailByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return domainerrors.ErrOfferDetailNotFound
			}

			return errors.Wrap(err, "failed to find offer detail")
		}
		detail = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get offer detail")
	}

	return detail, nil
}

func findOffer(ctx context.Context, offerRepo repository.OfferRepository, id uuid.UUID) (*entity.Offer, error) {
	offer, err := offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, domainerrors.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer")
	}

	return offer, nil
}

// validateNewOffer requires one detail per tier and non-negative numbers.
func validateNewOffer(input *usecase.CreateOfferInput) error {
	validationErr := domainerrors.NewValidationErrors(nil)

	if strings.TrimSpace(input.Title) == "" {
		validationErr.Add("title", "This field may not be blank.")
	}

	if len(input.Details) < entity.RequiredOfferDetails {
		validationErr.Add(detailsField, fmt.Sprintf("An offer must have at least %d details.", entity.RequiredOfferDetails))
	}

	seen := make(map[entity.OfferType]bool, len(input.Details))
	for i, detail := range input.Details {
		prefix := fmt.Sprintf("%s[%d].", detailsField, i)
		switch {
		case !detail.OfferType.IsValid():
			validationErr.Add(prefix+"offer_type", fmt.Sprintf("%q is not a valid choice.", detail.OfferType))
		case seen[detail.OfferType]:
			validationErr.Add(detailsField, fmt.Sprintf("Duplicate offer_type %q.", detail.OfferType))
		}
		seen[detail.OfferType] = true

		if strings.TrimSpace(detail.Title) == "" {
			validationErr.Add(prefix+"title", "This field may not be blank.")
		}
		addNumberErrors(validationErr, prefix, detail.Revisions, detail.DeliveryTimeInDays, detail.Price.IsNegative())
	}

	if len(validationErr.FieldErrors()) > 0 {
		return validationErr
	}

	return nil
}

// applyOfferPatch overwrites only the supplied fields. The offer type of a tier never changes.
func applyOfferPatch(offer *entity.Offer, input *usecase.UpdateOfferInput) error {
	validationErr := domainerrors.NewValidationErrors(nil)

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			validationErr.Add("title", "This field may not be blank.")
		}
		offer.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}

	patched := make(map[entity.OfferType]bool, len(input.Details))
	for i, patch := range input.Details {
		prefix := fmt.Sprintf("%s[%d].", detailsField, i)

		detail := offer.DetailByType(patch.OfferType)
		switch {
		case detail == nil:
			validationErr.Add(detailsField, fmt.Sprintf("Offer detail with offer_type %q does not exist.", patch.OfferType))

			continue
		case patched[patch.OfferType]:
			validationErr.Add(detailsField, fmt.Sprintf("Duplicate offer_type %q.", patch.OfferType))

			continue
		}
		patched[patch.OfferType] = true

		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				validationErr.Add(prefix+"title", "This field may not be blank.")
			}
			detail.Title = *patch.Title
		}
		if patch.Revisions != nil {
			detail.Revisions = *patch.Revisions
		}
		if patch.DeliveryTimeInDays != nil {
			detail.DeliveryTimeInDays = *patch.DeliveryTimeInDays
		}
		if patch.Price != nil {
			detail.Price = *patch.Price
		}
		if patch.Features != nil {
			detail.Features = append([]string{}, (*patch.Features)...)
		}
		addNumberErrors(validationErr, prefix, detail.Revisions, detail.DeliveryTimeInDays, detail.Price.IsNegative())
	}

	if len(validationErr.FieldErrors()) > 0 {
		return validationErr
	}

	return nil
}

func addNumberErrors(validationErr *domainerrors.ValidationError, prefix string, revisions, deliveryTime int, negativePrice bool) {
	if revisions < 0 {
		validationErr.Add(prefix+"revisions", "Ensure this value is greater than or equal to 0.")
	}
	if deliveryTime < 0 {
		validationErr.Add(prefix+"delivery_time_in_days", "Ensure this value is greater than or equal to 0.")
	}
	if negativePrice {
		validationErr.Add(prefix+"price", "Ensure this value is greater than or equal to 0.")
	}
}
