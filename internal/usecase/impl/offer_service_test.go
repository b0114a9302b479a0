package impl

import (
	"context"
	"io"
	"strings"
	"testing"

	"coderr/internal/domain/constants"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/infra/storage"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

type offerServiceFixture struct {
	*serviceMocks
	service usecase.OfferUsecase
}

func createTestOfferService(t *testing.T) *offerServiceFixture {
	mocks := newServiceMocks(t)

	return &offerServiceFixture{
		serviceMocks: mocks,
		service: NewOfferService(OfferServiceParams{
			TxManager: mocks.txManager,
			Store:     mocks.store,
			Logger:    newDiscardLogger(),
		}),
	}
}

func validCreateOfferInput() *usecase.CreateOfferInput {
	return &usecase.CreateOfferInput{
		Title:       "Logo design",
		Description: "Vector logos",
		Details: []usecase.OfferDetailInput{
			{Title: "Basic", Revisions: 1, DeliveryTimeInDays: 5, Price: decimal.NewFromInt(100), Features: []string{"1 concept"}, OfferType: entity.OfferTypeBasic},
			{Title: "Standard", Revisions: 3, DeliveryTimeInDays: 7, Price: decimal.NewFromInt(150), Features: []string{"2 concepts"}, OfferType: entity.OfferTypeStandard},
			{Title: "Premium", Revisions: 5, DeliveryTimeInDays: 10, Price: decimal.NewFromInt(220), Features: []string{"4 concepts"}, OfferType: entity.OfferTypePremium},
		},
	}
}

func newStoredOffer(ownerID uuid.UUID) *entity.Offer {
	offerID := uuid.New()
	offer := &entity.Offer{ID: offerID, UserID: ownerID, Title: "Logo design"}
	for i, offerType := range entity.OfferTypes() {
		offer.Details = append(offer.Details, &entity.OfferDetail{
			ID:                 uuid.New(),
			OfferID:            offerID,
			Title:              offerType.String(),
			Revisions:          i,
			DeliveryTimeInDays: 5 + i,
			Price:              decimal.NewFromInt(int64(100 + 50*i)),
			OfferType:          offerType,
		})
	}

	return offer
}

func TestOfferService_CreateOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the offer with its tiers", func(t *testing.T) {
		f := createTestOfferService(t)
		caller := businessCaller()
		offerID := uuid.New()
		stored := newStoredOffer(caller.UserID)

		f.offerRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Offer")).
			Run(func(_ context.Context, offer *entity.Offer) {
				assert.Equal(t, caller.UserID, offer.UserID)
				assert.Len(t, offer.Details, 3)
				assert.Empty(t, offer.Image)
				offer.ID = offerID
			}).
			Return(nil)
		f.offerRepo.EXPECT().FindByID(ctx, offerID).Return(stored, nil)

		got, err := f.service.CreateOffer(ctx, caller, validCreateOfferInput())

		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("customers are forbidden", func(t *testing.T) {
		f := createTestOfferService(t)

		_, err := f.service.CreateOffer(ctx, customerCaller(), validCreateOfferInput())

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("requires three details", func(t *testing.T) {
		f := createTestOfferService(t)
		input := validCreateOfferInput()
		input.Details = input.Details[:2]

		_, err := f.service.CreateOffer(ctx, businessCaller(), input)

		requireFieldError(t, err, "details")
	})

	t.Run("rejects duplicate tiers and negative numbers", func(t *testing.T) {
		f := createTestOfferService(t)
		input := validCreateOfferInput()
		input.Details[2].OfferType = entity.OfferTypeBasic
		input.Details[1].Price = decimal.NewFromInt(-1)

		_, err := f.service.CreateOffer(ctx, businessCaller(), input)

		requireFieldError(t, err, "details")
		requireFieldError(t, err, "details[1].price")
	})

	t.Run("removes the stored image when the insert fails", func(t *testing.T) {
		f := createTestOfferService(t)
		input := validCreateOfferInput()
		input.Image = &usecase.FileUpload{Name: "logo.png", Content: strings.NewReader("png")}

		f.store.EXPECT().Put(ctx, constants.StoragePrefixOffers, "logo.png", mock.Anything).Return("offers/logo.png", nil)
		f.offerRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("insert failed"))
		f.store.EXPECT().Delete(ctx, "offers/logo.png").Return(nil)

		_, err := f.service.CreateOffer(ctx, businessCaller(), input)

		require.Error(t, err)
	})
}

func TestOfferService_UpdateOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("patches the named tier only", func(t *testing.T) {
		f := createTestOfferService(t)
		caller := businessCaller()
		offer := newStoredOffer(caller.UserID)
		standard := offer.DetailByType(entity.OfferTypeStandard)

		f.offerRepo.EXPECT().FindByID(ctx, offer.ID).Return(offer, nil)
		f.offerRepo.EXPECT().Update(ctx, offer).Return(nil)

		got, err := f.service.UpdateOffer(ctx, caller, offer.ID, &usecase.UpdateOfferInput{
			Title: ptr("Better logos"),
			Details: []usecase.OfferDetailPatch{{
				OfferType: entity.OfferTypeStandard,
				Price:     ptr(decimal.NewFromInt(175)),
				Features:  ptr([]string{"3 concepts"}),
			}},
		})

		require.NoError(t, err)
		assert.Equal(t, "Better logos", got.Title)
		assert.True(t, standard.Price.Equal(decimal.NewFromInt(175)))
		assert.Equal(t, []string{"3 concepts"}, standard.Features)
		assert.Equal(t, entity.OfferTypeStandard, standard.OfferType)
		assert.True(t, offer.DetailByType(entity.OfferTypeBasic).Price.Equal(decimal.NewFromInt(100)))
	})

	t.Run("unknown offer", func(t *testing.T) {
		f := createTestOfferService(t)
		id := uuid.New()

		f.offerRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrOfferNotFound)

		_, err := f.service.UpdateOffer(ctx, businessCaller(), id, &usecase.UpdateOfferInput{})

		assert.ErrorIs(t, err, domainerrors.ErrOfferNotFound)
	})

	t.Run("non-owner is forbidden before validation", func(t *testing.T) {
		f := createTestOfferService(t)
		offer := newStoredOffer(uuid.New())

		f.offerRepo.EXPECT().FindByID(ctx, offer.ID).Return(offer, nil)

		_, err := f.service.UpdateOffer(ctx, businessCaller(), offer.ID, &usecase.UpdateOfferInput{Title: ptr("")})

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("patch of a missing tier", func(t *testing.T) {
		f := createTestOfferService(t)
		caller := businessCaller()
		offer := newStoredOffer(caller.UserID)
		offer.Details = offer.Details[:2]

		f.offerRepo.EXPECT().FindByID(ctx, offer.ID).Return(offer, nil)

		_, err := f.service.UpdateOffer(ctx, caller, offer.ID, &usecase.UpdateOfferInput{
			Details: []usecase.OfferDetailPatch{{OfferType: entity.OfferTypePremium, Revisions: ptr(2)}},
		})

		requireFieldError(t, err, "details")
	})

	t.Run("replaces the image after commit", func(t *testing.T) {
		f := createTestOfferService(t)
		caller := businessCaller()
		offer := newStoredOffer(caller.UserID)
		offer.Image = "offers/old.png"

		f.offerRepo.EXPECT().FindByID(ctx, offer.ID).Return(offer, nil)
		f.store.EXPECT().Put(ctx, constants.StoragePrefixOffers, "new.png", mock.Anything).Return("offers/new.png", nil)
		f.offerRepo.EXPECT().Update(ctx, offer).Return(nil)
		f.store.EXPECT().Delete(ctx, "offers/old.png").Return(nil)

		got, err := f.service.UpdateOffer(ctx, caller, offer.ID, &usecase.UpdateOfferInput{
			Image: &usecase.FileUpload{Name: "new.png", Content: strings.NewReader("png")},
		})

		require.NoError(t, err)
		assert.Equal(t, "offers/new.png", got.Image)
	})
}

func TestOfferService_DeleteOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the offer and its image", func(t *testing.T) {
		f := createTestOfferService(t)
		caller := businessCaller()
		offer := newStoredOffer(caller.UserID)
		offer.Image = "offers/logo.png"

		f.offerRepo.EXPECT().FindByID(ctx, offer.ID).Return(offer, nil)
		f.offerRepo.EXPECT().Delete(ctx, offer.ID).Return(nil)
		f.store.EXPECT().Delete(ctx, "offers/logo.png").Return(nil)

		require.NoError(t, f.service.DeleteOffer(ctx, caller, offer.ID))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := createTestOfferService(t)
		offer := newStoredOffer(uuid.New())

		f.offerRepo.EXPECT().FindByID(ctx, offer.ID).Return(offer, nil)

		err := f.service.DeleteOffer(ctx, businessCaller(), offer.ID)

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})
}

func TestOfferService_DeleteOfferKeepsIdenticalImageOfOtherOffer(t *testing.T) {
	ctx := context.Background()
	mocks := newServiceMocks(t)
	store := storage.NewBlobStore(memblob.OpenBucket(nil), "/media", 0)
	srv := NewOfferService(OfferServiceParams{
		TxManager: mocks.txManager,
		Store:     store,
		Logger:    newDiscardLogger(),
	})
	caller := businessCaller()

	offers := map[uuid.UUID]*entity.Offer{}
	mocks.offerRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Offer")).
		Run(func(_ context.Context, offer *entity.Offer) {
			offer.ID = uuid.New()
			offers[offer.ID] = offer
		}).
		Return(nil).Times(2)
	mocks.offerRepo.EXPECT().FindByID(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, id uuid.UUID) (*entity.Offer, error) {
			return offers[id], nil
		})

	create := func() *entity.Offer {
		input := validCreateOfferInput()
		input.Image = &usecase.FileUpload{Name: "logo.png", Content: strings.NewReader("logo-bytes")}
		offer, err := srv.CreateOffer(ctx, caller, input)
		require.NoError(t, err)

		return offer
	}
	first := create()
	second := create()
	require.NotEqual(t, first.Image, second.Image)

	mocks.offerRepo.EXPECT().Delete(ctx, first.ID).Return(nil)
	require.NoError(t, srv.DeleteOffer(ctx, caller, first.ID))

	_, err := store.Open(ctx, first.Image)
	assert.ErrorIs(t, err, service.ErrContentNotFound)

	file, err := store.Open(ctx, second.Image)
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, "logo-bytes", string(data))
}

func TestOfferService_GetOfferDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := createTestOfferService(t)
		offer := newStoredOffer(uuid.New())
		detail := offer.Details[0]

		f.offerRepo.EXPECT().FindDetailByID(ctx, detail.ID).Return(detail, offer.UserID, nil)

		got, err := f.service.GetOfferDetail(ctx, detail.ID)

		require.NoError(t, err)
		assert.Equal(t, detail, got)
	})

	t.Run("missing", func(t *testing.T) {
		f := createTestOfferService(t)
		id := uuid.New()

		f.offerRepo.EXPECT().FindDetailByID(ctx, id).Return(nil, uuid.Nil, repository.ErrOfferDetailNotFound)

		_, err := f.service.GetOfferDetail(ctx, id)

		assert.ErrorIs(t, err, domainerrors.ErrOfferDetailNotFound)
	})
}

func TestOfferService_ListOffers(t *testing.T) {
	ctx := context.Background()
	f := createTestOfferService(t)
	creator := uuid.New()
	filter := repository.OfferFilter{CreatorID: &creator, Page: repository.Page{Limit: 6}}
	offers := []*entity.Offer{newStoredOffer(creator)}

	f.offerRepo.EXPECT().List(ctx, filter).Return(offers, int64(1), nil)

	got, total, err := f.service.ListOffers(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, offers, got)
	assert.Equal(t, int64(1), total)
}
