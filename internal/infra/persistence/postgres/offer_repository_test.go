package postgres

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestOffer(ownerID uuid.UUID, title string, prices [3]string, days [3]int) *entity.Offer {
	offer := &entity.Offer{UserID: ownerID, Title: title, Description: title + " description"}
	for i, offerType := range entity.OfferTypes() {
		offer.Details = append(offer.Details, &entity.OfferDetail{
			Title:              title + " " + offerType.String(),
			Revisions:          i + 1,
			DeliveryTimeInDays: days[i],
			Price:              decimal.RequireFromString(prices[i]),
			Features:           []string{"Logo", offerType.String()},
			OfferType:          offerType,
		})
	}

	return offer
}

func seedOffer(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string, prices [3]string, days [3]int) *entity.Offer {
	t.Helper()

	offer := newTestOffer(ownerID, title, prices, days)
	require.NoError(t, NewOfferRepository(db).Create(context.Background(), offer))

	return offer
}

func offerTitles(offers []*entity.Offer) []string {
	titles := make([]string, 0, len(offers))
	for _, offer := range offers {
		titles = append(titles, offer.Title)
	}

	return titles
}

func TestOfferRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "biz", entity.ProfileTypeBusiness)

	offer := seedOffer(t, db, owner.ID, "Website", [3]string{"100", "150", "220"}, [3]int{5, 7, 10})

	found, err := repo.FindByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", found.Title)
	assert.Equal(t, owner.ID, found.UserID)
	require.Len(t, found.Details, 3)
	assert.Equal(t, entity.OfferTypeBasic, found.Details[0].OfferType)
	assert.Equal(t, entity.OfferTypeStandard, found.Details[1].OfferType)
	assert.Equal(t, entity.OfferTypePremium, found.Details[2].OfferType)
	assert.Equal(t, []string{"Logo", "standard"}, found.Details[1].Features)
	assert.True(t, found.MinPrice().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 5, *found.MinDeliveryTime())
	require.NotNil(t, found.Owner)
	assert.Equal(t, "biz", found.Owner.Username)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrOfferNotFound)
}

func TestOfferRepository_CreateDuplicateTierPersistsNothing(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "biz", entity.ProfileTypeBusiness)
	offer := newTestOffer(owner.ID, "Broken", [3]string{"1", "2", "3"}, [3]int{1, 2, 3})
	offer.Details[2].OfferType = entity.OfferTypeBasic

	txm := NewTransactionManager(db)
	err := txm.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		return factory.NewOfferRepository().Create(context.Background(), offer)
	})
	require.Error(t, err)

	count, err := NewOfferRepository(db).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	var details int64
	require.NoError(t, db.Table("offer_details").Count(&details).Error)
	assert.Zero(t, details)
}

func TestOfferRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice", entity.ProfileTypeBusiness)
	bob := seedUser(t, db, "bob", entity.ProfileTypeBusiness)

	seedOffer(t, db, alice.ID, "Logo Design", [3]string{"100", "150", "220"}, [3]int{5, 7, 10})
	seedOffer(t, db, alice.ID, "Web Shop", [3]string{"500", "800", "1200.50"}, [3]int{14, 21, 30})
	seedOffer(t, db, bob.ID, "Flyer", [3]string{"50", "75", "90"}, [3]int{2, 3, 4})

	offers, total, err := repo.List(ctx, repository.OfferFilter{CreatorID: &alice.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.ElementsMatch(t, []string{"Logo Design", "Web Shop"}, offerTitles(offers))

	minPrice := decimal.NewFromInt(100)
	offers, total, err = repo.List(ctx, repository.OfferFilter{MinPrice: &minPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.ElementsMatch(t, []string{"Logo Design", "Web Shop"}, offerTitles(offers))

	for _, tc := range []struct {
		minPrice string
		want     int64
	}{
		{minPrice: "50.00", want: 3},
		{minPrice: "50.01", want: 2},
		{minPrice: "500.01", want: 0},
	} {
		boundary := decimal.RequireFromString(tc.minPrice)
		_, total, err = repo.List(ctx, repository.OfferFilter{MinPrice: &boundary})
		require.NoError(t, err)
		assert.Equal(t, tc.want, total, "min_price %s", tc.minPrice)
	}

	maxDelivery := 5
	offers, total, err = repo.List(ctx, repository.OfferFilter{MaxDeliveryTime: &maxDelivery})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.ElementsMatch(t, []string{"Logo Design", "Flyer"}, offerTitles(offers))

	offers, _, err = repo.List(ctx, repository.OfferFilter{Search: "SHOP"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Web Shop"}, offerTitles(offers))

	offers, _, err = repo.List(ctx, repository.OfferFilter{Search: "100%"})
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestOfferRepository_ListOrderingAndPaging(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", entity.ProfileTypeBusiness)

	seedOffer(t, db, owner.ID, "Mid", [3]string{"100", "150", "220"}, [3]int{5, 7, 10})
	seedOffer(t, db, owner.ID, "High", [3]string{"500", "800", "1200"}, [3]int{14, 21, 30})
	seedOffer(t, db, owner.ID, "Low", [3]string{"50.25", "75", "90"}, [3]int{2, 3, 4})

	offers, _, err := repo.List(ctx, repository.OfferFilter{
		Ordering: &repository.Ordering{Field: repository.OfferOrderMinPrice},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Low", "Mid", "High"}, offerTitles(offers))

	offers, total, err := repo.List(ctx, repository.OfferFilter{
		Ordering: &repository.Ordering{Field: repository.OfferOrderMinPrice, Descending: true},
		Page:     repository.Page{Offset: 1, Limit: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"Mid"}, offerTitles(offers))
	require.NotNil(t, offers[0].Owner)
	assert.Equal(t, "alice", offers[0].Owner.Username)
	assert.Len(t, offers[0].Details, 3)
}

func TestOfferRepository_UpdateDetails(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", entity.ProfileTypeBusiness)
	offer := seedOffer(t, db, owner.ID, "Logo", [3]string{"100", "150", "220"}, [3]int{5, 7, 10})

	offer.Title = "Logo Pro"
	basic := offer.DetailByType(entity.OfferTypeBasic)
	basic.Price = decimal.RequireFromString("40")
	basic.DeliveryTimeInDays = 3
	basic.Features = []string{"Vector"}
	require.NoError(t, repo.Update(ctx, offer))

	found, err := repo.FindByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logo Pro", found.Title)
	assert.True(t, found.MinPrice().Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 3, *found.MinDeliveryTime())
	assert.Equal(t, []string{"Vector"}, found.DetailByType(entity.OfferTypeBasic).Features)
	assert.Len(t, found.Details, 3)

	err = repo.Update(ctx, &entity.Offer{ID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrOfferNotFound)
}

func TestOfferRepository_DeleteCascadesDetails(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", entity.ProfileTypeBusiness)
	offer := seedOffer(t, db, owner.ID, "Logo", [3]string{"100", "150", "220"}, [3]int{5, 7, 10})
	detailID := offer.Details[0].ID

	require.NoError(t, repo.Delete(ctx, offer.ID))

	_, err := repo.FindByID(ctx, offer.ID)
	assert.ErrorIs(t, err, repository.ErrOfferNotFound)
	_, _, err = repo.FindDetailByID(ctx, detailID)
	assert.ErrorIs(t, err, repository.ErrOfferDetailNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, offer.ID), repository.ErrOfferNotFound)
}

func TestOfferRepository_FindDetailByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", entity.ProfileTypeBusiness)
	offer := seedOffer(t, db, owner.ID, "Logo", [3]string{"100", "150", "220"}, [3]int{5, 7, 10})
	standard := offer.DetailByType(entity.OfferTypeStandard)

	detail, ownerID, err := repo.FindDetailByID(ctx, standard.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, ownerID)
	assert.Equal(t, offer.ID, detail.OfferID)
	assert.Equal(t, 7, detail.DeliveryTimeInDays)
	assert.True(t, detail.Price.Equal(decimal.NewFromInt(150)))
}
