package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
)

func newAd(creatorID uuid.UUID, status models.AdvertisementStatus, createdAt time.Time) *models.Advertisement {
	return &models.Advertisement{
		ID:        uuid.New(),
		Title:     "test",
		Status:    status,
		CreatorID: creatorID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestAdvertisementList(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()
	ads := stores.Advertisements()

	owner := uuid.New()
	other := uuid.New()
	now := time.Now()

	open := newAd(owner, models.StatusOpen, now.Add(-2*time.Hour))
	closed := newAd(other, models.StatusClosed, now.Add(-1*time.Hour))
	draft := newAd(owner, models.StatusDraft, now)

	for _, ad := range []*models.Advertisement{open, closed, draft} {
		require.NoError(t, ads.Create(ctx, ad))
	}

	t.Run("OrderedNewestFirst", func(t *testing.T) {
		list, total, err := ads.List(ctx, storage.AdvertisementFilter{}, storage.PageRequest{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, list, 3)
		assert.Equal(t, draft.ID, list[0].ID)
		assert.Equal(t, open.ID, list[2].ID)
	})

	t.Run("HideDrafts", func(t *testing.T) {
		list, total, err := ads.List(ctx, storage.AdvertisementFilter{HideDrafts: true}, storage.PageRequest{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, ad := range list {
			assert.NotEqual(t, models.StatusDraft, ad.Status)
		}
	})

	t.Run("DraftOwnerSeesOwn", func(t *testing.T) {
		_, total, err := ads.List(ctx, storage.AdvertisementFilter{HideDrafts: true, DraftOwner: &owner}, storage.PageRequest{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)

		_, total, err = ads.List(ctx, storage.AdvertisementFilter{HideDrafts: true, DraftOwner: &other}, storage.PageRequest{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("EmptyFilter", func(t *testing.T) {
		list, total, err := ads.List(ctx, storage.AdvertisementFilter{Empty: true}, storage.PageRequest{Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, list)
	})

	t.Run("FavoritedBy", func(t *testing.T) {
		reader := uuid.New()
		require.NoError(t, stores.Favorites().Add(ctx, reader, open.ID))

		list, total, err := ads.List(ctx, storage.AdvertisementFilter{FavoritedBy: &reader}, storage.PageRequest{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, list, 1)
		assert.Equal(t, open.ID, list[0].ID)
	})

	t.Run("Pagination", func(t *testing.T) {
		list, total, err := ads.List(ctx, storage.AdvertisementFilter{}, storage.PageRequest{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, list, 1)
	})
}

func TestCountOpen(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()
	ads := stores.Advertisements()

	owner := uuid.New()
	first := newAd(owner, models.StatusOpen, time.Now())
	second := newAd(owner, models.StatusOpen, time.Now())
	require.NoError(t, ads.Create(ctx, first))
	require.NoError(t, ads.Create(ctx, second))
	require.NoError(t, ads.Create(ctx, newAd(owner, models.StatusClosed, time.Now())))
	require.NoError(t, ads.Create(ctx, newAd(uuid.New(), models.StatusOpen, time.Now())))

	count, err := ads.CountOpen(ctx, owner, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = ads.CountOpen(ctx, owner, &first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFavoriteIdempotency(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()

	user := uuid.New()
	ad := newAd(uuid.New(), models.StatusOpen, time.Now())
	require.NoError(t, stores.Advertisements().Create(ctx, ad))

	require.NoError(t, stores.Favorites().Add(ctx, user, ad.ID))
	require.NoError(t, stores.Favorites().Add(ctx, user, ad.ID))
	assert.Equal(t, 1, stores.FavoriteCount())

	exists, err := stores.Favorites().Exists(ctx, user, ad.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, stores.Favorites().Remove(ctx, user, ad.ID))
	require.NoError(t, stores.Favorites().Remove(ctx, user, ad.ID))
	assert.Equal(t, 0, stores.FavoriteCount())
}

func TestDeleteCascadesFavorites(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()

	ad := newAd(uuid.New(), models.StatusOpen, time.Now())
	require.NoError(t, stores.Advertisements().Create(ctx, ad))
	require.NoError(t, stores.Favorites().Add(ctx, uuid.New(), ad.ID))
	require.NoError(t, stores.Favorites().Add(ctx, uuid.New(), ad.ID))

	require.NoError(t, stores.Advertisements().Delete(ctx, ad.ID))
	assert.Equal(t, 0, stores.FavoriteCount())

	_, err := stores.Advertisements().GetByID(ctx, ad.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
