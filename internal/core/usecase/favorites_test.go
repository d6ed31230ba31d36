package usecase

import (
	"context"
	"discovery-service/internal/core/domain"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favoritesFixture struct {
	repo      *fakeFavoritesRepo
	directory *fakeDirectory
	events    *fakeEvents
	check     *CheckFavoriteUseCase
	add       *AddToFavoritesUseCase
	remove    *RemoveFromFavoritesUseCase
	toggle    *ToggleFavoriteUseCase
	list      *GetUserFavoritesUseCase
}

func newFavoritesFixture() *favoritesFixture {
	f := &favoritesFixture{
		repo:      newFakeFavoritesRepo(),
		directory: &fakeDirectory{},
		events:    &fakeEvents{},
	}
	f.check = NewCheckFavoriteUseCase(f.repo)
	f.add = NewAddToFavoritesUseCase(f.repo, f.directory, f.events)
	f.remove = NewRemoveFromFavoritesUseCase(f.repo, f.events)
	f.toggle = NewToggleFavoriteUseCase(f.repo, f.add, f.remove)
	f.list = NewGetUserFavoritesUseCase(f.repo, f.directory)
	return f
}

func TestToggleFavorite_FlipsState(t *testing.T) {
	f := newFavoritesFixture()
	ctx := context.Background()
	user := uuid.New()
	artist := f.directory.add(domain.VendorTypeArtist, "DJ Nachtklang")

	isFavorite, err := f.toggle.Execute(ctx, user, artist.ID, domain.VendorTypeArtist)
	require.NoError(t, err)
	assert.True(t, isFavorite)

	exists, err := f.check.Execute(ctx, user, artist.ID, domain.VendorTypeArtist)
	require.NoError(t, err)
	assert.True(t, exists)

	isFavorite, err = f.toggle.Execute(ctx, user, artist.ID, domain.VendorTypeArtist)
	require.NoError(t, err)
	assert.False(t, isFavorite)

	require.Len(t, f.events.changes, 2)
	assert.True(t, f.events.changes[0].IsFavorite)
	assert.False(t, f.events.changes[1].IsFavorite)
	assert.Equal(t, artist.ID, f.events.changes[1].VendorID)
}

func TestFavorites_KeyedByVendorType(t *testing.T) {
	f := newFavoritesFixture()
	ctx := context.Background()
	user := uuid.New()
	venue := f.directory.add(domain.VendorTypeVenue, "Nachtwerk Club")

	require.NoError(t, f.add.Execute(ctx, user, venue.ID, domain.VendorTypeVenue))

	exists, err := f.check.Execute(ctx, user, venue.ID, domain.VendorTypeArtist)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAddToFavorites_UnknownVendor(t *testing.T) {
	f := newFavoritesFixture()

	err := f.add.Execute(context.Background(), uuid.New(), uuid.New(), domain.VendorTypeArtist)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.events.changes)
}

func TestFavorites_EventFailureDoesNotFailOperation(t *testing.T) {
	f := newFavoritesFixture()
	f.events.err = errors.New("broker down")
	artist := f.directory.add(domain.VendorTypeArtist, "Luna Voss")

	isFavorite, err := f.toggle.Execute(context.Background(), uuid.New(), artist.ID, domain.VendorTypeArtist)
	require.NoError(t, err)
	assert.True(t, isFavorite)
}

func TestRemoveFromFavorites_MissingIsNoop(t *testing.T) {
	f := newFavoritesFixture()

	err := f.remove.Execute(context.Background(), uuid.New(), uuid.New(), domain.VendorTypeArtist)
	require.NoError(t, err)
	assert.Empty(t, f.events.changes, "nothing changed, nothing published")
}

func TestFavorites_WorkWithoutEventsAndDirectory(t *testing.T) {
	repo := newFakeFavoritesRepo()
	add := NewAddToFavoritesUseCase(repo, nil, nil)
	remove := NewRemoveFromFavoritesUseCase(repo, nil)

	user, vendor := uuid.New(), uuid.New()
	require.NoError(t, add.Execute(context.Background(), user, vendor, domain.VendorTypeArtist))
	require.NoError(t, remove.Execute(context.Background(), user, vendor, domain.VendorTypeArtist))
}

func TestToggleFavorite_RepositoryError(t *testing.T) {
	f := newFavoritesFixture()
	f.repo.err = errStorage

	_, err := f.toggle.Execute(context.Background(), uuid.New(), uuid.New(), domain.VendorTypeArtist)
	assert.ErrorIs(t, err, errStorage)
}

func TestGetUserFavorites_EnrichedNewestFirst(t *testing.T) {
	f := newFavoritesFixture()
	ctx := context.Background()
	user := uuid.New()

	first := f.directory.add(domain.VendorTypeArtist, "DJ Nachtklang")
	second := f.directory.add(domain.VendorTypeVenue, "Jazzkeller Frankfurt")
	third := f.directory.add(domain.VendorTypeArtist, "Luna Voss")
	require.NoError(t, f.add.Execute(ctx, user, first.ID, domain.VendorTypeArtist))
	require.NoError(t, f.add.Execute(ctx, user, second.ID, domain.VendorTypeVenue))
	require.NoError(t, f.add.Execute(ctx, user, third.ID, domain.VendorTypeArtist))
	require.NoError(t, f.add.Execute(ctx, uuid.New(), third.ID, domain.VendorTypeArtist))

	page, err := f.list.Execute(ctx, user, "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 1, page.CurrentPage)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.Items[0].Vendor)
	assert.Equal(t, "Luna Voss", page.Items[0].Vendor.Name)
	assert.Equal(t, "Jazzkeller Frankfurt", page.Items[1].Vendor.Name)

	artists, err := f.list.Execute(ctx, user, domain.VendorTypeArtist, 20, 0)
	require.NoError(t, err)
	require.Len(t, artists.Items, 2)
	assert.Equal(t, third.ID, artists.Items[0].VendorID)
	assert.Equal(t, first.ID, artists.Items[1].VendorID)
}

func TestGetUserFavorites_MissingVendorKeepsEntry(t *testing.T) {
	f := newFavoritesFixture()
	ctx := context.Background()
	user := uuid.New()
	gone := uuid.New()
	require.NoError(t, f.repo.Add(ctx, user, gone, domain.VendorTypeVenue))

	page, err := f.list.Execute(ctx, user, "", 0, -5)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPageSize, page.ItemsPerPage)
	require.Len(t, page.Items, 1)
	assert.Nil(t, page.Items[0].Vendor)
}

func TestGetUserFavorites_Empty(t *testing.T) {
	f := newFavoritesFixture()

	page, err := f.list.Execute(context.Background(), uuid.New(), "", 10, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.CurrentPage)
}
