package address_test

import (
	"context"
	"testing"

	appaddress "github.com/cartella-shop/fulfillment/internal/application/address"
	domaddress "github.com/cartella-shop/fulfillment/internal/domain/address"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/id"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddressService(t *testing.T) (*appaddress.Service, *memory.AddressRepository) {
	t.Helper()
	repo := memory.NewAddressRepository()
	return appaddress.NewService(repo, id.NewUUIDGenerator()), repo
}

func input(userID string, isDefault bool) appaddress.CreateInput {
	return appaddress.CreateInput{
		UserID:     userID,
		Street:     "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
		IsDefault:  isDefault,
	}
}

func countDefaults(t *testing.T, repo *memory.AddressRepository, userID string) int {
	t.Helper()
	addrs, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	n := 0
	for _, a := range addrs {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("first address becomes default even when not requested", func(t *testing.T) {
		svc, repo := newAddressService(t)

		addr, err := svc.Create(ctx, input("u1", false))
		require.NoError(t, err)
		assert.True(t, addr.IsDefault)
		assert.Equal(t, 1, countDefaults(t, repo, "u1"))
	})

	t.Run("new default demotes the previous one", func(t *testing.T) {
		svc, repo := newAddressService(t)

		first, err := svc.Create(ctx, input("u1", false))
		require.NoError(t, err)

		second, err := svc.Create(ctx, input("u1", true))
		require.NoError(t, err)
		assert.True(t, second.IsDefault)

		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, got.IsDefault)
		assert.Equal(t, 1, countDefaults(t, repo, "u1"))
	})

	t.Run("non-default creation keeps the existing default", func(t *testing.T) {
		svc, repo := newAddressService(t)

		first, err := svc.Create(ctx, input("u1", false))
		require.NoError(t, err)

		second, err := svc.Create(ctx, input("u1", false))
		require.NoError(t, err)
		assert.False(t, second.IsDefault)

		def, err := repo.FindDefault(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, def.ID)
	})

	t.Run("validates required fields", func(t *testing.T) {
		svc, _ := newAddressService(t)

		bad := input("u1", false)
		bad.Street = ""
		_, err := svc.Create(ctx, bad)
		assert.ErrorIs(t, err, domaddress.ErrMissingField)

		_, err = svc.Create(ctx, input("", false))
		assert.ErrorIs(t, err, domaddress.ErrUserRequired)
	})
}

func TestSetDefault(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAddressService(t)

	first, err := svc.Create(ctx, input("u1", false))
	require.NoError(t, err)
	second, err := svc.Create(ctx, input("u1", false))
	require.NoError(t, err)

	promoted, err := svc.SetDefault(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsDefault)

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault, "old default must be demoted in the same operation")
	assert.Equal(t, 1, countDefaults(t, repo, "u1"))

	_, err = svc.SetDefault(ctx, "ghost")
	assert.ErrorIs(t, err, domaddress.ErrNotFound)
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAddressService(t)

	addr, err := svc.Create(ctx, input("u1", false))
	require.NoError(t, err)

	city := "Shelbyville"
	got, err := svc.Update(ctx, addr.ID, appaddress.UpdateInput{City: &city})
	require.NoError(t, err)

	assert.Equal(t, "Shelbyville", got.City)
	assert.Equal(t, addr.Street, got.Street, "unset fields stay untouched")
	assert.True(t, got.IsDefault, "update never touches the default flag")
}

func TestFindDefaultMissing(t *testing.T) {
	_, repo := newAddressService(t)

	_, err := repo.FindDefault(context.Background(), "u1")
	assert.ErrorIs(t, err, domaddress.ErrNoDefault)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAddressService(t)

	addr, err := svc.Create(ctx, input("u1", false))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, addr.ID))
	assert.ErrorIs(t, svc.Delete(ctx, addr.ID), domaddress.ErrNotFound)
}

func TestDeleteDefaultLeavesNoDefault(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAddressService(t)

	def, err := svc.Create(ctx, input("u1", true))
	require.NoError(t, err)
	_, err = svc.Create(ctx, input("u1", false))
	require.NoError(t, err)

	// No automatic promotion: the remaining address stays non-default and the
	// next checkout fails until the user picks a new default.
	require.NoError(t, svc.Delete(ctx, def.ID))
	assert.Equal(t, 0, countDefaults(t, repo, "u1"))

	_, err = repo.FindDefault(ctx, "u1")
	assert.ErrorIs(t, err, domaddress.ErrNoDefault)
}
