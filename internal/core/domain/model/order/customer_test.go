package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomer(t *testing.T) {
	t.Run("registered customer has no guest details", func(t *testing.T) {
		userID := kernel.NewUUID()

		c, err := order.NewRegisteredCustomer(userID)

		require.NoError(t, err)
		require.NotNil(t, c.UserID())
		assert.True(t, c.UserID().IsEqual(userID))
		assert.Nil(t, c.Guest())
		assert.False(t, c.IsGuest())
	})

	t.Run("guest customer has no user reference", func(t *testing.T) {
		c, err := order.NewGuestCustomer("Grace Hopper", "grace@example.com", "")

		require.NoError(t, err)
		assert.Nil(t, c.UserID())
		require.NotNil(t, c.Guest())
		assert.Equal(t, "grace@example.com", c.Guest().Email())
	})

	t.Run("guest needs a name and a plain email address", func(t *testing.T) {
		_, err := order.NewGuestCustomer("", "Grace <grace@example.com>", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("registered customer needs a user id", func(t *testing.T) {
		_, err := order.NewRegisteredCustomer(kernel.UUID{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestActor(t *testing.T) {
	t.Run("roles parse case-insensitively", func(t *testing.T) {
		role, err := order.ParseRole("Admin")

		require.NoError(t, err)
		assert.Equal(t, order.RoleAdmin, role)
	})

	t.Run("only admins may override payouts", func(t *testing.T) {
		admin, err := order.NewActor("root", order.RoleAdmin)
		require.NoError(t, err)
		staff, err := order.NewActor("ops", order.RoleStaff)
		require.NoError(t, err)

		assert.True(t, admin.CanOverridePayout())
		assert.False(t, staff.CanOverridePayout())
		assert.False(t, order.SystemActor("payout-retry").CanOverridePayout())
	})

	t.Run("system actors are prefixed", func(t *testing.T) {
		a := order.SystemActor("payout-retry")

		require.NoError(t, a.Validate())
		assert.Equal(t, "system:payout-retry", a.ID())
		assert.Equal(t, order.RoleSystem, a.Role())
	})

	t.Run("id and role are required", func(t *testing.T) {
		_, err := order.NewActor(" ", order.RoleStaff)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewActor("ops", order.RoleUnknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.ParseRole("owner")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
