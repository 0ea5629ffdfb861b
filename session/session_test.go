package session

import (
	"testing"
	"time"

	"bankist-api/model"
	"bankist-api/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*Controller, *storage.Directory) {
	t.Helper()
	d, err := storage.NewDirectory(storage.Seed())
	require.NoError(t, err)
	return NewController(d, 5*time.Minute), d
}

func login(t *testing.T, c *Controller, username, pin string) *model.SessionView {
	t.Helper()
	view, err := c.Login(username, pin)
	require.NoError(t, err)
	return view
}

func movementCount(t *testing.T, d *storage.Directory, username string) int {
	t.Helper()
	a, err := d.FindByUsername(username)
	require.NoError(t, err)
	return len(a.Movements)
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, _ := newTestController(t)
		view := login(t, c, "js", "1111")

		assert.Equal(t, "Jonas", view.WelcomeName)
		assert.True(t, view.SessionActive)
		assert.True(t, view.Balance.Equal(decimal.NewFromInt(3840)), "balance=%s want=3840", view.Balance)
		assert.Len(t, view.Movements, 8)
	})

	t.Run("wrong pin", func(t *testing.T) {
		c, _ := newTestController(t)
		_, err := c.Login("js", "9999")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		c, _ := newTestController(t)
		_, err := c.Login("zz", "1111")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("non-numeric pin never matches", func(t *testing.T) {
		c, _ := newTestController(t)
		_, err := c.Login("js", "one-one-one-one")
		assert.ErrorIs(t, err, ErrBadCredentials)

		// The failed login leaves the session closed.
		_, err = c.View()
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("login resets the sort toggle", func(t *testing.T) {
		c, _ := newTestController(t)
		login(t, c, "js", "1111")
		_, err := c.ToggleSort()
		require.NoError(t, err)

		view := login(t, c, "js", "1111")
		// Insertion order again: the first movement is 200.
		assert.True(t, view.Movements[0].Amount.Equal(decimal.NewFromInt(200)))
	})
}

func TestTransfer(t *testing.T) {
	amount := decimal.NewFromInt(500)

	t.Run("moves money between both accounts", func(t *testing.T) {
		c, d := newTestController(t)
		login(t, c, "js", "1111")

		view, err := c.Transfer("jd", amount)
		require.NoError(t, err)

		assert.True(t, view.Balance.Equal(decimal.NewFromInt(3340)), "balance=%s want=3340", view.Balance)
		last := view.Movements[len(view.Movements)-1]
		assert.True(t, last.Amount.Equal(amount.Neg()))
		assert.Equal(t, model.MovementWithdrawal, last.Type)

		recipient, err := d.FindByUsername("jd")
		require.NoError(t, err)
		credited := recipient.Movements[len(recipient.Movements)-1]
		assert.True(t, credited.Equal(amount))
	})

	t.Run("requires an active session", func(t *testing.T) {
		c, _ := newTestController(t)
		_, err := c.Transfer("jd", amount)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("rejections leave both accounts untouched", func(t *testing.T) {
		c, d := newTestController(t)
		login(t, c, "js", "1111")
		senderBefore := movementCount(t, d, "js")
		recipientBefore := movementCount(t, d, "jd")

		cases := []struct {
			name   string
			to     string
			amount decimal.Decimal
			want   error
		}{
			{"unknown recipient", "zz", amount, ErrRecipientNotFound},
			{"zero amount", "jd", decimal.Zero, ErrBadAmount},
			{"negative amount", "jd", decimal.NewFromInt(-500), ErrBadAmount},
			{"insufficient balance", "jd", decimal.NewFromInt(4000), ErrInsufficientFunds},
			{"self-transfer", "js", amount, ErrSameAccount},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := c.Transfer(tc.to, tc.amount)
				assert.ErrorIs(t, err, tc.want)
				assert.Equal(t, senderBefore, movementCount(t, d, "js"))
				assert.Equal(t, recipientBefore, movementCount(t, d, "jd"))
			})
		}
	})

	t.Run("self-transfer is rejected even for an affordable amount", func(t *testing.T) {
		c, _ := newTestController(t)
		login(t, c, "js", "1111")
		_, err := c.Transfer("js", decimal.NewFromInt(1))
		assert.ErrorIs(t, err, ErrSameAccount)
	})
}

func TestLoan(t *testing.T) {
	t.Run("granted when a single movement covers a tenth of the amount", func(t *testing.T) {
		c, _ := newTestController(t)
		login(t, c, "js", "1111")

		// Needs a movement >= 100; the 3000 deposit qualifies.
		view, err := c.Loan(decimal.NewFromInt(1000))
		require.NoError(t, err)

		assert.True(t, view.Balance.Equal(decimal.NewFromInt(4840)))
		last := view.Movements[len(view.Movements)-1]
		assert.True(t, last.Amount.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, model.MovementDeposit, last.Type)
	})

	t.Run("rejected when no single movement qualifies", func(t *testing.T) {
		c, d := newTestController(t)
		login(t, c, "js", "1111")
		before := movementCount(t, d, "js")

		// Needs a movement >= 4000; the largest is 3000.
		_, err := c.Loan(decimal.NewFromInt(40000))
		assert.ErrorIs(t, err, ErrNotEligible)
		assert.Equal(t, before, movementCount(t, d, "js"))
	})

	t.Run("rejected for non-positive amounts", func(t *testing.T) {
		c, _ := newTestController(t)
		login(t, c, "js", "1111")
		_, err := c.Loan(decimal.Zero)
		assert.ErrorIs(t, err, ErrBadAmount)
		_, err = c.Loan(decimal.NewFromInt(-10))
		assert.ErrorIs(t, err, ErrBadAmount)
	})

	t.Run("requires an active session", func(t *testing.T) {
		c, _ := newTestController(t)
		_, err := c.Loan(decimal.NewFromInt(1000))
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestClose(t *testing.T) {
	t.Run("removes only the current account and ends the session", func(t *testing.T) {
		c, d := newTestController(t)
		login(t, c, "js", "1111")

		require.NoError(t, c.Close("js", "1111"))

		assert.Equal(t, 3, d.Len())
		_, err := d.FindByUsername("js")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = d.FindByUsername("jd")
		assert.NoError(t, err, "other accounts must survive a close")

		_, err = c.View()
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("re-authentication mismatches are rejected", func(t *testing.T) {
		c, d := newTestController(t)
		login(t, c, "js", "1111")

		cases := []struct {
			name     string
			username string
			pin      string
		}{
			{"wrong username", "jd", "1111"},
			{"wrong pin", "js", "2222"},
			{"non-numeric pin", "js", "pin"},
			{"another account's valid credentials", "jd", "2222"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.ErrorIs(t, c.Close(tc.username, tc.pin), ErrBadCredentials)
				assert.Equal(t, 4, d.Len())
			})
		}

		// The session survives every rejected close.
		_, err := c.View()
		assert.NoError(t, err)
	})

	t.Run("requires an active session", func(t *testing.T) {
		c, _ := newTestController(t)
		assert.ErrorIs(t, c.Close("js", "1111"), ErrNoSession)
	})
}

func TestToggleSort(t *testing.T) {
	t.Run("sorts ascending and toggles back", func(t *testing.T) {
		c, _ := newTestController(t)
		original := login(t, c, "js", "1111")

		sorted, err := c.ToggleSort()
		require.NoError(t, err)
		assert.True(t, sorted.Movements[0].Amount.Equal(decimal.NewFromInt(-650)))
		last := sorted.Movements[len(sorted.Movements)-1]
		assert.True(t, last.Amount.Equal(decimal.NewFromInt(3000)))

		// Toggling twice restores the original display order.
		unsorted, err := c.ToggleSort()
		require.NoError(t, err)
		require.Len(t, unsorted.Movements, len(original.Movements))
		for i := range original.Movements {
			assert.True(t, unsorted.Movements[i].Amount.Equal(original.Movements[i].Amount),
				"index %d differs after double toggle", i)
		}
	})

	t.Run("does not mutate the stored history", func(t *testing.T) {
		c, d := newTestController(t)
		login(t, c, "js", "1111")
		_, err := c.ToggleSort()
		require.NoError(t, err)

		a, err := d.FindByUsername("js")
		require.NoError(t, err)
		assert.True(t, a.Movements[0].Equal(decimal.NewFromInt(200)), "stored order changed")
	})

	t.Run("requires an active session", func(t *testing.T) {
		c, _ := newTestController(t)
		_, err := c.ToggleSort()
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestCountdown(t *testing.T) {
	c, _ := newTestController(t)

	// Freeze the clock so the remaining time is deterministic.
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c.now = func() time.Time { return base }

	view := login(t, c, "js", "1111")
	assert.Equal(t, int64(300), view.CountdownSeconds)

	c.now = func() time.Time { return base.Add(4 * time.Minute) }
	view, err := c.View()
	require.NoError(t, err)
	assert.Equal(t, int64(60), view.CountdownSeconds)

	// An expired countdown is display-only: the session stays open.
	c.now = func() time.Time { return base.Add(time.Hour) }
	view, err = c.View()
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.CountdownSeconds)
	assert.True(t, view.SessionActive)
}

func TestSummaryTotals(t *testing.T) {
	c, _ := newTestController(t)
	view := login(t, c, "js", "1111")

	assert.True(t, view.TotalDeposits.Equal(decimal.NewFromInt(5020)))
	assert.True(t, view.TotalWithdrawals.Equal(decimal.NewFromInt(1180)))
	assert.True(t, view.TotalInterest.Equal(decimal.RequireFromString("59.4")),
		"interest=%s want=59.4", view.TotalInterest)
}
