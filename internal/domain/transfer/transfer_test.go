package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNew(t *testing.T) {
	from := primitive.NewObjectID()
	to := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		entry, err := New("owner-1", from, to, 2500, "rent share")

		assert.NoError(t, err)
		assert.Equal(t, from, *entry.FromAccount)
		assert.Equal(t, to, *entry.ToAccount)
		assert.Equal(t, int64(2500), entry.Amount)
		assert.Equal(t, "rent share", entry.Remark)
		assert.NoError(t, entry.Validate())
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		_, err := New("owner-1", from, to, 0, "")
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = New("owner-1", from, to, -100, "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestNewAdjustment(t *testing.T) {
	accountID := primitive.NewObjectID()

	t.Run("PositiveIsExternalCredit", func(t *testing.T) {
		entry, err := NewAdjustment("owner-1", accountID, 500, "")

		assert.NoError(t, err)
		assert.Nil(t, entry.FromAccount)
		assert.Equal(t, accountID, *entry.ToAccount)
		assert.Equal(t, int64(500), entry.Amount)
		assert.Equal(t, RemarkBalanceIncrease, entry.Remark)
		assert.NoError(t, entry.Validate())
	})

	t.Run("NegativeIsExternalDebit", func(t *testing.T) {
		entry, err := NewAdjustment("owner-1", accountID, -500, "")

		assert.NoError(t, err)
		assert.Nil(t, entry.ToAccount)
		assert.Equal(t, accountID, *entry.FromAccount)
		// The stored amount is always positive; direction lives in which
		// side is set
		assert.Equal(t, int64(500), entry.Amount)
		assert.Equal(t, RemarkBalanceDecrease, entry.Remark)
		assert.NoError(t, entry.Validate())
	})

	t.Run("CustomRemarkKept", func(t *testing.T) {
		entry, err := NewAdjustment("owner-1", accountID, -300, "lost receipt")
		assert.NoError(t, err)
		assert.Equal(t, "lost receipt", entry.Remark)
	})

	t.Run("ZeroRejected", func(t *testing.T) {
		_, err := NewAdjustment("owner-1", accountID, 0, "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestTransfer_Validate(t *testing.T) {
	accountID := primitive.NewObjectID()

	t.Run("NoAccounts", func(t *testing.T) {
		entry := &Transfer{Amount: 100}
		assert.ErrorIs(t, entry.Validate(), ErrNoAccounts)
	})

	t.Run("OneSideIsEnough", func(t *testing.T) {
		entry := &Transfer{Amount: 100, ToAccount: &accountID}
		assert.NoError(t, entry.Validate())
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		entry := &Transfer{Amount: 0, ToAccount: &accountID}
		assert.ErrorIs(t, entry.Validate(), ErrInvalidAmount)
	})
}
