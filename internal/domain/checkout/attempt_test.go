//go:build unit

package checkout_test

import (
	"net/url"
	"testing"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmation(t *testing.T) {
	draft := builder.NewDraftBuilder().BuildDomain()

	t.Run("path carries room, homestay and total", func(t *testing.T) {
		path := checkout.ConfirmationFor(draft).Path("/booking/confirmation")

		u, err := url.Parse(path)
		require.NoError(t, err)
		assert.Equal(t, "/booking/confirmation", u.Path)
		assert.Equal(t, "Deluxe Mountain View", u.Query().Get("roomTitle"))
		assert.Equal(t, "Annapurna Homestay", u.Query().Get("homestayName"))
		assert.Equal(t, "18.00", u.Query().Get("totalPrice"))
	})

	t.Run("existing query is kept", func(t *testing.T) {
		path := checkout.ConfirmationFor(draft).Path("https://stay.example.com/done?src=stripe")
		u, err := url.Parse(path)
		require.NoError(t, err)
		assert.Equal(t, "stripe", u.Query().Get("src"))
		assert.Equal(t, "Annapurna Homestay", u.Query().Get("homestayName"))
	})

	t.Run("round trip through query", func(t *testing.T) {
		c := checkout.ConfirmationFor(draft)
		parsed, err := checkout.ParseConfirmation(c.Query())
		require.NoError(t, err)
		assert.Equal(t, c.RoomTitle, parsed.RoomTitle)
		assert.True(t, c.TotalPrice.Equal(parsed.TotalPrice))
	})

	t.Run("missing names are rejected", func(t *testing.T) {
		_, err := checkout.ParseConfirmation(url.Values{"roomTitle": {"Deluxe"}})
		assert.ErrorIs(t, err, checkout.ErrIncompleteConfirmation)
	})
}

func TestOutcome(t *testing.T) {
	assert.True(t, checkout.Redirect("https://pay.example.com").IsValid())
	assert.False(t, checkout.Redirect("").IsValid())
	assert.True(t, checkout.ImmediateSuccess("/booking/confirmation?x=1").IsValid())
	assert.False(t, checkout.Failure(checkout.FailureUnknown, "").IsValid())

	f := checkout.NewPaymentError(checkout.FailureProviderInitiation, checkout.MethodKhalti, "nope", nil).Outcome()
	assert.True(t, f.IsFailure())
	assert.Equal(t, checkout.FailureProviderInitiation, f.FailureKind)
	assert.Equal(t, "nope", f.Message)
}
