//go:build unit

package request_test

import (
	"encoding/json"
	"testing"

	"homestay-checkout/internal/domain/checkout"
	reqdto "homestay-checkout/internal/handler/dto/request"
	"homestay-checkout/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceField(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    reqdto.PriceField
		wantErr bool
	}{
		{name: "string", raw: `"18.00"`, want: "18.00"},
		{name: "number", raw: `18`, want: "18"},
		{name: "fractional number", raw: `0.05`, want: "0.05"},
		{name: "null", raw: `null`, want: ""},
		{name: "object", raw: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p reqdto.PriceField
			err := json.Unmarshal([]byte(tt.raw), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestOpenSessionRequest_ToDomain(t *testing.T) {
	b := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) { b.PaymentMethod = "khalti" })
	req := b.BuildOpenRequestDTO()

	in, err := req.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, b.BuildContext(), in)
}

func TestSubmitRequest_ToDomain(t *testing.T) {
	t.Run("copies every field", func(t *testing.T) {
		req := builder.NewFormBuilder().BuildSubmitRequestDTO()
		form, err := req.ToDomain()
		require.NoError(t, err)
		assert.Equal(t, builder.NewFormBuilder().BuildDomain(), form)
	})

	t.Run("alias resolves to method", func(t *testing.T) {
		req := builder.NewFormBuilder().BuildSubmitRequestDTO()
		req.PaymentMethod = "cash"
		form, err := req.ToDomain()
		require.NoError(t, err)
		assert.Equal(t, checkout.MethodPayAtProperty, form.Method)
	})

	t.Run("missing method stays empty", func(t *testing.T) {
		req := builder.NewFormBuilder().BuildSubmitRequestDTO()
		req.PaymentMethod = ""
		form, err := req.ToDomain()
		require.NoError(t, err)
		assert.Equal(t, checkout.PaymentMethod(""), form.Method)
	})

	t.Run("unknown method", func(t *testing.T) {
		req := builder.NewFormBuilder().BuildSubmitRequestDTO()
		req.PaymentMethod = "bitcoin"
		_, err := req.ToDomain()
		assert.ErrorIs(t, err, reqdto.ErrUnknownPaymentMethod)
	})
}
