//go:build unit

package cache

import (
	"context"
	"testing"
	"time"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/infra"
	"homestay-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	pingOrFail(t, client)
	store := NewSessionStore(client, testCheckoutConfig(), discardLogger())
	ctx := context.Background()

	session := builder.NewDraftBuilder().BuildSession(checkout.MethodKhalti)
	outcome := checkout.Failure(checkout.FailureProviderInitiation, "Invalid payment details. Please check and try again.")
	session.State.Outcome = &outcome
	session.State.Message = outcome.Message
	session.State.FailureKind = outcome.FailureKind
	session.State.Errors = checkout.FieldErrors{checkout.FieldEmail: "Email is required"}
	session.State.LastOrderID = "1792402200000-deadbeef"

	require.NoError(t, store.Save(ctx, session))
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey(session.ID)))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, got.ID)
	assert.True(t, session.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, session.Draft.RoomTitle(), got.Draft.RoomTitle())
	assert.Equal(t, session.Draft.HomestayName(), got.Draft.HomestayName())
	assert.True(t, session.Draft.TotalPrice().Equal(got.Draft.TotalPrice()))
	assert.Equal(t, session.Draft.Stay().CheckInString(), got.Draft.Stay().CheckInString())
	assert.Equal(t, session.Draft.Stay().Nights(), got.Draft.Stay().Nights())

	assert.Equal(t, checkout.PhaseIdle, got.State.Phase)
	assert.Equal(t, checkout.MethodKhalti, got.State.Method)
	assert.Equal(t, session.State.Errors, got.State.Errors)
	assert.Equal(t, session.State.Message, got.State.Message)
	assert.Equal(t, session.State.LastOrderID, got.State.LastOrderID)
	require.NotNil(t, got.State.Outcome)
	assert.Equal(t, outcome, *got.State.Outcome)
}

func TestSessionStore_Missing(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewSessionStore(client, testCheckoutConfig(), discardLogger())

	_, err := store.Get(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestSessionStore_Expired(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client, testCheckoutConfig(), discardLogger())
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)

	require.NoError(t, store.Save(context.Background(), session))
	mr.FastForward(31 * time.Minute)

	_, err := store.Get(context.Background(), session.ID)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestSessionStore_CorruptRecord(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client, testCheckoutConfig(), discardLogger())
	id := uuid.New()
	require.NoError(t, mr.Set(sessionKey(id), "{not json"))

	_, err := store.Get(context.Background(), id)
	assert.True(t, infra.IsKind(err, infra.KindDecodeFailure))
}

func TestSessionStore_Unavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client, testCheckoutConfig(), discardLogger())
	mr.Close()

	err := store.Save(context.Background(), builder.NewDraftBuilder().BuildSession(checkout.MethodCard))
	assert.True(t, infra.IsKind(err, infra.KindCacheFailure))
}
