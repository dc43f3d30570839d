//go:build unit

package handler_test

import (
	"net/http"
	"testing"

	"homestay-checkout/internal/handler"
	"homestay-checkout/internal/handler/api"
	"homestay-checkout/internal/handler/middleware"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/internal/usecase/commands"
	"homestay-checkout/tests/common/builder"
	"homestay-checkout/tests/common/httptest"
	commandsmock "homestay-checkout/tests/mock/commands"
	queriesmock "homestay-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockCheckoutCommands(ctrl)
	qs := queriesmock.NewMockCheckoutQueries(ctrl)

	cfg := config.NewTestConfig()
	cfg.RateLimit = config.RateLimitConfig{PerMinute: 1, Burst: 1}

	engine := gin.New()
	handler.NewRouter(engine, cfg, middleware.NewLogger(cfg.Log), middleware.NewRateLimiter(cfg.RateLimit),
		api.NewCheckoutHandler(cmds, qs))

	t.Run("health", func(t *testing.T) {
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("submit is throttled per client", func(t *testing.T) {
		id := uuid.New()
		cmds.EXPECT().Submit(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrSubmissionInProgress).Times(1)

		path := "/api/checkout/sessions/" + id.String() + "/submit"
		body := builder.NewFormBuilder().BuildSubmitRequestDTO()

		first := httptest.PerformRequest(t, engine, http.MethodPost, path, body)
		httptest.AssertErrorResponse(t, first, http.StatusConflict, "Payment is already being processed")

		second := httptest.PerformRequest(t, engine, http.MethodPost, path, body)
		httptest.AssertErrorResponse(t, second, http.StatusTooManyRequests, "Too many requests")
	})

	t.Run("reads are not throttled", func(t *testing.T) {
		id := uuid.New()
		qs.EXPECT().GetSession(gomock.Any(), id).Return(builder.NewDraftBuilder().BuildSessionView(id), nil).Times(3)

		for range 3 {
			rec := httptest.PerformRequest(t, engine, http.MethodGet, "/api/checkout/sessions/"+id.String(), nil)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
