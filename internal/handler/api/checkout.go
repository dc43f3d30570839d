package api

import (
	"net/http"

	"homestay-checkout/internal/domain/checkout"
	reqdto "homestay-checkout/internal/handler/dto/request"
	resdto "homestay-checkout/internal/handler/dto/response"
	"homestay-checkout/internal/handler/httperr"
	"homestay-checkout/internal/pkg/errs"
	"homestay-checkout/internal/usecase/commands"
	"homestay-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errValidationFailed = errs.New("checkout form validation failed")
	errPaymentFailed    = errs.New("payment initiation failed")
	errMissingPidx      = errs.New("missing pidx")
)

type CheckoutHandler struct {
	commands commands.CheckoutCommands
	queries  queries.CheckoutQueries
}

func NewCheckoutHandler(cmd commands.CheckoutCommands, q queries.CheckoutQueries) *CheckoutHandler {
	return &CheckoutHandler{commands: cmd, queries: q}
}

// @Summary Open checkout session
// @Description Open a checkout session from the booking context of the room page
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.OpenSessionRequest true "Booking context"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/checkout/sessions [post]
func (h *CheckoutHandler) OpenSession(c *gin.Context) {
	var req reqdto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	in, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	session, err := h.commands.StartCheckout(c.Request.Context(), in)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidBookingContext):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking details", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to open checkout", nil)
		}
		return
	}

	view, err := h.queries.GetSession(c.Request.Context(), session.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load checkout", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSessionView(view))
}

// @Summary Get checkout session
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/checkout/sessions/{id} [get]
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID format", nil)
		return
	}

	view, err := h.queries.GetSession(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrSessionNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Checkout session not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load checkout", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Submit checkout
// @Description Validate the form and start payment with the selected method
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.SubmitRequest true "Checkout form"
// @Success 200 {object} resdto.SubmitResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/checkout/sessions/{id}/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID format", nil)
		return
	}

	var req reqdto.SubmitRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}
	form, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown payment method", nil)
		return
	}

	result, err := h.commands.Submit(c.Request.Context(), id, form)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrSessionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Checkout session not found", nil)
		case errs.Is(err, commands.ErrSubmissionInProgress):
			httperr.AbortWithError(c, http.StatusConflict, err, "Payment is already being processed", nil)
		case errs.Is(err, commands.ErrSessionClosed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Checkout already completed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, checkout.UnknownFailureMessage, nil)
		}
		return
	}

	if result.Phase == checkout.PhaseInvalid {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, errValidationFailed, "Please fill in all required fields", resdto.ValidationDetail{
			Fields:      result.Errors,
			ScrollToTop: result.ScrollToTop,
		})
		return
	}
	if result.Outcome != nil && result.Outcome.IsFailure() {
		httperr.AbortWithError(c, http.StatusPaymentRequired, errPaymentFailed, result.Outcome.Message, resdto.PaymentFailureDetail{
			Kind:  string(result.Outcome.FailureKind),
			Phase: checkout.PhaseIdle.String(),
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSubmitResult(result))
}

// @Summary Booking confirmation
// @Tags checkout
// @Produce json
// @Param roomTitle query string true "Room title"
// @Param homestayName query string true "Homestay name"
// @Param totalPrice query string false "Total price"
// @Success 200 {object} resdto.ConfirmationResponse
// @Failure 400 {object} httperr.Response
// @Router /api/checkout/confirmation [get]
func (h *CheckoutHandler) Confirmation(c *gin.Context) {
	view, err := h.queries.Confirmation(c.Request.URL.Query())
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid confirmation link", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmationView(view))
}

// @Summary Khalti return
// @Description Landing for guests coming back from Khalti; redirects to the confirmation page once paid
// @Tags checkout
// @Param session query string true "Session ID"
// @Param pidx query string true "Khalti payment index"
// @Success 302
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/checkout/khalti/return [get]
func (h *CheckoutHandler) KhaltiReturn(c *gin.Context) {
	id, err := uuid.Parse(c.Query("session"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID format", nil)
		return
	}
	pidx := c.Query("pidx")
	if pidx == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingPidx, "Missing payment reference", nil)
		return
	}

	path, err := h.commands.ConfirmWalletReturn(c.Request.Context(), id, pidx)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrSessionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Checkout session not found", nil)
		case errs.Is(err, commands.ErrPaymentNotCompleted):
			httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment was not completed", resdto.PaymentFailureDetail{
				Kind:  string(checkout.FailurePaymentNotCompleted),
				Phase: checkout.PhaseIdle.String(),
			})
		case errs.Is(err, commands.ErrNotAwaitingWallet):
			httperr.AbortWithError(c, http.StatusConflict, err, "Checkout session is not awaiting a Khalti payment", nil)
		case errs.Is(err, commands.ErrWalletLookupFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Could not verify payment with Khalti", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, checkout.UnknownFailureMessage, nil)
		}
		return
	}
	c.Redirect(http.StatusFound, path)
}
