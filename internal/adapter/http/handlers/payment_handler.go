package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	request "fx_payments/internal/adapter/http/dto/request"
	response "fx_payments/internal/adapter/http/dto/response"
	"fx_payments/internal/domain/entities"
	"fx_payments/internal/usecase"
	"fx_payments/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// PaymentHandler handles HTTP requests for cross-currency payments.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment godoc
// @Summary      Create a cross-currency payment
// @Description  Quotes the pair with the FX provider and records the outcome. A payment whose quote could not be obtained is still recorded as FAILED and returned with 502.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payment  body      request.PaymentCreateRequest  true  "Payment intent"
// @Success      201      {object}  response.PaymentResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      502      {object}  response.PaymentResponse
// @Failure      503      {object}  pkg.HTTPError
// @Router       /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.PaymentCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid payload err=%v", err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create start pair=%s/%s", payload.SourceCurrency, payload.DestinationCurrency)

	// A caller hanging up must not leave the record PENDING; the FX
	// client timeouts still bound the call.
	ctx := context.WithoutCancel(c.Request.Context())
	created, err := h.usecase.CreatePayment(ctx, payload.ToIntent())
	if err != nil {
		log.Printf("[payment][handler] create failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create done payment_id=%s status=%s", created.ID, created.Status)

	c.JSON(statusForPayment(created), response.FromPayment(created))
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")

	p, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", id, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

func statusForPayment(p entities.Payment) int {
	switch p.Status {
	case entities.PaymentStatusSucceeded:
		return http.StatusCreated
	case entities.PaymentStatusFailed:
		return http.StatusBadGateway
	default:
		return http.StatusAccepted
	}
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidSender), errors.Is(err, usecase.ErrInvalidReceiver),
		errors.Is(err, usecase.ErrInvalidAmount), errors.Is(err, usecase.ErrInvalidCurrency),
		errors.Is(err, usecase.ErrInvalidPaymentID):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request: "+err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentStoreUnavailable):
		return pkg.NewDomainError("PAYMENT_STORE_UNAVAILABLE", "Payment store unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
