package routes

import (
	"fx_payments/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("/:id", paymentHandler.GetPayment)
	}
}
