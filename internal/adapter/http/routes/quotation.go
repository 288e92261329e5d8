package routes

import (
	"gestion_comercial/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathConvertQuotation   = "/convert-quotation"
	PathSendQuotationEmail = "/send-quotation-email"
	PathCancelQuotation    = "/cancel-quotation"
	PathQuotations         = "/quotations"
	PathOrders             = "/orders"
	PathRemissions         = "/remissions"
)

func addQuotationRoutes(rg *gin.RouterGroup, h *handlers.QuotationHandler) {
	rg.POST(PathConvertQuotation, h.ConvertQuotation)
	rg.POST(PathSendQuotationEmail, h.SendQuotationEmail)
	rg.POST(PathCancelQuotation, h.CancelQuotation)

	quotations := rg.Group(PathQuotations)
	{
		quotations.POST("", h.CreateQuotation)
		quotations.GET("/:id", h.GetQuotation)
	}

	rg.GET(PathOrders+"/:id", h.GetOrder)
	rg.GET(PathRemissions+"/:id", h.GetRemission)
}
