package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"gestion_comercial/internal/adapter/http/dto/request"
	"gestion_comercial/internal/adapter/http/dto/response"
	"gestion_comercial/internal/adapter/http/middleware"
	"gestion_comercial/internal/usecase"
	"gestion_comercial/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid request payload", http.StatusBadRequest)
	errMissingActor   = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
)

// QuotationHandler exposes the quotation lifecycle over HTTP.
type QuotationHandler struct {
	usecase usecase.IQuotationLifecycleUseCase
	loc     *time.Location
}

// NewQuotationHandler builds the handler. Calendar dates in requests are read
// in loc.
func NewQuotationHandler(uc usecase.IQuotationLifecycleUseCase, loc *time.Location) *QuotationHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &QuotationHandler{usecase: uc, loc: loc}
}

// ConvertQuotation godoc
// @Summary      Convert a quotation into an order and a remission
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        payload  body      request.ConvertQuotationRequest  true  "Conversion"
// @Success      200      {object}  response.ConvertQuotationResponse
// @Failure      400,403,404,409,503  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /convert-quotation [post]
func (h *QuotationHandler) ConvertQuotation(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	var payload request.ConvertQuotationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	deliveryDate, err := payload.ResolveDeliveryDate(h.loc)
	if err != nil {
		appErr := errInvalidPayload.WithField("deliveryDate")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	quotationID := payload.ResolveQuotationID()
	log.Printf("[quotation][handler] convert start quotation_id=%s actor=%s", quotationID, actor.ID)
	result, err := h.usecase.Convert(c.Request.Context(), actor, quotationID, deliveryDate, payload.Observation)
	if err != nil {
		log.Printf("[quotation][handler] convert failed quotation_id=%s err=%v", quotationID, err)
		appErr := mapLifecycleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromConversionResult(result))
}

// SendQuotationEmail godoc
// @Summary      Email a quotation to its client
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        payload  body      request.SendQuotationEmailRequest  true  "Email"
// @Success      200      {object}  response.SendQuotationEmailResponse
// @Failure      400,403,404,409,502,503  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /send-quotation-email [post]
func (h *QuotationHandler) SendQuotationEmail(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	var payload request.SendQuotationEmailRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	in := payload.ToInput()
	log.Printf("[quotation][handler] send-email start quotation_id=%s actor=%s", in.QuotationID, actor.ID)
	q, err := h.usecase.SendQuotationEmail(c.Request.Context(), actor, in)
	if err != nil {
		log.Printf("[quotation][handler] send-email failed quotation_id=%s err=%v", in.QuotationID, err)
		appErr := mapLifecycleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.SendQuotationEmailResponse{Sent: true, Status: string(q.Status)})
}

// CancelQuotation godoc
// @Summary      Cancel a quotation
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CancelQuotationRequest  true  "Cancellation"
// @Success      200      {object}  response.CancelQuotationResponse
// @Failure      400,403,404,409,503  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /cancel-quotation [post]
func (h *QuotationHandler) CancelQuotation(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	var payload request.CancelQuotationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	quotationID := payload.ResolveQuotationID()
	q, err := h.usecase.CancelQuotation(c.Request.Context(), actor, quotationID)
	if err != nil {
		log.Printf("[quotation][handler] cancel failed quotation_id=%s err=%v", quotationID, err)
		appErr := mapLifecycleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.CancelQuotationResponse{Cancelled: true, Status: string(q.Status)})
}

// CreateQuotation godoc
// @Summary      Create a quotation
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateQuotationRequest  true  "Quotation"
// @Success      201      {object}  response.QuotationResponse
// @Failure      400,403,503  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quotations [post]
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	var payload request.CreateQuotationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	in, err := payload.ToInput(h.loc)
	if err != nil {
		appErr := errInvalidPayload.WithField("issueDate")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	q, err := h.usecase.CreateQuotation(c.Request.Context(), actor, in)
	if err != nil {
		log.Printf("[quotation][handler] create failed actor=%s err=%v", actor.ID, err)
		appErr := mapLifecycleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuotation(q))
}

// GetQuotation godoc
// @Summary      Get a quotation
// @Tags         quotations
// @Produce      json
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {object}  response.QuotationResponse
// @Failure      403,404,503  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quotations/{id} [get]
func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	q, err := h.usecase.GetQuotation(c.Request.Context(), actor, strings.TrimSpace(c.Param("id")))
	if err != nil {
		appErr := mapLifecycleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.OrderResponse
// @Failure      403,404,503  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id} [get]
func (h *QuotationHandler) GetOrder(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	o, err := h.usecase.GetOrder(c.Request.Context(), actor, strings.TrimSpace(c.Param("id")))
	if err != nil {
		appErr := mapLifecycleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// GetRemission godoc
// @Summary      Get a remission
// @Tags         remissions
// @Produce      json
// @Param        id   path      string  true  "Remission ID"
// @Success      200  {object}  response.RemissionResponse
// @Failure      403,404,503  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /remissions/{id} [get]
func (h *QuotationHandler) GetRemission(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return
	}

	r, err := h.usecase.GetRemission(c.Request.Context(), actor, strings.TrimSpace(c.Param("id")))
	if err != nil {
		appErr := mapLifecycleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromRemission(r))
}

func mapLifecycleError(err error) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return pkg.NewDomainError("VALIDATION_ERROR", verr.Field+" "+verr.Reason, err, http.StatusBadRequest).WithField(verr.Field)
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Document not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainError("FORBIDDEN", "Missing permission for this operation", err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrIllegalTransition):
		return pkg.NewDomainError("ILLEGAL_TRANSITION", "Operation not allowed in the current status", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrNotificationFailure):
		return pkg.NewDomainError("NOTIFICATION_FAILURE", "Email could not be delivered", err, http.StatusBadGateway).AsRetryable()
	case errors.Is(err, usecase.ErrDependencyFailure):
		return pkg.NewDomainError("DEPENDENCY_FAILURE", "A dependency is unavailable", err, http.StatusServiceUnavailable).AsRetryable()
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
