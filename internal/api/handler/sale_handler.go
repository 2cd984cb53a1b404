package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farmapp/pharmacy-pos/internal/api/metrics"
	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
)

// SaleHandler handles HTTP requests for recorded sales.
type SaleHandler struct {
	service ports.SaleService
}

func NewSaleHandler(service ports.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

type saleItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity"   validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
}

type saleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash credit_card debit_card transfer"`
	Items         []saleItemRequest `json:"items"          validate:"required,min=1,dive"`
}

// Record handles POST /api/v1/sales. The cashier is always the authenticated
// user, regardless of what the body claims.
//
// @Summary      Record a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saleRequest  true  "Sale lines and payment method"
// @Success      201   {object}  domain.Sale
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/sales [post]
func (h *SaleHandler) Record(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	input := ports.RecordSaleInput{
		UserID:        identity.UserID,
		PaymentMethod: req.PaymentMethod,
		Items:         make([]ports.SaleItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, ports.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	sale, err := h.service.Record(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptySale):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "a sale needs at least one item"})
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "sale references an unknown product"})
		}
		return err
	}

	metrics.SalesRecordedTotal.WithLabelValues(sale.PaymentMethod).Inc()
	return c.JSON(http.StatusCreated, sale)
}

// Recent handles GET /api/v1/sales/recent?limit=.
//
// @Summary      List recent sales, newest first
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of sales"
// @Success      200    {array}   domain.Sale
// @Router       /api/v1/sales/recent [get]
func (h *SaleHandler) Recent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
		}
		limit = parsed
	}

	sales, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}
