package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
)

// ProductHandler handles HTTP requests for the inventory namespace.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type productRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	CategoryID  *int64  `json:"category_id"`
	Barcode     string  `json:"barcode"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	CostPrice   float64 `json:"cost_price"  validate:"gte=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
}

func (r *productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Barcode:     r.Barcode,
		Price:       r.Price,
		CostPrice:   r.CostPrice,
		Stock:       r.Stock,
	}
}

// List handles GET /api/v1/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Product
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Search handles GET /api/v1/products/search?q=.
//
// @Summary      Search products by name or barcode
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Name substring or exact barcode"
// @Success      200  {array}   domain.Product
// @Router       /api/v1/products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /api/v1/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /api/v1/products (administrator only).
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	product, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrProductExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "a product with this barcode already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/v1/products/:id (administrator only).
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	product, err := h.service.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
		case errors.Is(err, domain.ErrProductExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: "a product with this barcode already exists"})
		}
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/v1/products/:id (administrator only).
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  int  true  "Product ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
