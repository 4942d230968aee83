package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartstore/store-system/internal/api/metrics"
	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
)

// StoreHandler exposes stores, products and customers. Role checks live in
// the service; the handler only resolves the caller.
type StoreHandler struct {
	service ports.StoreService
}

func NewStoreHandler(service ports.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// denied counts role refusals before handing the error to the error handler.
func denied(op string, err error) error {
	if errors.Is(err, domain.ErrForbidden) {
		metrics.AccessDeniedTotal.WithLabelValues(op).Inc()
	}
	return err
}

// CreateStore handles POST /api/v1/stores.
//
// @Summary      Provision a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/stores [post]
func (h *StoreHandler) CreateStore(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	store, err := h.service.ProvisionStore(c.Request().Context(), user, req.ID, req.Description, req.Address)
	if err != nil {
		return denied("provision_store", err)
	}

	metrics.EntitiesProvisionedTotal.WithLabelValues("store").Inc()
	return c.JSON(http.StatusCreated, store)
}

// ListStores handles GET /api/v1/stores.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   domain.Store
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/stores [get]
func (h *StoreHandler) ListStores(c echo.Context) error {
	stores, err := h.service.GetAllStores(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}

// GetStore handles GET /api/v1/stores/:id.
//
// @Summary      Show a store
// @Tags         stores
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  domain.Store
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/stores/{id} [get]
func (h *StoreHandler) GetStore(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	store, err := h.service.ShowStore(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// UpdateStore handles PUT /api/v1/stores/:id.
//
// @Summary      Update a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      string              true  "Store ID"
// @Param        body  body      updateStoreRequest  true  "Fields to change"
// @Success      200   {object}  domain.Store
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/stores/{id} [put]
func (h *StoreHandler) UpdateStore(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	store, err := h.service.UpdateStore(c.Request().Context(), user, c.Param("id"), req.Description, req.Address)
	if err != nil {
		return denied("update_store", err)
	}
	return c.JSON(http.StatusOK, store)
}

// DeleteStore handles DELETE /api/v1/stores/:id.
//
// @Summary      Delete a store
// @Tags         stores
// @Security     BasicAuth
// @Param        id  path  string  true  "Store ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/stores/{id} [delete]
func (h *StoreHandler) DeleteStore(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteStore(c.Request().Context(), user, c.Param("id")); err != nil {
		return denied("delete_store", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateProduct handles POST /api/v1/products.
//
// @Summary      Provision a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/products [post]
func (h *StoreHandler) CreateProduct(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	product, err := h.service.ProvisionProduct(c.Request().Context(), user, req.toInput())
	if err != nil {
		return denied("provision_product", err)
	}

	metrics.EntitiesProvisionedTotal.WithLabelValues("product").Inc()
	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /api/v1/products/:id.
//
// @Summary      Show a product
// @Tags         products
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/products/{id} [get]
func (h *StoreHandler) GetProduct(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	product, err := h.service.ShowProduct(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// CreateCustomer handles POST /api/v1/customers.
//
// @Summary      Provision a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/customers [post]
func (h *StoreHandler) CreateCustomer(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	customer, err := h.service.ProvisionCustomer(c.Request().Context(), user, req.toInput())
	if err != nil {
		return denied("provision_customer", err)
	}

	metrics.EntitiesProvisionedTotal.WithLabelValues("customer").Inc()
	return c.JSON(http.StatusCreated, customer)
}

// GetCustomer handles GET /api/v1/customers/:id.
//
// @Summary      Show a customer
// @Tags         customers
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/customers/{id} [get]
func (h *StoreHandler) GetCustomer(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	customer, err := h.service.ShowCustomer(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}
