package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	tenantDomain "fleetcodes/internal/domain/tenant"
	"fleetcodes/internal/usecase/tenant"
)

type TenantHandler struct{ uc *tenant.Usecase }

func NewTenantHandler(uc *tenant.Usecase) *TenantHandler { return &TenantHandler{uc: uc} }

type createTenantReq struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	OwnerID     string `json:"owner_id"    validate:"omitempty,hex32"`
}

type updateTenantReq struct {
	Name        *string `json:"name"        validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Active      *bool   `json:"active"`
}

// POST /api/v1/tenants
func (h *TenantHandler) CreateTenant(c echo.Context) error {
	var req createTenantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	t, err := h.uc.Create(c.Request().Context(), tenant.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, t)
	case errors.Is(err, tenant.ErrNameTaken):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, tenant.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "create failed"})
	}
}

// GET /api/v1/tenants/:tenant_id
func (h *TenantHandler) GetTenant(c echo.Context) error {
	publicID := c.Param("tenant_id")
	if !reHex32.MatchString(publicID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tenant_id"})
	}
	t, err := h.uc.Get(c.Request().Context(), publicID)
	if err != nil {
		if errors.Is(err, tenantDomain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// GET /api/v1/tenants
func (h *TenantHandler) ListTenants(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	rows, err := h.uc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "listing failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": rows})
}

// PUT /api/v1/tenants/:tenant_id
func (h *TenantHandler) UpdateTenant(c echo.Context) error {
	publicID := c.Param("tenant_id")
	if !reHex32.MatchString(publicID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tenant_id"})
	}
	var req updateTenantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	t, err := h.uc.Update(c.Request().Context(), publicID, tenant.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, t)
	case errors.Is(err, tenantDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, tenant.ErrNameTaken):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, tenant.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "update failed"})
	}
}
