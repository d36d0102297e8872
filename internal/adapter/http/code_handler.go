package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fleetcodes/internal/adapter/middleware"
	formatDomain "fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/usecase/codegen"
)

type CodeHandler struct{ uc *codegen.Usecase }

func NewCodeHandler(uc *codegen.Usecase) *CodeHandler { return &CodeHandler{uc: uc} }

type generateCodeReq struct {
	EntityType string `json:"entity_type" validate:"required,typekey"`
	EntityID   uint64 `json:"entity_id"   validate:"required,gte=1"`
	IssuedBy   string `json:"issued_by"   validate:"omitempty,hex32"`
	// Required=false keeps the caller's entity creation alive when no format
	// is configured: the code is skipped instead of failing the request.
	Required *bool `json:"required"`
}

// GenerateCode issues (or replays) the code for one entity.
// POST /api/v1/codes
func (h *CodeHandler) GenerateCode(c echo.Context) error {
	var req generateCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	required := true
	if req.Required != nil {
		required = *req.Required
	}
	ctx := c.Request().Context()
	dto, err := h.uc.Generate(ctx, codegen.GenerateInput{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		TenantID:   middleware.TenantFromContext(ctx),
		IssuedBy:   req.IssuedBy,
		Required:   required,
	})
	switch {
	case err == nil && dto == nil:
		// best-effort policy kicked in
		return c.JSON(http.StatusOK, map[string]any{
			"code":    nil,
			"message": "no active code format; code skipped",
		})
	case err == nil:
		return c.JSON(http.StatusCreated, dto)
	case errors.Is(err, formatDomain.ErrNoFormat):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "no active code format for entity type"})
	case errors.Is(err, formatDomain.ErrCodeCollision):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "code collision; sequence integrity compromised"})
	case errors.Is(err, codegen.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "code generation failed"})
	}
}

// GetCode returns the already-issued code for one entity, if any.
// GET /api/v1/codes/:entity_type/:entity_id
func (h *CodeHandler) GetCode(c echo.Context) error {
	entityType := c.Param("entity_type")
	entityID, err := strconv.ParseUint(c.Param("entity_id"), 10, 64)
	if err != nil || entityID == 0 || !reTypeKey.MatchString(entityType) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid entity reference"})
	}

	ctx := c.Request().Context()
	dto, err := h.uc.GetExisting(ctx, middleware.TenantFromContext(ctx), entityType, entityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "lookup failed"})
	}
	if dto == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no code issued for this entity"})
	}
	return c.JSON(http.StatusOK, dto)
}

// ListCodes pages through the issuance audit trail for the current scope.
// GET /api/v1/codes?entity_type=&limit=&offset=
func (h *CodeHandler) ListCodes(c echo.Context) error {
	entityType := c.QueryParam("entity_type")
	if entityType != "" && !reTypeKey.MatchString(entityType) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid entity_type filter"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	ctx := c.Request().Context()
	out, err := h.uc.List(ctx, middleware.TenantFromContext(ctx), entityType, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "listing failed"})
	}
	return c.JSON(http.StatusOK, out)
}
