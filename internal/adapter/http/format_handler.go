package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fleetcodes/internal/adapter/middleware"
	formatDomain "fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/usecase/codegen"
	"fleetcodes/internal/usecase/format"
)

// FormatHandler is the admin surface over CodeFormat rows. Sequence resets
// and previews go through the codegen usecase so the locking and rendering
// contract has a single owner.
type FormatHandler struct {
	uc  *format.Usecase
	gen *codegen.Usecase
}

func NewFormatHandler(uc *format.Usecase, gen *codegen.Usecase) *FormatHandler {
	return &FormatHandler{uc: uc, gen: gen}
}

type createFormatReq struct {
	EntityType     string `json:"entity_type"     validate:"required,typekey"`
	FormatPattern  string `json:"format_pattern"  validate:"omitempty,max=255"`
	Prefix         string `json:"prefix"          validate:"omitempty,max=16"`
	Suffix         string `json:"suffix"          validate:"omitempty,max=16"`
	IncludeYear    bool   `json:"include_year"`
	IncludeMonth   bool   `json:"include_month"`
	IncludeDay     bool   `json:"include_day"`
	SequenceLength int    `json:"sequence_length" validate:"omitempty,gte=1,lte=12"`
	SequenceStart  int64  `json:"sequence_start"  validate:"omitempty,gte=1"`
	Separator      string `json:"separator"       validate:"omitempty,max=8"`
	IsActive       *bool  `json:"is_active"`
}

type updateFormatReq struct {
	FormatPattern  *string `json:"format_pattern"  validate:"omitempty,max=255"`
	Prefix         *string `json:"prefix"          validate:"omitempty,max=16"`
	Suffix         *string `json:"suffix"          validate:"omitempty,max=16"`
	IncludeYear    *bool   `json:"include_year"`
	IncludeMonth   *bool   `json:"include_month"`
	IncludeDay     *bool   `json:"include_day"`
	SequenceLength *int    `json:"sequence_length" validate:"omitempty,gte=1,lte=12"`
	SequenceStart  *int64  `json:"sequence_start"  validate:"omitempty,gte=1"`
	Separator      *string `json:"separator"       validate:"omitempty,max=8"`
	IsActive       *bool   `json:"is_active"`
}

type previewFormatReq struct {
	FormatPattern   string `json:"format_pattern"   validate:"omitempty,max=255"`
	Prefix          string `json:"prefix"           validate:"omitempty,max=16"`
	Suffix          string `json:"suffix"           validate:"omitempty,max=16"`
	IncludeYear     bool   `json:"include_year"`
	IncludeMonth    bool   `json:"include_month"`
	IncludeDay      bool   `json:"include_day"`
	SequenceLength  int    `json:"sequence_length"  validate:"omitempty,gte=1,lte=12"`
	SequenceStart   int64  `json:"sequence_start"   validate:"omitempty,gte=1"`
	CurrentSequence int64  `json:"current_sequence" validate:"omitempty,gte=0"`
	Separator       string `json:"separator"        validate:"omitempty,max=8"`
}

// GET /api/v1/formats
func (h *FormatHandler) ListFormats(c echo.Context) error {
	ctx := c.Request().Context()
	rows, err := h.uc.List(ctx, middleware.TenantFromContext(ctx))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "listing failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": rows})
}

// POST /api/v1/formats
func (h *FormatHandler) CreateFormat(c echo.Context) error {
	var req createFormatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	ctx := c.Request().Context()
	f, err := h.uc.Create(ctx, format.CreateInput{
		TenantID:       middleware.TenantFromContext(ctx),
		EntityType:     req.EntityType,
		FormatPattern:  req.FormatPattern,
		Prefix:         req.Prefix,
		Suffix:         req.Suffix,
		IncludeYear:    req.IncludeYear,
		IncludeMonth:   req.IncludeMonth,
		IncludeDay:     req.IncludeDay,
		SequenceLength: req.SequenceLength,
		SequenceStart:  req.SequenceStart,
		Separator:      req.Separator,
		IsActive:       active,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, f)
	case errors.Is(err, format.ErrFormatExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, formatDomain.ErrInvalidConfig):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "create failed"})
	}
}

// GET /api/v1/formats/:id
func (h *FormatHandler) GetFormat(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	f, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, f)
}

// PUT /api/v1/formats/:id
func (h *FormatHandler) UpdateFormat(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req updateFormatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	f, err := h.uc.Update(c.Request().Context(), id, format.UpdateInput{
		FormatPattern:  req.FormatPattern,
		Prefix:         req.Prefix,
		Suffix:         req.Suffix,
		IncludeYear:    req.IncludeYear,
		IncludeMonth:   req.IncludeMonth,
		IncludeDay:     req.IncludeDay,
		SequenceLength: req.SequenceLength,
		SequenceStart:  req.SequenceStart,
		Separator:      req.Separator,
		IsActive:       req.IsActive,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, f)
	case errors.Is(err, formatDomain.ErrInvalidConfig):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "update failed"})
	}
}

// DELETE /api/v1/formats/:id
func (h *FormatHandler) DeleteFormat(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /api/v1/formats/:id/reset
func (h *FormatHandler) ResetSequence(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.gen.ResetSequence(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "reset failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "sequence reset"})
}

// POST /api/v1/formats/preview
func (h *FormatHandler) PreviewFormat(c echo.Context) error {
	var req previewFormatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	f := &formatDomain.CodeFormat{
		FormatPattern:   req.FormatPattern,
		Prefix:          req.Prefix,
		Suffix:          req.Suffix,
		IncludeYear:     req.IncludeYear,
		IncludeMonth:    req.IncludeMonth,
		IncludeDay:      req.IncludeDay,
		SequenceLength:  req.SequenceLength,
		SequenceStart:   req.SequenceStart,
		CurrentSequence: req.CurrentSequence,
		Separator:       req.Separator,
	}
	if f.SequenceStart == 0 {
		f.SequenceStart = formatDomain.DefaultSequenceStart
	}
	preview, err := h.gen.Preview(f, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"preview": preview})
}

func parseIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
