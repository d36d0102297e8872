package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	formatDomain "fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/testutil/memuow"
	"fleetcodes/internal/usecase/codegen"
	"fleetcodes/internal/usecase/format"
)

func newFormatHandler(store *memuow.Store) *FormatHandler {
	return NewFormatHandler(
		format.NewUsecase(store.FormatRepo(), store),
		codegen.NewUsecase(store.CodeRepo(), store),
	)
}

func TestListFormats_ProvisionsDefaults(t *testing.T) {
	h := newFormatHandler(memuow.New())
	e := newEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/formats", nil)
	rec := httptest.NewRecorder()
	if err := h.ListFormats(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Items []formatDomain.CodeFormat `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != len(formatDomain.DefaultTypes()) {
		t.Fatalf("items = %d, want %d", len(out.Items), len(formatDomain.DefaultTypes()))
	}
}

func TestCreateFormat_StatusMapping(t *testing.T) {
	h := newFormatHandler(memuow.New())
	e := newEcho()

	c, rec := postJSON(e, "/api/v1/formats", `{"entity_type":"vehicle","prefix":"VH","include_year":true}`)
	if err := h.CreateFormat(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// same scope and type again
	c2, rec2 := postJSON(e, "/api/v1/formats", `{"entity_type":"vehicle","prefix":"XX"}`)
	if err := h.CreateFormat(c2); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec2.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec2.Code)
	}

	// template with an unknown placeholder passes tag validation but fails compile
	c3, rec3 := postJSON(e, "/api/v1/formats", `{"entity_type":"driver","format_pattern":"{WEEK}"}`)
	if err := h.CreateFormat(c3); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec3.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec3.Code)
	}

	// tag-level rejection
	c4, rec4 := postJSON(e, "/api/v1/formats", `{"entity_type":"driver","sequence_length":99}`)
	if err := h.CreateFormat(c4); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec4.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec4.Code)
	}
}

func TestUpdateFormat(t *testing.T) {
	store := memuow.New()
	fid := store.AddFormat(&formatDomain.CodeFormat{
		EntityType: "vehicle", Prefix: "VH", SequenceLength: 4,
		SequenceStart: 1, Separator: "-", IsActive: true,
	})
	h := newFormatHandler(store)
	e := newEcho()

	c, rec := postJSON(e, "/", `{"prefix":"CAR"}`)
	c.SetPath("/api/v1/formats/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.UpdateFormat(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	f, _ := store.Format(fid)
	if f.Prefix != "CAR" {
		t.Fatalf("prefix = %q", f.Prefix)
	}

	// unknown id
	c2, rec2 := postJSON(e, "/", `{"prefix":"X"}`)
	c2.SetPath("/api/v1/formats/:id")
	c2.SetParamNames("id")
	c2.SetParamValues("404")
	if err := h.UpdateFormat(c2); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec2.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec2.Code)
	}

	// non-numeric id
	c3, rec3 := postJSON(e, "/", `{}`)
	c3.SetPath("/api/v1/formats/:id")
	c3.SetParamNames("id")
	c3.SetParamValues("abc")
	if err := h.UpdateFormat(c3); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec3.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec3.Code)
	}
}

func TestResetSequenceEndpoint(t *testing.T) {
	store := memuow.New()
	fid := store.AddFormat(&formatDomain.CodeFormat{
		EntityType: "vehicle", Prefix: "VH", SequenceLength: 4,
		SequenceStart: 1, CurrentSequence: 40, Separator: "-", IsActive: true,
	})
	h := newFormatHandler(store)
	e := newEcho()

	c, rec := postJSON(e, "/", `{}`)
	c.SetPath("/api/v1/formats/:id/reset")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.ResetSequence(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	f, _ := store.Format(fid)
	if f.CurrentSequence != 0 {
		t.Fatalf("CurrentSequence = %d, want 0", f.CurrentSequence)
	}

	c2, rec2 := postJSON(e, "/", `{}`)
	c2.SetPath("/api/v1/formats/:id/reset")
	c2.SetParamNames("id")
	c2.SetParamValues("99")
	if err := h.ResetSequence(c2); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec2.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec2.Code)
	}
}

func TestPreviewFormat(t *testing.T) {
	h := newFormatHandler(memuow.New())
	e := newEcho()

	body := `{"prefix":"VH","include_year":true,"include_month":true,"sequence_length":4,"separator":"-","current_sequence":6}`
	c, rec := postJSON(e, "/api/v1/formats/preview", body)
	if err := h.PreviewFormat(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out["preview"] == "" {
		t.Fatalf("empty preview: %s", rec.Body.String())
	}
	if got := out["preview"][len(out["preview"])-5:]; got != "-0007" {
		t.Fatalf("preview = %q, want ...-0007", out["preview"])
	}

	// bad template surfaces as 400
	c2, rec2 := postJSON(e, "/api/v1/formats/preview", `{"format_pattern":"{NOPE}"}`)
	if err := h.PreviewFormat(c2); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec2.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec2.Code)
	}
}
