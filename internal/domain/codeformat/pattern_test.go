package codeformat

import (
	"errors"
	"testing"
	"time"
)

var issuedAt = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func mustCompile(t *testing.T, f *CodeFormat) Pattern {
	t.Helper()
	p, err := f.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return p
}

func TestCompileFromFlags_PrefixYearMonth(t *testing.T) {
	f := &CodeFormat{
		Prefix:         "VH",
		IncludeYear:    true,
		IncludeMonth:   true,
		SequenceLength: 4,
		Separator:      "-",
	}
	got := mustCompile(t, f).Render(1, issuedAt)
	if got != "VH-2024-03-0001" {
		t.Fatalf("code = %q, want VH-2024-03-0001", got)
	}
}

func TestCompileFromFlags_FullDateAndSuffix(t *testing.T) {
	f := &CodeFormat{
		Prefix:         "INV",
		Suffix:         "EU",
		IncludeYear:    true,
		IncludeMonth:   true,
		IncludeDay:     true,
		SequenceLength: 6,
		Separator:      "/",
	}
	got := mustCompile(t, f).Render(42, issuedAt)
	if got != "INV/2024/03/15/000042/EU" {
		t.Fatalf("code = %q", got)
	}
}

func TestCompileFromFlags_Defaults(t *testing.T) {
	// Zero SequenceLength and empty Separator fall back to the defaults.
	f := &CodeFormat{IncludeYear: true}
	got := mustCompile(t, f).Render(7, issuedAt)
	if got != "2024-0007" {
		t.Fatalf("code = %q, want 2024-0007", got)
	}
}

func TestCompileTemplate_CarriesOwnSeparators(t *testing.T) {
	f := &CodeFormat{
		FormatPattern:  "GF{YEAR}{MONTH}-{SEQUENCE}",
		SequenceLength: 4,
		// Flags must be ignored when a template is present.
		Prefix:     "IGNORED",
		IncludeDay: true,
	}
	got := mustCompile(t, f).Render(13, issuedAt)
	if got != "GF202403-0013" {
		t.Fatalf("code = %q, want GF202403-0013", got)
	}
}

func TestCompileTemplate_UnknownPlaceholder(t *testing.T) {
	f := &CodeFormat{FormatPattern: "X-{WEEK}-{SEQUENCE}"}
	if _, err := f.Compile(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestCompileTemplate_Unterminated(t *testing.T) {
	f := &CodeFormat{FormatPattern: "X-{SEQUENCE"}
	if _, err := f.Compile(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestRender_SequenceWiderThanPad(t *testing.T) {
	f := &CodeFormat{SequenceLength: 2}
	got := mustCompile(t, f).Render(123, issuedAt)
	if got != "123" {
		t.Fatalf("code = %q, want 123 (no truncation past pad width)", got)
	}
}

func TestNextSequence_FloorsAtStart(t *testing.T) {
	f := &CodeFormat{SequenceStart: 100, CurrentSequence: 0}
	if got := f.NextSequence(); got != 100 {
		t.Fatalf("NextSequence = %d, want 100", got)
	}
	f.CurrentSequence = 250
	if got := f.NextSequence(); got != 251 {
		t.Fatalf("NextSequence = %d, want 251", got)
	}
}

func TestNewDefault_CatalogCoverage(t *testing.T) {
	for _, typ := range DefaultTypes() {
		f := NewDefault(nil, typ)
		if f.Prefix == "" {
			t.Fatalf("no default prefix for %q", typ)
		}
		if !f.IsActive || f.SequenceLength != DefaultSequenceLength {
			t.Fatalf("unexpected defaults for %q: %+v", typ, f)
		}
	}
}
