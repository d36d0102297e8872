package format

import (
	"context"
	"errors"
	"testing"

	formatDomain "fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/testutil/memuow"
)

func u64(v uint64) *uint64 { return &v }

func strp(s string) *string { return &s }
func intp(v int) *int       { return &v }
func boolp(v bool) *bool    { return &v }

func newUsecase(store *memuow.Store) *Usecase {
	return NewUsecase(store.FormatRepo(), store)
}

func TestList_ProvisionsDefaultCatalogOnce(t *testing.T) {
	store := memuow.New()
	uc := newUsecase(store)
	ctx := context.Background()

	rows, err := uc.List(ctx, u64(3))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := len(formatDomain.DefaultTypes())
	if len(rows) != want {
		t.Fatalf("provisioned %d formats, want %d", len(rows), want)
	}
	byType := make(map[string]formatDomain.CodeFormat, len(rows))
	for _, f := range rows {
		if f.TenantID == nil || *f.TenantID != 3 {
			t.Fatalf("row %q has wrong tenant scope %v", f.EntityType, f.TenantID)
		}
		if !f.IsActive {
			t.Fatalf("default %q not active", f.EntityType)
		}
		byType[f.EntityType] = f
	}
	if byType[formatDomain.TypeVehicle].Prefix != "VH" {
		t.Fatalf("vehicle default prefix = %q", byType[formatDomain.TypeVehicle].Prefix)
	}

	// Second call must not double-provision.
	again, err := uc.List(ctx, u64(3))
	if err != nil {
		t.Fatalf("second List: %v", err)
	}
	if len(again) != want {
		t.Fatalf("second List returned %d rows, want %d", len(again), want)
	}
}

func TestList_ScopesAreIndependent(t *testing.T) {
	store := memuow.New()
	uc := newUsecase(store)
	ctx := context.Background()

	if _, err := uc.List(ctx, u64(1)); err != nil {
		t.Fatalf("List tenant 1: %v", err)
	}
	global, err := uc.List(ctx, nil)
	if err != nil {
		t.Fatalf("List global: %v", err)
	}
	// The global scope provisions its own catalog, untouched by tenant 1's.
	if len(global) != len(formatDomain.DefaultTypes()) {
		t.Fatalf("global rows = %d", len(global))
	}
	for _, f := range global {
		if f.TenantID != nil {
			t.Fatalf("global row %q carries tenant %d", f.EntityType, *f.TenantID)
		}
	}
}

func TestCreate_FillsDefaultsAndRejectsDuplicates(t *testing.T) {
	store := memuow.New()
	uc := newUsecase(store)
	ctx := context.Background()

	f, err := uc.Create(ctx, CreateInput{
		EntityType: "vehicle",
		Prefix:     "VH",
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.SequenceLength != formatDomain.DefaultSequenceLength {
		t.Fatalf("SequenceLength = %d", f.SequenceLength)
	}
	if f.SequenceStart != formatDomain.DefaultSequenceStart {
		t.Fatalf("SequenceStart = %d", f.SequenceStart)
	}
	if f.Separator != formatDomain.DefaultSeparator {
		t.Fatalf("Separator = %q", f.Separator)
	}
	if f.ID == 0 {
		t.Fatal("Create did not assign an id")
	}

	if _, err := uc.Create(ctx, CreateInput{EntityType: "vehicle", Prefix: "XX", IsActive: true}); !errors.Is(err, ErrFormatExists) {
		t.Fatalf("duplicate err = %v, want ErrFormatExists", err)
	}
}

func TestCreate_RejectsBadConfig(t *testing.T) {
	uc := newUsecase(memuow.New())
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"bad type key", CreateInput{EntityType: "Vehicle!"}},
		{"sequence length too large", CreateInput{EntityType: "vehicle", SequenceLength: 13}},
		{"sequence start below one", CreateInput{EntityType: "vehicle", SequenceStart: -2}},
		{"separator too long", CreateInput{EntityType: "vehicle", Separator: "---------"}},
		{"prefix too long", CreateInput{EntityType: "vehicle", Prefix: "ABCDEFGHIJKLMNOPQ"}},
		{"unknown placeholder", CreateInput{EntityType: "vehicle", FormatPattern: "{WEEK}-{SEQUENCE}"}},
		{"unterminated placeholder", CreateInput{EntityType: "vehicle", FormatPattern: "{SEQUENCE"}},
	}
	for _, tc := range cases {
		if _, err := uc.Create(ctx, tc.in); !errors.Is(err, formatDomain.ErrInvalidConfig) {
			t.Fatalf("%s: err = %v, want ErrInvalidConfig", tc.name, err)
		}
	}
}

func TestUpdate_PartialEditKeepsCounter(t *testing.T) {
	store := memuow.New()
	uc := newUsecase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, CreateInput{EntityType: "vehicle", Prefix: "VH", IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	seeded, _ := store.Format(created.ID)
	seeded.CurrentSequence = 17
	if err := store.FormatRepo().Save(ctx, &seeded); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := uc.Update(ctx, created.ID, UpdateInput{
		Prefix:         strp("CAR"),
		SequenceLength: intp(6),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Prefix != "CAR" || out.SequenceLength != 6 {
		t.Fatalf("edit not applied: %+v", out)
	}
	if out.EntityType != "vehicle" || out.Separator != formatDomain.DefaultSeparator {
		t.Fatalf("untouched fields changed: %+v", out)
	}
	if out.CurrentSequence != 17 {
		t.Fatalf("CurrentSequence = %d, counter must survive edits", out.CurrentSequence)
	}
}

func TestUpdate_RejectsInvalidEdit(t *testing.T) {
	store := memuow.New()
	uc := newUsecase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, CreateInput{EntityType: "vehicle", Prefix: "VH", IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uc.Update(ctx, created.ID, UpdateInput{SequenceLength: intp(0)}); !errors.Is(err, formatDomain.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	// The rejected edit must not have been committed.
	after, _ := store.Format(created.ID)
	if after.SequenceLength != formatDomain.DefaultSequenceLength {
		t.Fatalf("SequenceLength = %d after failed update", after.SequenceLength)
	}
}

func TestUpdate_CanDeactivate(t *testing.T) {
	store := memuow.New()
	uc := newUsecase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, CreateInput{EntityType: "fuel_log", Prefix: "FUEL", IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	out, err := uc.Update(ctx, created.ID, UpdateInput{IsActive: boolp(false)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.IsActive {
		t.Fatal("format still active after deactivation")
	}
}

func TestDelete(t *testing.T) {
	store := memuow.New()
	uc := newUsecase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, CreateInput{EntityType: "quote", Prefix: "QT", IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := uc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := uc.Get(ctx, created.ID); err == nil {
		t.Fatal("Get succeeded after delete")
	}
	if err := uc.Delete(ctx, created.ID); err == nil {
		t.Fatal("second Delete succeeded")
	}
}
