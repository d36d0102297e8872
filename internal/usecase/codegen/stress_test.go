package codegen

import (
	"context"
	"sync"
	"testing"

	formatDomain "fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/testutil/memuow"
)

// One format row, many goroutines, each issuing for its own entity. Every code
// must be distinct and the counter must end exactly at the number of
// successful issuances.
func TestGenerate_ConcurrentIssuanceIsGapFreeAndUnique(t *testing.T) {
	const workers = 100

	store := memuow.New()
	fid := store.AddFormat(&formatDomain.CodeFormat{
		EntityType:     formatDomain.TypeVehicle,
		Prefix:         "VH",
		IncludeYear:    true,
		IncludeMonth:   true,
		SequenceLength: 6,
		SequenceStart:  1,
		Separator:      "-",
		IsActive:       true,
	})
	uc := newUsecase(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	codes := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dto, err := uc.Generate(ctx, GenerateInput{
				EntityType: formatDomain.TypeVehicle,
				EntityID:   uint64(i + 1),
				Required:   true,
			})
			if err != nil {
				errs[i] = err
				return
			}
			codes[i] = dto.Code
		}(i)
	}
	wg.Wait()

	seen := make(map[string]int)
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if prev, dup := seen[codes[i]]; dup {
			t.Fatalf("workers %d and %d got the same code %q", prev, i, codes[i])
		}
		seen[codes[i]] = i
	}

	f, _ := store.Format(fid)
	if f.CurrentSequence != workers {
		t.Fatalf("CurrentSequence = %d, want %d", f.CurrentSequence, workers)
	}
	if n := len(store.Codes()); n != workers {
		t.Fatalf("issued rows = %d, want %d", n, workers)
	}
}

// Concurrent calls for the same entity must agree on one code and advance the
// counter once.
func TestGenerate_ConcurrentSameEntityIssuesOnce(t *testing.T) {
	const callers = 32

	store := memuow.New()
	fid := store.AddFormat(&formatDomain.CodeFormat{
		EntityType:     formatDomain.TypeDriver,
		Prefix:         "DR",
		SequenceLength: 4,
		SequenceStart:  1,
		Separator:      "-",
		IsActive:       true,
	})
	uc := newUsecase(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	codes := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dto, err := uc.Generate(ctx, GenerateInput{
				EntityType: formatDomain.TypeDriver,
				EntityID:   77,
				Required:   true,
			})
			if err != nil {
				errs[i] = err
				return
			}
			codes[i] = dto.Code
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if codes[i] != codes[0] {
			t.Fatalf("caller %d got %q, caller 0 got %q", i, codes[i], codes[0])
		}
	}
	if n := len(store.Codes()); n != 1 {
		t.Fatalf("issued rows = %d, want 1", n)
	}
	f, _ := store.Format(fid)
	if f.CurrentSequence != 1 {
		t.Fatalf("CurrentSequence = %d, want 1", f.CurrentSequence)
	}
}
