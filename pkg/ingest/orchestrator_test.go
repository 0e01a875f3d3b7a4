package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/loader"
)

// fakeLoader maps paths to canned documents or failures.
type fakeLoader struct {
	docs   map[string]*entity.SourceDocument
	broken map[string]bool
	loaded []string
}

func (f *fakeLoader) Load(ctx context.Context, path string) (*entity.SourceDocument, error) {
	if f.broken[path] {
		return nil, &loader.LoadError{Path: path, Err: os.ErrInvalid}
	}
	f.loaded = append(f.loaded, path)
	if doc, ok := f.docs[path]; ok {
		return doc, nil
	}
	return &entity.SourceDocument{Path: path, Text: "content of " + path}, nil
}

func writeTempPDFs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestOrchestrator(t *testing.T, glob string, ldr loader.DocumentLoader, store *fakeStore) *Orchestrator {
	t.Helper()
	splitter, err := NewSplitter(SplitterConfig{ChunkSize: 100, ChunkOverlap: 10})
	if err != nil {
		t.Fatal(err)
	}
	return NewOrchestrator(glob, ldr, splitter, store, logger.Nop())
}

func TestOrchestratorRunIndexesNewDocuments(t *testing.T) {
	dir := writeTempPDFs(t, "a.pdf", "b.pdf")
	store := newFakeStore()
	ldr := &fakeLoader{}

	o := newTestOrchestrator(t, filepath.Join(dir, "*.pdf"), ldr, store)

	var events []Event
	report, err := o.Run(context.Background(), func(ev Event) { events = append(events, ev) })
	if err != nil {
		t.Fatal(err)
	}

	if report.Candidates != 2 || report.Loaded != 2 || report.Skipped != 0 {
		t.Errorf("report = %+v, want 2 candidates, 2 loaded, 0 skipped", report)
	}
	if report.Added != 2 {
		t.Errorf("added = %d, want 2 (one chunk per short doc)", report.Added)
	}

	// Progress events precede indexing, completion comes last.
	if len(events) < 4 {
		t.Fatalf("events = %d, want at least 4", len(events))
	}
	if _, ok := events[0].(LoadProgress); !ok {
		t.Errorf("first event = %T, want LoadProgress", events[0])
	}
	if _, ok := events[len(events)-2].(IndexingStarted); !ok {
		t.Errorf("second to last event = %T, want IndexingStarted", events[len(events)-2])
	}
	completed, ok := events[len(events)-1].(Completed)
	if !ok {
		t.Fatalf("last event = %T, want Completed", events[len(events)-1])
	}
	if completed.Added != 2 {
		t.Errorf("Completed.Added = %d, want 2", completed.Added)
	}
}

func TestOrchestratorRunIsIdempotent(t *testing.T) {
	dir := writeTempPDFs(t, "a.pdf")
	store := newFakeStore()
	ldr := &fakeLoader{}

	o := newTestOrchestrator(t, filepath.Join(dir, "*.pdf"), ldr, store)

	if _, err := o.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	report, err := o.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Added != 0 {
		t.Errorf("second run added = %d, want 0", report.Added)
	}
	// Indexed files are filtered before loading, not after.
	if len(ldr.loaded) != 1 {
		t.Errorf("loads = %d, want 1 (second run must not reload)", len(ldr.loaded))
	}
}

func TestOrchestratorRunSkipsUnreadableDocuments(t *testing.T) {
	dir := writeTempPDFs(t, "good.pdf", "corrupt.pdf")
	store := newFakeStore()
	ldr := &fakeLoader{broken: map[string]bool{filepath.Join(dir, "corrupt.pdf"): true}}

	o := newTestOrchestrator(t, filepath.Join(dir, "*.pdf"), ldr, store)

	report, err := o.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", report.Skipped)
	}
	if report.Loaded != 1 {
		t.Errorf("loaded = %d, want 1", report.Loaded)
	}

	for id := range store.chunks {
		if strings.Contains(id, "corrupt.pdf") {
			t.Errorf("corrupt document was indexed: %s", id)
		}
	}
}

func TestOrchestratorRunHonorsContextCancellation(t *testing.T) {
	dir := writeTempPDFs(t, "a.pdf")
	store := newFakeStore()

	o := newTestOrchestrator(t, filepath.Join(dir, "*.pdf"), &fakeLoader{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Run(ctx, nil)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if len(store.chunks) != 0 {
		t.Errorf("store has %d chunks after cancelled run, want 0", len(store.chunks))
	}
}

func TestOrchestratorReset(t *testing.T) {
	store := newFakeStore()
	store.chunks["a.pdf:1:0"] = entity.Chunk{ChunkID: "a.pdf:1:0"}

	o := newTestOrchestrator(t, "*.pdf", &fakeLoader{}, store)

	if err := o.Reset(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.resetCalls != 1 {
		t.Errorf("reset calls = %d, want 1", store.resetCalls)
	}
	if len(store.chunks) != 0 {
		t.Errorf("store has %d chunks after reset, want 0", len(store.chunks))
	}
}
