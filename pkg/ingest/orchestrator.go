package ingest

import (
	"context"
	"errors"
	"fmt"

	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/loader"
	"docchat-be/pkg/vectorstore"

	"github.com/bmatcuk/doublestar/v4"
)

// Event is a typed ingestion progress notification.
type Event interface {
	ingestEvent()
}

// LoadProgress is emitted before each unindexed file is loaded.
type LoadProgress struct {
	Current int
	Total   int
}

// IndexingStarted is emitted once loading finishes, before the single
// batch sync against the vector store.
type IndexingStarted struct{}

// Completed carries the number of chunks the run added.
type Completed struct {
	Added int
}

func (LoadProgress) ingestEvent()    {}
func (IndexingStarted) ingestEvent() {}
func (Completed) ingestEvent()       {}

// EventSink receives progress events. A nil sink discards them.
type EventSink func(Event)

// Report summarizes one ingestion run.
type Report struct {
	Candidates int // files matched by the glob
	Loaded     int // files loaded this run
	Skipped    int // files skipped on load errors
	Added      int // chunks added to the index
}

// Orchestrator discovers unindexed source documents and drives them
// through loading, splitting, identity assignment and incremental
// indexing, reporting progress as it goes.
type Orchestrator struct {
	glob     string
	loader   loader.DocumentLoader
	splitter *Splitter
	indexer  *Indexer
	store    vectorstore.VectorStore
	logger   logger.ILogger
}

func NewOrchestrator(
	glob string,
	docLoader loader.DocumentLoader,
	splitter *Splitter,
	store vectorstore.VectorStore,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		glob:     glob,
		loader:   docLoader,
		splitter: splitter,
		indexer:  NewIndexer(store),
		store:    store,
		logger:   log,
	}
}

// Run ingests every candidate file whose source path has no chunks in
// the store yet. The loop checks ctx between files, so a caller may
// abandon the run before the final batch call; nothing is committed to
// the store until that call. A file that fails to load is skipped and
// counted, the rest of the run continues.
func (o *Orchestrator) Run(ctx context.Context, emit EventSink) (*Report, error) {
	if emit == nil {
		emit = func(Event) {}
	}

	unindexed, candidates, err := o.unindexedPaths(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Candidates: candidates}
	if len(unindexed) == 0 {
		emit(Completed{Added: 0})
		return report, nil
	}

	var docs []*entity.SourceDocument
	for i, path := range unindexed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		emit(LoadProgress{Current: i + 1, Total: len(unindexed)})

		doc, err := o.loader.Load(ctx, path)
		if err != nil {
			var loadErr *loader.LoadError
			if errors.As(err, &loadErr) {
				report.Skipped++
				o.logger.Warn("Ingest", "Skipping unreadable document", map[string]interface{}{
					"path":  path,
					"error": err.Error(),
				})
				continue
			}
			return nil, err
		}
		docs = append(docs, doc)
		report.Loaded++
	}

	chunks := AssignChunkIDs(o.splitter.Split(docs))

	emit(IndexingStarted{})
	added, err := o.indexer.Sync(ctx, chunks)
	if err != nil {
		return nil, err
	}
	report.Added = added

	o.logger.Info("Ingest", "Ingestion run completed", map[string]interface{}{
		"loaded":  report.Loaded,
		"skipped": report.Skipped,
		"added":   report.Added,
	})
	emit(Completed{Added: added})
	return report, nil
}

// Reset drops the persisted collection. Failures are logged and returned
// but are non-fatal to the rest of the system.
func (o *Orchestrator) Reset(ctx context.Context) error {
	if err := o.store.Reset(ctx); err != nil {
		o.logger.Error("Ingest", "Failed to reset chunk index", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("reset chunk index: %w", err)
	}
	o.logger.Info("Ingest", "Chunk index reset", nil)
	return nil
}

// unindexedPaths globs the candidate files and removes those whose
// source path already appears in a stored chunk identifier (the portion
// before the trailing position and ordinal segments).
func (o *Orchestrator) unindexedPaths(ctx context.Context) ([]string, int, error) {
	ids, err := o.store.ListIDs(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list indexed chunk ids: %w", err)
	}

	indexed := make(map[string]struct{}, len(ids))
	for id := range ids {
		if src := entity.ChunkSourcePath(id); src != "" {
			indexed[src] = struct{}{}
		}
	}

	candidates, err := doublestar.FilepathGlob(o.glob)
	if err != nil {
		return nil, 0, fmt.Errorf("glob %q: %w", o.glob, err)
	}

	var unindexed []string
	for _, path := range candidates {
		if _, ok := indexed[path]; !ok {
			unindexed = append(unindexed, path)
		}
	}
	return unindexed, len(candidates), nil
}
