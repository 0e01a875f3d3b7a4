package ingest

import (
	"errors"
	"strings"
	"testing"

	"docchat-be/internal/entity"
)

func TestNewSplitterValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SplitterConfig
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultConfig(), wantErr: false},
		{name: "explicit valid", cfg: SplitterConfig{ChunkSize: 100, ChunkOverlap: 20}, wantErr: false},
		{name: "zero overlap", cfg: SplitterConfig{ChunkSize: 100, ChunkOverlap: 0}, wantErr: false},
		{name: "zero size", cfg: SplitterConfig{ChunkSize: 0, ChunkOverlap: 10}, wantErr: true},
		{name: "zero value config", cfg: SplitterConfig{}, wantErr: true},
		{name: "negative size", cfg: SplitterConfig{ChunkSize: -1, ChunkOverlap: 10}, wantErr: true},
		{name: "negative overlap", cfg: SplitterConfig{ChunkSize: 100, ChunkOverlap: -5}, wantErr: true},
		{name: "overlap equals size", cfg: SplitterConfig{ChunkSize: 100, ChunkOverlap: 100}, wantErr: true},
		{name: "overlap exceeds size", cfg: SplitterConfig{ChunkSize: 100, ChunkOverlap: 150}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSplitter(tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("NewSplitter() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewSplitter() unexpected error: %v", err)
			}
		})
	}
}

func TestSplitShortDocumentSingleChunk(t *testing.T) {
	splitter, err := NewSplitter(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("a", 180)
	chunks := splitter.Split([]*entity.SourceDocument{{Path: "short.txt", Text: text}})

	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].Content != text {
		t.Errorf("chunk content does not cover the whole document")
	}
	if chunks[0].PositionKey != 0 {
		t.Errorf("PositionKey = %d, want 0", chunks[0].PositionKey)
	}
}

func TestSplitWindowsAndOverlap(t *testing.T) {
	splitter, err := NewSplitter(SplitterConfig{ChunkSize: 1800, ChunkOverlap: 200})
	if err != nil {
		t.Fatal(err)
	}

	// 4000 runes with step 1600 yields windows at 0, 1600 and 3200.
	runes := make([]rune, 4000)
	for i := range runes {
		runes[i] = rune('a' + i%26)
	}
	text := string(runes)

	chunks := splitter.Split([]*entity.SourceDocument{{Path: "long.txt", Text: text}})

	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}

	wantStarts := []int{0, 1600, 3200}
	wantLens := []int{1800, 1800, 800}
	for i, chunk := range chunks {
		if chunk.PositionKey != wantStarts[i] {
			t.Errorf("chunk %d PositionKey = %d, want %d", i, chunk.PositionKey, wantStarts[i])
		}
		if len([]rune(chunk.Content)) != wantLens[i] {
			t.Errorf("chunk %d length = %d, want %d", i, len([]rune(chunk.Content)), wantLens[i])
		}
	}

	// The last 200 runes of each window reappear at the start of the next.
	for i := 0; i < len(chunks)-1; i++ {
		prev := []rune(chunks[i].Content)
		next := []rune(chunks[i+1].Content)
		tail := string(prev[len(prev)-200:])
		head := string(next[:200])
		if tail != head {
			t.Errorf("windows %d and %d do not share a 200-rune overlap", i, i+1)
		}
	}
}

func TestSplitPaginatedUsesPageNumbers(t *testing.T) {
	splitter, err := NewSplitter(SplitterConfig{ChunkSize: 100, ChunkOverlap: 10})
	if err != nil {
		t.Fatal(err)
	}

	doc := &entity.SourceDocument{
		Path: "manual.pdf",
		Pages: []entity.DocumentPage{
			{Number: 1, Text: strings.Repeat("x", 50)},
			{Number: 2, Text: strings.Repeat("y", 250)},
		},
	}

	chunks := splitter.Split([]*entity.SourceDocument{doc})

	// Page 1 fits one window; page 2 needs three (step 90).
	if len(chunks) != 4 {
		t.Fatalf("chunks = %d, want 4", len(chunks))
	}
	wantPages := []int{1, 2, 2, 2}
	for i, chunk := range chunks {
		if chunk.PositionKey != wantPages[i] {
			t.Errorf("chunk %d PositionKey = %d, want page %d", i, chunk.PositionKey, wantPages[i])
		}
		if chunk.SourcePath != "manual.pdf" {
			t.Errorf("chunk %d SourcePath = %q", i, chunk.SourcePath)
		}
	}
}

func TestSplitPreservesDocumentOrder(t *testing.T) {
	splitter, err := NewSplitter(SplitterConfig{ChunkSize: 100, ChunkOverlap: 10})
	if err != nil {
		t.Fatal(err)
	}

	docs := []*entity.SourceDocument{
		{Path: "b.txt", Text: "second doc"},
		{Path: "a.txt", Text: "first in input order wins"},
	}

	chunks := splitter.Split(docs)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if chunks[0].SourcePath != "b.txt" || chunks[1].SourcePath != "a.txt" {
		t.Errorf("chunks out of input order: %q then %q", chunks[0].SourcePath, chunks[1].SourcePath)
	}
}
