package ingest

import (
	"errors"
	"fmt"

	"docchat-be/internal/entity"
)

// ErrInvalidConfig reports unusable chunking parameters. It is fatal at
// startup: nothing downstream can produce stable identifiers from a
// misconfigured splitter.
var ErrInvalidConfig = errors.New("invalid chunking configuration")

const (
	DefaultChunkSize    = 1800
	DefaultChunkOverlap = 200
)

// SplitterConfig controls window sizing. Values are taken as given;
// use DefaultConfig for the stock parameters.
type SplitterConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

func DefaultConfig() SplitterConfig {
	return SplitterConfig{ChunkSize: DefaultChunkSize, ChunkOverlap: DefaultChunkOverlap}
}

// Splitter cuts document text into overlapping fixed-size windows,
// preserving document order then intra-document order.
type Splitter struct {
	size    int
	overlap int
}

func NewSplitter(cfg SplitterConfig) (*Splitter, error) {
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrInvalidConfig, cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("%w: overlap %d with chunk size %d", ErrInvalidConfig, cfg.ChunkOverlap, cfg.ChunkSize)
	}
	return &Splitter{size: cfg.ChunkSize, overlap: cfg.ChunkOverlap}, nil
}

// Split produces chunks for every document, in input order. Paginated
// documents are windowed page by page and every chunk of a page carries
// the page number as its position key; unpaginated documents carry the
// rune offset of each window's start instead. Chunk identifiers are not
// assigned here, see AssignChunkIDs.
func (s *Splitter) Split(docs []*entity.SourceDocument) []entity.Chunk {
	var chunks []entity.Chunk
	for _, doc := range docs {
		if doc.Paginated() {
			for _, page := range doc.Pages {
				for _, w := range s.windows(page.Text) {
					chunks = append(chunks, entity.Chunk{
						SourcePath:  doc.Path,
						PositionKey: page.Number,
						Content:     w.content,
					})
				}
			}
			continue
		}
		for _, w := range s.windows(doc.Text) {
			chunks = append(chunks, entity.Chunk{
				SourcePath:  doc.Path,
				PositionKey: w.start,
				Content:     w.content,
			})
		}
	}
	return chunks
}

type window struct {
	start   int
	content string
}

// windows slices text into runs of up to s.size runes; each window after
// the first begins s.overlap runes before the previous window's end, so
// consecutive windows share a contiguous overlap region. Text shorter
// than one window yields exactly one window covering it all.
func (s *Splitter) windows(text string) []window {
	runes := []rune(text)
	total := len(runes)
	if total <= s.size {
		return []window{{start: 0, content: text}}
	}

	step := s.size - s.overlap
	var out []window
	for i := 0; i < total; i += step {
		end := i + s.size
		if end > total {
			end = total
		}
		out = append(out, window{start: i, content: string(runes[i:end])})
		if end == total {
			break
		}
	}
	return out
}
