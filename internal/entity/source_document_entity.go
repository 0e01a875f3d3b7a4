package entity

// SourceDocument is a unit of ingestible content produced by a document
// loader. It is immutable once loaded.
type SourceDocument struct {
	// Path uniquely identifies the source file.
	Path string

	// Text is the full extracted text. Used when the source has no
	// native pagination.
	Text string

	// Pages holds the per-page text for paginated sources (e.g. PDFs).
	// Empty for unpaginated sources.
	Pages []DocumentPage
}

// DocumentPage is one logical division of a source document.
type DocumentPage struct {
	Number int
	Text   string
}

// Paginated reports whether the document carries native page boundaries.
func (d *SourceDocument) Paginated() bool {
	return len(d.Pages) > 0
}
