package entity

import (
	"testing"
)

func TestFormatChunkID(t *testing.T) {
	tests := []struct {
		name        string
		sourcePath  string
		positionKey int
		ordinal     int
		want        string
	}{
		{
			name:        "paginated source",
			sourcePath:  "data/report.pdf",
			positionKey: 3,
			ordinal:     1,
			want:        "data/report.pdf:3:1",
		},
		{
			name:        "offset position key",
			sourcePath:  "notes.txt",
			positionKey: 1600,
			ordinal:     0,
			want:        "notes.txt:1600:0",
		},
		{
			name:        "windows style path",
			sourcePath:  `data\docs\manual.pdf`,
			positionKey: 0,
			ordinal:     4,
			want:        `data\docs\manual.pdf:0:4`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatChunkID(tt.sourcePath, tt.positionKey, tt.ordinal)
			if got != tt.want {
				t.Errorf("FormatChunkID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChunkSourcePath(t *testing.T) {
	tests := []struct {
		name    string
		chunkID string
		want    string
	}{
		{
			name:    "simple path",
			chunkID: "data/report.pdf:3:1",
			want:    "data/report.pdf",
		},
		{
			name:    "path containing colon keeps its prefix",
			chunkID: "C:/data/report.pdf:3:0",
			want:    "C:/data/report.pdf",
		},
		{
			name:    "missing ordinal segment",
			chunkID: "data/report.pdf:3",
			want:    "",
		},
		{
			name:    "non numeric trailing segments",
			chunkID: "data/report.pdf:a:b",
			want:    "",
		},
		{
			name:    "empty",
			chunkID: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkSourcePath(tt.chunkID)
			if got != tt.want {
				t.Errorf("ChunkSourcePath(%q) = %q, want %q", tt.chunkID, got, tt.want)
			}
		})
	}
}

func TestChunkIDRoundTrip(t *testing.T) {
	id := FormatChunkID("data/guide.pdf", 12, 2)
	if got := ChunkSourcePath(id); got != "data/guide.pdf" {
		t.Errorf("round trip = %q, want %q", got, "data/guide.pdf")
	}
}
