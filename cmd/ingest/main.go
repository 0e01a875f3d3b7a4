package main

import (
	"context"
	"flag"
	"log"

	"docchat-be/internal/config"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/implementation"
	internalVS "docchat-be/internal/vectorstore"
	"docchat-be/pkg/database"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/ingest"
	"docchat-be/pkg/loader"

	"github.com/fatih/color"
)

func main() {
	reset := flag.Bool("reset", false, "clear the document index before syncing")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	}

	chunkRepo := implementation.NewDocumentChunkRepository(gormDB)
	store := internalVS.NewPgVectorStore(chunkRepo, embeddingProvider)

	splitter, err := ingest.NewSplitter(ingest.SplitterConfig{
		ChunkSize:    cfg.Ingest.ChunkSize,
		ChunkOverlap: cfg.Ingest.ChunkOverlap,
	})
	if err != nil {
		log.Fatalf("Invalid chunking configuration: %v", err)
	}

	orchestrator := ingest.NewOrchestrator(
		cfg.Ingest.DataGlob,
		loader.NewPDFLoader(),
		splitter,
		store,
		logger.NewIsolatedLogger("logs/ingest.log"),
	)

	ctx := context.Background()

	if *reset {
		color.Yellow("✨ Clearing the document index")
		if err := orchestrator.Reset(ctx); err != nil {
			color.Red("Failed to clear index: %v", err)
			return
		}
	}

	report, err := orchestrator.Run(ctx, func(ev ingest.Event) {
		switch e := ev.(type) {
		case ingest.LoadProgress:
			color.Cyan("📄 Loading document %d/%d", e.Current, e.Total)
		case ingest.IndexingStarted:
			color.Cyan("🔎 Indexing new chunks")
		case ingest.Completed:
			if e.Added > 0 {
				color.Green("👉 Added %d new chunks", e.Added)
			} else {
				color.Green("✅ Index already up to date")
			}
		}
	})
	if err != nil {
		color.Red("Sync failed: %v", err)
		return
	}

	color.Green("Done: %d candidates, %d loaded, %d skipped, %d chunks added",
		report.Candidates, report.Loaded, report.Skipped, report.Added)
}
