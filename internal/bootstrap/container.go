package bootstrap

import (
	"context"
	"log"

	"docchat-be/internal/config"
	"docchat-be/internal/controller"
	"docchat-be/internal/handler"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/implementation"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/internal/service"
	internalVS "docchat-be/internal/vectorstore"
	"docchat-be/internal/websocket"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/ingest"
	"docchat-be/pkg/llm/factory"
	"docchat-be/pkg/llm/ollama"
	"docchat-be/pkg/loader"
	"docchat-be/pkg/markdown"
	"docchat-be/pkg/rag"

	pktNats "docchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	IndexController controller.IIndexController
	ModelController controller.IModelController

	// Background Services (Exposed for main.go to run)
	IngestionService service.IIngestionService

	// WebSockets
	ChatWsHandler *handler.ChatWsHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Document Index
	chunkRepo := implementation.NewDocumentChunkRepository(db)
	vectorStore := internalVS.NewPgVectorStore(chunkRepo, embeddingProvider)

	splitter, err := ingest.NewSplitter(ingest.SplitterConfig{
		ChunkSize:    cfg.Ingest.ChunkSize,
		ChunkOverlap: cfg.Ingest.ChunkOverlap,
	})
	if err != nil {
		log.Fatalf("[FATAL] Invalid chunking configuration: %v", err)
	}

	orchestrator := ingest.NewOrchestrator(
		cfg.Ingest.DataGlob,
		loader.NewPDFLoader(),
		splitter,
		vectorStore,
		sysLogger,
	)

	// 6. Conversation Pipeline
	conversationStore := service.NewConversationStore(uowFactory)
	retriever := rag.NewRetriever(vectorStore, rag.DefaultTopK)
	promptBuilder := rag.NewPromptBuilder(conversationStore)
	pipeline := rag.NewPipeline(llmProvider, conversationStore, wsHub, markdown.NewRenderer(), sysLogger)

	chatService := service.NewChatService(
		uowFactory,
		conversationStore,
		retriever,
		promptBuilder,
		pipeline,
		natsPub,
		sysLogger,
	)

	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	ingestionService := service.NewIngestionService(
		publisherService,
		pubSub,
		cfg.App.IngestTopic,
		orchestrator,
		wsHub,
		natsPub,
		sysLogger,
	)

	var modelLister service.ModelLister = service.StaticModelLister{Models: []string{cfg.Ai.LLMModel}}
	if lister, ok := llmProvider.(*ollama.OllamaProvider); ok {
		modelLister = lister
	}
	modelCatalog := service.NewModelCatalogService(modelLister)

	// 7. Handlers & Controllers
	chatWsHandler := handler.NewChatWsHandler(chatService, ingestionService, wsHub, wsLogger)

	return &Container{
		ChatWsHandler: chatWsHandler,
		WebSocketHub:  wsHub,

		ChatController:  controller.NewChatController(chatService),
		IndexController: controller.NewIndexController(ingestionService, orchestrator),
		ModelController: controller.NewModelController(modelCatalog),

		IngestionService: ingestionService,
	}
}
