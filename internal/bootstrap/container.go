package bootstrap

import (
	"log"

	"smart-librarian-be/internal/config"
	"smart-librarian-be/internal/controller"
	"smart-librarian-be/internal/pkg/logger"
	"smart-librarian-be/internal/repository/implementation"
	"smart-librarian-be/internal/service"
	"smart-librarian-be/pkg/catalog"
	"smart-librarian-be/pkg/embedding"
	openaillm "smart-librarian-be/pkg/llm/openai"
	"smart-librarian-be/pkg/media"
	"smart-librarian-be/pkg/media/transcript"
	"smart-librarian-be/pkg/profanity"
	"smart-librarian-be/pkg/recommend"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	openaiclient "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RecommendController     controller.IRecommendController
	TranscriptionController controller.ITranscriptionController

	// Background Services (exposed for main.go to run)
	IndexService    service.IIndexService
	ConsumerService service.IConsumerService

	// Core components, exposed so the CLI can drive the pipeline directly
	// without going through HTTP.
	Catalog     *catalog.Catalog
	Filter      *profanity.Filter
	Retrieval   service.IRetrievalService
	Loop        *recommend.Loop
	Synthesizer *media.Synthesizer
	Covers      *media.CoverGenerator
	Logger      logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	client := openaiclient.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey))

	// 2. Catalog
	books, err := catalog.Load(cfg.Catalog.DataPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load catalog: %v", err)
	}
	warnings, err := catalog.Validate(books, cfg.Catalog.Strict)
	if err != nil {
		log.Fatalf("[FATAL] Invalid catalog: %v", err)
	}
	for _, w := range warnings {
		sysLogger.Warn("Bootstrap", "Catalog warning", map[string]interface{}{"warning": w})
	}
	cat := catalog.New(books)
	log.Printf("[INFO] Catalog loaded: %d books", cat.Len())

	filter := profanity.NewFilter(cfg.Catalog.DataDir)

	// 3. Remote Providers
	embeddingProvider := embedding.NewOpenAIProvider(client, cfg.OpenAI.EmbedModel)
	chatProvider := openaillm.NewProvider(client, cfg.OpenAI.ChatModel)
	loop := recommend.NewLoop(chatProvider, cat)

	// 4. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 5. Media
	synthesizer := media.NewSynthesizer(client, cfg.OpenAI.TTSModel, cfg.Media.AudioDir)
	covers := media.NewCoverGenerator(client, cfg.OpenAI.ImageModel, cfg.Media.ImageDir)
	transcriber := media.NewTranscriber(client, cfg.OpenAI.STTModel)

	transcriptStore, err := transcript.NewFileStore(cfg.Media.TranscriptCachePath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open transcript cache: %v", err)
	}

	mediaLogger := logger.NewIsolatedLogger(cfg.App.MediaLogFilePath)

	// 6. Services
	bookEmbeddingRepo := implementation.NewBookEmbeddingRepository(db)

	publisherService := service.NewPublisherService(cfg.App.MediaTopic, pubSub)
	consumerService := service.NewConsumerService(
		cfg.App.MediaTopic,
		pubSub,
		synthesizer,
		covers,
		mediaLogger,
	)

	retrievalService := service.NewRetrievalService(bookEmbeddingRepo, embeddingProvider)
	indexService := service.NewIndexService(bookEmbeddingRepo, embeddingProvider, cat, sysLogger)

	recommendService := service.NewRecommendService(
		filter,
		retrievalService,
		loop,
		cat,
		publisherService,
		sysLogger,
		cfg.Catalog.TopK,
		cfg.OpenAI.TTSVoice,
	)

	transcriptionService := service.NewTranscriptionService(
		transcriber,
		transcriptStore,
		cfg.Media.AudioDir,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		RecommendController:     controller.NewRecommendController(recommendService),
		TranscriptionController: controller.NewTranscriptionController(transcriptionService),

		IndexService:    indexService,
		ConsumerService: consumerService,

		Catalog:     cat,
		Filter:      filter,
		Retrieval:   retrievalService,
		Loop:        loop,
		Synthesizer: synthesizer,
		Covers:      covers,
		Logger:      sysLogger,
	}
}
