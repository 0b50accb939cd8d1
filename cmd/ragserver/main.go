package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/w-h-a/ragserver/chunker"
	"github.com/w-h-a/ragserver/credentials"
	"github.com/w-h-a/ragserver/internal/service/rag"
	"github.com/w-h-a/ragserver/knowledge"
	httpserver "github.com/w-h-a/ragserver/server/http"
	"github.com/w-h-a/ragserver/tools/n8n"
	"github.com/w-h-a/ragserver/tools/strapi"
)

var (
	cfg struct {
		// Server config
		Address  string `help:"Address for the server to listen on" default:":8080"`
		LogLevel string `help:"Log level" default:"info"`

		// Chunking config
		ChunkSize int `help:"Characters per chunk" default:"500"`
		Overlap   int `help:"Characters shared between adjacent chunks" default:"50"`

		// Retrieval config
		TopK int `help:"Number of chunks retrieved per query" default:"3"`

		// Model config
		EmbeddingModel string `help:"Model identifier for vector embeddings" default:"text-embedding-3-small"`
		OpenAIModel    string `help:"Model identifier for the OpenAI provider" default:"gpt-4"`
		ClaudeModel    string `help:"Model identifier for the Claude provider" default:"claude-3-opus-20240229"`
		GeminiModel    string `help:"Model identifier for the Gemini provider" default:"gemini-1.5-flash"`
	}
)

func main() {
	// Local development secrets; deployment sets real environment variables
	_ = godotenv.Load()

	_ = kong.Parse(&cfg)

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	log := logger.WithField("service", "ragserver")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create the knowledge base and pipeline
	base := knowledge.New()

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.Overlap),
	)

	svc := rag.New(base, splitter, cfg.TopK, log)

	// Create the outbound collaborators
	models := httpserver.Models{
		Embedding: cfg.EmbeddingModel,
		OpenAI:    cfg.OpenAIModel,
		Claude:    cfg.ClaudeModel,
		Gemini:    cfg.GeminiModel,
	}

	handlers := httpserver.NewHandlers(
		svc,
		credentials.NewResolver(),
		n8n.NewForwarder(),
		strapi.NewForwarder(),
		httpserver.DefaultEmbedderFactory(models),
		httpserver.DefaultGeneratorFactory(models),
		log,
	)

	// Serve
	server := httpserver.NewServer(
		handlers.Router(),
		httpserver.WithAddress(cfg.Address),
		httpserver.WithLogger(log),
	)

	if err := server.Run(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
