package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/redaction"
	"github.com/kfreiman/pagesmith/internal/storage"
	"github.com/kfreiman/pagesmith/internal/workflow"
)

const (
	serverName    = "PagesmithServer"
	serverVersion = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

// Server encapsulates the MCP server with all its dependencies
type Server struct {
	mcpServer      *mcp.Server
	storageManager *storage.StorageManager
	processor      *workflow.Processor
	renderer       workflow.PageRenderer
	logger         *slog.Logger
	config         Config
	ttl            time.Duration
	interval       time.Duration
}

// NewServer creates a new MCP server with the given configuration
func NewServer(cfg Config, logger *slog.Logger) (*Server, error) {
	return newServer(cfg, logger, storage.NewOSFileSystem(), document.NewPDFiumRenderer(logger))
}

func newServer(cfg Config, logger *slog.Logger, fs storage.FileSystem, renderer workflow.PageRenderer) (*Server, error) {
	ttl, interval, err := cfg.Durations()
	if err != nil {
		logger.ErrorContext(context.Background(), "failed to parse storage durations",
			"error", err,
			"ttl", cfg.StorageTTL,
			"cleanup_interval", cfg.CleanupInterval,
		)
		return nil, err
	}

	storageManager, err := storage.NewStorageManager(storage.StorageConfig{
		BasePath:   cfg.StoragePath,
		DefaultTTL: ttl,
		Logger:     logger,
		FileSystem: fs,
	})
	if err != nil {
		logger.ErrorContext(context.Background(), "failed to initialize storage manager",
			"error", err,
		)
		return nil, fmt.Errorf("storage init: %w", err)
	}

	backendOpts := []document.Option{document.WithLogger(logger)}
	if cfg.StrictValidation {
		backendOpts = append(backendOpts, document.WithStrictValidation())
	}

	processorConfig := workflow.ProcessorConfig{
		Backend:     document.NewPDFBackend(backendOpts...),
		Sink:        storageManager,
		FileSystem:  fs,
		Logger:      logger,
		MaxInputMB:  cfg.MaxUploadMB,
		Concurrency: cfg.Concurrency,
		Renderer:    renderer,
	}
	if cfg.RedactPreview {
		processorConfig.Scrubber = redaction.NewScrubber()
	}
	processor := workflow.NewProcessorWithConfig(processorConfig)

	s := &Server{
		storageManager: storageManager,
		processor:      processor,
		renderer:       renderer,
		logger:         logger,
		config:         cfg,
		ttl:            ttl,
		interval:       interval,
	}

	impl := &mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}

	s.mcpServer = mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: ServerInstructions,
	})

	s.registerHandlers()

	return s, nil
}

// registerHandlers registers all resources and tools on the MCP server
func (s *Server) registerHandlers() {
	s.registerResources()
	s.registerTools()
}

// registerResources registers all resource handlers
func (s *Server) registerResources() {
	storageHandler := NewStorageResourceHandler(s.storageManager).WithLogger(s.logger)

	s.mcpServer.AddResource(ResourceDefinitions[0], storageHandler.ReadStats)

	for _, template := range ResourceTemplateDefinitions {
		s.mcpServer.AddResourceTemplate(template, storageHandler.ReadResource)
	}
}

// registerTools registers all tool handlers
func (s *Server) registerTools() {
	splitTool := NewSplitPDFTool(s.processor).WithLogger(s.logger)
	s.mcpServer.AddTool(ToolDefinitions["split_pdf"], splitTool.Call)

	mergeTool := NewMergePDFsTool(s.processor).WithLogger(s.logger)
	s.mcpServer.AddTool(ToolDefinitions["merge_pdfs"], mergeTool.Call)

	compressTool := NewCompressPDFTool(s.processor).WithLogger(s.logger)
	s.mcpServer.AddTool(ToolDefinitions["compress_pdf"], compressTool.Call)

	infoTool := NewPDFInfoTool(s.processor)
	s.mcpServer.AddTool(ToolDefinitions["pdf_info"], infoTool.Call)

	listTool := NewListArtifactsTool(s.storageManager)
	s.mcpServer.AddTool(ToolDefinitions["list_artifacts"], listTool.Call)

	cleanupTool := NewCleanupStorageTool(s.storageManager).WithLogger(s.logger)
	s.mcpServer.AddTool(ToolDefinitions["cleanup_storage"], cleanupTool.Call)

	renderTool := NewPDFToImagesTool(s.processor).WithLogger(s.logger)
	s.mcpServer.AddTool(ToolDefinitions["pdf_to_images"], renderTool.Call)

	importTool := NewImagesToPDFTool(s.processor).WithLogger(s.logger)
	s.mcpServer.AddTool(ToolDefinitions["images_to_pdf"], importTool.Call)

	convertTool := NewConvertImageTool(s.processor).WithLogger(s.logger)
	s.mcpServer.AddTool(ToolDefinitions["convert_image"], convertTool.Call)
}

// Close releases the page renderer
func (s *Server) Close() error {
	if closer, ok := s.renderer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	httpHandler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return s.mcpServer
	}, &mcp.StreamableHTTPOptions{
		JSONResponse: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/mcp", httpHandler)
	mux.HandleFunc("/health/live", s.LivenessHandler)
	mux.HandleFunc("/health/ready", s.ReadinessHandler)
	mux.HandleFunc("/", s.indexHandler)
	return mux
}

// ListenAndServe serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	StartCleanupRoutine(ctx, s.storageManager, s.interval, s.ttl, s.logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.InfoContext(ctx, "starting MCP server",
		"port", s.config.Port,
		"endpoints", []string{"/mcp", "/health/live", "/health/ready", "/"},
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.InfoContext(context.Background(), "shutting down MCP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// indexHandler returns the server information page
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "Pagesmith MCP Server\n\n")
	fmt.Fprintf(w, "Endpoints:\n")
	fmt.Fprintf(w, "  POST /mcp          - Streamable HTTP transport\n")
	fmt.Fprintf(w, "  GET  /health/live  - Liveness probe\n")
	fmt.Fprintf(w, "  GET  /health/ready - Readiness probe\n")
	fmt.Fprintf(w, "  GET  /             - This help message\n\n")
	fmt.Fprintf(w, "Server: %s %s\n", serverName, serverVersion)
}
