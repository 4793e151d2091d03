package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kfreiman/pagesmith/internal/mcp"
)

// mcpServerCmd represents the mcp-server command
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Start an MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger, err := loadLogger()
		if err != nil {
			return err
		}

		cfg, err := mcp.LoadConfig()
		if err != nil {
			logger.ErrorContext(ctx, "failed to load MCP config",
				"error", err,
			)
			return fmt.Errorf("load MCP config: %w", err)
		}
		if cfg.LogDebug {
			logger = createLogger(cmdConfig{Format: os.Getenv("LOG_FORMAT"), Level: "debug"})
		}

		logger.InfoContext(ctx, "mcp server starting",
			"port", cfg.Port,
			"storage_path", cfg.StoragePath,
			"storage_ttl", cfg.StorageTTL,
			"cleanup_interval", cfg.CleanupInterval,
		)

		srv, err := mcp.NewServer(cfg, logger)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create MCP server",
				"error", err,
			)
			return err
		}
		defer func() {
			if err := srv.Close(); err != nil {
				logger.WarnContext(ctx, "failed to release MCP server resources", "error", err)
			}
		}()

		if err := srv.ListenAndServe(ctx); err != nil {
			logger.ErrorContext(ctx, "MCP server stopped with error",
				"error", err,
			)
			return err
		}

		logger.InfoContext(ctx, "mcp server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpServerCmd)
}
