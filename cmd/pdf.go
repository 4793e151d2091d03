package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/redaction"
	"github.com/kfreiman/pagesmith/internal/storage"
	"github.com/kfreiman/pagesmith/internal/workflow"
)

// pdfFlags holds the flags shared by the document commands
type pdfFlags struct {
	outDir     string
	outputName string
	strict     bool
	asJSON     bool
	redact     bool
}

var flags pdfFlags

// newProcessor builds a processor that writes its results into the output directory.
// The returned closer releases the page renderer.
func newProcessor(logger *slog.Logger) (*workflow.Processor, io.Closer, error) {
	fs := storage.NewOSFileSystem()
	sink, err := storage.NewDirectorySink(fs, flags.outDir)
	if err != nil {
		return nil, nil, err
	}

	var opts []document.Option
	opts = append(opts, document.WithLogger(logger))
	if flags.strict {
		opts = append(opts, document.WithStrictValidation())
	}

	renderer := document.NewPDFiumRenderer(logger)
	config := workflow.ProcessorConfig{
		Backend:    document.NewPDFBackend(opts...),
		Sink:       sink,
		FileSystem: fs,
		Logger:     logger,
		Renderer:   renderer,
	}
	if flags.redact {
		config.Scrubber = redaction.NewScrubber()
	}
	return workflow.NewProcessorWithConfig(config), renderer, nil
}

func printResult(w io.Writer, v any, summary string) error {
	if flags.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

func resultSummary(result *workflow.Result) string {
	summary := fmt.Sprintf("Wrote %s (%d bytes)", result.Artifact.URI, result.Artifact.Size)
	if result.Bundled() {
		summary += fmt.Sprintf(", %d files", len(result.Outputs))
	}
	for _, warning := range result.Warnings {
		summary += "\nskipped: " + warning
	}
	return summary
}

func runWithProcessor(cmd *cobra.Command, fn func(*workflow.Processor) (any, string, error)) error {
	logger, err := loadLogger()
	if err != nil {
		return err
	}
	processor, renderer, err := newProcessor(logger)
	if err != nil {
		return err
	}
	defer renderer.Close()

	v, summary, err := fn(processor)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), v, summary)
}

var splitMethod, splitRanges string

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split <file.pdf>",
	Short: "Extract page ranges or split a PDF into single pages",
	Example: `  pagesmith split report.pdf --ranges "1-3, 5"
  pagesmith split report.pdf --method each --out ./pages`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithProcessor(cmd, func(p *workflow.Processor) (any, string, error) {
			result, err := p.Split(cmd.Context(), workflow.SplitRequest{
				Path:   args[0],
				Method: workflow.SplitMethod(splitMethod),
				Ranges: splitRanges,
			})
			if err != nil {
				return nil, "", err
			}
			return result, resultSummary(result), nil
		})
	},
}

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <file.pdf> <file.pdf>...",
	Short: "Merge PDFs in the given order",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithProcessor(cmd, func(p *workflow.Processor) (any, string, error) {
			result, err := p.Merge(cmd.Context(), workflow.MergeRequest{
				Paths:      args,
				OutputName: flags.outputName,
			})
			if err != nil {
				return nil, "", err
			}
			return result, resultSummary(result), nil
		})
	},
}

// compressCmd represents the compress command
var compressCmd = &cobra.Command{
	Use:   "compress <file.pdf>...",
	Short: "Combine PDFs and optimize the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithProcessor(cmd, func(p *workflow.Processor) (any, string, error) {
			result, err := p.Compress(cmd.Context(), workflow.CompressRequest{
				Paths:      args,
				OutputName: flags.outputName,
			})
			if err != nil {
				return nil, "", err
			}
			stats := result.Compression
			summary := fmt.Sprintf("%s\n%d -> %d bytes (%.2f%% reduction)",
				resultSummary(result), stats.OriginalSize, stats.CompressedSize, stats.Reduction)
			return result, summary, nil
		})
	},
}

var previewChars int

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file.pdf>",
	Short: "Show page count and a text preview of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithProcessor(cmd, func(p *workflow.Processor) (any, string, error) {
			info, err := p.Info(cmd.Context(), args[0], previewChars)
			if err != nil {
				return nil, "", err
			}
			summary := fmt.Sprintf("%s: %d pages, %d bytes", info.Path, info.PageCount, info.Size)
			if info.Preview != "" {
				summary += "\n\n" + info.Preview
			}
			return info, summary, nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{splitCmd, mergeCmd, compressCmd, infoCmd} {
		c.Flags().BoolVar(&flags.asJSON, "json", false, "Print the result as JSON")
		c.Flags().BoolVar(&flags.strict, "strict", false, "Reject PDFs that only pass relaxed validation")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{splitCmd, mergeCmd, compressCmd} {
		c.Flags().StringVarP(&flags.outDir, "out", "o", ".", "Output directory")
	}
	for _, c := range []*cobra.Command{mergeCmd, compressCmd} {
		c.Flags().StringVarP(&flags.outputName, "name", "n", "", "Name of the produced file")
	}

	splitCmd.Flags().StringVarP(&splitMethod, "method", "m", string(workflow.SplitByRange), "Split method: range or each")
	splitCmd.Flags().StringVarP(&splitRanges, "ranges", "r", "", `Page ranges, e.g. "1-3, 5, 8-10"`)
	infoCmd.Flags().IntVar(&previewChars, "preview", 0, "Number of preview characters")
	infoCmd.Flags().BoolVar(&flags.redact, "redact", false, "Mask emails, phone and card numbers in the preview")
}
