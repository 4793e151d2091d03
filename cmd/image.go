package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/imaging"
	"github.com/kfreiman/pagesmith/internal/workflow"
)

// imageFlags holds the flags of the image commands
type imageFlags struct {
	format     string
	quality    int
	width      int
	height     int
	keepAspect bool
	ranges     string
	dpi        int
}

var imgFlags = defaultImageFlags()

func defaultImageFlags() imageFlags {
	return imageFlags{
		format:     string(imaging.FormatJPEG),
		quality:    imaging.DefaultQuality,
		keepAspect: true,
		dpi:        document.DefaultDPI,
	}
}

// pdfToImagesCmd represents the pdf-to-images command
var pdfToImagesCmd = &cobra.Command{
	Use:   "pdf-to-images <file.pdf>",
	Short: "Render PDF pages to JPEG or PNG images",
	Example: `  pagesmith pdf-to-images slides.pdf --dpi 200 --quality 80
  pagesmith pdf-to-images slides.pdf --ranges "1, 4-5" --format png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithProcessor(cmd, func(p *workflow.Processor) (any, string, error) {
			result, err := p.PDFToImages(cmd.Context(), workflow.PDFToImagesRequest{
				Path:    args[0],
				Ranges:  imgFlags.ranges,
				Format:  imgFlags.format,
				Quality: imgFlags.quality,
				DPI:     imgFlags.dpi,
			})
			if err != nil {
				return nil, "", err
			}
			return result, resultSummary(result), nil
		})
	},
}

// imagesToPDFCmd represents the images-to-pdf command
var imagesToPDFCmd = &cobra.Command{
	Use:   "images-to-pdf <image>...",
	Short: "Build a PDF with one page per image",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithProcessor(cmd, func(p *workflow.Processor) (any, string, error) {
			result, err := p.ImagesToPDF(cmd.Context(), workflow.ImagesToPDFRequest{
				Paths:      args,
				OutputName: flags.outputName,
			})
			if err != nil {
				return nil, "", err
			}
			summary := fmt.Sprintf("%s\n%d pages", resultSummary(result), len(result.Outputs[0].Pages))
			return result, summary, nil
		})
	},
}

// convertImageCmd represents the convert-image command
var convertImageCmd = &cobra.Command{
	Use:   "convert-image <image>",
	Short: "Resize an image and save it as JPEG or PNG",
	Example: `  pagesmith convert-image photo.webp --width 800
  pagesmith convert-image scan.tiff --format png --width 600 --height 600 --keep-aspect=false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithProcessor(cmd, func(p *workflow.Processor) (any, string, error) {
			result, err := p.ConvertImage(cmd.Context(), workflow.ConvertImageRequest{
				Path:       args[0],
				Format:     imgFlags.format,
				Quality:    imgFlags.quality,
				Width:      imgFlags.width,
				Height:     imgFlags.height,
				KeepAspect: imgFlags.keepAspect,
			})
			if err != nil {
				return nil, "", err
			}
			out := result.Outputs[0]
			return result, fmt.Sprintf("%s\n%dx%d", resultSummary(result), out.Width, out.Height), nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{pdfToImagesCmd, imagesToPDFCmd, convertImageCmd} {
		c.Flags().BoolVar(&flags.asJSON, "json", false, "Print the result as JSON")
		c.Flags().StringVarP(&flags.outDir, "out", "o", ".", "Output directory")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{pdfToImagesCmd, convertImageCmd} {
		c.Flags().StringVarP(&imgFlags.format, "format", "f", string(imaging.FormatJPEG), "Output format: jpeg or png")
		c.Flags().IntVarP(&imgFlags.quality, "quality", "q", imaging.DefaultQuality, "JPEG quality, 1-100")
	}

	pdfToImagesCmd.Flags().BoolVar(&flags.strict, "strict", false, "Reject PDFs that only pass relaxed validation")
	pdfToImagesCmd.Flags().StringVarP(&imgFlags.ranges, "ranges", "r", "", `Page ranges to render, e.g. "1-3, 5" (default: all pages)`)
	pdfToImagesCmd.Flags().IntVar(&imgFlags.dpi, "dpi", document.DefaultDPI, "Render resolution")

	imagesToPDFCmd.Flags().StringVarP(&flags.outputName, "name", "n", "", "Name of the produced file")

	convertImageCmd.Flags().IntVar(&imgFlags.width, "width", 0, "Target width in pixels (default: source width)")
	convertImageCmd.Flags().IntVar(&imgFlags.height, "height", 0, "Target height in pixels (default: source height)")
	convertImageCmd.Flags().BoolVar(&imgFlags.keepAspect, "keep-aspect", true, "Fit inside width x height without distortion")
}
