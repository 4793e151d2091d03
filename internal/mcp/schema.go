package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

// ServerInstructions contains the MCP server instructions for clients
const ServerInstructions = `Pagesmith Server - PDF Page Tools

This server splits, merges, compresses and inspects PDF documents, renders
PDF pages to images and converts images, reading inputs from the server's
filesystem. Every produced file is stored and
returned as a URI that can be read back as a resource.

## Transport

This server uses streamable HTTP transport only. Connect via:
- POST /mcp  - Streamable HTTP transport

## Resources

- pdf://[id]: Download a produced PDF document
- zip://[id]: Download a produced ZIP archive
- jpg://[id]: Download a produced JPEG image
- png://[id]: Download a produced PNG image
- pagesmith://storage/stats: Artifact counts per kind

## Tools

### split_pdf
Extract pages from a PDF.
Parameters:
- path: Path to the source PDF
- method: "range" (default) to extract the listed pages into one document, or "each" for one document per page
- ranges: Page ranges for the "range" method, e.g. "1-3, 5, 8-10". Pages are one-based.

Invalid ranges are skipped and reported. Several outputs are bundled into one ZIP archive.

Example: {"path": "./report.pdf", "method": "range", "ranges": "1-3,5"}

### merge_pdfs
Merge two or more PDFs into one document in the given order.
Parameters:
- paths: Paths of the PDFs to merge
- output_name: Optional name of the merged file (default: merged_document.pdf)

### compress_pdf
Merge the inputs and optimize the result.
Parameters:
- paths: Paths of the PDFs to compress
- output_name: Optional name of the result (default: compressed_document.pdf)

### pdf_info
Report page count, size and an optional text preview of a PDF.
Parameters:
- path: Path to the PDF
- preview_chars: Optional number of preview characters (0 disables the preview)

### pdf_to_images
Render PDF pages to images.
Parameters:
- path: Path to the PDF
- ranges: Optional page ranges, e.g. "1-3, 5" (default: all pages)
- format: "jpeg" (default) or "png"
- quality: JPEG quality 1-100 (default: 90)
- dpi: Render resolution (default: 144, max: 600)

Several pages are bundled into one ZIP archive.

### images_to_pdf
Build a PDF with one A4 page per image, in the given order.
Parameters:
- paths: Paths of JPEG, PNG, GIF, WebP, BMP or TIFF images
- output_name: Optional name of the PDF (default: converted_images.pdf)

### convert_image
Resize an image and save it as JPEG or PNG.
Parameters:
- path: Path to the image
- format: "jpeg" (default) or "png"
- quality: JPEG quality 1-100 (default: 90)
- width, height: Optional target size in pixels
- keep_aspect: Fit inside width x height without distortion (default: true)

### list_artifacts
List stored artifacts.
Parameters:
- kind: Optional filter - "pdf", "zip", "jpg", "png", or empty for all

### cleanup_storage
Remove stored artifacts older than the TTL.
Parameters:
- ttl: Time to live (e.g., "24h" or 24 for hours)

## Environment Variables

- STORAGE_PATH: Storage directory (default: ./storage)
- STORAGE_TTL: Default TTL for cleanup (default: 24h)
- CLEANUP_INTERVAL: Background cleanup interval (default: 1h)
- PORT: HTTP server port (default: 8080)
- DEBUG: Enable debug logging (default: false)
- MAX_UPLOAD_MB: Largest accepted input in megabytes (default: 100)
`

// ToolDefinitions contains the MCP tool definitions
var ToolDefinitions = map[string]*mcp.Tool{
	"split_pdf": {
		Name:        "split_pdf",
		Description: "Split a PDF by page ranges or into one document per page. Returns the URI of the produced PDF, or of a ZIP archive when several documents are produced.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the source PDF",
				},
				"method": map[string]interface{}{
					"type":        "string",
					"description": "'range' extracts the listed pages into one document, 'each' produces one document per page",
					"enum":        []string{"range", "each"},
					"default":     "range",
				},
				"ranges": map[string]interface{}{
					"type":        "string",
					"description": "Comma-separated one-based page numbers and ranges, e.g. '1-3, 5, 8-10'",
				},
			},
			"required": []string{"path"},
		},
	},
	"merge_pdfs": {
		Name:        "merge_pdfs",
		Description: "Merge two or more PDFs into a single document, preserving the input order.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"description": "Paths of the PDFs to merge",
					"items":       map[string]interface{}{"type": "string"},
					"minItems":    2,
				},
				"output_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the merged file (default: merged_document.pdf)",
				},
			},
			"required": []string{"paths"},
		},
	},
	"compress_pdf": {
		Name:        "compress_pdf",
		Description: "Combine the given PDFs and optimize the result. Reports the size reduction.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"description": "Paths of the PDFs to compress",
					"items":       map[string]interface{}{"type": "string"},
					"minItems":    1,
				},
				"output_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the result (default: compressed_document.pdf)",
				},
			},
			"required": []string{"paths"},
		},
	},
	"pdf_info": {
		Name:        "pdf_info",
		Description: "Report the page count and size of a PDF, with an optional plain-text preview.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the PDF",
				},
				"preview_chars": map[string]interface{}{
					"type":        "integer",
					"description": "Number of preview characters, 0 disables the preview",
					"minimum":     0,
					"default":     0,
				},
			},
			"required": []string{"path"},
		},
	},
	"pdf_to_images": {
		Name:        "pdf_to_images",
		Description: "Render PDF pages to JPEG or PNG images. Returns the URI of the image, or of a ZIP archive when several pages are rendered.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the PDF",
				},
				"ranges": map[string]interface{}{
					"type":        "string",
					"description": "Comma-separated one-based page numbers and ranges; empty renders every page",
				},
				"format": map[string]interface{}{
					"type":    "string",
					"enum":    []string{"jpeg", "png"},
					"default": "jpeg",
				},
				"quality": map[string]interface{}{
					"type":        "integer",
					"description": "JPEG quality",
					"minimum":     1,
					"maximum":     100,
					"default":     90,
				},
				"dpi": map[string]interface{}{
					"type":        "integer",
					"description": "Render resolution in dots per inch",
					"minimum":     1,
					"maximum":     600,
					"default":     144,
				},
			},
			"required": []string{"path"},
		},
	},
	"images_to_pdf": {
		Name:        "images_to_pdf",
		Description: "Build a PDF with one page per image, preserving the input order.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"description": "Paths of the images",
					"items":       map[string]interface{}{"type": "string"},
					"minItems":    1,
				},
				"output_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the PDF (default: converted_images.pdf)",
				},
			},
			"required": []string{"paths"},
		},
	},
	"convert_image": {
		Name:        "convert_image",
		Description: "Resize an image and re-encode it as JPEG or PNG.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the image",
				},
				"format": map[string]interface{}{
					"type":    "string",
					"enum":    []string{"jpeg", "png"},
					"default": "jpeg",
				},
				"quality": map[string]interface{}{
					"type":        "integer",
					"description": "JPEG quality",
					"minimum":     1,
					"maximum":     100,
					"default":     90,
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Target width in pixels, 0 keeps the source width",
					"minimum":     0,
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Target height in pixels, 0 keeps the source height",
					"minimum":     0,
				},
				"keep_aspect": map[string]interface{}{
					"type":        "boolean",
					"description": "Fit inside width x height without distortion",
					"default":     true,
				},
			},
			"required": []string{"path"},
		},
	},
	"list_artifacts": {
		Name:        "list_artifacts",
		Description: "List all stored artifacts by URI.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Optional filter: 'pdf', 'zip', 'jpg', 'png', or empty for all artifacts",
					"enum":        []string{"pdf", "zip", "jpg", "png"},
				},
			},
			"required": []string{},
		},
	},
	"cleanup_storage": {
		Name:        "cleanup_storage",
		Description: "Remove artifacts older than the specified TTL from storage.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"ttl": map[string]interface{}{
					"type":        "string",
					"description": "Time to live (e.g., '24h', or hours as number). Uses default TTL if not specified.",
				},
			},
			"required": []string{},
		},
	},
}

// ResourceDefinitions contains the MCP resource definitions
var ResourceDefinitions = []*mcp.Resource{
	{
		URI:         statsURI,
		Name:        "Storage Statistics",
		Description: "Number of stored artifacts per kind",
		MIMEType:    "text/markdown",
	},
}

// ResourceTemplateDefinitions contains the MCP resource template definitions
var ResourceTemplateDefinitions = []*mcp.ResourceTemplate{
	{
		URITemplate: "pdf://{id}",
		Name:        "PDF Document",
		Description: "Download a produced PDF by its id",
		MIMEType:    "application/pdf",
	},
	{
		URITemplate: "zip://{id}",
		Name:        "ZIP Archive",
		Description: "Download a produced archive by its id",
		MIMEType:    "application/zip",
	},
	{
		URITemplate: "jpg://{id}",
		Name:        "JPEG Image",
		Description: "Download a produced JPEG image by its id",
		MIMEType:    "image/jpeg",
	},
	{
		URITemplate: "png://{id}",
		Name:        "PNG Image",
		Description: "Download a produced PNG image by its id",
		MIMEType:    "image/png",
	},
}
