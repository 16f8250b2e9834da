package server

import (
	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/evaluator"
	"github.com/ironsheep/allcolors/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

type props map[string]interface{}

func object(properties props, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func pathProp() map[string]interface{} {
	return prop("string", "Path to the image file; a leading ~ is expanded")
}

func bitsProp() map[string]interface{} {
	p := prop("integer", "Bits per color channel; the image holds 2^(3*bits) colors")
	p["minimum"] = colorspace.MinBits
	p["maximum"] = colorspace.MaxBits
	return p
}

func evaluatorProp() map[string]interface{} {
	p := prop("string", "Evaluator name, such as avg-euclidean or min-hue")
	p["enum"] = evaluator.Names()
	return p
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Generation
		{
			Name:        "allcolors_generate",
			Description: "Render an image that uses every color of a reduced RGB color space exactly once, growing it from a seed point so neighboring pixels stay similar. The same name always gives the same image unless a seed is passed.",
			InputSchema: object(props{
				"name":           prop("string", "Output name; the file is written as <output_dir>/<name>.<format> and the seed is derived from it"),
				"bits":           bitsProp(),
				"evaluator":      evaluatorProp(),
				"strict":         prop("boolean", "Use an exactly sized canvas and a random seed point instead of an oversized canvas seeded at the center"),
				"seed":           prop("integer", "Explicit seed overriding the one derived from name"),
				"format":         prop("string", "png, bmp, tiff, jpeg or gif. Lossy formats merge colors"),
				"scale":          prop("integer", "Integer upscale factor for the written file"),
				"output_dir":     prop("string", "Directory for the output file"),
				"workers":        prop("integer", "Goroutines per frontier scan; the output does not depend on it"),
				"black_is_unset": prop("boolean", "Ignore placed black pixels when scoring neighbors"),
			}, "name"),
		},
		{
			Name:        "allcolors_list_evaluators",
			Description: "List the evaluators that score candidate positions, with the default.",
			InputSchema: object(props{}),
		},
		{
			Name:        "allcolors_dimensions",
			Description: "Report the canvas size and color count for a bit depth without rendering.",
			InputSchema: object(props{
				"bits":   bitsProp(),
				"strict": prop("boolean", "Exactly sized canvas instead of the oversized default"),
			}, "bits"),
		},

		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel count.",
			InputSchema: object(props{"path": pathProp()}, "path"),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: object(props{"path": pathProp()}, "path"),
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: object(props{
				"path": pathProp(),
				"x":    prop("integer", "X coordinate (0-based, from left)"),
				"y":    prop("integer", "Y coordinate (0-based, from top)"),
			}, "path", "x", "y"),
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Get color values at multiple pixel coordinates in a single call.",
			InputSchema: object(props{
				"path": pathProp(),
				"points": map[string]interface{}{
					"type":        "array",
					"description": "Points to sample",
					"items": object(props{
						"x":     prop("integer", "X coordinate"),
						"y":     prop("integer", "Y coordinate"),
						"label": prop("string", "Optional label echoed in the result"),
					}, "x", "y"),
				},
			}, "path", "points"),
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the dominant colors of an image or region, by quantized frequency or by clustering.",
			InputSchema: object(props{
				"path":  pathProp(),
				"count": prop("integer", "Number of colors to return. Default 5"),
				"method": map[string]interface{}{
					"type":        "string",
					"description": "Palette method. Default frequency",
					"enum": []string{
						string(imaging.MethodFrequency),
						string(imaging.MethodDominantColor),
						string(imaging.MethodKMeans),
					},
				},
				"region": object(props{
					"x1": prop("integer", "Left edge (inclusive)"),
					"y1": prop("integer", "Top edge (inclusive)"),
					"x2": prop("integer", "Right edge (exclusive)"),
					"y2": prop("integer", "Bottom edge (exclusive)"),
				}, "x1", "y1", "x2", "y2"),
			}, "path"),
		},

		// Mosaic Analysis
		{
			Name:        "image_verify_coverage",
			Description: "Check that an image contains every color of a color space exactly once. Black padding of oversized canvases is reported separately.",
			InputSchema: object(props{
				"path": pathProp(),
				"bits": bitsProp(),
			}, "path", "bits"),
		},
		{
			Name:        "image_smoothness",
			Description: "Measure how smooth an image is with a Sobel filter: mean gradient, deviation and edge fraction.",
			InputSchema: object(props{"path": pathProp()}, "path"),
		},
		{
			Name:        "image_neighbor_stats",
			Description: "Score every pair of adjacent pixels with an evaluator and report mean, deviation, median, 90th percentile and maximum.",
			InputSchema: object(props{
				"path":      pathProp(),
				"evaluator": evaluatorProp(),
			}, "path"),
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region and return it as base64-encoded PNG, enlarged with nearest-neighbor sampling so every pixel stays a solid block.",
			InputSchema: object(props{
				"path":  pathProp(),
				"x1":    prop("integer", "Left edge X coordinate (0-based)"),
				"y1":    prop("integer", "Top edge Y coordinate (0-based)"),
				"x2":    prop("integer", "Right edge X coordinate (exclusive)"),
				"y2":    prop("integer", "Bottom edge Y coordinate (exclusive)"),
				"scale": prop("integer", "Integer enlargement factor. Default 1"),
			}, "path", "x1", "y1", "x2", "y2"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
