package server

import (
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/evaluator"
	"github.com/ironsheep/allcolors/internal/imaging"
	"github.com/ironsheep/allcolors/internal/render"
	"github.com/ironsheep/allcolors/internal/sink"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "allcolors_generate", "image_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).WithField("tool", params.Name).Warn("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Generation
	case "allcolors_generate":
		return s.handleGenerate(args)
	case "allcolors_list_evaluators":
		return s.handleListEvaluators(args)
	case "allcolors_dimensions":
		return s.handleDimensions(args)

	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Mosaic Analysis
	case "image_verify_coverage":
		return s.handleImageVerifyCoverage(args)
	case "image_smoothness":
		return s.handleImageSmoothness(args)
	case "image_neighbor_stats":
		return s.handleImageNeighborStats(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to a pretty-printed JSON string. A marshal
// failure is logged and yields an empty string.
func mustMarshalJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.WithError(err).Error("failed to marshal tool result")
		return ""
	}
	return string(b)
}

// decodeArgs unmarshals tool arguments; absent arguments leave v untouched.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Generation Handlers ===

type generateArgs struct {
	Name         string  `json:"name"`
	Bits         *int    `json:"bits"`
	Evaluator    *string `json:"evaluator"`
	Strict       *bool   `json:"strict"`
	Seed         *int64  `json:"seed"`
	Format       *string `json:"format"`
	Scale        *int    `json:"scale"`
	OutputDir    *string `json:"output_dir"`
	Workers      *int    `json:"workers"`
	BlackIsUnset *bool   `json:"black_is_unset"`
}

func (s *Server) handleGenerate(args json.RawMessage) (interface{}, error) {
	var a generateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	cfg := s.cfg
	if a.Bits != nil {
		cfg.Bits = *a.Bits
	}
	if a.Evaluator != nil {
		cfg.Evaluator = strings.ToLower(strings.TrimSpace(*a.Evaluator))
	}
	if a.Strict != nil {
		cfg.Strict = *a.Strict
	}
	if a.Format != nil {
		f, err := sink.ParseFormat(*a.Format)
		if err != nil {
			return nil, err
		}
		cfg.Format = f
	}
	if a.Scale != nil {
		cfg.Scale = *a.Scale
	}
	if a.OutputDir != nil {
		cfg.OutputDir = *a.OutputDir
	}
	if a.Workers != nil {
		cfg.Workers = *a.Workers
	}
	if a.BlackIsUnset != nil {
		cfg.BlackIsUnset = *a.BlackIsUnset
	}

	report, err := render.Render(s.ctx, render.Request{Name: a.Name, Seed: a.Seed, Config: cfg})
	if err != nil {
		return nil, err
	}

	// the file matches the canvas pixel for pixel, so analysis can skip decoding
	if cfg.Scale == 1 && cfg.Format.Lossless() {
		s.cache.Store(report.Path, report.Canvas)
	} else {
		s.cache.Evict(report.Path)
	}
	return report, nil
}

type evaluatorList struct {
	Default    string           `json:"default"`
	Evaluators []evaluator.Info `json:"evaluators"`
}

func (s *Server) handleListEvaluators(args json.RawMessage) (interface{}, error) {
	return &evaluatorList{Default: s.cfg.Evaluator, Evaluators: evaluator.Describe()}, nil
}

type dimensionsArgs struct {
	Bits   int  `json:"bits"`
	Strict bool `json:"strict"`
}

type dimensionsResult struct {
	Bits   int  `json:"bits"`
	Strict bool `json:"strict"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Cells  int  `json:"cells"`
	Colors int  `json:"colors"`
}

func (s *Server) handleDimensions(args json.RawMessage) (interface{}, error) {
	var a dimensionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := colorspace.ValidateBits(a.Bits); err != nil {
		return nil, err
	}
	w, h := colorspace.Dimensions(a.Bits, a.Strict)
	return &dimensionsResult{
		Bits:   a.Bits,
		Strict: a.Strict,
		Width:  w,
		Height: h,
		Cells:  w * h,
		Colors: colorspace.Count(a.Bits),
	}, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type imageDominantColorsArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Method string `json:"method"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region *imaging.Region
	if a.Region != nil {
		region = &imaging.Region{X1: a.Region.X1, Y1: a.Region.Y1, X2: a.Region.X2, Y2: a.Region.Y2}
	}
	return imaging.DominantColors(img, a.Count, region, imaging.PaletteMethod(strings.ToLower(a.Method)))
}

// === Mosaic Analysis Handlers ===

type imageVerifyCoverageArgs struct {
	Path string `json:"path"`
	Bits int    `json:"bits"`
}

func (s *Server) handleImageVerifyCoverage(args json.RawMessage) (interface{}, error) {
	var a imageVerifyCoverageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.VerifyCoverage(img, a.Bits)
}

func (s *Server) handleImageSmoothness(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Smoothness(img), nil
}

type imageNeighborStatsArgs struct {
	Path      string `json:"path"`
	Evaluator string `json:"evaluator"`
}

func (s *Server) handleImageNeighborStats(args json.RawMessage) (interface{}, error) {
	var a imageNeighborStatsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Evaluator == "" {
		a.Evaluator = s.cfg.Evaluator
	}
	eval, err := evaluator.Lookup(strings.ToLower(a.Evaluator))
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.NeighborStats(img, eval), nil
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string `json:"path"`
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	X2    int    `json:"x2"`
	Y2    int    `json:"y2"`
	Scale int    `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}
