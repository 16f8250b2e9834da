// Package server implements the MCP (Model Context Protocol) server that
// renders all-colors images and analyzes the results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Notifications and unparseable lines produce no output.
//
// # Available Tools
//
// Generation:
//   - allcolors_generate: Render an image and write it to the output directory
//   - allcolors_list_evaluators: List evaluator names and the default
//   - allcolors_dimensions: Canvas size and color count for a bit depth
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_dominant_colors: Extract a palette by frequency or clustering
//
// Mosaic Analysis:
//   - image_verify_coverage: Check every color appears exactly once
//   - image_smoothness: Sobel gradient statistics
//   - image_neighbor_stats: Evaluator scores of adjacent pixel pairs
//
// Region Operations:
//   - image_crop: Extract and enlarge a rectangular region
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the process. A
// render written losslessly at scale 1 is stored in the cache directly, so
// analysis tools called on its path never decode the file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, version)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
