// Package imaging inspects rendered mosaics.
//
// It loads images through a shared ImageCache and offers the analysis used by
// the MCP tools: color sampling, palette extraction, coverage verification
// against a color space, Sobel smoothness, adjacent-pixel distance statistics
// and enlarged region previews.
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left corner, X increasing
// rightward and Y downward. For regions, (x1,y1) is inclusive and (x2,y2) is
// exclusive.
//
// # Color Representation
//
// Colors are reported as:
//   - Hex: "#RRGGBB" (alpha excluded)
//   - RGB and RGBA: 8-bit components
//   - HSL: hue in degrees, saturation and lightness in percent
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The analysis functions only read
// their input and may run concurrently on the same image.
//
// # Performance Considerations
//
// A complete 8-bit mosaic has 16.7 million pixels. Coverage verification
// visits every pixel; palette clustering and neighbor statistics sample on a
// regular grid once an image grows past their limits.
package imaging
