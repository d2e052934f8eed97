// Package render draws log pages onto bitmaps.
//
// Body text is wrapped with layout.Wrap using glyph advances measured at
// scale 1, so the pages produced by layout.Paginate render exactly as they
// were measured regardless of the capture scale.
package render
