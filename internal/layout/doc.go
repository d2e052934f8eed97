// Package layout splits a log into fixed-size pages.
//
// Geometry is shared by the paginator and the rasterizer in package render:
// both wrap body text at the same content width with the same line height,
// so a page that measures as fitting also renders without clipping.
package layout
