// Package render converts rendered landmark graph diagrams between output
// formats.
//
// Diagrams are produced as SVG by the [nodelink] subpackage. [ToPDF] and
// [ToPNG] convert any SVG to other formats using the external rsvg-convert
// tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [Available] reports whether the converter is installed, so callers can
// skip PDF and PNG output instead of failing.
package render
