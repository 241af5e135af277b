package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the planned model.
type RenderOptions struct {
	// Header replaces the default "Code generated ... DO NOT EDIT." line placed
	// at the top of generated files. Renderers without comments ignore it.
	Header string
	// Package overrides the package clause of the generated file.
	Package string
	// SkipFormat returns the stitched output without running the formatter.
	// Useful when debugging templates.
	SkipFormat bool
}
