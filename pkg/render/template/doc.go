// Package template defines the template seam renderers stitch their output
// through, so the engine behind it can be swapped without touching renderers.
package template
