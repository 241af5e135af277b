// Package schema defines the structural input consumed by the builder engine:
// documents and their origins, the per-file struct IR produced by frontends,
// type expressions and raw (unparsed) field annotations. Frontends under
// internal/ produce these values; the engine never reads source text itself.
package schema
