// Package model exposes the builder plans consumed by renderers. A FieldPlan
// records, for one struct field, its declared type and shape (required,
// optional, repeated), the parsed annotation, and the directives every
// emission pass derives from them: how the field is stored in the builder,
// what a fresh builder holds, whether a setter or an `each` appender exists,
// whether the field must be present before assembly, and how the stored value
// becomes the struct field. Plans are built by internal/model and returned
// through the types aliased here.
package model
