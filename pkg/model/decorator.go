package model

// Decorator adjusts planned builders after the canonical plans were built and
// before rendering, for example to rename setters or drop a builder.
type Decorator interface {
	Decorate(*File) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*File) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(file *File) error {
	return fn(file)
}
