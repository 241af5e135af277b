package model

import (
	internalmodel "github.com/goliatone/go-buildergen/internal/model"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Builder converts struct schemas into builder models.
type Builder interface {
	Build(s schema.Struct) (BuilderModel, error)
	BuildFile(file schema.File) (File, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	optionalWrapper string
	repeatedWrapper string
	builderSuffix   string
	buildMethod     string
}

// WithWrappers overrides the wrapper names that mark optional and repeated
// fields. Empty values keep the defaults (Optional, Vec).
func WithWrappers(optional, repeated string) BuilderOption {
	return func(opts *builderOptions) {
		opts.optionalWrapper = optional
		opts.repeatedWrapper = repeated
	}
}

// WithBuilderSuffix overrides the suffix appended to the struct name to form
// the builder type name.
func WithBuilderSuffix(suffix string) BuilderOption {
	return func(opts *builderOptions) {
		opts.builderSuffix = suffix
	}
}

// WithBuildMethod overrides the name of the generated assembly method.
func WithBuildMethod(name string) BuilderOption {
	return func(opts *builderOptions) {
		opts.buildMethod = name
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return internalmodel.New(internalmodel.Options{
		OptionalWrapper: cfg.optionalWrapper,
		RepeatedWrapper: cfg.repeatedWrapper,
		BuilderSuffix:   cfg.builderSuffix,
		BuildMethod:     cfg.buildMethod,
	})
}
