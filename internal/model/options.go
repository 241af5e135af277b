package model

import "github.com/goliatone/go-buildergen/pkg/schema"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	OptionalWrapper string
	RepeatedWrapper string
	BuilderSuffix   string
	BuildMethod     string
}

const (
	DefaultBuilderSuffix = "Builder"
	DefaultBuildMethod   = "Build"
)

func defaultOptions() Options {
	return Options{
		OptionalWrapper: schema.DefaultOptionalWrapper,
		RepeatedWrapper: schema.DefaultRepeatedWrapper,
		BuilderSuffix:   DefaultBuilderSuffix,
		BuildMethod:     DefaultBuildMethod,
	}
}
