package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches schema documents from different sources (filesystem, fs.FS,
// HTTP). The implementation lives under internal/loader.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources. Loading is offline
// first: HTTP stays disabled unless a client or the fallback is configured.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies).
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources with a default client when no
	// HTTPClient is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceFromFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and the given
// timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Parser turns a document into the struct IR. Each frontend (Go source, YAML
// schema, OpenAPI) implements it.
type Parser interface {
	Parse(ctx context.Context, doc Document) (File, error)
}

// ParserFunc adapts a function into a Parser.
type ParserFunc func(ctx context.Context, doc Document) (File, error)

// Parse calls the underlying function.
func (fn ParserFunc) Parse(ctx context.Context, doc Document) (File, error) {
	return fn(ctx, doc)
}

// ParserOptions carries the knobs shared by every frontend.
type ParserOptions struct {
	// Directive is the comment/annotation namespace, "builder" by default.
	Directive string

	// Package overrides the package name for frontends that cannot infer one.
	Package string

	// OptionalWrapper and RepeatedWrapper name the wrapper types frontends
	// should use when they synthesize type expressions (OpenAPI).
	OptionalWrapper string
	RepeatedWrapper string

	// WrapperImport is dot-imported by schema-only frontends whenever their
	// structs mention a wrapper, so emitted declarations compile without
	// hand-written Optional/Vec types. Empty disables the import.
	WrapperImport string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDirective overrides the directive namespace.
func WithDirective(name string) ParserOption {
	return func(opts *ParserOptions) {
		if name != "" {
			opts.Directive = name
		}
	}
}

// WithPackage sets the package name used by schema-only frontends.
func WithPackage(name string) ParserOption {
	return func(opts *ParserOptions) {
		opts.Package = name
	}
}

// WithWrappers overrides the wrapper names used when synthesizing types.
func WithWrappers(optional, repeated string) ParserOption {
	return func(opts *ParserOptions) {
		if optional != "" {
			opts.OptionalWrapper = optional
		}
		if repeated != "" {
			opts.RepeatedWrapper = repeated
		}
	}
}

// WithWrapperImport overrides the package dot-imported for wrapper types.
// An empty path disables the import.
func WithWrapperImport(path string) ParserOption {
	return func(opts *ParserOptions) {
		opts.WrapperImport = path
	}
}

const (
	DefaultWrapperImport   = "github.com/goliatone/go-buildergen/pkg/wrap"
	DefaultDirective       = "builder"
	DefaultPackage         = "model"
	DefaultOptionalWrapper = "Optional"
	DefaultRepeatedWrapper = "Vec"
)

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		Directive:       DefaultDirective,
		Package:         DefaultPackage,
		OptionalWrapper: DefaultOptionalWrapper,
		RepeatedWrapper: DefaultRepeatedWrapper,
		WrapperImport:   DefaultWrapperImport,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
