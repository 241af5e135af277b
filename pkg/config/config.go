// Package config loads generator settings from defaults, an optional YAML
// file and BUILDERGEN_ environment variables, in that order of precedence.
package config

import (
	"time"

	"github.com/goliatone/go-buildergen/pkg/logger"
	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/renderers/golang"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// EnvPrefix marks environment variables read by Load. A double underscore
// separates nesting levels: BUILDERGEN_NAMING__BUILD_METHOD.
const EnvPrefix = "BUILDERGEN_"

type Config struct {
	Directive string         `koanf:"directive" validate:"required,goident"`
	Wrappers  WrappersConfig `koanf:"wrappers"`
	Naming    NamingConfig   `koanf:"naming"`
	Output    OutputConfig   `koanf:"output"`
	HTTP      HTTPConfig     `koanf:"http"`
	Log       LogConfig      `koanf:"log"`
}

// WrappersConfig names the wrapper types that mark optional and repeated
// fields.
type WrappersConfig struct {
	Optional string `koanf:"optional" validate:"required,goident"`
	Repeated string `koanf:"repeated" validate:"required,goident,nefield=Optional"`
	// Import is dot-imported by schema-only frontends. Empty disables it.
	Import string `koanf:"import"`
}

type NamingConfig struct {
	BuilderSuffix string `koanf:"builder_suffix" validate:"required,goident"`
	BuildMethod   string `koanf:"build_method" validate:"required,goident"`
}

type OutputConfig struct {
	Renderer string `koanf:"renderer" validate:"omitempty,oneof=go json"`
	// FileSuffix is appended to the source file name in package mode.
	FileSuffix string `koanf:"file_suffix" validate:"required"`
	Header     string `koanf:"header"`
	// Package names the generated package for schema-only inputs.
	Package string `koanf:"package" validate:"required,goident"`
	// Templates is a directory whose builder.tpl or file.tpl replace the
	// bundled ones.
	Templates string `koanf:"templates" validate:"omitempty,dir"`
}

type HTTPConfig struct {
	Enabled bool          `koanf:"enabled"`
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Directive: schema.DefaultDirective,
		Wrappers: WrappersConfig{
			Optional: schema.DefaultOptionalWrapper,
			Repeated: schema.DefaultRepeatedWrapper,
			Import:   schema.DefaultWrapperImport,
		},
		Naming: NamingConfig{
			BuilderSuffix: "Builder",
			BuildMethod:   "Build",
		},
		Output: OutputConfig{
			Renderer:   "go",
			FileSuffix: "_builder",
			Package:    schema.DefaultPackage,
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ParserOptions maps the settings onto frontend options.
func (c *Config) ParserOptions() []schema.ParserOption {
	return []schema.ParserOption{
		schema.WithDirective(c.Directive),
		schema.WithPackage(c.Output.Package),
		schema.WithWrappers(c.Wrappers.Optional, c.Wrappers.Repeated),
		schema.WithWrapperImport(c.Wrappers.Import),
	}
}

// BuilderOptions maps the settings onto plan builder options.
func (c *Config) BuilderOptions() []model.BuilderOption {
	return []model.BuilderOption{
		model.WithWrappers(c.Wrappers.Optional, c.Wrappers.Repeated),
		model.WithBuilderSuffix(c.Naming.BuilderSuffix),
		model.WithBuildMethod(c.Naming.BuildMethod),
	}
}

// RendererOptions maps the output section onto Go renderer options.
func (c *Config) RendererOptions() []golang.Option {
	return []golang.Option{
		golang.WithHeader(c.Output.Header),
		golang.WithTemplatesDir(c.Output.Templates),
	}
}

// LoaderOptions maps the settings onto document loader options.
func (c *Config) LoaderOptions() []schema.LoaderOption {
	if !c.HTTP.Enabled {
		return nil
	}
	return []schema.LoaderOption{schema.WithHTTPFallback(c.HTTP.Timeout)}
}

// LoggerConfig maps the log section onto a logger configuration.
func (c *Config) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	if level, err := logger.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = level
	}
	cfg.JSON = c.Log.JSON
	return cfg
}
