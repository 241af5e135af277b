package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// Option configures a Load call.
type Option func(*options)

type options struct {
	file      string
	overrides map[string]any
}

// WithFile reads a YAML file on top of the defaults. A missing file is an
// error; an empty path is ignored.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = strings.TrimSpace(path)
	}
}

// WithOverrides applies dotted keys last, above the environment. The CLI
// uses it for explicitly set flags.
func WithOverrides(values map[string]any) Option {
	return func(o *options) {
		if len(values) == 0 {
			return
		}
		if o.overrides == nil {
			o.overrides = make(map[string]any, len(values))
		}
		for key, value := range values {
			o.overrides[key] = value
		}
	}
}

// Load resolves the configuration: defaults, YAML file, environment,
// overrides. The result is validated before it is returned.
func Load(opts ...Option) (*Config, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if o.file != "" {
		data, err := readYAML(o.file)
		if err != nil {
			return nil, err
		}
		for key, value := range flattenMap("", data) {
			if err := k.Set(key, value); err != nil {
				return nil, fmt.Errorf("config: set %s: %w", key, err)
			}
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if len(o.overrides) > 0 {
		if err := k.Load(rawMap(o.overrides), nil); err != nil {
			return nil, fmt.Errorf("config: apply overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: configuration is nil")
	}
	v := validator.New()
	if err := v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("config: register validation: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}

func readYAML(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return data, nil
}

// transformEnvKey maps BUILDERGEN_NAMING__BUILD_METHOD to naming.build_method.
func transformEnvKey(key, value string) (string, any) {
	trimmed := strings.TrimPrefix(key, EnvPrefix)
	if trimmed == "" {
		return "", nil
	}
	return strings.ReplaceAll(strings.ToLower(trimmed), "__", "."), value
}

// flattenMap flattens a nested map into dot-notation keys.
func flattenMap(prefix string, m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for fk, fv := range flattenMap(key, nested) {
				result[fk] = fv
			}
			continue
		}
		result[key] = v
	}
	return result
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, errors.New("config: ReadBytes not implemented")
}
