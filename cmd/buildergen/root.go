package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-buildergen/internal/prompt"
	"github.com/goliatone/go-buildergen/pkg/config"
	"github.com/goliatone/go-buildergen/pkg/logger"
	"github.com/goliatone/go-buildergen/pkg/orchestrator"
)

// configKey is the flag annotation naming the config key a flag overrides.
const configKey = "buildergen/config-key"

// app carries state shared by all subcommands once the root pre-run loaded
// the configuration.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	prompt prompt.Driver
	stderr io.Writer

	configPath string
	logLevel   string
	logJSON    bool
}

func newApp() *app {
	return &app{
		prompt: prompt.NewSurveyDriver(),
		stderr: os.Stderr,
	}
}

func (a *app) Flags(flags *pflag.FlagSet) {
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug | info | warn | error")
	flags.BoolVar(&a.logJSON, "log-json", false, "log as JSON")
	bindConfig(flags, "log-level", "log.level")
	bindConfig(flags, "log-json", "log.json")
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "buildergen",
		Short:         "Generate fluent builders for Go structs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Flags())
		},
	}
	a.Flags(root.PersistentFlags())

	root.AddCommand(
		newGenerateCmd(a),
		newInspectCmd(a),
		newFormatsCmd(a),
	)
	return root
}

// load resolves the configuration. Flags the user set explicitly win over
// file and environment values.
func (a *app) load(flags *pflag.FlagSet) error {
	overrides, err := flagOverrides(flags)
	if err != nil {
		return err
	}
	cfg, err := config.Load(config.WithFile(a.configPath), config.WithOverrides(overrides))
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.LoggerConfig()
	logCfg.Output = a.stderr
	logCfg.Prefix = "buildergen"
	a.log = logger.New(logCfg)
	return nil
}

// orchestrator builds the pipeline from the loaded configuration plus
// per-command extras.
func (a *app) orchestrator(extra ...orchestrator.Option) *orchestrator.Orchestrator {
	options := []orchestrator.Option{
		orchestrator.WithLoaderOptions(a.cfg.LoaderOptions()...),
		orchestrator.WithParserOptions(a.cfg.ParserOptions()...),
		orchestrator.WithBuilderOptions(a.cfg.BuilderOptions()...),
		orchestrator.WithRendererOptions(a.cfg.RendererOptions()...),
		orchestrator.WithDefaultRenderer(a.cfg.Output.Renderer),
		orchestrator.WithLogger(a.log),
	}
	return orchestrator.New(append(options, extra...)...)
}

func bindConfig(flags *pflag.FlagSet, name, key string) {
	if err := flags.SetAnnotation(name, configKey, []string{key}); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

// flagOverrides collects the changed flags carrying a config key annotation.
func flagOverrides(flags *pflag.FlagSet) (map[string]any, error) {
	overrides := map[string]any{}
	var err error
	flags.Visit(func(f *pflag.Flag) {
		keys := f.Annotations[configKey]
		if len(keys) == 0 || err != nil {
			return
		}
		var value any
		switch f.Value.Type() {
		case "bool":
			value, err = flags.GetBool(f.Name)
		default:
			value = f.Value.String()
		}
		overrides[keys[0]] = value
	})
	if err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return overrides, nil
}
