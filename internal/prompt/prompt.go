// Package prompt asks the user which structs to generate when the CLI runs
// with --interactive.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// SelectConfig configures a multi-select prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Defaults []int // indices into Options
	Help     string
	PageSize int
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Driver abstracts the terminal so selection logic can be tested without one.
type Driver interface {
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

// NewSurveyDriver returns a Driver backed by survey.
func NewSurveyDriver() Driver {
	return surveyDriver{}
}

// SelectStructs lets the user pick structs from file. Marked structs start
// selected. The returned names keep declaration order.
func SelectStructs(ctx context.Context, driver Driver, file schema.File) ([]string, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	names := file.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("prompt: %s declares no structs", file.Path)
	}

	var defaults []int
	for idx, s := range file.Structs {
		if s.Marked {
			defaults = append(defaults, idx)
		}
	}

	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Generate builders for",
		Options:  names,
		Defaults: defaults,
		Help:     "space toggles, enter confirms",
		PageSize: 15,
	})
	if err != nil {
		return nil, err
	}

	chosen := make(map[int]bool, len(picked))
	for _, idx := range picked {
		chosen[idx] = true
	}
	out := make([]string, 0, len(picked))
	for idx, name := range names {
		if chosen[idx] {
			out = append(out, name)
		}
	}
	return out, nil
}

// ConfirmOverwrite asks before replacing an existing output file.
func ConfirmOverwrite(ctx context.Context, driver Driver, path string) (bool, error) {
	if driver == nil {
		return false, errors.New("prompt: driver is nil")
	}
	return driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s exists. Overwrite?", path),
		Default: true,
	})
}

type surveyDriver struct{}

func (surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if len(cfg.Defaults) > 0 {
		prompt.Default = defaultsFromIndices(cfg.Options, cfg.Defaults)
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return nil, translateSurveyErr(err)
	}
	return indicesOf(cfg.Options, out), nil
}

func (surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indicesOf(options, values []string) []int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := seen[option]; ok {
			out = append(out, i)
		}
	}
	return out
}

func defaultsFromIndices(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
