package orchestrator

import (
	"slices"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/model"
)

// SetterPrefix prepends prefix to every setter and appender name, turning
// Name into WithName. The renderer rejects prefixes that collide.
func SetterPrefix(prefix string) model.Decorator {
	prefix = strings.TrimSpace(prefix)
	return model.DecoratorFunc(func(file *model.File) error {
		if prefix == "" {
			return nil
		}
		for bi := range file.Builders {
			fields := slices.Clone(file.Builders[bi].Fields)
			for fi := range fields {
				if fields[fi].Setter != "" {
					fields[fi].Setter = prefix + fields[fi].Setter
				}
				if fields[fi].Appender != "" {
					fields[fi].Appender = prefix + fields[fi].Appender
				}
			}
			file.Builders[bi].Fields = fields
		}
		return nil
	})
}

// DropBuilders removes the plans of the named structs. When the struct is
// emitted by the renderer it disappears with its builder.
func DropBuilders(names ...string) model.Decorator {
	return model.DecoratorFunc(func(file *model.File) error {
		if len(names) == 0 {
			return nil
		}
		file.Builders = slices.DeleteFunc(slices.Clone(file.Builders), func(b model.BuilderModel) bool {
			return slices.Contains(names, b.Struct)
		})
		return nil
	})
}
