// Package annotation turns raw field directives into structured tag/value
// pairs. Anything that is not exactly `tag = literal` is dropped without an
// error.
package annotation

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// TagEach names the per-element appender of a repeated field.
const TagEach = "each"

// Annotation is a parsed `tag = "value"` directive.
type Annotation struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Is reports whether the annotation carries the given tag.
func (a Annotation) Is(tag string) bool {
	return a.Tag == tag
}

// Parse inspects the first raw annotation of a field and returns its
// structured form. The boolean is false when the field carries no usable
// annotation.
//
// TODO: surface malformed directives as warnings once frontends have a
// diagnostics channel; today they are dropped silently.
func Parse(groups []schema.RawAnnotation) (Annotation, bool) {
	if len(groups) == 0 {
		return Annotation{}, false
	}
	return parseGroup(groups[0].Args)
}

func parseGroup(tokens []schema.Token) (Annotation, bool) {
	if len(tokens) != 3 {
		return Annotation{}, false
	}
	tag, punct, literal := tokens[0], tokens[1], tokens[2]
	if tag.Kind != schema.TokenIdent || tag.Text == "" {
		return Annotation{}, false
	}
	if punct.Kind != schema.TokenPunct || punct.Text != "=" {
		return Annotation{}, false
	}
	if literal.Kind != schema.TokenLiteral {
		return Annotation{}, false
	}
	return Annotation{Tag: tag.Text, Value: literalValue(literal.Text)}, true
}

func literalValue(text string) string {
	if unquoted, err := strconv.Unquote(text); err == nil {
		if strings.HasPrefix(text, "'") {
			return text
		}
		return unquoted
	}
	return strings.ReplaceAll(text, `"`, "")
}
