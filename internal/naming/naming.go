// Package naming derives Go identifiers for generated code: builder slots,
// setters, constructors and exported field names for schema-only inputs.
package naming

import (
	"go/token"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s.]+`)

var initialisms = map[string]string{
	"api":  "API",
	"html": "HTML",
	"http": "HTTP",
	"id":   "ID",
	"ip":   "IP",
	"json": "JSON",
	"sql":  "SQL",
	"uri":  "URI",
	"url":  "URL",
	"uuid": "UUID",
}

// IsExported reports whether name starts with an upper case letter.
func IsExported(name string) bool {
	return token.IsExported(name)
}

// UpperFirst upper-cases the first rune.
func UpperFirst(name string) string {
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// LowerCamel lower-cases the leading run of upper case letters, keeping the
// last one when it starts the next word: ID -> id, URLPath -> urlPath,
// PlacedAt -> placedAt.
func LowerCamel(name string) string {
	runes := []rune(name)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	switch {
	case upper == 0:
		return name
	case upper == 1 || upper == len(runes):
		for i := 0; i < upper; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	default:
		if unicode.IsLower(runes[upper]) {
			upper--
		}
		for i := 0; i < upper; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	return string(runes)
}

// Slot returns the unexported storage name for a field, suffixing Go keywords
// with an underscore.
func Slot(field string) string {
	slot := LowerCamel(field)
	if token.IsKeyword(slot) {
		return slot + "_"
	}
	return slot
}

// Setter returns the setter method name for a field.
func Setter(field string) string {
	return UpperFirst(field)
}

// Constructor returns the constructor name for a builder type. Exported
// structs get New<Builder>, unexported ones new<Builder>.
func Constructor(structName, builderName string) string {
	if IsExported(structName) {
		return "New" + builderName
	}
	return "new" + UpperFirst(builderName)
}

// GoName converts a schema property name (snake_case, kebab-case, camelCase)
// into an exported Go identifier, upper-casing common initialisms.
func GoName(name string) string {
	words := splitWordsPattern.Split(name, -1)
	var out strings.Builder
	for _, word := range words {
		for _, part := range splitCamel(word) {
			if part == "" {
				continue
			}
			if initialism, ok := initialisms[strings.ToLower(part)]; ok {
				out.WriteString(initialism)
				continue
			}
			out.WriteString(UpperFirst(part))
		}
	}
	result := out.String()
	if result == "" {
		return "Field"
	}
	if r, _ := utf8.DecodeRuneInString(result); unicode.IsDigit(r) {
		return "F" + result
	}
	return result
}

func splitCamel(input string) []string {
	var (
		parts   []string
		current strings.Builder
	)
	runes := []rune(input)
	for i, r := range runes {
		if i > 0 && isBoundary(runes[i-1], r) {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isBoundary(prev, r rune) bool {
	return unicode.IsLower(prev) && unicode.IsUpper(r)
}
