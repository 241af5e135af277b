package schema

import (
	"bytes"
	"errors"
	"path"
	"strings"
)

// Format names the frontend able to parse a document.
type Format string

const (
	FormatGo      Format = "go"
	FormatYAML    Format = "yaml"
	FormatOpenAPI Format = "openapi"
)

// Document wraps the raw schema payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// DetectFormat guesses the frontend for a document from its location and, for
// YAML/JSON payloads, from the presence of a top level "openapi" key.
func (d Document) DetectFormat() (Format, error) {
	ext := strings.ToLower(path.Ext(d.Location()))
	switch ext {
	case ".go":
		return FormatGo, nil
	case ".yaml", ".yml", ".json":
		if looksLikeOpenAPI(d.raw) {
			return FormatOpenAPI, nil
		}
		return FormatYAML, nil
	}
	if looksLikeOpenAPI(d.raw) {
		return FormatOpenAPI, nil
	}
	if bytes.HasPrefix(bytes.TrimSpace(d.raw), []byte("package ")) {
		return FormatGo, nil
	}
	return "", errors.New("schema: unable to detect document format for " + d.Location())
}

func looksLikeOpenAPI(raw []byte) bool {
	for _, line := range bytes.Split(raw, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if bytes.HasPrefix(trimmed, []byte("openapi:")) || bytes.HasPrefix(trimmed, []byte(`"openapi"`)) {
			return true
		}
	}
	return false
}
