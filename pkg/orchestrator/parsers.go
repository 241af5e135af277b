package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// ParserRegistry stores frontend parsers by format.
type ParserRegistry struct {
	mu      sync.RWMutex
	parsers map[schema.Format]schema.Parser
}

// NewParserRegistry creates an empty parser registry.
func NewParserRegistry() *ParserRegistry {
	return &ParserRegistry{
		parsers: make(map[schema.Format]schema.Parser),
	}
}

// Register adds a parser for format, replacing any previous one.
func (r *ParserRegistry) Register(format schema.Format, parser schema.Parser) error {
	key := normalizeFormat(format)
	if key == "" {
		return fmt.Errorf("orchestrator: parser format is required")
	}
	if parser == nil {
		return fmt.Errorf("orchestrator: parser for %q is nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[key] = parser
	return nil
}

// Get retrieves the parser registered for format.
func (r *ParserRegistry) Get(format schema.Format) (schema.Parser, error) {
	key := normalizeFormat(format)
	if key == "" {
		return nil, fmt.Errorf("orchestrator: parser format is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, ok := r.parsers[key]
	if !ok {
		return nil, fmt.Errorf("orchestrator: no parser for format %q (have %s)", key, strings.Join(r.listLocked(), ", "))
	}
	return parser, nil
}

// Has reports whether a parser is registered for format.
func (r *ParserRegistry) Has(format schema.Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parsers[normalizeFormat(format)]
	return ok
}

// List returns the registered formats, sorted.
func (r *ParserRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *ParserRegistry) listLocked() []string {
	names := make([]string, 0, len(r.parsers))
	for format := range r.parsers {
		names = append(names, string(format))
	}
	sort.Strings(names)
	return names
}

func normalizeFormat(format schema.Format) schema.Format {
	return schema.Format(strings.ToLower(strings.TrimSpace(string(format))))
}
