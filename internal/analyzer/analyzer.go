// Package analyzer routes changed files to language-specific static-analysis
// adapters by file extension.
//
// Adapters self-register through the global registry, triggered by
//
//	import _ "github.com/mcp-bot/reviewd/internal/analyzer/init"
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mcp-bot/reviewd/internal/diag"
)

// Adapter runs one code-quality tool against a single file's content and
// normalizes its output to diagnostics.
type Adapter interface {
	// Name identifies the underlying tool.
	Name() string
	// Run analyzes content as if it lived at filePath. An empty slice with a
	// nil error means the tool found nothing.
	Run(ctx context.Context, filePath, content string) ([]diag.Diagnostic, error)
}

// Registry is a thread-safe store of adapters keyed by file extension.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register binds an adapter to a file extension (without the leading dot).
// It panics if the extension is already bound.
func (r *Registry) Register(ext string, a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ext = strings.ToLower(ext)
	if _, exists := r.adapters[ext]; exists {
		panic(fmt.Sprintf("analyzer: adapter already registered for %q", ext))
	}
	r.adapters[ext] = a
}

// Lookup returns the adapter bound to ext, if any.
func (r *Registry) Lookup(ext string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[strings.ToLower(ext)]
	return a, ok
}

// Extensions returns the sorted list of registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.adapters))
	for e := range r.adapters {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// AnalyzeFile dispatches content to the adapter registered for filePath's
// extension. An unsupported extension is not an error: it resolves to an
// empty slice so unknown languages never fail a review.
func (r *Registry) AnalyzeFile(ctx context.Context, filePath, content string) ([]diag.Diagnostic, error) {
	ext := extOf(filePath)
	if ext == "" {
		return nil, nil
	}
	a, ok := r.Lookup(ext)
	if !ok {
		return nil, nil
	}
	return a.Run(ctx, filePath, content)
}

// Register binds an adapter to an extension in the global registry.
func Register(ext string, a Adapter) {
	globalRegistry.Register(ext, a)
}

// Extensions returns all extensions registered in the global registry.
func Extensions() []string {
	return globalRegistry.Extensions()
}

// AnalyzeFile dispatches through the global registry.
func AnalyzeFile(ctx context.Context, filePath, content string) ([]diag.Diagnostic, error) {
	return globalRegistry.AnalyzeFile(ctx, filePath, content)
}

// extOf extracts the lowercased extension after the final dot, or "" when the
// path has none.
func extOf(filePath string) string {
	idx := strings.LastIndex(filePath, ".")
	if idx < 0 || idx == len(filePath)-1 {
		return ""
	}
	return strings.ToLower(filePath[idx+1:])
}
