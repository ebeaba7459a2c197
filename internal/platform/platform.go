// Package platform abstracts pull-request hosting providers (GitHub,
// Bitbucket) behind one connector contract.
//
// Connectors self-register through the global registry, triggered by
//
//	import _ "github.com/mcp-bot/reviewd/internal/platform/init"
package platform

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/viper"
)

// ChangedFile is one file touched by a pull request, with its full content at
// the PR's head commit. It is never persisted.
type ChangedFile struct {
	Filename string
	Content  string
}

// Connector performs provider-specific PR operations. Every method reads the
// identifiers it needs from the raw webhook payload; the same unmodified
// payload bytes are reused across fetch, comment and approve.
type Connector interface {
	Info() ConnectorInfo
	FetchFiles(ctx context.Context, event []byte) ([]ChangedFile, error)
	PostComment(ctx context.Context, event []byte, body string) error
	Approve(ctx context.Context, event []byte) error
}

// ConnectorInfo describes a connector.
type ConnectorInfo struct {
	Name    string
	BaseURL string
}

// Factory creates a Connector from the process configuration.
type Factory func(v *viper.Viper) (Connector, error)

// Registry is a thread-safe store of connector factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a connector factory under the given platform tag.
// It panics if the tag is already registered.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("platform: factory already registered for %q", name))
	}
	r.factories[name] = f
}

// Get creates a connector instance by platform tag.
func (r *Registry) Get(name string, v *viper.Viper) (Connector, error) {
	r.mu.RLock()
	f, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("platform: unknown platform %q (registered: %v)", name, r.Names())
	}
	return f(v)
}

// Names returns a sorted list of registered platform tags.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Register adds a connector factory to the global registry.
func Register(name string, f Factory) {
	globalRegistry.Register(name, f)
}

// Get resolves a connector by platform tag from the global registry.
func Get(name string, v *viper.Viper) (Connector, error) {
	return globalRegistry.Get(name, v)
}

// Names returns all registered platform tags from the global registry.
func Names() []string {
	return globalRegistry.Names()
}
