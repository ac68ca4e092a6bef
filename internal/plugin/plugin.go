// Package plugin supplies framework-specific command definitions and built-in
// recovery strategies. The engine treats these lists opaquely; all
// framework-specific knowledge lives here.
package plugin

import (
	"fmt"
	"sort"

	"github.com/jienckebd/devloop/internal/command"
	"github.com/jienckebd/devloop/internal/recovery"
)

// Plugin describes one target ecosystem.
type Plugin interface {
	Name() string

	// Commands returns the command definitions to register at startup.
	Commands() []command.Definition

	// Strategies returns the built-in recovery strategies in match order.
	Strategies() []recovery.Strategy
}

var registry = map[string]Plugin{}

// Register adds a plugin to the registry. Call from an init function.
func Register(p Plugin) {
	registry[p.Name()] = p
}

// Lookup returns the plugin registered under name.
func Lookup(name string) (Plugin, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown framework plugin %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names lists registered plugin names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
