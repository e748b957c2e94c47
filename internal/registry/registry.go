// Package registry holds the fixed, overridable slash-command-to-agent-file
// mapping the command matcher and output formatter both read from, using
// the same map-plus-ordered-Names pattern as this repository's other
// registries.
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"turnline/internal/commandmatch"
)

// entry wraps a descriptor. Registration order is kept separately in
// Registry.order, since commandmatch's tie-break rule (starts-with, then
// contains, both in registration order) depends on iteration order, not
// alphabetical order.
type entry struct {
	descriptor commandmatch.Descriptor
}

// Registry is the command registry; it implements commandmatch.Source.
type Registry struct {
	order   []string
	entries map[string]entry
}

// defaultCommands is this repository's fixed set of five domain commands.
var defaultCommands = []commandmatch.Descriptor{
	{Name: "/plan", DisplayLabel: "Draft a plan for a feature or fix", AgentFile: "plan.agent.md"},
	{Name: "/build", DisplayLabel: "Implement the current plan", AgentFile: "build.agent.md"},
	{Name: "/review", DisplayLabel: "Review a diff before it ships", AgentFile: "review.agent.md"},
	{Name: "/init", DisplayLabel: "Scaffold a new project", AgentFile: "init.agent.md"},
	{Name: "/archive", DisplayLabel: "Archive completed specs", AgentFile: "archive.agent.md"},
}

// New builds a Registry from this repository's default command set.
func New() *Registry {
	return NewFromDescriptors(defaultCommands)
}

// Load builds a Registry from the compiled-in default command set, then
// overrides or extends it from the JSON file at path: an array of
// {"name", "display_label", "agent_file"} objects. A command name matching
// a default replaces it in place; any other name is appended. A missing
// file is not an error — it returns the unmodified defaults, since an
// override file is optional. A malformed file is an error, since a typo'd
// override should not silently fall back to defaults.
func Load(path string) (*Registry, error) {
	r := New()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry overrides: %w", err)
	}
	var overrides []commandmatch.Descriptor
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("decode registry overrides: %w", err)
	}
	for _, d := range overrides {
		r.Override(d)
	}
	return r, nil
}

// NewFromDescriptors builds a Registry from an explicit, ordered list of
// descriptors; New uses it to build the compiled-in default set, and Load
// applies overrides on top of that result through Override.
func NewFromDescriptors(descriptors []commandmatch.Descriptor) *Registry {
	r := &Registry{entries: make(map[string]entry, len(descriptors))}
	for _, d := range descriptors {
		r.put(d)
	}
	return r
}

func (r *Registry) put(d commandmatch.Descriptor) {
	if _, exists := r.entries[d.Name]; !exists {
		r.order = append(r.order, d.Name)
	}
	r.entries[d.Name] = entry{descriptor: d}
}

// Override replaces or adds a command descriptor, preserving its original
// registration slot if it already existed.
func (r *Registry) Override(d commandmatch.Descriptor) {
	r.put(d)
}

// Has reports whether name is a registered command.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns command names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Commands returns every registered descriptor in registration order,
// satisfying commandmatch.Source.
func (r *Registry) Commands() []commandmatch.Descriptor {
	out := make([]commandmatch.Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].descriptor)
	}
	return out
}

// AgentFileFor returns the agent file bound to name, or "" if unregistered.
func (r *Registry) AgentFileFor(name string) string {
	e, ok := r.entries[name]
	if !ok {
		return ""
	}
	return e.descriptor.AgentFile
}
