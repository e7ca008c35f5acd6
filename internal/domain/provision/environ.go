package provision

import (
	"fmt"
	"sort"
	"strings"
)

// Environ is the run-local environment overlay. Export steps mutate it and
// every later step of the same run observes the mutation; the parent
// process environment is never touched.
type Environ struct {
	vars map[string]string
}

// NewEnviron builds an overlay seeded from "KEY=VALUE" pairs, typically
// os.Environ(). Malformed entries without "=" are ignored.
func NewEnviron(base []string) *Environ {
	vars := make(map[string]string, len(base))
	for _, kv := range base {
		if idx := strings.Index(kv, "="); idx > 0 {
			vars[kv[:idx]] = kv[idx+1:]
		}
	}
	return &Environ{vars: vars}
}

// Get returns the current value of a variable and whether it is set.
func (e *Environ) Get(name string) (string, bool) {
	value, ok := e.vars[name]
	return value, ok
}

// Set assigns a variable, replacing any previous value.
func (e *Environ) Set(name, value string) {
	e.vars[name] = value
}

// PrependPath prefixes a colon-separated path-list variable with value.
// An unset or empty variable becomes exactly value, without a trailing
// separator.
func (e *Environ) PrependPath(name, value string) {
	current, ok := e.vars[name]
	if !ok || current == "" {
		e.vars[name] = value
		return
	}
	e.vars[name] = value + ":" + current
}

// Environ renders the overlay as sorted "KEY=VALUE" pairs for exec.Cmd.
func (e *Environ) Environ() []string {
	out := make([]string, 0, len(e.vars))
	for name, value := range e.vars {
		out = append(out, fmt.Sprintf("%s=%s", name, value))
	}
	sort.Strings(out)
	return out
}
