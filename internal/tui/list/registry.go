package list

import (
	"strings"

	"github.com/charmbracelet/vscroll/internal/scroller"
)

// Registry resolves pane names to panes. Selectors may be written with or
// without a leading '#'.
type Registry struct {
	panes map[string]*Pane
}

var _ scroller.Resolver = (*Registry)(nil)

func NewRegistry(panes ...*Pane) *Registry {
	r := &Registry{panes: make(map[string]*Pane, len(panes))}
	for _, p := range panes {
		r.Register(p)
	}
	return r
}

// Register adds a pane under its name, replacing any previous one.
func (r *Registry) Register(p *Pane) {
	r.panes[p.Name()] = p
}

// Lookup implements scroller.Resolver.
func (r *Registry) Lookup(selector string) (scroller.Container, bool) {
	p, ok := r.panes[strings.TrimPrefix(selector, "#")]
	if !ok {
		return nil, false
	}
	return p, true
}
