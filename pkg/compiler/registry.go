package compiler

import "github.com/recera/vue2doric/pkg/doric"

// ImportRegistry is an insertion-ordered set of runtime symbols referenced by
// one compile.
type ImportRegistry struct {
	order []doric.Symbol
	seen  map[doric.Symbol]struct{}
}

// NewImportRegistry returns an empty registry.
func NewImportRegistry() *ImportRegistry {
	return &ImportRegistry{seen: make(map[doric.Symbol]struct{})}
}

// Add registers symbols in order. Duplicates and non-importable symbols are
// ignored.
func (r *ImportRegistry) Add(symbols ...doric.Symbol) {
	for _, s := range symbols {
		if !s.Importable() {
			continue
		}
		if _, ok := r.seen[s]; ok {
			continue
		}
		r.seen[s] = struct{}{}
		r.order = append(r.order, s)
	}
}

// Contains reports whether s has been registered.
func (r *ImportRegistry) Contains(s doric.Symbol) bool {
	_, ok := r.seen[s]
	return ok
}

// Symbols returns the registered symbols in first-use order.
func (r *ImportRegistry) Symbols() []doric.Symbol {
	out := make([]doric.Symbol, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered symbols.
func (r *ImportRegistry) Len() int {
	return len(r.order)
}
