package compiler

import (
	"strings"

	"github.com/recera/vue2doric/pkg/source"
)

// StyleTable maps every sub-selector of a rule set to its merged
// declarations. It is what the generated resolveStyle helper reads at run
// time.
type StyleTable struct {
	selectors []string
	decls     map[string][]source.Declaration
}

// NewStyleTable builds the table from pooled rules. Sub-selectors keep
// first-seen order; a property declared again keeps its position and takes
// the later value.
func NewStyleTable(rules source.RuleSet) *StyleTable {
	t := &StyleTable{decls: make(map[string][]source.Declaration)}
	for _, rule := range rules {
		for _, sel := range splitSelector(rule.Selector) {
			if _, ok := t.decls[sel]; !ok {
				t.selectors = append(t.selectors, sel)
			}
			t.decls[sel] = mergeDeclarations(t.decls[sel], rule.Declarations)
		}
	}
	return t
}

// Selectors returns the selectors in first-seen order.
func (t *StyleTable) Selectors() []string {
	out := make([]string, len(t.selectors))
	copy(out, t.selectors)
	return out
}

// Declarations returns the merged declarations of sel.
func (t *StyleTable) Declarations(sel string) []source.Declaration {
	return t.decls[sel]
}

// Len returns the number of selectors.
func (t *StyleTable) Len() int {
	return len(t.selectors)
}

func splitSelector(selector string) []string {
	var out []string
	for _, part := range strings.Split(selector, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func mergeDeclarations(dst, src []source.Declaration) []source.Declaration {
	for _, d := range src {
		replaced := false
		for i := range dst {
			if dst[i].Property == d.Property {
				dst[i].Value = d.Value
				replaced = true
				break
			}
		}
		if !replaced {
			dst = append(dst, d)
		}
	}
	return dst
}
