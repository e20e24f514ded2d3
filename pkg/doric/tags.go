package doric

// TagMapping is one entry of the tag table.
type TagMapping struct {
	Tag    string
	Symbol Symbol
}

// tagTable is the authoritative tag list. LookupTag is an exhaustive switch
// over the same tags; TestTagTableMatchesLookup keeps them in sync.
var tagTable = []TagMapping{
	{"div", VLayout},
	{"section", VLayout},
	{"header", VLayout},
	{"footer", VLayout},
	{"nav", VLayout},
	{"main", VLayout},
	{"article", VLayout},
	{"form", VLayout},
	{"p", VLayout},
	{"ul", VLayout},
	{"ol", VLayout},
	{"li", VLayout},
	{"h1", Stack},
	{"h2", Stack},
	{"h3", Stack},
	{"h4", Stack},
	{"h5", Stack},
	{"h6", Stack},
	{"a", Stack},
	{"br", Stack},
	{"span", Stack},
	{"label", Stack},
	{"button", Stack},
	{"img", Image},
	{"input", Input},
	{"textarea", Input},
}

// Tags returns a copy of the tag table in declaration order.
func Tags() []TagMapping {
	out := make([]TagMapping, len(tagTable))
	copy(out, tagTable)
	return out
}

// LookupTag returns the Doric symbol for a template tag.
func LookupTag(tag string) (Symbol, bool) {
	switch tag {
	case "div", "section", "header", "footer", "nav", "main", "article", "form", "p", "ul", "ol", "li":
		return VLayout, true
	case "h1", "h2", "h3", "h4", "h5", "h6", "a", "br", "span", "label", "button":
		return Stack, true
	case "img":
		return Image, true
	case "input", "textarea":
		return Input, true
	}
	return NoMappedTag, false
}

// TagTable resolves tags against the built-in table plus user additions.
// Additions never override built-in entries.
type TagTable struct {
	extra map[string]Symbol
}

// NewTagTable returns a table extended with extra tag mappings.
func NewTagTable(extra map[string]Symbol) *TagTable {
	t := &TagTable{extra: make(map[string]Symbol, len(extra))}
	for tag, sym := range extra {
		t.extra[tag] = sym
	}
	return t
}

// Lookup resolves tag, falling back to NoMappedTag.
func (t *TagTable) Lookup(tag string) (Symbol, bool) {
	if sym, ok := LookupTag(tag); ok {
		return sym, true
	}
	if t != nil {
		if sym, ok := t.extra[tag]; ok {
			return sym, true
		}
	}
	return NoMappedTag, false
}
