package doric

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EventSigil prefixes event attributes in the template (`@tap`).
const EventSigil = "@"

// BindSigil prefixes bound attributes (`:src`).
const BindSigil = ":"

// AttrMapping is one entry of the attribute table.
type AttrMapping struct {
	Tag    string
	Source string
	Target string
}

var attrTable = []AttrMapping{
	{"img", "src", "imageUrl"},
	{"input", "placeholder", "hintText"},
	{"input", "value", "text"},
	{"textarea", "placeholder", "hintText"},
	{"textarea", "value", "text"},
}

// Attributes returns a copy of the attribute table.
func Attributes() []AttrMapping {
	out := make([]AttrMapping, len(attrTable))
	copy(out, attrTable)
	return out
}

// LookupAttr renames attr for tag. Tags absent from the table keep every
// attribute name as is.
func LookupAttr(tag, attr string) string {
	switch tag {
	case "img":
		switch attr {
		case "src":
			return "imageUrl"
		}
	case "input", "textarea":
		switch attr {
		case "placeholder":
			return "hintText"
		case "value":
			return "text"
		}
	}
	return attr
}

// EventName returns the Doric callback property for a template event.
func EventName(event string) string {
	switch event {
	case "tap", "click":
		return "onClick"
	case "longpress":
		return "onLongPress"
	}
	return "on" + capitalize(event)
}

// IsEvent reports whether attr is an event binding and returns the event.
func IsEvent(attr string) (string, bool) {
	if !strings.HasPrefix(attr, EventSigil) {
		return "", false
	}
	event := strings.TrimPrefix(attr, EventSigil)
	if i := strings.IndexByte(event, '.'); i >= 0 {
		// modifiers (.stop, .prevent) have no Doric meaning
		event = event[:i]
	}
	return event, event != ""
}

func capitalize(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if r == '-' || r == '_' || r == ':' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Identifier converts a component base name into a valid function name.
// Names that already are identifiers are returned unchanged.
func Identifier(name string) string {
	if isIdentifier(name) {
		return name
	}
	id := capitalize(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' {
			return r
		}
		return '-'
	}, name))
	if id == "" {
		return "Component"
	}
	if r, _ := utf8.DecodeRuneInString(id); unicode.IsDigit(r) {
		id = "_" + id
	}
	return id
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
