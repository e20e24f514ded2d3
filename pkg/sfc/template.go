package sfc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/recera/vue2doric/pkg/source"
	"github.com/recera/vue2doric/pkg/stylesheet"
)

// DroppedDirectiveWarning records a directive with no Doric equivalent.
type DroppedDirectiveWarning struct {
	Tag       string
	Directive string
	Line      int
}

func (w *DroppedDirectiveWarning) Error() string {
	return fmt.Sprintf("line %d: <%s> directive %s dropped", w.Line, w.Tag, w.Directive)
}

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// treeBuilder assembles the element tree from template tokens.
type treeBuilder struct {
	name     string
	line     int
	stack    []*source.Element
	root     *source.Element
	text     strings.Builder
	warnings []error
}

// parseTemplate parses the inner markup of a <template> block starting at
// line.
func parseTemplate(name, markup string, line int) (*source.Element, []error, error) {
	b := &treeBuilder{name: name, line: line}
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		raw := string(z.Raw())
		if err := b.token(z, tt); err != nil {
			return nil, nil, err
		}
		if tt == html.ErrorToken {
			break
		}
		b.line += strings.Count(raw, "\n")
	}
	if b.root == nil {
		return nil, nil, fmt.Errorf("%s: empty template: %w", name, ErrNoTemplate)
	}
	return b.root, b.warnings, nil
}

func (b *treeBuilder) token(z *html.Tokenizer, tt html.TokenType) error {
	if tt == html.TextToken {
		b.text.Write(z.Text())
		return nil
	}
	if err := b.flushText(); err != nil {
		return err
	}

	switch tt {
	case html.ErrorToken:
		if err := z.Err(); !errors.Is(err, io.EOF) {
			return b.errorf("%w", err)
		}
		if n := len(b.stack); n > 0 {
			return b.errorf("<%s>: %w", b.stack[n-1].Tag, ErrUnclosedElement)
		}
	case html.StartTagToken, html.SelfClosingTagToken:
		tok := z.Token()
		el, err := b.open(tok)
		if err != nil {
			return err
		}
		if tt == html.StartTagToken && !voidElements[tok.DataAtom] {
			b.stack = append(b.stack, el)
		}
	case html.EndTagToken:
		tok := z.Token()
		n := len(b.stack)
		if n == 0 || b.stack[n-1].Tag != tok.Data {
			if voidElements[tok.DataAtom] {
				return nil
			}
			if n == 0 {
				return b.errorf("</%s> without open element: %w", tok.Data, ErrUnclosedElement)
			}
			return b.errorf("<%s> closed by </%s>: %w", b.stack[n-1].Tag, tok.Data, ErrUnclosedElement)
		}
		b.stack = b.stack[:n-1]
	}
	// comments and doctypes carry nothing
	return nil
}

// open converts a start tag into an element and attaches it to the tree.
func (b *treeBuilder) open(tok html.Token) (*source.Element, error) {
	el := &source.Element{Tag: tok.Data}
	var branch *source.Branch
	for _, a := range tok.Attr {
		name, val := a.Key, a.Val
		switch {
		case name == "class":
			el.StaticClass = val
		case name == "style":
			literal, err := styleLiteral(val)
			if err != nil {
				return nil, b.errorf("<%s> style: %w", el.Tag, err)
			}
			el.StaticStyle = literal
		case name == ":class" || name == "v-bind:class":
			el.ClassBinding = val
		case name == ":style" || name == "v-bind:style":
			el.StyleBinding = val
		case name == "v-if":
			el.If = val
		case name == "v-else-if":
			branch = &source.Branch{Cond: val}
			if strings.TrimSpace(val) == "" {
				return nil, b.errorf("<%s> v-else-if without condition: %w", el.Tag, ErrInvalidBranch)
			}
		case name == "v-else":
			branch = &source.Branch{}
		case name == "v-for":
			it, err := ParseFor(val)
			if err != nil {
				return nil, b.errorf("<%s>: %w", el.Tag, err)
			}
			el.For = it
		case strings.HasPrefix(name, "v-on:"):
			el.Attrs = append(el.Attrs, source.Attr{Name: "@" + strings.TrimPrefix(name, "v-on:"), Value: val})
		case strings.HasPrefix(name, "v-bind:"):
			el.Attrs = append(el.Attrs, source.Attr{Name: ":" + strings.TrimPrefix(name, "v-bind:"), Value: val})
		case strings.HasPrefix(name, "v-"), strings.HasPrefix(name, "#"):
			b.warnings = append(b.warnings, &DroppedDirectiveWarning{Tag: el.Tag, Directive: name, Line: b.line})
		default:
			el.Attrs = append(el.Attrs, source.Attr{Name: name, Value: val})
		}
	}

	if branch == nil {
		return el, b.attach(el)
	}
	if el.If != "" {
		return nil, b.errorf("<%s> has v-if and v-else: %w", el.Tag, ErrInvalidBranch)
	}
	head := b.chainHead()
	if head == nil {
		return nil, b.errorf("<%s>: %w", el.Tag, ErrInvalidBranch)
	}
	if n := len(head.Conditions); n > 0 && head.Conditions[n-1].Cond == "" {
		return nil, b.errorf("<%s> follows v-else: %w", el.Tag, ErrInvalidBranch)
	}
	el.Parent = b.parent()
	branch.Element = el
	head.Conditions = append(head.Conditions, *branch)
	return el, nil
}

func (b *treeBuilder) attach(el *source.Element) error {
	if parent := b.parent(); parent != nil {
		parent.AppendChild(el)
		return nil
	}
	if b.root != nil {
		return b.errorf("second root <%s>: %w", el.Tag, ErrMultipleRoots)
	}
	b.root = el
	return nil
}

func (b *treeBuilder) parent() *source.Element {
	if n := len(b.stack); n > 0 {
		return b.stack[n-1]
	}
	return nil
}

// chainHead returns the v-if element a v-else(-if) attaches to: the
// previous sibling, which must carry v-if.
func (b *treeBuilder) chainHead() *source.Element {
	var prev *source.Element
	if parent := b.parent(); parent != nil {
		if n := len(parent.Children); n > 0 {
			prev, _ = parent.Children[n-1].(*source.Element)
		}
	} else {
		prev = b.root
	}
	if prev == nil || prev.If == "" {
		return nil
	}
	return prev
}

// flushText adds pending text to the open element. Whitespace-only text is
// dropped.
func (b *treeBuilder) flushText() error {
	raw := b.text.String()
	b.text.Reset()
	node := textNode(raw)
	if node == nil {
		return nil
	}
	parent := b.parent()
	if parent == nil {
		return b.errorf("text %q outside the root element: %w", strings.TrimSpace(raw), ErrMultipleRoots)
	}
	parent.AppendChild(node)
	return nil
}

func (b *treeBuilder) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: "+format, append([]any{b.name, b.line}, args...)...)
}

// styleLiteral returns a static style attribute as a JSON object literal.
// Values already written as JSON objects are kept as is; CSS declaration
// text is converted, keeping declaration order.
func styleLiteral(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, "{") {
		return value, nil
	}
	decls, err := stylesheet.ParseDeclarations(value)
	if err != nil {
		return "", err
	}
	if len(decls) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, d := range decls {
		if i > 0 {
			sb.WriteByte(',')
		}
		k, _ := json.Marshal(d.Property)
		v, _ := json.Marshal(d.Value)
		sb.Write(k)
		sb.WriteByte(':')
		sb.Write(v)
	}
	sb.WriteByte('}')
	return sb.String(), nil
}
