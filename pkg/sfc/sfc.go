// Package sfc splits a Vue single-file component into its blocks and parses
// the template into a source element tree.
package sfc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/recera/vue2doric/pkg/source"
)

// Sentinel errors.
var (
	ErrNoTemplate      = errors.New("no <template> block")
	ErrDuplicateBlock  = errors.New("duplicate block")
	ErrMultipleRoots   = errors.New("template must have exactly one root element")
	ErrUnclosedElement = errors.New("unclosed element")
	ErrInvalidFor      = errors.New("invalid v-for expression")
	ErrInvalidBranch   = errors.New("v-else without a preceding v-if")
	ErrUnsupportedLang = errors.New("unsupported template language")
)

// Block is a top-level <script> or <style> block.
type Block struct {
	Content string
	Lang    string
	Scoped  bool
	Line    int
}

// Descriptor is a parsed single-file component.
type Descriptor struct {
	Filename string
	Template *source.Element
	Script   *Block
	Styles   []Block
	Warnings []error
}

// Component returns the file base name without its extension.
func (d *Descriptor) Component() string {
	base := filepath.Base(d.Filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ScriptLang returns "ts" for TypeScript scripts and "js" otherwise.
func (d *Descriptor) ScriptLang() string {
	if d.Script != nil && (d.Script.Lang == "ts" || d.Script.Lang == "tsx") {
		return "ts"
	}
	return "js"
}

// openBlock is a top-level block being read.
type openBlock struct {
	tag     string
	attrs   map[string]string
	line    int
	depth   int
	content strings.Builder
}

// Parse splits src into blocks and parses the template.
func Parse(name string, src []byte) (*Descriptor, error) {
	d := &Descriptor{Filename: name}
	z := html.NewTokenizer(bytes.NewReader(src))

	var (
		cur      *openBlock
		template *openBlock
		line     = 1
	)
	for {
		tt := z.Next()
		raw := string(z.Raw())
		tokLine := line
		line += strings.Count(raw, "\n")

		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%s:%d: %w", name, tokLine, err)
			}
			break
		}

		if cur == nil {
			if tt != html.StartTagToken {
				continue
			}
			tok := z.Token()
			cur = &openBlock{tag: tok.Data, attrs: make(map[string]string), line: tokLine, depth: 1}
			for _, a := range tok.Attr {
				cur.attrs[a.Key] = a.Val
			}
			continue
		}

		if tt == html.StartTagToken || tt == html.EndTagToken {
			tagName, _ := z.TagName()
			if string(tagName) == cur.tag {
				if tt == html.StartTagToken {
					cur.depth++
				} else if cur.depth--; cur.depth == 0 {
					if err := d.closeBlock(cur, &template); err != nil {
						return nil, err
					}
					cur = nil
					continue
				}
			}
		}
		cur.content.WriteString(raw)
	}
	if cur != nil {
		return nil, fmt.Errorf("%s:%d: <%s>: %w", name, cur.line, cur.tag, ErrUnclosedElement)
	}
	if template == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNoTemplate)
	}

	root, warnings, err := parseTemplate(name, template.content.String(), template.line)
	if err != nil {
		return nil, err
	}
	d.Template = root
	d.Warnings = warnings
	return d, nil
}

func (d *Descriptor) closeBlock(b *openBlock, template **openBlock) error {
	switch b.tag {
	case "template":
		if *template != nil {
			return fmt.Errorf("%s:%d: <template>: %w", d.Filename, b.line, ErrDuplicateBlock)
		}
		if lang := b.attrs["lang"]; lang != "" && lang != "html" {
			return fmt.Errorf("%s:%d: %q: %w", d.Filename, b.line, lang, ErrUnsupportedLang)
		}
		*template = b
	case "script":
		if d.Script != nil {
			return fmt.Errorf("%s:%d: <script>: %w", d.Filename, b.line, ErrDuplicateBlock)
		}
		d.Script = b.block()
	case "style":
		d.Styles = append(d.Styles, *b.block())
	}
	// custom blocks (<docs>, <i18n>) are ignored
	return nil
}

func (b *openBlock) block() *Block {
	_, scoped := b.attrs["scoped"]
	return &Block{
		Content: b.content.String(),
		Lang:    b.attrs["lang"],
		Scoped:  scoped,
		Line:    b.line,
	}
}
